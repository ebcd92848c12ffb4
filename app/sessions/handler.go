package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/session"
)

type SessionStore interface {
	Create() uuid.UUID
	Do(id uuid.UUID, fn func(*session.Engine) error) error
	Delete(id uuid.UUID) bool
}

// OutcomeRecorder is told about every applied event and completed checkout.
type OutcomeRecorder interface {
	RecordOutcome(o session.Outcome)
	RecordCheckout(r session.Receipt)
}

type Line struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"line_total"`
}

type Snapshot struct {
	ID         uuid.UUID `json:"id"`
	Lines      []Line    `json:"lines"`
	ItemCount  int       `json:"item_count"`
	TotalPrice float64   `json:"total_price"`
	Wishlist   []int64   `json:"wishlist"`
	Category   string    `json:"category"`
	CartOpen   bool      `json:"cart_open"`
}

type EventResponse struct {
	Outcome session.Outcome `json:"outcome"`
	Session Snapshot        `json:"session"`
}

type ProductsResponse struct {
	Category string            `json:"category"`
	Total    int               `json:"total"`
	Products []catalog.Product `json:"products"`
}

type CheckoutResponse struct {
	OrderID   uuid.UUID       `json:"order_id"`
	Lines     []Line          `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     float64         `json:"total"`
	Outcome   session.Outcome `json:"outcome"`
	Session   Snapshot        `json:"session"`
}

type productRequest struct {
	ProductID int64 `json:"product_id"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type SessionsHandler struct {
	store    SessionStore
	recorder OutcomeRecorder
	log      *zap.Logger
}

func NewSessionsHandler(store SessionStore, recorder OutcomeRecorder, log *zap.Logger) *SessionsHandler {
	return &SessionsHandler{
		store:    store,
		recorder: recorder,
		log:      log,
	}
}

func newLines(lines []session.PricedLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{
			Product:   catalog.NewProduct(l.Product),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal.InexactFloat64(),
		})
	}
	return out
}

func newSnapshot(id uuid.UUID, e *session.Engine) (Snapshot, error) {
	state := e.State()
	lines, total, err := session.PriceLines(state, e.Catalog())
	if err != nil {
		return Snapshot{}, err
	}

	wishlist := make([]int64, 0, state.WishlistCount())
	for _, p := range state.Wishlist() {
		wishlist = append(wishlist, int64(p))
	}

	return Snapshot{
		ID:         id,
		Lines:      newLines(lines),
		ItemCount:  session.TotalItemCount(state),
		TotalPrice: total.InexactFloat64(),
		Wishlist:   wishlist,
		Category:   state.SelectedCategory().String(),
		CartOpen:   state.CartOpen(),
	}, nil
}

func (h *SessionsHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func productIDFromPath(w http.ResponseWriter, r *http.Request) (session.ProductID, bool) {
	id, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil || id <= 0 {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return session.ProductID(id), true
}

func productIDFromBody(w http.ResponseWriter, r *http.Request) (session.ProductID, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return 0, false
	}
	if req.ProductID <= 0 {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing required field (product_id)")
		return 0, false
	}
	return session.ProductID(req.ProductID), true
}

func (h *SessionsHandler) fail(w http.ResponseWriter, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		api.ErrorResponse(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrProductNotFound):
		api.ErrorResponse(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, session.ErrInvalidCategory):
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid category")
	case errors.Is(err, session.ErrEmptyCart):
		api.ErrorResponse(w, http.StatusConflict, "Cart is empty")
	default:
		h.log.Error("session event failed", zap.Stringer("session_id", id), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// apply runs one event against the session and answers with the outcome and
// the resulting snapshot. If building the snapshot fails the store rolls the
// event back.
func (h *SessionsHandler) apply(w http.ResponseWriter, id uuid.UUID, event func(*session.Engine) (session.Outcome, error)) {
	var resp EventResponse
	err := h.store.Do(id, func(e *session.Engine) error {
		outcome, err := event(e)
		if err != nil {
			return err
		}
		snap, err := newSnapshot(id, e)
		if err != nil {
			return err
		}
		resp = EventResponse{Outcome: outcome, Session: snap}
		return nil
	})
	if err != nil {
		h.fail(w, id, err)
		return
	}

	h.recorder.RecordOutcome(resp.Outcome)
	h.log.Debug("session event applied",
		zap.Stringer("session_id", id),
		zap.Stringer("outcome", resp.Outcome),
		zap.Int("item_count", resp.Session.ItemCount),
	)
	api.OKResponse(w, resp)
}

func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id := h.store.Create()

	var snap Snapshot
	err := h.store.Do(id, func(e *session.Engine) error {
		var err error
		snap, err = newSnapshot(id, e)
		return err
	})
	if err != nil {
		h.fail(w, id, err)
		return
	}

	h.log.Info("session created", zap.Stringer("session_id", id))
	api.JSONResponse(w, http.StatusCreated, snap)
}

func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var snap Snapshot
	err := h.store.Do(id, func(e *session.Engine) error {
		var err error
		snap, err = newSnapshot(id, e)
		return err
	})
	if err != nil {
		h.fail(w, id, err)
		return
	}

	api.OKResponse(w, snap)
}

func (h *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if !h.store.Delete(id) {
		api.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	h.log.Info("session ended", zap.Stringer("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionsHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var resp ProductsResponse
	err := h.store.Do(id, func(e *session.Engine) error {
		filtered := e.FilteredProducts()
		resp.Category = e.State().SelectedCategory().String()
		resp.Total = len(filtered)
		resp.Products = make([]catalog.Product, 0, len(filtered))
		for _, p := range filtered {
			resp.Products = append(resp.Products, catalog.NewProduct(p))
		}
		return nil
	})
	if err != nil {
		h.fail(w, id, err)
		return
	}

	api.OKResponse(w, resp)
}

func (h *SessionsHandler) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDFromBody(w, r)
	if !ok {
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.AddToCart(productID)
	})
}

func (h *SessionsHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity == nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing required field (quantity)")
		return
	}
	if *req.Quantity > session.MaxQuantity {
		api.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Quantity must not exceed %d", session.MaxQuantity))
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.UpdateQuantity(productID, *req.Quantity), nil
	})
}

func (h *SessionsHandler) HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.RemoveFromCart(productID), nil
	})
}

func (h *SessionsHandler) HandleToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDFromPath(w, r)
	if !ok {
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.ToggleWishlist(productID)
	})
}

func (h *SessionsHandler) HandleSelectCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.SelectCategory(session.Category(req.Category))
	})
}

func (h *SessionsHandler) HandleBuyNow(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDFromBody(w, r)
	if !ok {
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.BuyNow(productID)
	})
}

func (h *SessionsHandler) HandleOpenCart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.OpenCart(), nil
	})
}

func (h *SessionsHandler) HandleCloseCart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	h.apply(w, id, func(e *session.Engine) (session.Outcome, error) {
		return e.CloseCart(), nil
	})
}

func (h *SessionsHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var (
		receipt session.Receipt
		outcome session.Outcome
		snap    Snapshot
	)
	err := h.store.Do(id, func(e *session.Engine) error {
		var err error
		receipt, outcome, err = e.Checkout()
		if err != nil {
			return err
		}
		snap, err = newSnapshot(id, e)
		return err
	})
	if errors.Is(err, session.ErrEmptyCart) {
		h.recorder.RecordOutcome(outcome)
	}
	if err != nil {
		h.fail(w, id, err)
		return
	}

	orderID := uuid.New()
	h.recorder.RecordOutcome(outcome)
	h.recorder.RecordCheckout(receipt)
	h.log.Info("checkout completed",
		zap.Stringer("session_id", id),
		zap.Stringer("order_id", orderID),
		zap.Int("item_count", receipt.ItemCount),
		zap.Stringer("total", receipt.Total),
	)

	api.OKResponse(w, CheckoutResponse{
		OrderID:   orderID,
		Lines:     newLines(receipt.Lines),
		ItemCount: receipt.ItemCount,
		Total:     receipt.Total.InexactFloat64(),
		Outcome:   outcome,
		Session:   snap,
	})
}
