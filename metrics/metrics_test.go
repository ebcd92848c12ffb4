package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mytheresa/storefront/session"
)

func TestSessionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSessionMetrics(reg)

	m.RecordOutcome(session.OutcomeLineAdded)
	m.RecordOutcome(session.OutcomeLineAdded)
	m.RecordOutcome(session.OutcomeCheckoutEmptyCart)
	m.RecordCheckout(session.Receipt{ItemCount: 3, Total: decimal.NewFromInt(2297)})
	m.RecordExpired(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("line_added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("checkout_empty_cart")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("wishlist_added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checkouts))
	assert.Equal(t, 2297.0, testutil.ToFloat64(m.CheckoutAmount))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CheckoutItems))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Expired))

	assert.Equal(t, len(session.Outcomes()), testutil.CollectAndCount(m.Outcomes), "every outcome is pre-registered")
}

func TestActiveSessionsAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	active := 3
	RegisterActiveSessions(reg, func() int { return active })
	server := NewServerMetrics(reg, "api")
	server.Requests.WithLabelValues("catalog", "200").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "storefront_session_active 3"), body)
	assert.True(t, strings.Contains(body, `storefront_api_http_requests_total{handler="catalog",status="200"} 1`), body)
}
