package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/and161185/autotrade/internal/auth"
	"github.com/and161185/autotrade/internal/config"
	"github.com/and161185/autotrade/internal/deps"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// demoServer runs the router against the in-memory demo data.
func demoServer(t *testing.T) http.Handler {
	t.Helper()

	hash, err := bcryptHash("secret")
	require.NoError(t, err)

	store, err := storage.NewMemoryStorage(storage.DemoFixtures(hash))
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	store.SetClock(now)

	srv := NewServer(store, store, store, &config.Config{}, &deps.Deps{
		TokenManager: auth.NewTokenManager("testsecret"),
		Logger:       zaptest.NewLogger(t).Sugar(),
	})
	srv.now = now
	return srv.buildRouter()
}

func call(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	w := call(t, h, http.MethodPost, "/api/auth/login", "", `{"email":"`+email+`","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Token
}

func TestBillingFlow(t *testing.T) {
	router := demoServer(t)
	office := login(t, router, "office@example.com")

	w := call(t, router, http.MethodGet, "/api/invoices/invoice-001", office, "")
	require.Equal(t, http.StatusOK, w.Code)
	var inv InvoiceDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&inv))
	require.Equal(t, int64(2148000), inv.Remaining)

	w = call(t, router, http.MethodPost, "/api/invoices/invoice-001/payments", office, `{"amount":1000000,"paymentMethod":"bank_transfer"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&inv))
	require.Equal(t, int64(1000000), inv.PaidAmount)
	require.Equal(t, model.InvoiceIssued, inv.Status)
	require.Len(t, inv.Payments, 1)

	w = call(t, router, http.MethodPost, "/api/invoices/invoice-001/payments", office, `{"amount":2000000,"paymentMethod":"bank_transfer"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	w = call(t, router, http.MethodPost, "/api/reconcile", office,
		`{"invoiceIds":["invoice-001"],"payment":{"amount":1148000,"paymentMethod":"bank_transfer"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var result ReconcileResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.Equal(t, model.InvoicePaid, result.Invoices[0].Status)

	w = call(t, router, http.MethodGet, "/api/payment-notices/notice-001", office, "")
	require.Equal(t, http.StatusOK, w.Code)
	var notice NoticeDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&notice))
	require.Equal(t, model.NoticePaid, notice.Status)
}

func TestOrderFlow(t *testing.T) {
	router := demoServer(t)
	sales := login(t, router, "sales@example.com")

	w := call(t, router, http.MethodPost, "/api/orders", sales,
		`{"orderType":"mediation","clientId":"client-002","buyerClientId":"client-001","vehiclePrice":1000000,"buyCommission":50000,"sellCommission":50000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var order OrderView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	require.Equal(t, "ORD-2024-0005", order.OrderNumber)
	require.Equal(t, int64(1100000), order.TotalAmount)
	require.Equal(t, "user-002", order.SalesPersonID)

	path := "/api/orders/" + order.ID + "/progress"
	w = call(t, router, http.MethodPost, path, sales, `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	var detail OrderDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
	require.Equal(t, model.Matching, detail.Status)
	require.Len(t, detail.Progress, 2)

	w = call(t, router, http.MethodPost, path, sales, `{"status":"ordered"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	// the buyer sees the mediation order in the portal
	customer := login(t, router, "customer@example.com")
	w = call(t, router, http.MethodGet, "/api/portal/orders/"+order.ID, customer, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPortalFlow(t *testing.T) {
	router := demoServer(t)
	customer := login(t, router, "customer@example.com")

	w := call(t, router, http.MethodGet, "/api/portal/invoices", customer, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list InvoiceList
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Invoices, 1)
	require.Equal(t, "invoice-001", list.Invoices[0].ID)

	w = call(t, router, http.MethodGet, "/api/portal/invoices/invoice-002", customer, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, router, http.MethodGet, "/api/portal/deliveries", customer, "")
	require.Equal(t, http.StatusOK, w.Code)
	var deliveries []PortalDeliveryView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&deliveries))
	require.Len(t, deliveries, 2)
	require.NotContains(t, w.Body.String(), "profit")

	w = call(t, router, http.MethodPost, "/api/portal/deliveries/delivery-001/inspection", customer,
		`{"inspectionDate":"2024-03-01T00:00:00Z","inspectionResult":"accepted"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var delivered PortalDeliveryDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&delivered))
	require.Equal(t, model.DeliveryInspected, delivered.Status)
	require.Len(t, delivered.Inspections, 1)

	w = call(t, router, http.MethodPost, "/api/portal/deliveries/delivery-001/inspection", customer,
		`{"inspectionDate":"2024-03-02T00:00:00Z","inspectionResult":"accepted"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	vendor := login(t, router, "vendor@example.com")
	w = call(t, router, http.MethodGet, "/api/portal/deliveries/delivery-001", vendor, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentNoticeFlow(t *testing.T) {
	router := demoServer(t)
	office := login(t, router, "office@example.com")

	w := call(t, router, http.MethodPost, "/api/invoices", office,
		`{"orderId":"order-003","invoiceDate":"2024-03-01T00:00:00Z","dueDate":"2024-03-31T00:00:00Z","vehiclePrice":1000000,"tax":100000,"draft":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var draft InvoiceDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&draft))
	require.Equal(t, model.InvoiceDraft, draft.Status)

	w = call(t, router, http.MethodPost, "/api/payment-notices", office,
		`{"clientId":"client-001","invoiceIds":["`+draft.ID+`"],"dueDate":"2024-03-31T00:00:00Z"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	w = call(t, router, http.MethodPost, "/api/payment-notices", office,
		`{"clientId":"client-001","invoiceIds":["invoice-001","invoice-001"],"dueDate":"2024-03-31T00:00:00Z"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = call(t, router, http.MethodPost, "/api/payment-notices", office,
		`{"clientId":"client-001","invoiceIds":["invoice-001"],"dueDate":"2024-03-31T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var notice NoticeDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&notice))
	require.Equal(t, 1, notice.InvoiceCount)
	require.Equal(t, int64(2148000), notice.GrandTotal)

	customer := login(t, router, "customer@example.com")
	w = call(t, router, http.MethodGet, "/api/portal/payment-notices", customer, "")
	require.Equal(t, http.StatusOK, w.Code)
	var notices []NoticeView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&notices))
	require.Len(t, notices, 2)
	require.NotContains(t, w.Body.String(), draft.InvoiceNumber)
}
