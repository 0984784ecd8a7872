package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/and161185/autotrade/internal/auth"
	"github.com/and161185/autotrade/internal/config"
	"github.com/and161185/autotrade/internal/deps"
	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/middleware"
	"github.com/and161185/autotrade/internal/mocks"
	"github.com/and161185/autotrade/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var (
	officeUser   = model.User{ID: "user-003", Email: "office@example.com", Role: model.Office, IsActive: true}
	customerUser = model.User{ID: "user-004", Email: "customer@example.com", Role: model.Customer, ClientID: "client-001", IsActive: true}
	testClients  = []model.Client{{ID: "client-001", Name: "山田太郎"}, {ID: "client-002", Name: "株式会社サンプル商事"}}
)

func setup(t *testing.T) (*Server, *mocks.MockStorage) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockStorage := mocks.NewMockStorage(ctrl)

	logger := zaptest.NewLogger(t)
	cfg := &config.Config{}
	deps := &deps.Deps{
		TokenManager: auth.NewTokenManager("testsecret"),
		Logger:       logger.Sugar(),
	}

	srv := NewServer(mockStorage, mockStorage, mockStorage, cfg, deps)
	srv.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }

	return srv, mockStorage
}

func bcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}

func withUser(req *http.Request, user model.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, user)
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newAuthenticatedRequest(method, path, token string, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcryptHash("secret")
	require.NoError(t, err)

	inactive := officeUser
	inactive.IsActive = false

	tests := []struct {
		name     string
		body     string
		mockCall func(m *mocks.MockStorage)
		wantCode int
	}{
		{
			name: "success",
			body: `{"email":"office@example.com","password":"secret"}`,
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "office@example.com").Return(officeUser, hash, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email":"office@example.com","password":"nope"}`,
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "office@example.com").Return(officeUser, hash, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "unknown user",
			body: `{"email":"ghost@example.com","password":"secret"}`,
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(model.User{}, "", errs.ErrUserNotFound)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated",
			body: `{"email":"office@example.com","password":"secret"}`,
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "office@example.com").Return(inactive, hash, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "missing password",
			body:     `{"email":"office@example.com"}`,
			mockCall: func(m *mocks.MockStorage) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, mock := setup(t)
			tt.mockCall(mock)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.LoginHandler(w, req)

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp model.LoginResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			require.Equal(t, officeUser.ID, resp.User.ID)
			require.Equal(t, "Bearer "+resp.Token, w.Header().Get("Authorization"))

			identity, err := srv.deps.TokenManager.ParseToken(resp.Token)
			require.NoError(t, err)
			require.Equal(t, model.Office, identity.Role)
		})
	}
}

func TestCreateOrderHandler(t *testing.T) {
	srv, mock := setup(t)

	mock.EXPECT().
		AddOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o model.Order) (model.Order, error) {
			require.Equal(t, officeUser.ID, o.SalesPersonID)
			require.Equal(t, model.Buy, o.OrderType)
			o.ID = "order-005"
			o.OrderNumber = "ORD-2024-0005"
			o.Status = model.Ordered
			o.TotalAmount = o.VehiclePrice + o.BuyCommission + o.SellCommission
			return o, nil
		})
	mock.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)

	body := `{"orderType":"buy","clientId":"client-001","vehiclePrice":1800000,"buyCommission":169000,"orderDate":"2024-03-01T00:00:00Z"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)), officeUser)
	w := httptest.NewRecorder()
	srv.CreateOrderHandler(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got OrderView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Equal(t, int64(1969000), got.TotalAmount)
	require.Equal(t, "山田太郎", got.ClientName)
	require.Equal(t, model.AuctionProcessing, got.NextStatus)
	require.Equal(t, "受注済み", got.StatusBadge.Label)
	require.True(t, decimal.RequireFromString("16.7").Equal(got.ProgressPercent))
}

func TestCreateOrderHandlerValidation(t *testing.T) {
	bodies := map[string]string{
		"unknown type":        `{"orderType":"lease","clientId":"client-001"}`,
		"mediation no buyer":  `{"orderType":"mediation","clientId":"client-001"}`,
		"mediation same side": `{"orderType":"mediation","clientId":"client-001","buyerClientId":"client-001"}`,
		"negative price":      `{"orderType":"buy","clientId":"client-001","vehiclePrice":-1}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := setup(t)

			req := withUser(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)), officeUser)
			w := httptest.NewRecorder()
			srv.CreateOrderHandler(w, req)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestAdvanceOrderHandler(t *testing.T) {
	order := model.Order{ID: "order-001", OrderType: model.Buy, ClientID: "client-001", Status: model.Ordered, TotalAmount: 1969000}

	t.Run("next step", func(t *testing.T) {
		srv, mock := setup(t)

		mock.EXPECT().GetOrder(gomock.Any(), "order-001").Return(order, nil)
		mock.EXPECT().
			AddOrderProgress(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p model.OrderProgress) (model.Order, error) {
				require.Equal(t, model.AuctionProcessing, p.Status)
				require.Equal(t, officeUser.ID, p.ChangedBy)
				advanced := order
				advanced.Status = p.Status
				return advanced, nil
			})
		mock.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)
		mock.EXPECT().GetOrderProgress(gomock.Any(), "order-001").Return(nil, nil)
		mock.EXPECT().GetPurchases(gomock.Any(), model.PurchaseFilter{OrderID: "order-001"}).Return(nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/orders/order-001/progress", strings.NewReader(`{}`))
		req = withURLParam(withUser(req, officeUser), "id", "order-001")
		w := httptest.NewRecorder()
		srv.AdvanceOrderHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got OrderDetail
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Equal(t, model.AuctionProcessing, got.Status)
		require.True(t, decimal.RequireFromString("33.3").Equal(got.ProgressPercent))
	})

	t.Run("skipping ahead", func(t *testing.T) {
		srv, mock := setup(t)

		mock.EXPECT().GetOrder(gomock.Any(), "order-001").Return(order, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/orders/order-001/progress", strings.NewReader(`{"status":"invoiced"}`))
		req = withURLParam(withUser(req, officeUser), "id", "order-001")
		w := httptest.NewRecorder()
		srv.AdvanceOrderHandler(w, req)

		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("completed order", func(t *testing.T) {
		srv, mock := setup(t)

		done := order
		done.Status = model.Completed
		mock.EXPECT().GetOrder(gomock.Any(), "order-001").Return(done, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/orders/order-001/progress", strings.NewReader(`{}`))
		req = withURLParam(withUser(req, officeUser), "id", "order-001")
		w := httptest.NewRecorder()
		srv.AdvanceOrderHandler(w, req)

		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRecordPaymentHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"overpayment", `{"amount":3000000,"paymentMethod":"bank_transfer"}`, fmt.Errorf("%w: left 2148000", errs.ErrOverpayment), http.StatusConflict},
		{"draft invoice", `{"amount":1000,"paymentMethod":"cash"}`, fmt.Errorf("%w: draft", errs.ErrInvalidTransition), http.StatusConflict},
		{"unknown invoice", `{"amount":1000,"paymentMethod":"cash"}`, errs.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, mock := setup(t)
			mock.EXPECT().RecordPayments(gomock.Any(), gomock.Len(1)).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/invoices/invoice-001/payments", strings.NewReader(tt.body))
			req = withURLParam(req, "id", "invoice-001")
			w := httptest.NewRecorder()
			srv.RecordPaymentHandler(w, req)

			require.Equal(t, tt.wantCode, w.Code)
		})
	}

	t.Run("zero amount", func(t *testing.T) {
		srv, _ := setup(t)

		req := httptest.NewRequest(http.MethodPost, "/api/invoices/invoice-001/payments", strings.NewReader(`{"amount":0,"paymentMethod":"cash"}`))
		req = withURLParam(req, "id", "invoice-001")
		w := httptest.NewRecorder()
		srv.RecordPaymentHandler(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestReconcileHandler(t *testing.T) {
	march := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	early := model.Invoice{ID: "inv-a", InvoiceNumber: "INV-202402-0001", DueDate: march, TotalAmount: 300000, PaidAmount: 100000, Status: model.InvoiceIssued}
	late := model.Invoice{ID: "inv-b", InvoiceNumber: "INV-202403-0001", DueDate: march.AddDate(0, 1, 0), TotalAmount: 500000, Status: model.InvoiceIssued}

	t.Run("earliest due first", func(t *testing.T) {
		srv, mock := setup(t)

		mock.EXPECT().GetInvoice(gomock.Any(), "inv-a").Return(early, nil)
		mock.EXPECT().GetInvoice(gomock.Any(), "inv-b").Return(late, nil)
		mock.EXPECT().
			RecordPayments(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payments []model.Payment) ([]model.Invoice, error) {
				require.Len(t, payments, 2)
				require.Equal(t, "inv-a", payments[0].InvoiceID)
				require.Equal(t, int64(200000), payments[0].Amount)
				require.Equal(t, "inv-b", payments[1].InvoiceID)
				require.Equal(t, int64(200000), payments[1].Amount)
				require.Equal(t, "REF-1", payments[1].ReferenceNumber)

				a, b := early, late
				a.PaidAmount, a.Status = 300000, model.InvoicePaid
				b.PaidAmount = 200000
				return []model.Invoice{a, b}, nil
			})
		mock.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)

		body := `{"invoiceIds":["inv-b","inv-a","inv-a"],"payment":{"amount":400000,"paymentMethod":"bank_transfer","referenceNumber":"REF-1"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/reconcile", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.ReconcileHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got ReconcileResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got.Allocations, 2)
		require.Equal(t, model.InvoicePaid, got.Invoices[0].Status)
		require.Zero(t, got.Invoices[0].Remaining)
		require.Equal(t, int64(300000), got.Invoices[1].Remaining)
	})

	t.Run("more than selected", func(t *testing.T) {
		srv, mock := setup(t)

		mock.EXPECT().GetInvoice(gomock.Any(), "inv-a").Return(early, nil)
		mock.EXPECT().GetInvoice(gomock.Any(), "inv-b").Return(late, nil)

		body := `{"invoiceIds":["inv-a","inv-b"],"payment":{"amount":800000,"paymentMethod":"bank_transfer"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/reconcile", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.ReconcileHandler(w, req)

		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("nothing selected", func(t *testing.T) {
		srv, _ := setup(t)

		body := `{"invoiceIds":[],"payment":{"amount":1000,"paymentMethod":"cash"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/reconcile", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.ReconcileHandler(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetReconcileHandler(t *testing.T) {
	srv, mock := setup(t)

	invoices := []model.Invoice{
		{ID: "inv-a", InvoiceNumber: "INV-202402-0001", TotalAmount: 300000, PaidAmount: 100000, Status: model.InvoiceIssued},
		{ID: "inv-b", InvoiceNumber: "INV-202403-0001", TotalAmount: 500000, Status: model.InvoiceOverdue},
		{ID: "inv-c", InvoiceNumber: "INV-202403-0002", TotalAmount: 700000, Status: model.InvoiceDraft},
	}
	mock.EXPECT().
		GetInvoices(gomock.Any(), model.InvoiceFilter{ClientID: "client-001", UnpaidOnly: true, Search: "INV"}).
		Return(invoices, nil)
	mock.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/reconcile?clientId=client-001&search=INV&selected=inv-a,inv-b,inv-c", nil)
	w := httptest.NewRecorder()
	srv.GetReconcileHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got ReconcileView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.Invoices, 2)
	require.Equal(t, int64(700000), got.SelectedRemaining)
	require.Equal(t, "¥700,000", got.SelectedDisplay)
}

func TestCreatePaymentNoticeHandler(t *testing.T) {
	srv, mock := setup(t)
	srv.config.Payee = model.BankAccount{BankName: "〇〇銀行", AccountNumber: "1234567"}

	inv := model.Invoice{ID: "invoice-001", ClientID: "client-001", TotalAmount: 2148000, Status: model.InvoiceIssued}
	mock.EXPECT().
		AddPaymentNotice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n model.PaymentNotice) (model.PaymentNotice, error) {
			require.Equal(t, srv.config.Payee, n.BankAccount)
			require.Equal(t, srv.now(), n.IssuedDate)
			n.ID = "notice-003"
			n.NoticeNumber = "PN-202403-0001"
			n.GrandTotal = inv.TotalAmount
			n.Status = model.NoticeIssued
			return n, nil
		})
	mock.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)
	mock.EXPECT().GetInvoice(gomock.Any(), "invoice-001").Return(inv, nil)

	body := `{"clientId":"client-001","invoiceIds":["invoice-001"],"dueDate":"2024-03-25T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment-notices", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.CreatePaymentNoticeHandler(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got NoticeDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Equal(t, "PN-202403-0001", got.NoticeNumber)
	require.Equal(t, "¥2,148,000", got.GrandTotalDisplay)
	require.Equal(t, "2024年3月25日", got.DueDateDisplay)
	require.Len(t, got.Invoices, 1)
}

func TestExportInvoicesHandler(t *testing.T) {
	srv, mock := setup(t)

	mock.EXPECT().GetInvoices(gomock.Any(), model.InvoiceFilter{Status: model.InvoiceIssued}).Return([]model.Invoice{{
		ID:            "invoice-001",
		InvoiceNumber: "INV-202402-0001",
		ClientID:      "client-002",
		InvoiceDate:   time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		TotalAmount:   2148000,
		PaidAmount:    148000,
		Status:        model.InvoiceIssued,
	}}, nil)
	mock.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/export?status=issued", nil)
	w := httptest.NewRecorder()
	srv.ExportInvoicesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv; charset=Shift_JIS", w.Header().Get("Content-Type"))

	records, err := csv.NewReader(transform.NewReader(w.Body, japanese.ShiftJIS.NewDecoder())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "請求書番号", records[0][0])
	require.Equal(t, []string{
		"INV-202402-0001", "株式会社サンプル商事", "2024/02/20", "2024/03/25",
		"2148000", "148000", "2000000", "発行済み",
	}, records[1])
}

func TestGetPayoutsHandlerScopesSales(t *testing.T) {
	srv, mock := setup(t)

	sales := model.User{ID: "user-002", Role: model.Sales, IsActive: true}
	mock.EXPECT().GetPayouts(gomock.Any(), "user-002").Return([]model.Payout{{ID: "payout-001", SalesPersonID: "user-002", TotalAmount: 150000}}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/payouts?salesPersonId=user-009", nil), sales)
	w := httptest.NewRecorder()
	srv.GetPayoutsHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"totalDisplay":"¥150,000"`)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", errs.ErrNotFound), http.StatusNotFound},
		{errs.ErrForbidden, http.StatusForbidden},
		{errs.ErrInvalidTransition, http.StatusConflict},
		{errs.ErrOverpayment, http.StatusConflict},
		{errs.ErrAmbiguousDeliveryLink, http.StatusConflict},
		{errs.NewValidationError("amount", "must be positive"), http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			srv, _ := setup(t)

			w := httptest.NewRecorder()
			srv.handleError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			require.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRouterAccess(t *testing.T) {
	otherInvoice := model.Invoice{ID: "invoice-009", ClientID: "client-002", Status: model.InvoiceIssued}
	draftInvoice := model.Invoice{ID: "invoice-010", ClientID: "client-001", Status: model.InvoiceDraft}
	ownInvoice := model.Invoice{ID: "invoice-001", ClientID: "client-001", TotalAmount: 2148000, Status: model.InvoiceIssued}

	tests := []struct {
		name     string
		user     model.User
		path     string
		mockCall func(m *mocks.MockStorage)
		wantCode int
	}{
		{
			name:     "customer on back office",
			user:     customerUser,
			path:     "/api/orders",
			mockCall: func(m *mocks.MockStorage) {},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "staff on portal",
			user:     officeUser,
			path:     "/api/portal/invoices",
			mockCall: func(m *mocks.MockStorage) {},
			wantCode: http.StatusForbidden,
		},
		{
			name: "foreign invoice",
			user: customerUser,
			path: "/api/portal/invoices/invoice-009",
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetInvoice(gomock.Any(), "invoice-009").Return(otherInvoice, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "draft invoice",
			user: customerUser,
			path: "/api/portal/invoices/invoice-010",
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetInvoice(gomock.Any(), "invoice-010").Return(draftInvoice, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "own invoice",
			user: customerUser,
			path: "/api/portal/invoices/invoice-001",
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetInvoice(gomock.Any(), "invoice-001").Return(ownInvoice, nil)
				m.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)
				m.EXPECT().GetPayments(gomock.Any(), "invoice-001").Return(nil, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "foreign order",
			user: customerUser,
			path: "/api/portal/orders/order-004",
			mockCall: func(m *mocks.MockStorage) {
				m.EXPECT().GetOrder(gomock.Any(), "order-004").Return(model.Order{ID: "order-004", ClientID: "client-002"}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, mock := setup(t)
			router := srv.buildRouter()

			mock.EXPECT().GetUserByID(gomock.Any(), tt.user.ID).Return(tt.user, nil)
			tt.mockCall(mock)

			token, err := srv.deps.TokenManager.GenerateToken(tt.user)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, newAuthenticatedRequest(http.MethodGet, tt.path, token, ""))
			require.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRouterRejectsMissingToken(t *testing.T) {
	srv, _ := setup(t)

	w := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPortalPaymentNoticeHidesDrafts(t *testing.T) {
	srv, mock := setup(t)
	router := srv.buildRouter()

	own := model.Invoice{ID: "invoice-001", InvoiceNumber: "INV-202402-0001", ClientID: "client-001", TotalAmount: 2148000, Status: model.InvoiceIssued}
	draft := model.Invoice{ID: "invoice-010", InvoiceNumber: "INV-202403-0001", ClientID: "client-001", TotalAmount: 1100000, Status: model.InvoiceDraft}
	notice := model.PaymentNotice{ID: "notice-001", ClientID: "client-001", InvoiceIDs: []string{own.ID, draft.ID}, Status: model.NoticeIssued}

	mock.EXPECT().GetUserByID(gomock.Any(), customerUser.ID).Return(customerUser, nil)
	mock.EXPECT().GetPaymentNotice(gomock.Any(), "notice-001").Return(notice, nil)
	mock.EXPECT().GetClients(gomock.Any()).Return(testClients, nil)
	mock.EXPECT().GetInvoice(gomock.Any(), own.ID).Return(own, nil)
	mock.EXPECT().GetInvoice(gomock.Any(), draft.ID).Return(draft, nil)

	token, err := srv.deps.TokenManager.GenerateToken(customerUser)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newAuthenticatedRequest(http.MethodGet, "/api/portal/payment-notices/notice-001", token, ""))
	require.Equal(t, http.StatusOK, w.Code)

	var got NoticeDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.Invoices, 1)
	require.Equal(t, own.ID, got.Invoices[0].ID)
	require.NotContains(t, w.Body.String(), draft.InvoiceNumber)
}
