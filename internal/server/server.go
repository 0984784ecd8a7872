package server

import (
	"context"
	"net/http"
	"time"

	"github.com/and161185/autotrade/internal/config"
	"github.com/and161185/autotrade/internal/deps"
	"github.com/and161185/autotrade/internal/middleware"
	"github.com/and161185/autotrade/internal/model"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -destination=../mocks/mock_storage.go -package=mocks github.com/and161185/autotrade/internal/server Storage

type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, string, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
	GetClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, id string) (model.Client, error)
}

type TradeStorage interface {
	GetOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (model.Order, error)
	AddOrder(ctx context.Context, o model.Order) (model.Order, error)
	GetOrderProgress(ctx context.Context, orderID string) ([]model.OrderProgress, error)
	AddOrderProgress(ctx context.Context, p model.OrderProgress) (model.Order, error)

	GetPurchases(ctx context.Context, f model.PurchaseFilter) ([]model.Purchase, error)
	GetPurchase(ctx context.Context, id string) (model.Purchase, error)
	AddPurchase(ctx context.Context, p model.Purchase) (model.Purchase, error)

	GetDeliveries(ctx context.Context, f model.DeliveryFilter) ([]model.Delivery, error)
	GetDelivery(ctx context.Context, id string) (model.Delivery, error)
	AddDelivery(ctx context.Context, d model.Delivery) (model.Delivery, error)
	GetInspections(ctx context.Context, deliveryID string) ([]model.Inspection, error)
	RecordInspection(ctx context.Context, insp model.Inspection) (model.Delivery, error)
}

type BillingStorage interface {
	GetInvoices(ctx context.Context, f model.InvoiceFilter) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, id string) (model.Invoice, error)
	AddInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error)
	IssueInvoice(ctx context.Context, id string) (model.Invoice, error)
	GetPayments(ctx context.Context, invoiceID string) ([]model.Payment, error)
	RecordPayments(ctx context.Context, payments []model.Payment) ([]model.Invoice, error)

	GetOpenInvoices(ctx context.Context) ([]model.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id string, from, to model.InvoiceStatus) (bool, error)

	GetPaymentNotices(ctx context.Context, clientID string) ([]model.PaymentNotice, error)
	GetPaymentNotice(ctx context.Context, id string) (model.PaymentNotice, error)
	AddPaymentNotice(ctx context.Context, n model.PaymentNotice) (model.PaymentNotice, error)

	GetPayouts(ctx context.Context, salesPersonID string) ([]model.Payout, error)
}

type Storage interface {
	UserStorage
	TradeStorage
	BillingStorage
}

type Server struct {
	users   UserStorage
	trades  TradeStorage
	billing BillingStorage
	config  *config.Config
	deps    *deps.Deps
	now     func() time.Time
}

func NewServer(users UserStorage, trades TradeStorage, billing BillingStorage, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		users:   users,
		trades:  trades,
		billing: billing,
		config:  config,
		deps:    deps,
		now:     time.Now,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.RequestID)
	router.Use(middleware.LogMiddleware(srv.deps.Logger))
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware(srv.deps.Logger))

	router.Get("/api/ping", srv.PingHandler)
	router.Post("/api/auth/login", srv.LoginHandler)

	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(srv.users, srv.deps.TokenManager))

		r.Get("/api/me", srv.MeHandler)

		// back office
		r.Group(func(r chi.Router) {
			r.Use(middleware.StaffOnly())

			r.Get("/api/dashboard", srv.DashboardHandler)
			r.Get("/api/clients", srv.GetClientsHandler)
			r.Get("/api/clients/{id}", srv.GetClientHandler)

			r.Get("/api/orders", srv.GetOrdersHandler)
			r.Post("/api/orders", srv.CreateOrderHandler)
			r.Get("/api/orders/{id}", srv.GetOrderHandler)
			r.Get("/api/orders/{id}/progress", srv.GetOrderProgressHandler)
			r.Post("/api/orders/{id}/progress", srv.AdvanceOrderHandler)

			r.Get("/api/purchases", srv.GetPurchasesHandler)
			r.Post("/api/purchases", srv.CreatePurchaseHandler)
			r.Get("/api/purchases/{id}", srv.GetPurchaseHandler)

			r.Get("/api/deliveries", srv.GetDeliveriesHandler)
			r.Post("/api/deliveries", srv.CreateDeliveryHandler)
			r.Get("/api/deliveries/{id}", srv.GetDeliveryHandler)
			r.Post("/api/deliveries/{id}/inspection", srv.RecordInspectionHandler)
			r.Get("/api/inspections", srv.GetInspectionsHandler)

			r.Get("/api/invoices", srv.GetInvoicesHandler)
			r.Post("/api/invoices", srv.CreateInvoiceHandler)
			r.Get("/api/invoices/export", srv.ExportInvoicesHandler)
			r.Get("/api/invoices/{id}", srv.GetInvoiceHandler)
			r.Post("/api/invoices/{id}/issue", srv.IssueInvoiceHandler)
			r.Post("/api/invoices/{id}/payments", srv.RecordPaymentHandler)

			r.Get("/api/reconcile", srv.GetReconcileHandler)
			r.Post("/api/reconcile", srv.ReconcileHandler)

			r.Get("/api/payment-notices", srv.GetPaymentNoticesHandler)
			r.Post("/api/payment-notices", srv.CreatePaymentNoticeHandler)
			r.Get("/api/payment-notices/{id}", srv.GetPaymentNoticeHandler)

			r.Get("/api/payouts", srv.GetPayoutsHandler)
		})

		// customer and vendor portal, scoped to the user's client
		r.Route("/api/portal", func(r chi.Router) {
			r.Use(middleware.PortalOnly())

			r.Get("/dashboard", srv.PortalDashboardHandler)
			r.Get("/orders", srv.PortalOrdersHandler)
			r.Get("/orders/{id}", srv.PortalOrderHandler)
			r.Get("/invoices", srv.PortalInvoicesHandler)
			r.Get("/invoices/{id}", srv.PortalInvoiceHandler)
			r.Get("/deliveries", srv.PortalDeliveriesHandler)
			r.Get("/deliveries/{id}", srv.PortalDeliveryHandler)
			r.Post("/deliveries/{id}/inspection", srv.PortalInspectionHandler)
			r.Get("/payment-notices", srv.PortalPaymentNoticesHandler)
			r.Get("/payment-notices/{id}", srv.PortalPaymentNoticeHandler)
		})
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	go srv.InvoiceStatusControl(ctx)

	srv.deps.Logger.Infof("listening on %s", srv.config.RunAddress)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
