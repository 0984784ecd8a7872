package server

import (
	"net/http"

	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/utils"
)

const recentOrderCount = 5

type Dashboard struct {
	Orders             derive.OrderSummary      `json:"orders"`
	Purchases          derive.PurchaseSummary   `json:"purchases"`
	Invoices           derive.InvoiceSummary    `json:"invoices"`
	Inspections        derive.InspectionSummary `json:"inspections"`
	RecentOrders       []OrderView              `json:"recentOrders"`
	OverdueInvoices    []InvoiceView            `json:"overdueInvoices"`
	OutstandingDisplay string                   `json:"outstandingDisplay"`
}

func (srv *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := srv.loadCatalog(ctx)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	invoices, err := srv.billing.GetInvoices(ctx, model.InvoiceFilter{})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	deliveries, err := srv.trades.GetDeliveries(ctx, model.DeliveryFilter{})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	recent := c.orders
	if len(recent) > recentOrderCount {
		recent = recent[:recentOrderCount]
	}
	overdue := derive.Filter(invoices, func(inv model.Invoice) bool { return inv.Status == model.InvoiceOverdue })
	summary := derive.SummarizeInvoices(invoices)

	srv.respond(w, http.StatusOK, Dashboard{
		Orders:             derive.SummarizeOrders(c.orders),
		Purchases:          derive.SummarizePurchases(c.purchases),
		Invoices:           summary,
		Inspections:        derive.SummarizeInspections(deliveries),
		RecentOrders:       orderViews(recent, c.clients),
		OverdueInvoices:    invoiceViews(overdue, c.clients),
		OutstandingDisplay: utils.FormatYen(summary.Outstanding),
	})
}
