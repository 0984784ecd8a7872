package server

import (
	"net/http"

	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/and161185/autotrade/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Portal handlers only ever return records of the signed-in user's client.
// A record of another client answers 404 so its existence is not revealed.
// Drafts and internal cost figures are never shown.

type PortalOrderDetail struct {
	OrderView
	Progress []model.OrderProgress `json:"progress"`
}

type PortalDeliveryView struct {
	model.Delivery
	StatusBadge  status.Badge `json:"statusBadge"`
	VehicleName  string       `json:"vehicleName,omitempty"`
	OrderNumber  string       `json:"orderNumber,omitempty"`
	CanInspect   bool         `json:"canInspect"`
	TotalDisplay string       `json:"totalDisplay"`
	DateDisplay  string       `json:"dateDisplay"`
}

type PortalDeliveryDetail struct {
	PortalDeliveryView
	Inspections []model.Inspection `json:"inspections"`
}

type PortalDashboard struct {
	ClientName         string                `json:"clientName"`
	Orders             derive.OrderSummary   `json:"orders"`
	Invoices           derive.InvoiceSummary `json:"invoices"`
	PendingInspections int                   `json:"pendingInspections"`
	OpenNotices        int                   `json:"openNotices"`
	RecentOrders       []OrderView           `json:"recentOrders"`
	OutstandingDisplay string                `json:"outstandingDisplay"`
}

func ownsOrder(user model.User, o model.Order) bool {
	return o.ClientID == user.ClientID || (o.BuyerClientID != "" && o.BuyerClientID == user.ClientID)
}

func portalVisibleInvoice(inv model.Invoice) bool { return inv.Status != model.InvoiceDraft }

func portalVisibleDelivery(d model.Delivery) bool { return d.Status != model.DeliveryDraft }

func portalVisibleNotice(n model.PaymentNotice) bool { return n.Status != model.NoticeDraft }

func portalDeliveryView(d model.Delivery, purchases []model.Purchase, orders []model.Order) PortalDeliveryView {
	v := PortalDeliveryView{
		Delivery:     d,
		StatusBadge:  status.ForDelivery(d.Status),
		CanInspect:   d.Status == model.DeliveryIssued || d.Status == model.DeliveryReceived,
		TotalDisplay: utils.FormatYen(d.TotalAmount),
		DateDisplay:  utils.FormatDate(d.DeliveryDate),
	}
	if p, ok := derive.Find(purchases, d.PurchaseID); ok {
		v.VehicleName = p.Vehicle.Name
	}
	if o, ok := derive.Find(orders, d.OrderID); ok {
		v.OrderNumber = o.OrderNumber
	}
	return v
}

func (srv *Server) PortalDashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	client, err := srv.users.GetClient(ctx, user.ClientID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	orders, err := srv.trades.GetOrders(ctx, model.OrderFilter{ClientID: user.ClientID})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	invoices, err := srv.billing.GetInvoices(ctx, model.InvoiceFilter{ClientID: user.ClientID})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	deliveries, err := srv.trades.GetDeliveries(ctx, model.DeliveryFilter{ClientID: user.ClientID})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	notices, err := srv.billing.GetPaymentNotices(ctx, user.ClientID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	invoices = derive.Filter(invoices, portalVisibleInvoice)
	summary := derive.SummarizeInvoices(invoices)
	open := derive.Filter(notices, func(n model.PaymentNotice) bool { return n.Status == model.NoticeIssued })
	recent := orders
	if len(recent) > recentOrderCount {
		recent = recent[:recentOrderCount]
	}

	srv.respond(w, http.StatusOK, PortalDashboard{
		ClientName:         client.Name,
		Orders:             derive.SummarizeOrders(orders),
		Invoices:           summary,
		PendingInspections: derive.SummarizeInspections(derive.Filter(deliveries, portalVisibleDelivery)).Pending,
		OpenNotices:        len(open),
		RecentOrders:       orderViews(recent, []model.Client{client}),
		OutstandingDisplay: utils.FormatYen(summary.Outstanding),
	})
}

func (srv *Server) PortalOrdersHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	f := orderFilter(r)
	f.ClientID = user.ClientID
	orders, err := srv.trades.GetOrders(r.Context(), f)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, orderViews(orders, clients))
}

func (srv *Server) PortalOrderHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	order, err := srv.trades.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	if !ownsOrder(user, order) {
		srv.handleError(w, r, errs.ErrNotFound)
		return
	}

	progress, err := srv.trades.GetOrderProgress(r.Context(), order.ID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, PortalOrderDetail{
		OrderView: orderView(order, clients),
		Progress:  derive.ProgressHistory(progress, order.ID),
	})
}

func (srv *Server) PortalInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	f := invoiceFilter(r)
	f.ClientID = user.ClientID
	invoices, err := srv.billing.GetInvoices(r.Context(), f)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	invoices = derive.Filter(invoices, portalVisibleInvoice)

	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, InvoiceList{
		Invoices: invoiceViews(invoices, clients),
		Summary:  derive.SummarizeInvoices(invoices),
	})
}

func (srv *Server) PortalInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	inv, err := srv.billing.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	if inv.ClientID != user.ClientID || !portalVisibleInvoice(inv) {
		srv.handleError(w, r, errs.ErrNotFound)
		return
	}
	srv.respondInvoice(w, r, http.StatusOK, inv)
}

func (srv *Server) PortalDeliveriesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	f := deliveryFilter(r)
	f.ClientID = user.ClientID
	deliveries, err := srv.trades.GetDeliveries(r.Context(), f)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	c, err := srv.loadCatalog(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	views := make([]PortalDeliveryView, 0, len(deliveries))
	for _, d := range derive.Filter(deliveries, portalVisibleDelivery) {
		views = append(views, portalDeliveryView(d, c.purchases, c.orders))
	}
	srv.respond(w, http.StatusOK, views)
}

// portalDelivery loads a delivery of the user's client or reports 404.
func (srv *Server) portalDelivery(w http.ResponseWriter, r *http.Request, user model.User) (model.Delivery, bool) {
	d, err := srv.trades.GetDelivery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return model.Delivery{}, false
	}
	if d.ClientID != user.ClientID || !portalVisibleDelivery(d) {
		srv.handleError(w, r, errs.ErrNotFound)
		return model.Delivery{}, false
	}
	return d, true
}

func (srv *Server) respondPortalDelivery(w http.ResponseWriter, r *http.Request, code int, d model.Delivery) {
	c, err := srv.loadCatalog(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	inspections, err := srv.trades.GetInspections(r.Context(), d.ID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, code, PortalDeliveryDetail{
		PortalDeliveryView: portalDeliveryView(d, c.purchases, c.orders),
		Inspections:        inspections,
	})
}

func (srv *Server) PortalDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	d, ok := srv.portalDelivery(w, r, user)
	if !ok {
		return
	}
	srv.respondPortalDelivery(w, r, http.StatusOK, d)
}

// PortalInspectionHandler lets the receiving client accept or reject a delivered vehicle.
func (srv *Server) PortalInspectionHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	d, ok := srv.portalDelivery(w, r, user)
	if !ok {
		return
	}
	updated, ok := srv.recordInspection(w, r, user, d.ID)
	if !ok {
		return
	}
	srv.respondPortalDelivery(w, r, http.StatusCreated, updated)
}

func (srv *Server) PortalPaymentNoticesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	notices, err := srv.billing.GetPaymentNotices(r.Context(), user.ClientID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, noticeViews(derive.Filter(notices, portalVisibleNotice), clients))
}

func (srv *Server) PortalPaymentNoticeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	notice, err := srv.billing.GetPaymentNotice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	if notice.ClientID != user.ClientID || !portalVisibleNotice(notice) {
		srv.handleError(w, r, errs.ErrNotFound)
		return
	}

	detail, err := srv.noticeDetail(r.Context(), notice)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	detail.Invoices = derive.Filter(detail.Invoices, func(v InvoiceView) bool { return portalVisibleInvoice(v.Invoice) })
	srv.respond(w, http.StatusOK, detail)
}
