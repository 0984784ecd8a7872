package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/go-chi/chi/v5"
)

// catalog holds the records list views join against.
type catalog struct {
	clients   []model.Client
	orders    []model.Order
	purchases []model.Purchase
}

func (srv *Server) loadCatalog(ctx context.Context) (catalog, error) {
	var c catalog
	var err error
	if c.clients, err = srv.users.GetClients(ctx); err != nil {
		return c, err
	}
	if c.orders, err = srv.trades.GetOrders(ctx, model.OrderFilter{}); err != nil {
		return c, err
	}
	if c.purchases, err = srv.trades.GetPurchases(ctx, model.PurchaseFilter{}); err != nil {
		return c, err
	}
	return c, nil
}

func (srv *Server) GetClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	if kind := model.ClientType(r.URL.Query().Get("type")); kind != "" {
		clients = derive.Filter(clients, func(c model.Client) bool { return c.ClientType == kind })
	}
	if search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search"))); search != "" {
		clients = derive.Filter(clients, func(c model.Client) bool {
			return strings.Contains(strings.ToLower(c.Name), search) ||
				strings.Contains(strings.ToLower(c.NameKana), search) ||
				strings.Contains(strings.ToLower(c.ClientCode), search)
		})
	}
	srv.respond(w, http.StatusOK, clients)
}

func (srv *Server) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	client, err := srv.users.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, client)
}

// orders

func orderFilter(r *http.Request) model.OrderFilter {
	q := r.URL.Query()
	return model.OrderFilter{
		ClientID:  q.Get("clientId"),
		OrderType: model.OrderType(q.Get("type")),
		Status:    model.OrderStatus(q.Get("status")),
		Search:    q.Get("search"),
	}
}

func (srv *Server) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := srv.trades.GetOrders(r.Context(), orderFilter(r))
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

func (srv *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := validateOrder(req); err != nil {
		srv.handleError(w, r, err)
		return
	}
	if req.SalesPersonID == "" {
		req.SalesPersonID = user.ID
	}

	order, err := srv.trades.AddOrder(r.Context(), model.Order{
		OrderType:           req.OrderType,
		ClientID:            req.ClientID,
		BuyerClientID:       req.BuyerClientID,
		SalesPersonID:       req.SalesPersonID,
		OrderDate:           req.OrderDate,
		DesiredDeliveryDate: req.DesiredDeliveryDate,
		VehiclePrice:        req.VehiclePrice,
		BuyCommission:       req.BuyCommission,
		SellCommission:      req.SellCommission,
		Notes:               req.Notes,
	})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusCreated, orderView(order, clients))
}

func (srv *Server) orderDetail(ctx context.Context, order model.Order) (OrderDetail, error) {
	clients, err := srv.users.GetClients(ctx)
	if err != nil {
		return OrderDetail{}, err
	}
	progress, err := srv.trades.GetOrderProgress(ctx, order.ID)
	if err != nil {
		return OrderDetail{}, err
	}
	purchases, err := srv.trades.GetPurchases(ctx, model.PurchaseFilter{OrderID: order.ID})
	if err != nil {
		return OrderDetail{}, err
	}

	return OrderDetail{
		OrderView: orderView(order, clients),
		Progress:  derive.ProgressHistory(progress, order.ID),
		Purchases: purchaseViews(purchases, []model.Order{order}),
		Drift:     derive.StatusDrift(order, progress),
	}, nil
}

func (srv *Server) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := srv.trades.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	detail, err := srv.orderDetail(r.Context(), order)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, detail)
}

func (srv *Server) GetOrderProgressHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := srv.trades.GetOrder(r.Context(), id); err != nil {
		srv.handleError(w, r, err)
		return
	}
	progress, err := srv.trades.GetOrderProgress(r.Context(), id)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, derive.ProgressHistory(progress, id))
}

// AdvanceOrderHandler moves an order one step forward. An empty status in the
// request means the next status of the order's sequence.
func (srv *Server) AdvanceOrderHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.ProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	order, err := srv.trades.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	if req.Status == "" {
		next, ok := status.Next(order.OrderType, order.Status)
		if !ok {
			http.Error(w, "order is already complete", http.StatusConflict)
			return
		}
		req.Status = next
	}
	if err := status.ValidateTransition(order.OrderType, order.Status, req.Status); err != nil {
		srv.handleError(w, r, err)
		return
	}

	updated, err := srv.trades.AddOrderProgress(r.Context(), model.OrderProgress{
		OrderID:   order.ID,
		Status:    req.Status,
		ChangedAt: srv.now(),
		ChangedBy: user.ID,
		Notes:     req.Notes,
	})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	detail, err := srv.orderDetail(r.Context(), updated)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, detail)
}

// purchases

func (srv *Server) GetPurchasesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	purchases, err := srv.trades.GetPurchases(r.Context(), model.PurchaseFilter{
		OrderID:       q.Get("orderId"),
		PaymentStatus: model.PaymentStatus(q.Get("paymentStatus")),
		Search:        q.Get("search"),
	})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	orders, err := srv.trades.GetOrders(r.Context(), model.OrderFilter{})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	srv.respond(w, http.StatusOK, struct {
		Purchases []PurchaseView         `json:"purchases"`
		Summary   derive.PurchaseSummary `json:"summary"`
	}{purchaseViews(purchases, orders), derive.SummarizePurchases(purchases)})
}

func (srv *Server) CreatePurchaseHandler(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := validatePurchase(req); err != nil {
		srv.handleError(w, r, err)
		return
	}
	if req.StatementReceivedDate.IsZero() {
		req.StatementReceivedDate = srv.now()
	}

	purchase, err := srv.trades.AddPurchase(r.Context(), model.Purchase{
		OrderID:               req.OrderID,
		AuctionVenueID:        req.AuctionVenueID,
		AuctionDate:           req.AuctionDate,
		AuctionNumber:         req.AuctionNumber,
		Vehicle:               req.Vehicle,
		BidPrice:              req.BidPrice,
		AuctionFee:            req.AuctionFee,
		TransportFee:          req.TransportFee,
		OtherFee:              req.OtherFee,
		Tax:                   req.Tax,
		StatementReceivedDate: req.StatementReceivedDate,
		PaymentDueDate:        req.PaymentDueDate,
		Notes:                 req.Notes,
	})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	order, err := srv.trades.GetOrder(r.Context(), purchase.OrderID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusCreated, purchaseView(purchase, []model.Order{order}))
}

func (srv *Server) GetPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	purchase, err := srv.trades.GetPurchase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	order, err := srv.trades.GetOrder(r.Context(), purchase.OrderID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, purchaseView(purchase, []model.Order{order}))
}

// deliveries

func (srv *Server) listDeliveries(ctx context.Context, f model.DeliveryFilter) ([]DeliveryView, []model.Delivery, error) {
	deliveries, err := srv.trades.GetDeliveries(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	c, err := srv.loadCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	return deliveryViews(deliveries, c.purchases, c.orders, c.clients), deliveries, nil
}

func deliveryFilter(r *http.Request) model.DeliveryFilter {
	q := r.URL.Query()
	return model.DeliveryFilter{
		ClientID: q.Get("clientId"),
		Status:   model.DeliveryStatus(q.Get("status")),
		Search:   q.Get("search"),
	}
}

func (srv *Server) GetDeliveriesHandler(w http.ResponseWriter, r *http.Request) {
	views, _, err := srv.listDeliveries(r.Context(), deliveryFilter(r))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, views)
}

func (srv *Server) CreateDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	var req model.DeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := validateDelivery(req); err != nil {
		srv.handleError(w, r, err)
		return
	}

	delivery, err := srv.trades.AddDelivery(r.Context(), model.Delivery{
		PurchaseID:       req.PurchaseID,
		OrderID:          req.OrderID,
		ClientID:         req.ClientID,
		DeliveryDate:     req.DeliveryDate,
		DeliveryLocation: req.DeliveryLocation,
		VehiclePrice:     req.VehiclePrice,
		Commission:       req.Commission,
		OtherFee:         req.OtherFee,
		Tax:              req.Tax,
		Notes:            req.Notes,
	})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	detail, err := srv.deliveryDetail(r.Context(), delivery)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusCreated, detail)
}

func (srv *Server) deliveryDetail(ctx context.Context, d model.Delivery) (DeliveryDetail, error) {
	c, err := srv.loadCatalog(ctx)
	if err != nil {
		return DeliveryDetail{}, err
	}
	inspections, err := srv.trades.GetInspections(ctx, d.ID)
	if err != nil {
		return DeliveryDetail{}, err
	}
	return DeliveryDetail{
		DeliveryView: deliveryView(d, c.purchases, c.orders, c.clients),
		Inspections:  inspections,
	}, nil
}

func (srv *Server) GetDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	delivery, err := srv.trades.GetDelivery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	detail, err := srv.deliveryDetail(r.Context(), delivery)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, detail)
}

// recordInspection is shared by staff and the portal; callers have already
// checked that the user may see the delivery.
func (srv *Server) recordInspection(w http.ResponseWriter, r *http.Request, user model.User, deliveryID string) (model.Delivery, bool) {
	var req model.InspectionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return model.Delivery{}, false
	}
	if req.ReceivedDate.IsZero() {
		req.ReceivedDate = req.InspectionDate
	}
	if err := validateInspection(req); err != nil {
		srv.handleError(w, r, err)
		return model.Delivery{}, false
	}

	delivery, err := srv.trades.RecordInspection(r.Context(), model.Inspection{
		DeliveryID:       deliveryID,
		ReceivedDate:     req.ReceivedDate,
		InspectionDate:   req.InspectionDate,
		InspectionResult: req.InspectionResult,
		Inspector:        user.Name,
		Notes:            req.Notes,
	})
	if err != nil {
		srv.handleError(w, r, err)
		return model.Delivery{}, false
	}
	return delivery, true
}

func (srv *Server) RecordInspectionHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	delivery, ok := srv.recordInspection(w, r, user, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	detail, err := srv.deliveryDetail(r.Context(), delivery)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusCreated, detail)
}

func (srv *Server) GetInspectionsHandler(w http.ResponseWriter, r *http.Request) {
	views, deliveries, err := srv.listDeliveries(r.Context(), deliveryFilter(r))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, InspectionList{
		Deliveries: views,
		Summary:    derive.SummarizeInspections(deliveries),
	})
}
