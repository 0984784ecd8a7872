package server

import (
	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/and161185/autotrade/internal/utils"
	"github.com/shopspring/decimal"
)

type OrderView struct {
	model.Order
	StatusBadge     status.Badge      `json:"statusBadge"`
	ProgressPercent decimal.Decimal   `json:"progressPercent"`
	NextStatus      model.OrderStatus `json:"nextStatus,omitempty"`
	ClientName      string            `json:"clientName"`
	BuyerName       string            `json:"buyerName,omitempty"`
	TotalDisplay    string            `json:"totalDisplay"`
}

type OrderDetail struct {
	OrderView
	Progress  []model.OrderProgress `json:"progress"`
	Purchases []PurchaseView        `json:"purchases"`
	Drift     bool                  `json:"statusDrift"`
}

type PurchaseView struct {
	model.Purchase
	PaymentBadge  status.Badge    `json:"paymentBadge"`
	StatusBadge   status.Badge    `json:"statusBadge"`
	OrderNumber   string          `json:"orderNumber,omitempty"`
	Profit        int64           `json:"profit"`
	ProfitMargin  decimal.Decimal `json:"profitMargin"`
	TotalDisplay  string          `json:"totalDisplay"`
	ProfitDisplay string          `json:"profitDisplay"`
}

type DeliveryView struct {
	model.Delivery
	StatusBadge    status.Badge    `json:"statusBadge"`
	ClientName     string          `json:"clientName"`
	OrderNumber    string          `json:"orderNumber,omitempty"`
	PurchaseNumber string          `json:"purchaseNumber,omitempty"`
	VehicleName    string          `json:"vehicleName,omitempty"`
	Profit         int64           `json:"profit"`
	ProfitMargin   decimal.Decimal `json:"profitMargin"`
	TotalDisplay   string          `json:"totalDisplay"`
	DateDisplay    string          `json:"dateDisplay"`
}

type DeliveryDetail struct {
	DeliveryView
	Inspections []model.Inspection `json:"inspections"`
}

type InvoiceView struct {
	model.Invoice
	StatusBadge      status.Badge    `json:"statusBadge"`
	ClientName       string          `json:"clientName"`
	Remaining        int64           `json:"remaining"`
	PaidPercent      decimal.Decimal `json:"paidPercent"`
	TotalDisplay     string          `json:"totalDisplay"`
	RemainingDisplay string          `json:"remainingDisplay"`
	DueDateDisplay   string          `json:"dueDateDisplay"`
}

type InvoiceDetail struct {
	InvoiceView
	Payments []model.Payment `json:"payments"`
}

type InvoiceList struct {
	Invoices []InvoiceView         `json:"invoices"`
	Summary  derive.InvoiceSummary `json:"summary"`
}

type NoticeView struct {
	model.PaymentNotice
	StatusBadge       status.Badge `json:"statusBadge"`
	ClientName        string       `json:"clientName"`
	GrandTotalDisplay string       `json:"grandTotalDisplay"`
	DueDateDisplay    string       `json:"dueDateDisplay"`
	IssuedDateDisplay string       `json:"issuedDateDisplay"`
}

type NoticeDetail struct {
	NoticeView
	Invoices []InvoiceView `json:"invoices"`
}

type ReconcileView struct {
	Invoices          []InvoiceView `json:"invoices"`
	Selected          []string      `json:"selected"`
	SelectedRemaining int64         `json:"selectedRemaining"`
	SelectedDisplay   string        `json:"selectedDisplay"`
}

type ReconcileResult struct {
	Allocations []derive.Allocation `json:"allocations"`
	Invoices    []InvoiceView       `json:"invoices"`
}

type InspectionList struct {
	Deliveries []DeliveryView           `json:"deliveries"`
	Summary    derive.InspectionSummary `json:"summary"`
}

func clientName(clients []model.Client, id string) string {
	c, _ := derive.Find(clients, id)
	return c.Name
}

func orderView(o model.Order, clients []model.Client) OrderView {
	next, _ := status.Next(o.OrderType, o.Status)
	return OrderView{
		Order:           o,
		StatusBadge:     status.ForOrder(o.OrderType, o.Status),
		ProgressPercent: derive.OrderPercent(o),
		NextStatus:      next,
		ClientName:      clientName(clients, o.ClientID),
		BuyerName:       clientName(clients, o.BuyerClientID),
		TotalDisplay:    utils.FormatYen(o.TotalAmount),
	}
}

func orderViews(orders []model.Order, clients []model.Client) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o, clients))
	}
	return views
}

func purchaseView(p model.Purchase, orders []model.Order) PurchaseView {
	v := PurchaseView{
		Purchase:     p,
		PaymentBadge: status.ForPayment(p.PaymentStatus),
		StatusBadge:  status.ForPurchase(p.Status),
		ProfitMargin: decimal.Zero,
		TotalDisplay: utils.FormatYen(p.TotalPurchaseAmount),
	}
	if order, ok := derive.Find(orders, p.OrderID); ok {
		v.OrderNumber = order.OrderNumber
		v.Profit = derive.Profit(order, p)
		v.ProfitMargin = derive.ProfitMarginPercent(v.Profit, order.TotalAmount)
	}
	v.ProfitDisplay = utils.FormatYen(v.Profit)
	return v
}

func purchaseViews(purchases []model.Purchase, orders []model.Order) []PurchaseView {
	views := make([]PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		views = append(views, purchaseView(p, orders))
	}
	return views
}

// deliveryView joins a delivery with its order and purchase. Missing links
// leave the joined fields empty and the profit at zero.
func deliveryView(d model.Delivery, purchases []model.Purchase, orders []model.Order, clients []model.Client) DeliveryView {
	v := DeliveryView{
		Delivery:     d,
		StatusBadge:  status.ForDelivery(d.Status),
		ClientName:   clientName(clients, d.ClientID),
		ProfitMargin: decimal.Zero,
		TotalDisplay: utils.FormatYen(d.TotalAmount),
		DateDisplay:  utils.FormatDate(d.DeliveryDate),
	}

	var order *model.Order
	var purchase *model.Purchase
	if p, ok := derive.Find(purchases, d.PurchaseID); ok {
		purchase = &p
		v.PurchaseNumber = p.PurchaseNumber
		v.VehicleName = p.Vehicle.Name
	}
	if o, ok := derive.Find(orders, d.OrderID); ok {
		order = &o
		v.OrderNumber = o.OrderNumber
	}
	v.Profit = derive.DeliveryProfit(order, purchase)
	if order != nil {
		v.ProfitMargin = derive.ProfitMarginPercent(v.Profit, order.TotalAmount)
	}
	return v
}

func deliveryViews(deliveries []model.Delivery, purchases []model.Purchase, orders []model.Order, clients []model.Client) []DeliveryView {
	views := make([]DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		views = append(views, deliveryView(d, purchases, orders, clients))
	}
	return views
}

func invoiceView(inv model.Invoice, clients []model.Client) InvoiceView {
	remaining := derive.RemainingBalance(inv)
	return InvoiceView{
		Invoice:          inv,
		StatusBadge:      status.ForInvoice(inv.Status),
		ClientName:       clientName(clients, inv.ClientID),
		Remaining:        remaining,
		PaidPercent:      derive.PaidPercent(inv),
		TotalDisplay:     utils.FormatYen(inv.TotalAmount),
		RemainingDisplay: utils.FormatYen(remaining),
		DueDateDisplay:   utils.FormatDate(inv.DueDate),
	}
}

func invoiceViews(invoices []model.Invoice, clients []model.Client) []InvoiceView {
	views := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, invoiceView(inv, clients))
	}
	return views
}

func noticeView(n model.PaymentNotice, clients []model.Client) NoticeView {
	return NoticeView{
		PaymentNotice:     n,
		StatusBadge:       status.ForNotice(n.Status),
		ClientName:        clientName(clients, n.ClientID),
		GrandTotalDisplay: utils.FormatYen(n.GrandTotal),
		DueDateDisplay:    utils.FormatDate(n.DueDate),
		IssuedDateDisplay: utils.FormatDate(n.IssuedDate),
	}
}

func noticeViews(notices []model.PaymentNotice, clients []model.Client) []NoticeView {
	views := make([]NoticeView, 0, len(notices))
	for _, n := range notices {
		views = append(views, noticeView(n, clients))
	}
	return views
}
