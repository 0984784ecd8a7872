package status

import "github.com/and161185/autotrade/internal/model"

type entry struct {
	label    string
	category string
}

var buyLabels = map[model.OrderStatus]entry{
	model.Ordered:           {"受注済み", "blue"},
	model.AuctionProcessing: {"オークション手続中", "yellow"},
	model.Purchased:         {"仕入完了", "purple"},
	model.Invoiced:          {"請求済み", "orange"},
	model.PaymentReceived:   {"入金完了", "green"},
	model.Completed:         {"完了", "gray"},
}

var sellLabels = map[model.OrderStatus]entry{
	model.Ordered:           {"受注済み", "blue"},
	model.VehicleReceived:   {"車両預かり中", "cyan"},
	model.AuctionProcessing: {"オークション手続中", "yellow"},
	model.Sold:              {"売却完了", "purple"},
	model.PaymentNotified:   {"支払通知済み", "orange"},
	model.PaymentCompleted:  {"支払完了", "green"},
	model.Completed:         {"完了", "gray"},
}

var mediationLabels = map[model.OrderStatus]entry{
	model.Ordered:          {"受注済み", "blue"},
	model.Matching:         {"マッチング中", "indigo"},
	model.DealEstablished:  {"取引成立", "purple"},
	model.Invoiced:         {"請求済み", "orange"},
	model.PaymentReceived:  {"入金完了", "cyan"},
	model.PaymentNotified:  {"支払通知済み", "orange"},
	model.PaymentCompleted: {"支払完了", "green"},
	model.Completed:        {"完了", "gray"},
}

var deliveryLabels = map[model.DeliveryStatus]entry{
	model.DeliveryDraft:     {"下書き", "gray"},
	model.DeliveryIssued:    {"発行済み", "blue"},
	model.DeliveryReceived:  {"受領済み", "cyan"},
	model.DeliveryInspected: {"検収済み", "purple"},
	model.DeliveryCompleted: {"完了", "green"},
}

var invoiceLabels = map[model.InvoiceStatus]entry{
	model.InvoiceDraft:   {"下書き", "gray"},
	model.InvoiceIssued:  {"発行済み", "blue"},
	model.InvoicePaid:    {"入金完了", "green"},
	model.InvoiceOverdue: {"期限超過", "red"},
}

var purchaseLabels = map[model.PurchaseStatus]entry{
	model.PurchaseDraft:     {"下書き", "gray"},
	model.PurchaseConfirmed: {"確認済み", "blue"},
	model.PurchasePaid:      {"支払済み", "green"},
	model.PurchaseCompleted: {"完了", "gray"},
}

var paymentLabels = map[model.PaymentStatus]entry{
	model.Unpaid: {"未支払い", "orange"},
	model.Paid:   {"支払済み", "green"},
}

var noticeLabels = map[model.NoticeStatus]entry{
	model.NoticeDraft:  {"下書き", "gray"},
	model.NoticeIssued: {"発行済み", "blue"},
	model.NoticePaid:   {"支払済み", "green"},
}

var roleLabels = map[model.Role]string{
	model.Admin:    "管理者",
	model.Sales:    "営業担当者",
	model.Office:   "事務員",
	model.Customer: "顧客",
	model.Vendor:   "業者",
}

func badge[K ~string](table map[K]entry, v K) Badge {
	e, ok := table[v]
	if !ok {
		return Badge{Value: string(v), Label: string(v), Category: fallbackCategory}
	}
	return Badge{Value: string(v), Label: e.label, Category: e.category}
}

// ForOrder picks the vocabulary of the order type. Unknown values keep their raw text.
func ForOrder(orderType model.OrderType, s model.OrderStatus) Badge {
	switch orderType {
	case model.Sell:
		return badge(sellLabels, s)
	case model.Mediation:
		return badge(mediationLabels, s)
	default:
		return badge(buyLabels, s)
	}
}

func ForDelivery(s model.DeliveryStatus) Badge { return badge(deliveryLabels, s) }
func ForInvoice(s model.InvoiceStatus) Badge   { return badge(invoiceLabels, s) }
func ForPurchase(s model.PurchaseStatus) Badge { return badge(purchaseLabels, s) }
func ForPayment(s model.PaymentStatus) Badge   { return badge(paymentLabels, s) }
func ForNotice(s model.NoticeStatus) Badge     { return badge(noticeLabels, s) }

func RoleLabel(r model.Role) string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}
