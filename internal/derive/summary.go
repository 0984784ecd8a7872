package derive

import (
	"github.com/and161185/autotrade/internal/model"
	"github.com/shopspring/decimal"
)

type OrderSummary struct {
	Count        int                       `json:"count"`
	StatusCounts map[model.OrderStatus]int `json:"statusCounts"`
	TotalAmount  int64                     `json:"totalAmount"`
}

type PurchaseSummary struct {
	Count       int   `json:"count"`
	UnpaidCount int   `json:"unpaidCount"`
	TotalAmount int64 `json:"totalAmount"`
}

type InvoiceSummary struct {
	Count       int   `json:"count"`
	UnpaidCount int   `json:"unpaidCount"`
	Billed      int64 `json:"billed"`
	Paid        int64 `json:"paid"`
	Outstanding int64 `json:"outstanding"`
}

type InspectionSummary struct {
	Total          int                          `json:"total"`
	Pending        int                          `json:"pending"`
	Completed      int                          `json:"completed"`
	CompletionRate decimal.Decimal              `json:"completionRate"`
	StatusCounts   map[model.DeliveryStatus]int `json:"statusCounts"`
}

func SummarizeOrders(orders []model.Order) OrderSummary {
	s := OrderSummary{StatusCounts: make(map[model.OrderStatus]int)}
	for _, o := range orders {
		s.Count++
		s.StatusCounts[o.Status]++
		s.TotalAmount += o.TotalAmount
	}
	return s
}

func SummarizePurchases(purchases []model.Purchase) PurchaseSummary {
	var s PurchaseSummary
	for _, p := range purchases {
		s.Count++
		if p.PaymentStatus != model.Paid {
			s.UnpaidCount++
		}
		s.TotalAmount += p.TotalPurchaseAmount
	}
	return s
}

func SummarizeInvoices(invoices []model.Invoice) InvoiceSummary {
	var s InvoiceSummary
	for _, inv := range invoices {
		s.Count++
		s.Billed += inv.TotalAmount
		s.Paid += inv.PaidAmount
		if !IsPaid(inv) {
			s.UnpaidCount++
			s.Outstanding += RemainingBalance(inv)
		}
	}
	return s
}

// SummarizeInspections counts issued and received deliveries as pending,
// inspected and completed ones as done.
func SummarizeInspections(deliveries []model.Delivery) InspectionSummary {
	s := InspectionSummary{StatusCounts: make(map[model.DeliveryStatus]int)}
	for _, d := range deliveries {
		s.Total++
		s.StatusCounts[d.Status]++
		switch d.Status {
		case model.DeliveryIssued, model.DeliveryReceived:
			s.Pending++
		case model.DeliveryInspected, model.DeliveryCompleted:
			s.Completed++
		}
	}
	s.CompletionRate = percent(int64(s.Completed), int64(s.Total), 0)
	return s
}
