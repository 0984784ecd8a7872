package derive

import (
	"testing"
	"time"

	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPurchaseTotal(t *testing.T) {
	tests := []struct {
		name                                 string
		bid, auction, transport, other, tax int64
		want                                 int64
	}{
		{"all fees", 1500000, 15000, 30000, 5000, 155000, 1705000},
		{"missing fees", 1200000, 0, 0, 0, 0, 1200000},
		{"only tax", 100000, 0, 0, 0, 10000, 110000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PurchaseTotal(tt.bid, tt.auction, tt.transport, tt.other, tt.tax))
		})
	}
}

func TestProfitAndMargin(t *testing.T) {
	order := model.Order{TotalAmount: 1969000}
	purchase := model.Purchase{TotalPurchaseAmount: 1705000}

	profit := Profit(order, purchase)
	require.Equal(t, int64(264000), profit)
	require.True(t, dec("13.4").Equal(ProfitMarginPercent(profit, order.TotalAmount)))

	loss := Profit(model.Order{TotalAmount: 1000000}, model.Purchase{TotalPurchaseAmount: 1200000})
	require.Equal(t, int64(-200000), loss)
	require.True(t, dec("-20").Equal(ProfitMarginPercent(loss, 1000000)))
}

func TestMarginZeroDenominator(t *testing.T) {
	order := model.Order{TotalAmount: 0}
	profit := Profit(order, model.Purchase{TotalPurchaseAmount: 1705000})

	require.Equal(t, int64(-1705000), profit)
	require.True(t, ProfitMarginPercent(profit, order.TotalAmount).IsZero())
	require.True(t, PaidPercent(model.Invoice{}).IsZero())
}

func TestRemainingBalance(t *testing.T) {
	inv := model.Invoice{TotalAmount: 2148000, PaidAmount: 1122000}

	require.Equal(t, int64(1026000), RemainingBalance(inv))
	require.False(t, IsPaid(inv))
	require.True(t, dec("52.2").Equal(PaidPercent(inv)))

	inv.PaidAmount += RemainingBalance(inv)
	require.True(t, IsPaid(inv))
	require.Zero(t, RemainingBalance(inv))
}

func TestOrderProgressPercent(t *testing.T) {
	buy := status.Sequence(model.Buy)

	require.True(t, dec("50").Equal(OrderProgressPercent(model.Purchased, buy)))
	require.True(t, dec("100").Equal(OrderProgressPercent(model.Completed, buy)))
	require.True(t, dec("16.7").Equal(OrderProgressPercent(model.Ordered, buy)))
	require.True(t, OrderProgressPercent(model.Matching, buy).IsZero())
	require.True(t, OrderProgressPercent(model.Ordered, nil).IsZero())

	sell := model.Order{OrderType: model.Sell, Status: model.Sold}
	require.True(t, dec("57.1").Equal(OrderPercent(sell)))
}

func TestFind(t *testing.T) {
	clients := []model.Client{
		{ID: "client-001", Name: "first"},
		{ID: "client-002", Name: "other"},
		{ID: "client-001", Name: "duplicate"},
	}

	c, ok := Find(clients, "client-001")
	require.True(t, ok)
	require.Equal(t, "first", c.Name)

	c, ok = Find(clients, "client-404")
	require.False(t, ok)
	require.Equal(t, model.Client{}, c)

	_, ok = Find([]model.Client(nil), "client-001")
	require.False(t, ok)
}

func TestInvoiceStatus(t *testing.T) {
	due := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	inv := model.Invoice{TotalAmount: 1000, DueDate: due, Status: model.InvoiceIssued}

	require.Equal(t, model.InvoiceIssued, InvoiceStatus(inv, due.Add(12*time.Hour)))
	require.Equal(t, model.InvoiceOverdue, InvoiceStatus(inv, due.AddDate(0, 0, 1)))

	inv.PaidAmount = 1000
	require.Equal(t, model.InvoicePaid, InvoiceStatus(inv, due.AddDate(0, 0, 1)))

	inv.Status = model.InvoiceDraft
	require.Equal(t, model.InvoiceDraft, InvoiceStatus(inv, due.AddDate(1, 0, 0)))
}

func TestLatestProgress(t *testing.T) {
	base := time.Date(2024, 2, 5, 9, 30, 0, 0, time.UTC)
	entries := []model.OrderProgress{
		{ID: "p2", OrderID: "order-003", Status: model.AuctionProcessing, ChangedAt: base.Add(48 * time.Hour)},
		{ID: "p1", OrderID: "order-003", Status: model.Ordered, ChangedAt: base},
		{ID: "p0", OrderID: "order-001", Status: model.Ordered, ChangedAt: base.Add(72 * time.Hour)},
	}

	latest, ok := LatestProgress(entries, "order-003")
	require.True(t, ok)
	require.Equal(t, "p2", latest.ID)

	history := ProgressHistory(entries, "order-003")
	require.Equal(t, "p1", history[0].ID)
	require.Equal(t, "p2", history[1].ID)

	require.True(t, StatusDrift(model.Order{ID: "order-003", Status: model.Purchased}, entries))
	require.False(t, StatusDrift(model.Order{ID: "order-003", Status: model.AuctionProcessing}, entries))
	require.False(t, StatusDrift(model.Order{ID: "order-009", Status: model.Ordered}, entries))
}

func TestResolveDeliveryOrder(t *testing.T) {
	orders := []model.Order{
		{ID: "order-001", ClientID: "client-001"},
		{ID: "order-002", ClientID: "client-002"},
	}
	purchases := []model.Purchase{{ID: "purchase-001", OrderID: "order-001"}}

	order, ok, err := ResolveDeliveryOrder(model.Delivery{PurchaseID: "purchase-001"}, purchases, orders)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "order-001", order.ID)

	order, ok, err = ResolveDeliveryOrder(model.Delivery{OrderID: "order-002"}, purchases, orders)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "order-002", order.ID)

	_, _, err = ResolveDeliveryOrder(model.Delivery{PurchaseID: "purchase-001", OrderID: "order-002"}, purchases, orders)
	require.ErrorIs(t, err, errs.ErrAmbiguousDeliveryLink)

	_, _, err = ResolveDeliveryOrder(model.Delivery{OrderID: "order-001", ClientID: "client-002"}, purchases, orders)
	require.ErrorIs(t, err, errs.ErrAmbiguousDeliveryLink)

	_, ok, err = ResolveDeliveryOrder(model.Delivery{ClientID: "client-003"}, purchases, orders)
	require.NoError(t, err)
	require.False(t, ok)

	clientID, err := DeliveryClientID(model.Delivery{ClientID: "client-003"}, purchases, orders)
	require.NoError(t, err)
	require.Equal(t, "client-003", clientID)
}

func TestDeliveryProfit(t *testing.T) {
	order := model.Order{TotalAmount: 1969000}
	purchase := model.Purchase{TotalPurchaseAmount: 1705000}

	require.Equal(t, int64(264000), DeliveryProfit(&order, &purchase))
	require.Zero(t, DeliveryProfit(&order, nil))
	require.Zero(t, DeliveryProfit(nil, &purchase))
}

func TestSummaries(t *testing.T) {
	orders := []model.Order{
		{Status: model.Ordered, TotalAmount: 1969000},
		{Status: model.Ordered, TotalAmount: 1000000},
		{Status: model.Purchased, TotalAmount: 500000},
	}
	os := SummarizeOrders(orders)
	require.Equal(t, 3, os.Count)
	require.Equal(t, 2, os.StatusCounts[model.Ordered])
	require.Equal(t, int64(3469000), os.TotalAmount)

	ps := SummarizePurchases([]model.Purchase{
		{PaymentStatus: model.Unpaid, TotalPurchaseAmount: 1705000},
		{PaymentStatus: model.Paid, TotalPurchaseAmount: 2274800},
	})
	require.Equal(t, 1, ps.UnpaidCount)
	require.Equal(t, int64(3979800), ps.TotalAmount)

	is := SummarizeInvoices([]model.Invoice{
		{TotalAmount: 2148000},
		{TotalAmount: 1122000, PaidAmount: 1122000},
	})
	require.Equal(t, int64(3270000), is.Billed)
	require.Equal(t, int64(1122000), is.Paid)
	require.Equal(t, int64(2148000), is.Outstanding)
	require.Equal(t, 1, is.UnpaidCount)

	insp := SummarizeInspections([]model.Delivery{
		{Status: model.DeliveryIssued},
		{Status: model.DeliveryReceived},
		{Status: model.DeliveryInspected},
	})
	require.Equal(t, 2, insp.Pending)
	require.Equal(t, 1, insp.Completed)
	require.True(t, dec("33").Equal(insp.CompletionRate))

	empty := SummarizeInspections(nil)
	require.True(t, empty.CompletionRate.IsZero())
}

func TestAllocatePayment(t *testing.T) {
	march := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	invoices := []model.Invoice{
		{ID: "late", InvoiceNumber: "INV-202403-0002", DueDate: march.AddDate(0, 1, 0), TotalAmount: 500000},
		{ID: "early", InvoiceNumber: "INV-202402-0001", DueDate: march, TotalAmount: 300000, PaidAmount: 100000},
		{ID: "settled", InvoiceNumber: "INV-202401-0001", DueDate: march.AddDate(0, -1, 0), TotalAmount: 1000, PaidAmount: 1000},
	}

	allocations, left := AllocatePayment(400000, invoices)
	require.Zero(t, left)
	require.Equal(t, []Allocation{
		{InvoiceID: "early", Amount: 200000},
		{InvoiceID: "late", Amount: 200000},
	}, allocations)

	_, left = AllocatePayment(800000, invoices)
	require.Equal(t, int64(100000), left)

	require.Equal(t, int64(700000), SelectedRemaining(invoices, []string{"late", "early", "missing"}))
}

func TestUnpaidInvoices(t *testing.T) {
	invoices := []model.Invoice{
		{InvoiceNumber: "INV-202402-0001", TotalAmount: 2148000},
		{InvoiceNumber: "INV-202402-0002", TotalAmount: 1122000, PaidAmount: 1122000},
		{InvoiceNumber: "INV-202403-0001", TotalAmount: 500000},
	}

	require.Len(t, UnpaidInvoices(invoices, ""), 2)
	require.Len(t, UnpaidInvoices(invoices, "inv-202403"), 1)
	require.Empty(t, UnpaidInvoices(invoices, "0002"))
}

func TestBuildPaymentNotice(t *testing.T) {
	invoices := []model.Invoice{
		{ID: "invoice-001", ClientID: "client-001", Amount: 1969000, Tax: 179000, TotalAmount: 2148000},
	}
	due := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)

	notice, err := BuildPaymentNotice("client-001", invoices, due, due.AddDate(0, -1, 0), model.BankAccount{BankName: "〇〇銀行"})
	require.NoError(t, err)
	require.Equal(t, 1, notice.InvoiceCount)
	require.Equal(t, int64(1969000), notice.TotalAmount)
	require.Equal(t, int64(179000), notice.TotalTax)
	require.Equal(t, int64(2148000), notice.GrandTotal)
	require.Equal(t, model.NoticeIssued, notice.Status)

	_, err = BuildPaymentNotice("client-002", invoices, due, due, model.BankAccount{})
	require.True(t, errs.IsValidation(err))

	_, err = BuildPaymentNotice("client-001", nil, due, due, model.BankAccount{})
	require.True(t, errs.IsValidation(err))
}

func TestBuildPaymentNoticeRejectsUnbillableInvoices(t *testing.T) {
	due := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	open := model.Invoice{ID: "invoice-001", InvoiceNumber: "INV-202402-0001", ClientID: "client-001", TotalAmount: 2148000, Status: model.InvoiceIssued}
	draft := model.Invoice{ID: "invoice-003", InvoiceNumber: "INV-202403-0001", ClientID: "client-001", TotalAmount: 1100000, Status: model.InvoiceDraft}
	paid := model.Invoice{ID: "invoice-004", InvoiceNumber: "INV-202403-0002", ClientID: "client-001", TotalAmount: 500000, PaidAmount: 500000, Status: model.InvoicePaid}

	_, err := BuildPaymentNotice("client-001", []model.Invoice{open, open}, due, due, model.BankAccount{})
	require.True(t, errs.IsValidation(err))

	_, err = BuildPaymentNotice("client-001", []model.Invoice{open, draft}, due, due, model.BankAccount{})
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = BuildPaymentNotice("client-001", []model.Invoice{paid}, due, due, model.BankAccount{})
	require.True(t, errs.IsValidation(err))

	notice, err := BuildPaymentNotice("client-001", []model.Invoice{open}, due, due, model.BankAccount{})
	require.NoError(t, err)
	require.Equal(t, int64(2148000), notice.GrandTotal)
}
