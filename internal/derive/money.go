package derive

import (
	"time"

	"github.com/and161185/autotrade/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PurchaseTotal sums the bid and every fee. Fees that were not charged are zero.
func PurchaseTotal(bidPrice, auctionFee, transportFee, otherFee, tax int64) int64 {
	return bidPrice + auctionFee + transportFee + otherFee + tax
}

// OrderTotal is the amount billed for an order before tax.
func OrderTotal(vehiclePrice, buyCommission, sellCommission int64) int64 {
	return vehiclePrice + buyCommission + sellCommission
}

func InvoiceAmount(vehiclePrice, commission, otherFee int64) int64 {
	return vehiclePrice + commission + otherFee
}

func InvoiceTotal(amount, tax int64) int64 {
	return amount + tax
}

// Profit is negative for a loss.
func Profit(order model.Order, purchase model.Purchase) int64 {
	return order.TotalAmount - purchase.TotalPurchaseAmount
}

func ProfitMarginPercent(profit, totalAmount int64) decimal.Decimal {
	return percent(profit, totalAmount, 1)
}

func RemainingBalance(inv model.Invoice) int64 {
	return inv.TotalAmount - inv.PaidAmount
}

func IsPaid(inv model.Invoice) bool {
	return inv.PaidAmount >= inv.TotalAmount
}

func PaidPercent(inv model.Invoice) decimal.Decimal {
	return percent(inv.PaidAmount, inv.TotalAmount, 1)
}

// InvoiceStatus derives the status an invoice should carry at the given moment.
// Draft is an operator decision and is kept as is.
func InvoiceStatus(inv model.Invoice, now time.Time) model.InvoiceStatus {
	switch {
	case inv.Status == model.InvoiceDraft:
		return model.InvoiceDraft
	case IsPaid(inv):
		return model.InvoicePaid
	case !inv.DueDate.IsZero() && now.After(endOfDay(inv.DueDate)):
		return model.InvoiceOverdue
	default:
		return model.InvoiceIssued
	}
}

// percent returns num/den*100 rounded to places. A zero denominator yields zero.
func percent(num, den int64, places int32) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).Mul(hundred).Div(decimal.NewFromInt(den)).Round(places)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
