package status

import (
	"fmt"

	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
)

// Badge is the display form of a status value.
type Badge struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

const fallbackCategory = "gray"

var buySequence = []model.OrderStatus{
	model.Ordered,
	model.AuctionProcessing,
	model.Purchased,
	model.Invoiced,
	model.PaymentReceived,
	model.Completed,
}

var sellSequence = []model.OrderStatus{
	model.Ordered,
	model.VehicleReceived,
	model.AuctionProcessing,
	model.Sold,
	model.PaymentNotified,
	model.PaymentCompleted,
	model.Completed,
}

var mediationSequence = []model.OrderStatus{
	model.Ordered,
	model.Matching,
	model.DealEstablished,
	model.Invoiced,
	model.PaymentReceived,
	model.PaymentNotified,
	model.PaymentCompleted,
	model.Completed,
}

var DeliverySequence = []model.DeliveryStatus{
	model.DeliveryDraft,
	model.DeliveryIssued,
	model.DeliveryReceived,
	model.DeliveryInspected,
	model.DeliveryCompleted,
}

var InvoiceStatuses = []model.InvoiceStatus{
	model.InvoiceDraft,
	model.InvoiceIssued,
	model.InvoicePaid,
	model.InvoiceOverdue,
}

// Sequence returns the ordered statuses of an order type, or nil for an unknown type.
// The returned slice is a copy.
func Sequence(orderType model.OrderType) []model.OrderStatus {
	var seq []model.OrderStatus
	switch orderType {
	case model.Buy:
		seq = buySequence
	case model.Sell:
		seq = sellSequence
	case model.Mediation:
		seq = mediationSequence
	default:
		return nil
	}
	out := make([]model.OrderStatus, len(seq))
	copy(out, seq)
	return out
}

// IndexOf returns the position of s in the order type's sequence, or -1.
func IndexOf(orderType model.OrderType, s model.OrderStatus) int {
	for i, v := range Sequence(orderType) {
		if v == s {
			return i
		}
	}
	return -1
}

func IsValid(orderType model.OrderType, s model.OrderStatus) bool {
	return IndexOf(orderType, s) >= 0
}

// Next returns the only status an order may move to from `from`.
// ok is false for a terminal or unknown status.
func Next(orderType model.OrderType, from model.OrderStatus) (model.OrderStatus, bool) {
	seq := Sequence(orderType)
	i := IndexOf(orderType, from)
	if i < 0 || i+1 >= len(seq) {
		return "", false
	}
	return seq[i+1], true
}

// ValidateTransition accepts a single forward step and nothing else.
func ValidateTransition(orderType model.OrderType, from, to model.OrderStatus) error {
	if !IsValid(orderType, to) {
		return fmt.Errorf("%w: %q is not a %s status", errs.ErrInvalidTransition, to, orderType)
	}
	next, ok := Next(orderType, from)
	if !ok {
		return fmt.Errorf("%w: no transition out of %q", errs.ErrInvalidTransition, from)
	}
	if next != to {
		return fmt.Errorf("%w: %s order must move from %q to %q, not %q", errs.ErrInvalidTransition, orderType, from, next, to)
	}
	return nil
}

// IsTerminal reports whether the status ends the order's lifecycle.
func IsTerminal(s model.OrderStatus) bool {
	return s == model.Completed
}
