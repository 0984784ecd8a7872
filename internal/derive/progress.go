package derive

import (
	"sort"

	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/shopspring/decimal"
)

// OrderProgressPercent places status within an ordered vocabulary.
// A status outside the vocabulary counts as 0%.
func OrderProgressPercent(s model.OrderStatus, vocabulary []model.OrderStatus) decimal.Decimal {
	for i, v := range vocabulary {
		if v == s {
			return percent(int64(i+1), int64(len(vocabulary)), 1)
		}
	}
	return decimal.Zero
}

// OrderPercent uses the vocabulary of the order's own type.
func OrderPercent(order model.Order) decimal.Decimal {
	return OrderProgressPercent(order.Status, status.Sequence(order.OrderType))
}

// LatestProgress returns the most recent progress entry of an order.
// Entries with equal timestamps resolve to the one appended last.
func LatestProgress(entries []model.OrderProgress, orderID string) (model.OrderProgress, bool) {
	var latest model.OrderProgress
	found := false
	for _, p := range entries {
		if p.OrderID != orderID {
			continue
		}
		if !found || !p.ChangedAt.Before(latest.ChangedAt) {
			latest = p
			found = true
		}
	}
	return latest, found
}

// ProgressHistory returns an order's entries oldest first.
func ProgressHistory(entries []model.OrderProgress, orderID string) []model.OrderProgress {
	history := Filter(entries, func(p model.OrderProgress) bool { return p.OrderID == orderID })
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].ChangedAt.Before(history[j].ChangedAt)
	})
	return history
}

// StatusDrift reports whether the order's stored status disagrees with its history.
// Orders without history never drift.
func StatusDrift(order model.Order, entries []model.OrderProgress) bool {
	latest, ok := LatestProgress(entries, order.ID)
	return ok && latest.Status != order.Status
}
