// Package derive holds the pure calculations of the back office: joins across
// record slices, money aggregation and progress figures. Nothing here touches storage.
package derive

// Identified is implemented by every stored record.
type Identified interface {
	GetID() string
}

// Find returns the first record with the given id. Duplicate ids resolve to the
// earliest one in slice order; a missing id returns the zero value and false.
func Find[T Identified](items []T, id string) (T, bool) {
	return FindBy(items, func(item T) bool { return item.GetID() == id })
}

func FindBy[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
