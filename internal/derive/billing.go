package derive

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
)

type Allocation struct {
	InvoiceID string `json:"invoiceId"`
	Amount    int64  `json:"amount"`
}

// UnpaidInvoices keeps invoices with a balance, optionally matching an invoice
// number fragment case-insensitively.
func UnpaidInvoices(invoices []model.Invoice, search string) []model.Invoice {
	search = strings.ToLower(strings.TrimSpace(search))
	return Filter(invoices, func(inv model.Invoice) bool {
		if IsPaid(inv) {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(inv.InvoiceNumber), search)
	})
}

// SelectedRemaining sums the balances of the selected invoices. Unknown ids are ignored.
func SelectedRemaining(invoices []model.Invoice, selected []string) int64 {
	want := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}
	var total int64
	for _, inv := range invoices {
		if _, ok := want[inv.ID]; ok {
			total += RemainingBalance(inv)
		}
	}
	return total
}

// AllocatePayment spreads one receipt across invoices, earliest due date first.
// No invoice receives more than its balance; what cannot be placed is returned as leftover.
func AllocatePayment(amount int64, invoices []model.Invoice) ([]Allocation, int64) {
	ordered := make([]model.Invoice, len(invoices))
	copy(ordered, invoices)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].DueDate.Equal(ordered[j].DueDate) {
			return ordered[i].DueDate.Before(ordered[j].DueDate)
		}
		return ordered[i].InvoiceNumber < ordered[j].InvoiceNumber
	})

	left := amount
	var allocations []Allocation
	for _, inv := range ordered {
		if left <= 0 {
			break
		}
		remaining := RemainingBalance(inv)
		if remaining <= 0 {
			continue
		}
		part := min(remaining, left)
		allocations = append(allocations, Allocation{InvoiceID: inv.ID, Amount: part})
		left -= part
	}
	return allocations, left
}

// BuildPaymentNotice batches a client's invoices into one notice. Every invoice must
// belong to the client, appear once, be issued and still carry a balance.
// Numbering and ids are left to storage.
func BuildPaymentNotice(clientID string, invoices []model.Invoice, dueDate, issued time.Time, payee model.BankAccount) (model.PaymentNotice, error) {
	if len(invoices) == 0 {
		return model.PaymentNotice{}, errs.NewValidationError("invoiceIds", "at least one invoice is required")
	}

	notice := model.PaymentNotice{
		ClientID:      clientID,
		DueDate:       dueDate,
		IssuedDate:    issued,
		PaymentMethod: model.BankTransfer,
		BankAccount:   payee,
		Status:        model.NoticeIssued,
	}
	seen := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		if _, dup := seen[inv.ID]; dup {
			return model.PaymentNotice{}, errs.NewValidationError("invoiceIds",
				fmt.Sprintf("invoice %s is listed more than once", inv.InvoiceNumber))
		}
		seen[inv.ID] = struct{}{}

		if inv.ClientID != clientID {
			return model.PaymentNotice{}, errs.NewValidationError("invoiceIds",
				fmt.Sprintf("invoice %s belongs to another client", inv.InvoiceNumber))
		}
		if inv.Status == model.InvoiceDraft {
			return model.PaymentNotice{}, fmt.Errorf("%w: invoice %s is still a draft",
				errs.ErrInvalidTransition, inv.InvoiceNumber)
		}
		if IsPaid(inv) {
			return model.PaymentNotice{}, errs.NewValidationError("invoiceIds",
				fmt.Sprintf("invoice %s is already paid", inv.InvoiceNumber))
		}
		notice.InvoiceIDs = append(notice.InvoiceIDs, inv.ID)
		notice.TotalAmount += inv.Amount
		notice.TotalTax += inv.Tax
		notice.GrandTotal += inv.TotalAmount
	}
	notice.InvoiceCount = len(notice.InvoiceIDs)
	return notice, nil
}
