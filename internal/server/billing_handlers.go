package server

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/and161185/autotrade/internal/utils"
	"github.com/go-chi/chi/v5"
)

func invoiceFilter(r *http.Request) model.InvoiceFilter {
	q := r.URL.Query()
	unpaid, _ := strconv.ParseBool(q.Get("unpaid"))
	return model.InvoiceFilter{
		ClientID:   q.Get("clientId"),
		Status:     model.InvoiceStatus(q.Get("status")),
		UnpaidOnly: unpaid,
		Search:     q.Get("search"),
	}
}

func (srv *Server) GetInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	invoices, err := srv.billing.GetInvoices(r.Context(), invoiceFilter(r))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, InvoiceList{
		Invoices: invoiceViews(invoices, clients),
		Summary:  derive.SummarizeInvoices(invoices),
	})
}

func (srv *Server) CreateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var req model.InvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := validateInvoice(req); err != nil {
		srv.handleError(w, r, err)
		return
	}

	inv := model.Invoice{
		OrderID:      req.OrderID,
		ClientID:     req.ClientID,
		InvoiceDate:  req.InvoiceDate,
		DueDate:      req.DueDate,
		VehiclePrice: req.VehiclePrice,
		Commission:   req.Commission,
		OtherFee:     req.OtherFee,
		Tax:          req.Tax,
		Status:       model.InvoiceIssued,
		Notes:        req.Notes,
	}
	if req.Draft {
		inv.Status = model.InvoiceDraft
	}

	created, err := srv.billing.AddInvoice(r.Context(), inv)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respondInvoice(w, r, http.StatusCreated, created)
}

func (srv *Server) respondInvoice(w http.ResponseWriter, r *http.Request, code int, inv model.Invoice) {
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	payments, err := srv.billing.GetPayments(r.Context(), inv.ID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, code, InvoiceDetail{
		InvoiceView: invoiceView(inv, clients),
		Payments:    payments,
	})
}

func (srv *Server) GetInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	inv, err := srv.billing.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respondInvoice(w, r, http.StatusOK, inv)
}

func (srv *Server) IssueInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	inv, err := srv.billing.IssueInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respondInvoice(w, r, http.StatusOK, inv)
}

func paymentFromRequest(invoiceID string, req model.PaymentRequest, amount int64) model.Payment {
	return model.Payment{
		InvoiceID:       invoiceID,
		PaymentDate:     req.PaymentDate,
		Amount:          amount,
		PaymentMethod:   req.PaymentMethod,
		BankName:        req.BankName,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}
}

func (srv *Server) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := validatePayment(req); err != nil {
		srv.handleError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := srv.billing.RecordPayments(r.Context(), []model.Payment{paymentFromRequest(id, req, req.Amount)})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	if len(updated) == 0 {
		srv.handleError(w, r, fmt.Errorf("payment for %s updated no invoice", id))
		return
	}
	srv.respondInvoice(w, r, http.StatusCreated, updated[0])
}

// reconcile

func (srv *Server) GetReconcileHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	invoices, err := srv.billing.GetInvoices(r.Context(), model.InvoiceFilter{
		ClientID:   q.Get("clientId"),
		UnpaidOnly: true,
		Search:     q.Get("search"),
	})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	invoices = derive.Filter(invoices, func(inv model.Invoice) bool { return inv.Status != model.InvoiceDraft })

	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	selected := splitList(q.Get("selected"))
	remaining := derive.SelectedRemaining(invoices, selected)
	srv.respond(w, http.StatusOK, ReconcileView{
		Invoices:          invoiceViews(invoices, clients),
		Selected:          selected,
		SelectedRemaining: remaining,
		SelectedDisplay:   utils.FormatYen(remaining),
	})
}

// ReconcileHandler applies one receipt to the selected invoices, earliest due
// first. A receipt larger than the selection is rejected whole.
func (srv *Server) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ReconcileRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if len(req.InvoiceIDs) == 0 {
		srv.handleError(w, r, errs.NewValidationError("invoiceIds", "select at least one invoice"))
		return
	}
	if err := validatePayment(req.Payment); err != nil {
		srv.handleError(w, r, err)
		return
	}

	ids := slices.Compact(slices.Sorted(slices.Values(req.InvoiceIDs)))
	invoices := make([]model.Invoice, 0, len(ids))
	for _, id := range ids {
		inv, err := srv.billing.GetInvoice(r.Context(), id)
		if err != nil {
			srv.handleError(w, r, err)
			return
		}
		invoices = append(invoices, inv)
	}

	allocations, left := derive.AllocatePayment(req.Payment.Amount, invoices)
	if left > 0 {
		srv.handleError(w, r, fmt.Errorf("%w: %d cannot be applied to the selected invoices", errs.ErrOverpayment, left))
		return
	}

	payments := make([]model.Payment, 0, len(allocations))
	for _, a := range allocations {
		payments = append(payments, paymentFromRequest(a.InvoiceID, req.Payment, a.Amount))
	}
	updated, err := srv.billing.RecordPayments(r.Context(), payments)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, ReconcileResult{
		Allocations: allocations,
		Invoices:    invoiceViews(updated, clients),
	})
}

// ExportInvoicesHandler writes the filtered invoice list as a Shift_JIS CSV
// for spreadsheet tools that expect the legacy encoding.
func (srv *Server) ExportInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	invoices, err := srv.billing.GetInvoices(r.Context(), invoiceFilter(r))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=Shift_JIS")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)
	w.WriteHeader(http.StatusOK)

	sjis := utils.ShiftJISWriter(w)
	out := csv.NewWriter(sjis)
	records := [][]string{{"請求書番号", "顧客名", "請求日", "支払期限", "請求金額", "入金額", "残額", "ステータス"}}
	for _, inv := range invoices {
		records = append(records, []string{
			inv.InvoiceNumber,
			clientName(clients, inv.ClientID),
			inv.InvoiceDate.Format("2006/01/02"),
			inv.DueDate.Format("2006/01/02"),
			strconv.FormatInt(inv.TotalAmount, 10),
			strconv.FormatInt(inv.PaidAmount, 10),
			strconv.FormatInt(derive.RemainingBalance(inv), 10),
			status.ForInvoice(inv.Status).Label,
		})
	}
	if err := out.WriteAll(records); err != nil {
		srv.deps.Logger.Errorf("export invoices: %v", err)
		return
	}
	if err := sjis.Close(); err != nil {
		srv.deps.Logger.Errorf("export invoices: %v", err)
	}
}

// payment notices

func (srv *Server) GetPaymentNoticesHandler(w http.ResponseWriter, r *http.Request) {
	notices, err := srv.billing.GetPaymentNotices(r.Context(), r.URL.Query().Get("clientId"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	clients, err := srv.users.GetClients(r.Context())
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, http.StatusOK, noticeViews(notices, clients))
}

func (srv *Server) CreatePaymentNoticeHandler(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentNoticeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := validateNotice(req); err != nil {
		srv.handleError(w, r, err)
		return
	}

	notice, err := srv.billing.AddPaymentNotice(r.Context(), model.PaymentNotice{
		ClientID:    req.ClientID,
		InvoiceIDs:  req.InvoiceIDs,
		DueDate:     req.DueDate,
		IssuedDate:  srv.now(),
		BankAccount: srv.config.Payee,
		Notes:       req.Notes,
	})
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respondNotice(w, r, http.StatusCreated, notice)
}

func (srv *Server) noticeDetail(ctx context.Context, n model.PaymentNotice) (NoticeDetail, error) {
	clients, err := srv.users.GetClients(ctx)
	if err != nil {
		return NoticeDetail{}, err
	}
	invoices := make([]model.Invoice, 0, len(n.InvoiceIDs))
	for _, id := range n.InvoiceIDs {
		inv, err := srv.billing.GetInvoice(ctx, id)
		if err != nil {
			return NoticeDetail{}, err
		}
		invoices = append(invoices, inv)
	}
	return NoticeDetail{
		NoticeView: noticeView(n, clients),
		Invoices:   invoiceViews(invoices, clients),
	}, nil
}

func (srv *Server) respondNotice(w http.ResponseWriter, r *http.Request, code int, n model.PaymentNotice) {
	detail, err := srv.noticeDetail(r.Context(), n)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respond(w, code, detail)
}

func (srv *Server) GetPaymentNoticeHandler(w http.ResponseWriter, r *http.Request) {
	notice, err := srv.billing.GetPaymentNotice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		srv.handleError(w, r, err)
		return
	}
	srv.respondNotice(w, r, http.StatusOK, notice)
}

type payoutView struct {
	model.Payout
	TotalDisplay       string `json:"totalDisplay"`
	PaymentDateDisplay string `json:"paymentDateDisplay"`
}

// GetPayoutsHandler lists commission payouts. Sales staff only see their own.
func (srv *Server) GetPayoutsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	salesPersonID := r.URL.Query().Get("salesPersonId")
	if user.Role == model.Sales {
		salesPersonID = user.ID
	}

	payouts, err := srv.billing.GetPayouts(r.Context(), salesPersonID)
	if err != nil {
		srv.handleError(w, r, err)
		return
	}

	views := make([]payoutView, 0, len(payouts))
	for _, p := range payouts {
		views = append(views, payoutView{
			Payout:             p,
			TotalDisplay:       utils.FormatYen(p.TotalAmount),
			PaymentDateDisplay: utils.FormatDate(p.PaymentDate),
		})
	}
	srv.respond(w, http.StatusOK, views)
}
