package server

import (
	"context"
	"time"

	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/model"
)

const defaultSweepInterval = time.Minute

// InvoiceStatusControl keeps stored invoice statuses in line with due dates.
// Invoices that pass their due date unpaid become overdue.
func (srv *Server) InvoiceStatusControl(ctx context.Context) {
	workerCount := 5

	ch := make(chan model.Invoice, 10*workerCount)
	go srv.ProcessInvoices(ctx, ch)

	for i := 0; i < workerCount; i++ {
		go srv.UpdateInvoices(ctx, ch)
	}
}

func (srv *Server) ProcessInvoices(ctx context.Context, ch chan model.Invoice) {
	interval := srv.config.InvoiceSweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		srv.enqueueOpenInvoices(ctx, ch)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (srv *Server) enqueueOpenInvoices(ctx context.Context, ch chan model.Invoice) {
	invoices, err := srv.billing.GetOpenInvoices(ctx)
	if err != nil {
		srv.deps.Logger.Errorf("load open invoices: %v", err)
		return
	}

	skipped := 0
	for _, inv := range invoices {
		select {
		case ch <- inv:
		default:
			skipped++
		}
	}
	if skipped > 0 {
		srv.deps.Logger.Warnf("channel full, skipped %d invoices", skipped)
	}
}

func (srv *Server) UpdateInvoices(ctx context.Context, ch chan model.Invoice) {
	for {
		select {
		case <-ctx.Done():
			return
		case inv := <-ch:
			if err := srv.sweepInvoice(ctx, inv); err != nil {
				srv.deps.Logger.Errorf("update invoice %s: %v", inv.InvoiceNumber, err)
			}
		}
	}
}

// sweepInvoice only writes when the stored status is still the one it read,
// so a payment recorded in between is never overwritten.
func (srv *Server) sweepInvoice(ctx context.Context, inv model.Invoice) error {
	next := derive.InvoiceStatus(inv, srv.now())
	if next == inv.Status {
		return nil
	}

	updated, err := srv.billing.UpdateInvoiceStatus(ctx, inv.ID, inv.Status, next)
	if err != nil {
		return err
	}
	if updated {
		srv.deps.Logger.Infof("invoice %s: %s -> %s", inv.InvoiceNumber, inv.Status, next)
	}
	return nil
}
