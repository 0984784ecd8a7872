package storage

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/google/uuid"
)

// MemoryStorage keeps every record in process memory. It is used when no
// database is configured and by tests.
type MemoryStorage struct {
	mu  sync.RWMutex
	now func() time.Time

	users       []model.User
	hashes      map[string]string
	clients     []model.Client
	orders      []model.Order
	progress    []model.OrderProgress
	purchases   []model.Purchase
	deliveries  []model.Delivery
	inspections []model.Inspection
	invoices    []model.Invoice
	payments    []model.Payment
	notices     []model.PaymentNotice
	payouts     []model.Payout

	seq map[string]int
}

func NewMemoryStorage(f Fixtures) (*MemoryStorage, error) {
	s := &MemoryStorage{
		now:         time.Now,
		hashes:      make(map[string]string),
		seq:         make(map[string]int),
		users:       slices.Clone(f.Users),
		clients:     slices.Clone(f.Clients),
		orders:      slices.Clone(f.Orders),
		progress:    slices.Clone(f.Progress),
		purchases:   slices.Clone(f.Purchases),
		inspections: slices.Clone(f.Inspections),
		invoices:    slices.Clone(f.Invoices),
		payments:    slices.Clone(f.Payments),
		notices:     slices.Clone(f.Notices),
		payouts:     slices.Clone(f.Payouts),
	}

	for _, u := range f.Users {
		s.hashes[u.ID] = f.PasswordHash
	}

	for _, d := range f.Deliveries {
		d, err := normalizeDelivery(d, s.purchases, s.orders)
		if err != nil {
			return nil, fmt.Errorf("seed delivery %s: %w", d.ID, err)
		}
		s.deliveries = append(s.deliveries, d)
	}

	for _, o := range s.orders {
		s.observeNumber(o.OrderNumber)
	}
	for _, p := range s.purchases {
		s.observeNumber(p.PurchaseNumber)
	}
	for _, d := range s.deliveries {
		s.observeNumber(d.DeliveryNumber)
	}
	for _, inv := range s.invoices {
		s.observeNumber(inv.InvoiceNumber)
	}
	for _, n := range s.notices {
		s.observeNumber(n.NoticeNumber)
	}

	return s, nil
}

// SetClock replaces the time source used for defaults and invoice status.
func (s *MemoryStorage) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStorage) observeNumber(number string) {
	if prefix, seq, ok := parseNumber(number); ok && seq > s.seq[prefix] {
		s.seq[prefix] = seq
	}
}

func (s *MemoryStorage) nextNumber(prefix string) string {
	s.seq[prefix]++
	return formatNumber(prefix, s.seq[prefix])
}

// normalizeDelivery stores the order and client a delivery resolves to, so that
// both linkage forms are kept consistent.
func normalizeDelivery(d model.Delivery, purchases []model.Purchase, orders []model.Order) (model.Delivery, error) {
	order, ok, err := derive.ResolveDeliveryOrder(d, purchases, orders)
	if err != nil {
		return d, err
	}
	if ok {
		d.OrderID = order.ID
		d.ClientID = order.ClientID
	}
	return d, nil
}

func contains(s, search string) bool {
	return strings.Contains(strings.ToLower(s), search)
}

func normalizeSearch(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}

// users

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (model.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := derive.FindBy(s.users, func(u model.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return model.User{}, "", errs.ErrUserNotFound
	}
	return u, s.hashes[u.ID], nil
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := derive.Find(s.users, id)
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryStorage) GetClients(ctx context.Context) ([]model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return derive.Filter(s.clients, func(c model.Client) bool { return !c.IsDeleted }), nil
}

func (s *MemoryStorage) GetClient(ctx context.Context, id string) (model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := derive.Find(s.clients, id)
	if !ok || c.IsDeleted {
		return model.Client{}, errs.ErrNotFound
	}
	return c, nil
}

// orders

func (s *MemoryStorage) GetOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := normalizeSearch(f.Search)
	orders := derive.Filter(s.orders, func(o model.Order) bool {
		if f.ClientID != "" && o.ClientID != f.ClientID && o.BuyerClientID != f.ClientID {
			return false
		}
		if f.OrderType != "" && o.OrderType != f.OrderType {
			return false
		}
		if f.Status != "" && o.Status != f.Status {
			return false
		}
		if search == "" {
			return true
		}
		client, _ := derive.Find(s.clients, o.ClientID)
		return contains(o.OrderNumber, search) || contains(client.Name, search) || contains(o.Notes, search)
	})
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
	return orders, nil
}

func (s *MemoryStorage) GetOrder(ctx context.Context, id string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := derive.Find(s.orders, id)
	if !ok {
		return model.Order{}, errs.ErrNotFound
	}
	return o, nil
}

func (s *MemoryStorage) AddOrder(ctx context.Context, o model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := derive.Find(s.clients, o.ClientID); !ok {
		return model.Order{}, errs.NewValidationError("clientId", "unknown client")
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = s.now()
	}

	o.ID = uuid.NewString()
	o.OrderNumber = s.nextNumber(orderPrefix(o.OrderDate))
	o.Status = model.Ordered
	o.TotalAmount = derive.OrderTotal(o.VehiclePrice, o.BuyCommission, o.SellCommission)
	s.orders = append(s.orders, o)

	s.progress = append(s.progress, model.OrderProgress{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		Status:    model.Ordered,
		ChangedAt: s.now(),
		ChangedBy: o.SalesPersonID,
	})

	return o, nil
}

func (s *MemoryStorage) GetOrderProgress(ctx context.Context, orderID string) ([]model.OrderProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return derive.ProgressHistory(s.progress, orderID), nil
}

// AddOrderProgress appends a progress entry and moves the order to its status
// in one step. Only the next status of the order's sequence is accepted.
func (s *MemoryStorage) AddOrderProgress(ctx context.Context, p model.OrderProgress) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.orders, func(o model.Order) bool { return o.ID == p.OrderID })
	if i < 0 {
		return model.Order{}, errs.ErrNotFound
	}
	order := s.orders[i]

	if err := status.ValidateTransition(order.OrderType, order.Status, p.Status); err != nil {
		return model.Order{}, err
	}

	p.ID = uuid.NewString()
	if p.ChangedAt.IsZero() {
		p.ChangedAt = s.now()
	}
	s.progress = append(s.progress, p)

	order.Status = p.Status
	s.orders[i] = order
	return order, nil
}

// purchases

func (s *MemoryStorage) GetPurchases(ctx context.Context, f model.PurchaseFilter) ([]model.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := normalizeSearch(f.Search)
	purchases := derive.Filter(s.purchases, func(p model.Purchase) bool {
		if f.OrderID != "" && p.OrderID != f.OrderID {
			return false
		}
		if f.PaymentStatus != "" && p.PaymentStatus != f.PaymentStatus {
			return false
		}
		return search == "" ||
			contains(p.PurchaseNumber, search) ||
			contains(p.AuctionNumber, search) ||
			contains(p.Vehicle.Name, search) ||
			contains(p.Vehicle.Maker, search)
	})
	sort.SliceStable(purchases, func(i, j int) bool { return purchases[i].AuctionDate.After(purchases[j].AuctionDate) })
	return purchases, nil
}

func (s *MemoryStorage) GetPurchase(ctx context.Context, id string) (model.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := derive.Find(s.purchases, id)
	if !ok {
		return model.Purchase{}, errs.ErrNotFound
	}
	return p, nil
}

func (s *MemoryStorage) AddPurchase(ctx context.Context, p model.Purchase) (model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := derive.Find(s.orders, p.OrderID); !ok {
		return model.Purchase{}, errs.NewValidationError("orderId", "unknown order")
	}

	p.ID = uuid.NewString()
	p.PurchaseNumber = s.nextNumber(purchasePrefix(p.AuctionDate))
	p.TotalPurchaseAmount = derive.PurchaseTotal(p.BidPrice, p.AuctionFee, p.TransportFee, p.OtherFee, p.Tax)
	p.PaymentStatus = model.Unpaid
	p.PaidDate = nil
	p.Status = model.PurchaseConfirmed
	s.purchases = append(s.purchases, p)
	return p, nil
}

// deliveries

func (s *MemoryStorage) GetDeliveries(ctx context.Context, f model.DeliveryFilter) ([]model.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := normalizeSearch(f.Search)
	deliveries := derive.Filter(s.deliveries, func(d model.Delivery) bool {
		if f.ClientID != "" && d.ClientID != f.ClientID {
			return false
		}
		if f.Status != "" && d.Status != f.Status {
			return false
		}
		return search == "" || contains(d.DeliveryNumber, search) || contains(d.DeliveryLocation, search)
	})
	sort.SliceStable(deliveries, func(i, j int) bool { return deliveries[i].DeliveryDate.After(deliveries[j].DeliveryDate) })
	return deliveries, nil
}

func (s *MemoryStorage) GetDelivery(ctx context.Context, id string) (model.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := derive.Find(s.deliveries, id)
	if !ok {
		return model.Delivery{}, errs.ErrNotFound
	}
	return d, nil
}

func (s *MemoryStorage) AddDelivery(ctx context.Context, d model.Delivery) (model.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.PurchaseID != "" {
		if _, ok := derive.Find(s.purchases, d.PurchaseID); !ok {
			return model.Delivery{}, errs.NewValidationError("purchaseId", "unknown purchase")
		}
	}
	if d.OrderID != "" {
		if _, ok := derive.Find(s.orders, d.OrderID); !ok {
			return model.Delivery{}, errs.NewValidationError("orderId", "unknown order")
		}
	}

	d, err := normalizeDelivery(d, s.purchases, s.orders)
	if err != nil {
		return model.Delivery{}, err
	}
	if d.ClientID == "" {
		return model.Delivery{}, errs.NewValidationError("clientId", "delivery does not resolve to a client")
	}

	d.ID = uuid.NewString()
	d.DeliveryNumber = s.nextNumber(deliveryPrefix(d.DeliveryDate))
	d.TotalAmount = derive.DeliveryTotal(d.VehiclePrice, d.Commission, d.OtherFee, d.Tax)
	d.Status = model.DeliveryIssued
	s.deliveries = append(s.deliveries, d)
	return d, nil
}

func (s *MemoryStorage) GetInspections(ctx context.Context, deliveryID string) ([]model.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return derive.Filter(s.inspections, func(i model.Inspection) bool { return i.DeliveryID == deliveryID }), nil
}

// RecordInspection stores the acceptance report of a delivery. Accepted vehicles
// move the delivery to inspected, rejected ones send it back to issued.
func (s *MemoryStorage) RecordInspection(ctx context.Context, insp model.Inspection) (model.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.deliveries, func(d model.Delivery) bool { return d.ID == insp.DeliveryID })
	if i < 0 {
		return model.Delivery{}, errs.ErrNotFound
	}
	delivery := s.deliveries[i]

	next, err := inspectionOutcome(delivery.Status, insp.InspectionResult)
	if err != nil {
		return model.Delivery{}, err
	}

	insp.ID = uuid.NewString()
	s.inspections = append(s.inspections, insp)

	delivery.Status = next
	s.deliveries[i] = delivery
	return delivery, nil
}

func inspectionOutcome(current model.DeliveryStatus, result model.InspectionResult) (model.DeliveryStatus, error) {
	if current != model.DeliveryIssued && current != model.DeliveryReceived {
		return "", fmt.Errorf("%w: delivery in status %s cannot be inspected", errs.ErrInvalidTransition, current)
	}
	switch result {
	case model.Accepted:
		return model.DeliveryInspected, nil
	case model.Rejected:
		return model.DeliveryIssued, nil
	default:
		return "", errs.NewValidationError("inspectionResult", "must be accepted or rejected")
	}
}

// billing

func (s *MemoryStorage) GetInvoices(ctx context.Context, f model.InvoiceFilter) ([]model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := derive.Filter(s.invoices, func(inv model.Invoice) bool {
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			return false
		}
		if f.Status != "" && inv.Status != f.Status {
			return false
		}
		return true
	})
	if f.UnpaidOnly {
		invoices = derive.UnpaidInvoices(invoices, f.Search)
	} else if search := normalizeSearch(f.Search); search != "" {
		invoices = derive.Filter(invoices, func(inv model.Invoice) bool { return contains(inv.InvoiceNumber, search) })
	}
	sort.SliceStable(invoices, func(i, j int) bool { return invoices[i].InvoiceDate.After(invoices[j].InvoiceDate) })
	return invoices, nil
}

func (s *MemoryStorage) GetInvoice(ctx context.Context, id string) (model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := derive.Find(s.invoices, id)
	if !ok {
		return model.Invoice{}, errs.ErrNotFound
	}
	return inv, nil
}

// AddInvoice bills an order's client. A draft stays draft until issued;
// otherwise the status is derived from the amounts and the due date.
func (s *MemoryStorage) AddInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := derive.Find(s.orders, inv.OrderID)
	if !ok {
		return model.Invoice{}, errs.NewValidationError("orderId", "unknown order")
	}

	clientID, err := invoiceClient(order, inv.ClientID)
	if err != nil {
		return model.Invoice{}, err
	}

	inv.ID = uuid.NewString()
	inv.ClientID = clientID
	inv.InvoiceNumber = s.nextNumber(invoicePrefix(inv.InvoiceDate))
	inv.Amount = derive.InvoiceAmount(inv.VehiclePrice, inv.Commission, inv.OtherFee)
	inv.TotalAmount = derive.InvoiceTotal(inv.Amount, inv.Tax)
	inv.PaidAmount = 0
	if inv.Status != model.InvoiceDraft {
		inv.Status = model.InvoiceIssued
	}
	inv.Status = derive.InvoiceStatus(inv, s.now())
	s.invoices = append(s.invoices, inv)
	return inv, nil
}

// invoiceClient picks the billed party. Mediation deals may bill the buyer.
func invoiceClient(order model.Order, requested string) (string, error) {
	switch requested {
	case "", order.ClientID:
		return order.ClientID, nil
	case order.BuyerClientID:
		return order.BuyerClientID, nil
	default:
		return "", errs.NewValidationError("clientId", "client is not a party of the order")
	}
}

// IssueInvoice releases a draft invoice.
func (s *MemoryStorage) IssueInvoice(ctx context.Context, id string) (model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.invoices, func(inv model.Invoice) bool { return inv.ID == id })
	if i < 0 {
		return model.Invoice{}, errs.ErrNotFound
	}
	inv := s.invoices[i]
	if inv.Status != model.InvoiceDraft {
		return model.Invoice{}, fmt.Errorf("%w: invoice %s is already issued", errs.ErrInvalidTransition, inv.InvoiceNumber)
	}

	inv.Status = model.InvoiceIssued
	inv.Status = derive.InvoiceStatus(inv, s.now())
	s.invoices[i] = inv
	return inv, nil
}

func (s *MemoryStorage) GetPayments(ctx context.Context, invoiceID string) ([]model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return derive.Filter(s.payments, func(p model.Payment) bool { return p.InvoiceID == invoiceID }), nil
}

// RecordPayments applies one or more payments as a unit. Either every payment
// fits the balance of its invoice or none is stored.
func (s *MemoryStorage) RecordPayments(ctx context.Context, payments []model.Payment) ([]model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(payments) == 0 {
		return nil, errs.NewValidationError("amount", "no payment given")
	}

	pending := make(map[string]int64)
	var touched []int
	for _, p := range payments {
		if p.Amount <= 0 {
			return nil, errs.NewValidationError("amount", "must be positive")
		}
		i := slices.IndexFunc(s.invoices, func(inv model.Invoice) bool { return inv.ID == p.InvoiceID })
		if i < 0 {
			return nil, errs.ErrNotFound
		}
		inv := s.invoices[i]
		if inv.Status == model.InvoiceDraft {
			return nil, fmt.Errorf("%w: invoice %s is a draft", errs.ErrInvalidTransition, inv.InvoiceNumber)
		}
		if _, seen := pending[inv.ID]; !seen {
			touched = append(touched, i)
		}
		pending[inv.ID] += p.Amount
		if pending[inv.ID] > derive.RemainingBalance(inv) {
			return nil, fmt.Errorf("%w: invoice %s has %d left", errs.ErrOverpayment, inv.InvoiceNumber, derive.RemainingBalance(inv))
		}
	}

	now := s.now()
	for _, p := range payments {
		p.ID = uuid.NewString()
		if p.PaymentDate.IsZero() {
			p.PaymentDate = now
		}
		s.payments = append(s.payments, p)
	}

	updated := make([]model.Invoice, 0, len(touched))
	for _, i := range touched {
		inv := s.invoices[i]
		inv.PaidAmount += pending[inv.ID]
		inv.Status = derive.InvoiceStatus(inv, now)
		s.invoices[i] = inv
		updated = append(updated, inv)
	}
	s.settleNotices()

	return updated, nil
}

// settleNotices marks notices paid once every bundled invoice is paid.
func (s *MemoryStorage) settleNotices() {
	for i, n := range s.notices {
		if n.Status == model.NoticePaid || len(n.InvoiceIDs) == 0 {
			continue
		}
		settled := true
		for _, id := range n.InvoiceIDs {
			inv, ok := derive.Find(s.invoices, id)
			if !ok || !derive.IsPaid(inv) {
				settled = false
				break
			}
		}
		if settled {
			s.notices[i].Status = model.NoticePaid
		}
	}
}

// GetOpenInvoices lists invoices whose status can still change on its own.
func (s *MemoryStorage) GetOpenInvoices(ctx context.Context) ([]model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return derive.Filter(s.invoices, func(inv model.Invoice) bool {
		return inv.Status == model.InvoiceIssued || inv.Status == model.InvoiceOverdue
	}), nil
}

// UpdateInvoiceStatus moves an invoice from one status to another. It reports
// false without error when the invoice no longer holds the expected status.
func (s *MemoryStorage) UpdateInvoiceStatus(ctx context.Context, id string, from, to model.InvoiceStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.invoices, func(inv model.Invoice) bool { return inv.ID == id })
	if i < 0 {
		return false, errs.ErrNotFound
	}
	if s.invoices[i].Status != from {
		return false, nil
	}
	s.invoices[i].Status = to
	return true, nil
}

func (s *MemoryStorage) GetPaymentNotices(ctx context.Context, clientID string) ([]model.PaymentNotice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notices := derive.Filter(s.notices, func(n model.PaymentNotice) bool {
		return clientID == "" || n.ClientID == clientID
	})
	for i := range notices {
		notices[i].InvoiceIDs = slices.Clone(notices[i].InvoiceIDs)
	}
	sort.SliceStable(notices, func(i, j int) bool { return notices[i].IssuedDate.After(notices[j].IssuedDate) })
	return notices, nil
}

func (s *MemoryStorage) GetPaymentNotice(ctx context.Context, id string) (model.PaymentNotice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := derive.Find(s.notices, id)
	if !ok {
		return model.PaymentNotice{}, errs.ErrNotFound
	}
	n.InvoiceIDs = slices.Clone(n.InvoiceIDs)
	return n, nil
}

// AddPaymentNotice numbers and stores a notice built by derive.BuildPaymentNotice.
// Totals are recomputed from the stored invoices.
func (s *MemoryStorage) AddPaymentNotice(ctx context.Context, n model.PaymentNotice) (model.PaymentNotice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices := make([]model.Invoice, 0, len(n.InvoiceIDs))
	for _, id := range n.InvoiceIDs {
		inv, ok := derive.Find(s.invoices, id)
		if !ok {
			return model.PaymentNotice{}, errs.NewValidationError("invoiceIds", "unknown invoice "+id)
		}
		invoices = append(invoices, inv)
	}

	built, err := derive.BuildPaymentNotice(n.ClientID, invoices, n.DueDate, n.IssuedDate, n.BankAccount)
	if err != nil {
		return model.PaymentNotice{}, err
	}
	built.Notes = n.Notes
	built.ID = uuid.NewString()
	built.NoticeNumber = s.nextNumber(noticePrefix(built.IssuedDate))
	s.notices = append(s.notices, built)

	built.InvoiceIDs = slices.Clone(built.InvoiceIDs)
	return built, nil
}

func (s *MemoryStorage) GetPayouts(ctx context.Context, salesPersonID string) ([]model.Payout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payouts := derive.Filter(s.payouts, func(p model.Payout) bool {
		return salesPersonID == "" || p.SalesPersonID == salesPersonID
	})
	sort.SliceStable(payouts, func(i, j int) bool { return payouts[i].Month.After(payouts[j].Month) })
	return payouts, nil
}
