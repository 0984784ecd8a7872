package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SeedIfEmpty loads fixtures into a database that has no users yet.
// It reports whether anything was written.
func (store *PostgresStorage) SeedIfEmpty(ctx context.Context, f Fixtures) (bool, error) {
	var users int
	if err := store.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if users > 0 {
		return false, nil
	}

	tx, err := store.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := seed(ctx, tx, f); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func seed(ctx context.Context, tx pgx.Tx, f Fixtures) error {
	var numbers []string

	for _, c := range f.Clients {
		_, err := tx.Exec(ctx, `INSERT INTO clients (`+clientColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
			c.ID, c.ClientCode, c.ClientType, c.Name, c.NameKana, c.PersonType, c.ContactPerson, c.PostalCode,
			c.Address, c.Phone, c.Email, c.Bank.BankName, c.Bank.BranchName, c.Bank.AccountType,
			c.Bank.AccountNumber, c.Bank.AccountHolder, c.Notes, c.IsDeleted)
		if err != nil {
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
	}

	for _, u := range f.Users {
		_, err := tx.Exec(ctx, `INSERT INTO users (id, email, name, role, client_id, is_active, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			u.ID, u.Email, u.Name, u.Role, u.ClientID, u.IsActive, f.PasswordHash)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, o := range f.Orders {
		_, err := tx.Exec(ctx, `INSERT INTO orders (id, order_number, order_type, client_id, buyer_client_id,
				sales_person_id, status, order_date, desired_delivery_date, vehicle_price, buy_commission,
				sell_commission, total_amount, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			o.ID, o.OrderNumber, o.OrderType, o.ClientID, o.BuyerClientID, o.SalesPersonID, o.Status, o.OrderDate,
			o.DesiredDeliveryDate, o.VehiclePrice, o.BuyCommission, o.SellCommission, o.TotalAmount, o.Notes)
		if err != nil {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
		numbers = append(numbers, o.OrderNumber)
	}

	for _, p := range f.Progress {
		if _, err := tx.Exec(ctx, insertProgressQuery, p.ID, p.OrderID, p.Status, p.ChangedAt, p.ChangedBy, p.Notes); err != nil {
			return fmt.Errorf("seed progress %s: %w", p.ID, err)
		}
	}

	for _, p := range f.Purchases {
		if err := insertPurchase(ctx, tx, p); err != nil {
			return fmt.Errorf("seed purchase %s: %w", p.ID, err)
		}
		numbers = append(numbers, p.PurchaseNumber)
	}

	for _, d := range f.Deliveries {
		d, err := normalizeDelivery(d, f.Purchases, f.Orders)
		if err != nil {
			return fmt.Errorf("seed delivery %s: %w", d.ID, err)
		}
		if err := insertDelivery(ctx, tx, d); err != nil {
			return fmt.Errorf("seed delivery %s: %w", d.ID, err)
		}
		numbers = append(numbers, d.DeliveryNumber)
	}

	for _, i := range f.Inspections {
		_, err := tx.Exec(ctx, insertInspectionQuery, i.ID, i.DeliveryID, i.ReceivedDate, i.InspectionDate,
			i.InspectionResult, i.Inspector, i.Notes)
		if err != nil {
			return fmt.Errorf("seed inspection %s: %w", i.ID, err)
		}
	}

	for _, inv := range f.Invoices {
		if err := insertInvoice(ctx, tx, inv); err != nil {
			return fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
		numbers = append(numbers, inv.InvoiceNumber)
	}

	for _, p := range f.Payments {
		_, err := tx.Exec(ctx, insertPaymentQuery, p.ID, p.InvoiceID, p.PaymentDate, p.Amount, p.PaymentMethod,
			p.BankName, p.ReferenceNumber, p.Notes)
		if err != nil {
			return fmt.Errorf("seed payment %s: %w", p.ID, err)
		}
	}

	for _, n := range f.Notices {
		if err := insertNotice(ctx, tx, n); err != nil {
			return fmt.Errorf("seed payment notice %s: %w", n.ID, err)
		}
		numbers = append(numbers, n.NoticeNumber)
	}

	for _, p := range f.Payouts {
		_, err := tx.Exec(ctx, `INSERT INTO payouts (id, payout_number, sales_person_id, month, base_amount,
				commission, total_amount, payment_date, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.PayoutNumber, p.SalesPersonID, p.Month, p.BaseAmount, p.Commission, p.TotalAmount,
			p.PaymentDate, p.Status, p.Notes)
		if err != nil {
			return fmt.Errorf("seed payout %s: %w", p.ID, err)
		}
	}

	const sequenceQuery = `
		INSERT INTO number_sequences (prefix, value) VALUES ($1, $2)
		ON CONFLICT (prefix) DO UPDATE SET value = GREATEST(number_sequences.value, EXCLUDED.value)`

	for _, number := range numbers {
		prefix, seq, ok := parseNumber(number)
		if !ok {
			continue
		}
		if _, err := tx.Exec(ctx, sequenceQuery, prefix, seq); err != nil {
			return fmt.Errorf("seed sequence %s: %w", prefix, err)
		}
	}

	return nil
}
