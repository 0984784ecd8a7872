package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/and161185/autotrade/internal/derive"
	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		client_code TEXT UNIQUE NOT NULL,
		client_type TEXT NOT NULL,
		name TEXT NOT NULL,
		name_kana TEXT NOT NULL DEFAULT '',
		person_type TEXT NOT NULL DEFAULT '',
		contact_person TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		bank_name TEXT NOT NULL DEFAULT '',
		branch_name TEXT NOT NULL DEFAULT '',
		account_type TEXT NOT NULL DEFAULT '',
		account_number TEXT NOT NULL DEFAULT '',
		account_holder TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		client_id TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		order_number TEXT UNIQUE NOT NULL,
		order_type TEXT NOT NULL,
		client_id TEXT NOT NULL REFERENCES clients(id),
		buyer_client_id TEXT NOT NULL DEFAULT '',
		sales_person_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		order_date TIMESTAMPTZ NOT NULL,
		desired_delivery_date TIMESTAMPTZ,
		vehicle_price BIGINT NOT NULL DEFAULT 0,
		buy_commission BIGINT NOT NULL DEFAULT 0,
		sell_commission BIGINT NOT NULL DEFAULT 0,
		total_amount BIGINT NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS order_progress (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		status TEXT NOT NULL,
		changed_at TIMESTAMPTZ NOT NULL,
		changed_by TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS purchases (
		id TEXT PRIMARY KEY,
		purchase_number TEXT UNIQUE NOT NULL,
		order_id TEXT NOT NULL REFERENCES orders(id),
		auction_venue_id TEXT NOT NULL DEFAULT '',
		auction_date TIMESTAMPTZ NOT NULL,
		auction_number TEXT NOT NULL DEFAULT '',
		vehicle_name TEXT NOT NULL DEFAULT '',
		maker TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		year INT NOT NULL DEFAULT 0,
		mileage INT NOT NULL DEFAULT 0,
		bid_price BIGINT NOT NULL DEFAULT 0,
		auction_fee BIGINT NOT NULL DEFAULT 0,
		transport_fee BIGINT NOT NULL DEFAULT 0,
		other_fee BIGINT NOT NULL DEFAULT 0,
		tax BIGINT NOT NULL DEFAULT 0,
		total_purchase_amount BIGINT NOT NULL DEFAULT 0,
		statement_received_date TIMESTAMPTZ NOT NULL,
		payment_due_date TIMESTAMPTZ,
		payment_status TEXT NOT NULL,
		paid_date TIMESTAMPTZ,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS deliveries (
		id TEXT PRIMARY KEY,
		delivery_number TEXT UNIQUE NOT NULL,
		purchase_id TEXT NOT NULL DEFAULT '',
		order_id TEXT NOT NULL DEFAULT '',
		client_id TEXT NOT NULL,
		delivery_date TIMESTAMPTZ NOT NULL,
		delivery_location TEXT NOT NULL DEFAULT '',
		vehicle_price BIGINT NOT NULL DEFAULT 0,
		commission BIGINT NOT NULL DEFAULT 0,
		other_fee BIGINT NOT NULL DEFAULT 0,
		tax BIGINT NOT NULL DEFAULT 0,
		total_amount BIGINT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS inspections (
		id TEXT PRIMARY KEY,
		delivery_id TEXT NOT NULL REFERENCES deliveries(id),
		received_date TIMESTAMPTZ NOT NULL,
		inspection_date TIMESTAMPTZ NOT NULL,
		inspection_result TEXT NOT NULL,
		inspector TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		invoice_number TEXT UNIQUE NOT NULL,
		order_id TEXT NOT NULL REFERENCES orders(id),
		client_id TEXT NOT NULL REFERENCES clients(id),
		invoice_date TIMESTAMPTZ NOT NULL,
		due_date TIMESTAMPTZ NOT NULL,
		vehicle_price BIGINT NOT NULL DEFAULT 0,
		commission BIGINT NOT NULL DEFAULT 0,
		other_fee BIGINT NOT NULL DEFAULT 0,
		amount BIGINT NOT NULL DEFAULT 0,
		tax BIGINT NOT NULL DEFAULT 0,
		total_amount BIGINT NOT NULL DEFAULT 0,
		paid_amount BIGINT NOT NULL DEFAULT 0 CHECK (paid_amount <= total_amount),
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		invoice_id TEXT NOT NULL REFERENCES invoices(id),
		payment_date TIMESTAMPTZ NOT NULL,
		amount BIGINT NOT NULL CHECK (amount > 0),
		payment_method TEXT NOT NULL,
		bank_name TEXT NOT NULL DEFAULT '',
		reference_number TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS payment_notices (
		id TEXT PRIMARY KEY,
		notice_number TEXT UNIQUE NOT NULL,
		client_id TEXT NOT NULL REFERENCES clients(id),
		invoice_ids TEXT[] NOT NULL,
		invoice_count INT NOT NULL,
		total_amount BIGINT NOT NULL,
		total_tax BIGINT NOT NULL,
		grand_total BIGINT NOT NULL,
		due_date TIMESTAMPTZ NOT NULL,
		issued_date TIMESTAMPTZ NOT NULL,
		payment_method TEXT NOT NULL,
		bank_name TEXT NOT NULL DEFAULT '',
		branch_name TEXT NOT NULL DEFAULT '',
		account_type TEXT NOT NULL DEFAULT '',
		account_number TEXT NOT NULL DEFAULT '',
		account_holder TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS payouts (
		id TEXT PRIMARY KEY,
		payout_number TEXT UNIQUE NOT NULL,
		sales_person_id TEXT NOT NULL,
		month TIMESTAMPTZ NOT NULL,
		base_amount BIGINT NOT NULL,
		commission BIGINT NOT NULL,
		total_amount BIGINT NOT NULL,
		payment_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS number_sequences (
		prefix TEXT PRIMARY KEY,
		value INT NOT NULL
	);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgresStorage(ctx context.Context, databaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db, now: time.Now}

	if err := storage.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (store *PostgresStorage) Close() {
	store.db.Close()
}

// mapWriteError turns constraint violations caused by bad input into validation errors.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return errs.NewValidationError(pgErr.ConstraintName, "references an unknown record")
		case "23505": // unique_violation
			return errs.NewValidationError(pgErr.ConstraintName, "already exists")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nextNumber(ctx context.Context, tx pgx.Tx, prefix string) (string, error) {
	const query = `
		INSERT INTO number_sequences (prefix, value) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET value = number_sequences.value + 1
		RETURNING value`

	var seq int
	if err := tx.QueryRow(ctx, query, prefix).Scan(&seq); err != nil {
		return "", fmt.Errorf("next number %s: %w", prefix, err)
	}
	return formatNumber(prefix, seq), nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()

	list := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

// users

func (store *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (model.User, string, error) {
	const query = `SELECT id, email, name, role, client_id, is_active, password_hash FROM users WHERE lower(email) = lower($1)`

	var u model.User
	var hash string

	err := store.db.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.ClientID, &u.IsActive, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, "", errs.ErrUserNotFound
		}
		return model.User{}, "", fmt.Errorf("get user by email: %w", err)
	}

	return u, hash, nil
}

func (store *PostgresStorage) GetUserByID(ctx context.Context, id string) (model.User, error) {
	const query = `SELECT id, email, name, role, client_id, is_active FROM users WHERE id = $1`

	var u model.User

	err := store.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.ClientID, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return u, nil
}

const clientColumns = `id, client_code, client_type, name, name_kana, person_type, contact_person, postal_code,
	address, phone, email, bank_name, branch_name, account_type, account_number, account_holder, notes, is_deleted`

func scanClient(row pgx.Row) (model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.ClientCode, &c.ClientType, &c.Name, &c.NameKana, &c.PersonType, &c.ContactPerson,
		&c.PostalCode, &c.Address, &c.Phone, &c.Email, &c.Bank.BankName, &c.Bank.BranchName, &c.Bank.AccountType,
		&c.Bank.AccountNumber, &c.Bank.AccountHolder, &c.Notes, &c.IsDeleted)
	return c, err
}

func (store *PostgresStorage) GetClients(ctx context.Context) ([]model.Client, error) {
	rows, err := store.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE NOT is_deleted ORDER BY client_code`)
	if err != nil {
		return nil, fmt.Errorf("get clients: %w", err)
	}
	return collect(rows, scanClient)
}

func (store *PostgresStorage) GetClient(ctx context.Context, id string) (model.Client, error) {
	c, err := scanClient(store.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1 AND NOT is_deleted`, id))
	if err != nil {
		return model.Client{}, notFound("get client", err)
	}
	return c, nil
}

// orders

const orderColumns = `o.id, o.order_number, o.order_type, o.client_id, o.buyer_client_id, o.sales_person_id, o.status,
	o.order_date, o.desired_delivery_date, o.vehicle_price, o.buy_commission, o.sell_commission, o.total_amount, o.notes`

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.OrderType, &o.ClientID, &o.BuyerClientID, &o.SalesPersonID, &o.Status,
		&o.OrderDate, &o.DesiredDeliveryDate, &o.VehiclePrice, &o.BuyCommission, &o.SellCommission, &o.TotalAmount, &o.Notes)
	return o, err
}

func (store *PostgresStorage) GetOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE ($1 = '' OR o.client_id = $1 OR o.buyer_client_id = $1)
		  AND ($2 = '' OR o.order_type = $2)
		  AND ($3 = '' OR o.status = $3)
		  AND ($4 = '' OR o.order_number ILIKE '%' || $4 || '%' OR c.name ILIKE '%' || $4 || '%' OR o.notes ILIKE '%' || $4 || '%')
		ORDER BY o.order_date DESC, o.order_number DESC`

	rows, err := store.db.Query(ctx, query, f.ClientID, string(f.OrderType), string(f.Status), f.Search)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return collect(rows, scanOrder)
}

func (store *PostgresStorage) GetOrder(ctx context.Context, id string) (model.Order, error) {
	o, err := scanOrder(store.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id))
	if err != nil {
		return model.Order{}, notFound("get order", err)
	}
	return o, nil
}

const insertProgressQuery = `
	INSERT INTO order_progress (id, order_id, status, changed_at, changed_by, notes)
	VALUES ($1, $2, $3, $4, $5, $6)`

func (store *PostgresStorage) AddOrder(ctx context.Context, o model.Order) (model.Order, error) {
	const query = `
		INSERT INTO orders (id, order_number, order_type, client_id, buyer_client_id, sales_person_id, status,
			order_date, desired_delivery_date, vehicle_price, buy_commission, sell_commission, total_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if o.OrderDate.IsZero() {
		o.OrderDate = store.now()
	}
	o.ID = uuid.NewString()
	o.Status = model.Ordered
	o.TotalAmount = derive.OrderTotal(o.VehiclePrice, o.BuyCommission, o.SellCommission)
	if o.OrderNumber, err = nextNumber(ctx, tx, orderPrefix(o.OrderDate)); err != nil {
		return model.Order{}, err
	}

	_, err = tx.Exec(ctx, query, o.ID, o.OrderNumber, o.OrderType, o.ClientID, o.BuyerClientID, o.SalesPersonID,
		o.Status, o.OrderDate, o.DesiredDeliveryDate, o.VehiclePrice, o.BuyCommission, o.SellCommission, o.TotalAmount, o.Notes)
	if err != nil {
		return model.Order{}, mapWriteError("insert order", err)
	}

	_, err = tx.Exec(ctx, insertProgressQuery, uuid.NewString(), o.ID, o.Status, store.now(), o.SalesPersonID, "")
	if err != nil {
		return model.Order{}, fmt.Errorf("insert progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("commit: %w", err)
	}

	return o, nil
}

func scanProgress(row pgx.Row) (model.OrderProgress, error) {
	var p model.OrderProgress
	err := row.Scan(&p.ID, &p.OrderID, &p.Status, &p.ChangedAt, &p.ChangedBy, &p.Notes)
	return p, err
}

func (store *PostgresStorage) GetOrderProgress(ctx context.Context, orderID string) ([]model.OrderProgress, error) {
	const query = `
		SELECT id, order_id, status, changed_at, changed_by, notes
		FROM order_progress
		WHERE order_id = $1
		ORDER BY changed_at ASC`

	rows, err := store.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order progress: %w", err)
	}
	return collect(rows, scanProgress)
}

func (store *PostgresStorage) AddOrderProgress(ctx context.Context, p model.OrderProgress) (model.Order, error) {
	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1 FOR UPDATE`, p.OrderID))
	if err != nil {
		return model.Order{}, notFound("lock order", err)
	}

	if err := status.ValidateTransition(order.OrderType, order.Status, p.Status); err != nil {
		return model.Order{}, err
	}

	if p.ChangedAt.IsZero() {
		p.ChangedAt = store.now()
	}
	_, err = tx.Exec(ctx, insertProgressQuery, uuid.NewString(), p.OrderID, p.Status, p.ChangedAt, p.ChangedBy, p.Notes)
	if err != nil {
		return model.Order{}, fmt.Errorf("insert progress: %w", err)
	}

	if _, err = tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, p.Status, p.OrderID); err != nil {
		return model.Order{}, fmt.Errorf("update order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("commit: %w", err)
	}

	order.Status = p.Status
	return order, nil
}

// purchases

const purchaseColumns = `id, purchase_number, order_id, auction_venue_id, auction_date, auction_number,
	vehicle_name, maker, model, year, mileage, bid_price, auction_fee, transport_fee, other_fee, tax,
	total_purchase_amount, statement_received_date, payment_due_date, payment_status, paid_date, status, notes`

func scanPurchase(row pgx.Row) (model.Purchase, error) {
	var p model.Purchase
	err := row.Scan(&p.ID, &p.PurchaseNumber, &p.OrderID, &p.AuctionVenueID, &p.AuctionDate, &p.AuctionNumber,
		&p.Vehicle.Name, &p.Vehicle.Maker, &p.Vehicle.Model, &p.Vehicle.Year, &p.Vehicle.Mileage,
		&p.BidPrice, &p.AuctionFee, &p.TransportFee, &p.OtherFee, &p.Tax, &p.TotalPurchaseAmount,
		&p.StatementReceivedDate, &p.PaymentDueDate, &p.PaymentStatus, &p.PaidDate, &p.Status, &p.Notes)
	return p, err
}

func (store *PostgresStorage) GetPurchases(ctx context.Context, f model.PurchaseFilter) ([]model.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE ($1 = '' OR order_id = $1)
		  AND ($2 = '' OR payment_status = $2)
		  AND ($3 = '' OR purchase_number ILIKE '%' || $3 || '%' OR auction_number ILIKE '%' || $3 || '%'
		       OR vehicle_name ILIKE '%' || $3 || '%' OR maker ILIKE '%' || $3 || '%')
		ORDER BY auction_date DESC`

	rows, err := store.db.Query(ctx, query, f.OrderID, string(f.PaymentStatus), f.Search)
	if err != nil {
		return nil, fmt.Errorf("get purchases: %w", err)
	}
	return collect(rows, scanPurchase)
}

func (store *PostgresStorage) GetPurchase(ctx context.Context, id string) (model.Purchase, error) {
	p, err := scanPurchase(store.db.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
	if err != nil {
		return model.Purchase{}, notFound("get purchase", err)
	}
	return p, nil
}

const insertPurchaseQuery = `
	INSERT INTO purchases (` + purchaseColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

func insertPurchase(ctx context.Context, tx pgx.Tx, p model.Purchase) error {
	_, err := tx.Exec(ctx, insertPurchaseQuery, p.ID, p.PurchaseNumber, p.OrderID, p.AuctionVenueID, p.AuctionDate,
		p.AuctionNumber, p.Vehicle.Name, p.Vehicle.Maker, p.Vehicle.Model, p.Vehicle.Year, p.Vehicle.Mileage,
		p.BidPrice, p.AuctionFee, p.TransportFee, p.OtherFee, p.Tax, p.TotalPurchaseAmount,
		p.StatementReceivedDate, p.PaymentDueDate, p.PaymentStatus, p.PaidDate, p.Status, p.Notes)
	return err
}

func (store *PostgresStorage) AddPurchase(ctx context.Context, p model.Purchase) (model.Purchase, error) {
	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.Purchase{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	p.ID = uuid.NewString()
	p.TotalPurchaseAmount = derive.PurchaseTotal(p.BidPrice, p.AuctionFee, p.TransportFee, p.OtherFee, p.Tax)
	p.PaymentStatus = model.Unpaid
	p.PaidDate = nil
	p.Status = model.PurchaseConfirmed
	if p.PurchaseNumber, err = nextNumber(ctx, tx, purchasePrefix(p.AuctionDate)); err != nil {
		return model.Purchase{}, err
	}

	if err := insertPurchase(ctx, tx, p); err != nil {
		return model.Purchase{}, mapWriteError("insert purchase", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Purchase{}, fmt.Errorf("commit: %w", err)
	}

	return p, nil
}

// deliveries

const deliveryColumns = `id, delivery_number, purchase_id, order_id, client_id, delivery_date, delivery_location,
	vehicle_price, commission, other_fee, tax, total_amount, status, notes`

func scanDelivery(row pgx.Row) (model.Delivery, error) {
	var d model.Delivery
	err := row.Scan(&d.ID, &d.DeliveryNumber, &d.PurchaseID, &d.OrderID, &d.ClientID, &d.DeliveryDate,
		&d.DeliveryLocation, &d.VehiclePrice, &d.Commission, &d.OtherFee, &d.Tax, &d.TotalAmount, &d.Status, &d.Notes)
	return d, err
}

func (store *PostgresStorage) GetDeliveries(ctx context.Context, f model.DeliveryFilter) ([]model.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE ($1 = '' OR client_id = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR delivery_number ILIKE '%' || $3 || '%' OR delivery_location ILIKE '%' || $3 || '%')
		ORDER BY delivery_date DESC`

	rows, err := store.db.Query(ctx, query, f.ClientID, string(f.Status), f.Search)
	if err != nil {
		return nil, fmt.Errorf("get deliveries: %w", err)
	}
	return collect(rows, scanDelivery)
}

func (store *PostgresStorage) GetDelivery(ctx context.Context, id string) (model.Delivery, error) {
	d, err := scanDelivery(store.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		return model.Delivery{}, notFound("get delivery", err)
	}
	return d, nil
}

// resolveDelivery loads the linked purchase and order and stores the canonical links on d.
func resolveDelivery(ctx context.Context, tx pgx.Tx, d model.Delivery) (model.Delivery, error) {
	var purchases []model.Purchase
	if d.PurchaseID != "" {
		p, err := scanPurchase(tx.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, d.PurchaseID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return d, errs.NewValidationError("purchaseId", "unknown purchase")
			}
			return d, fmt.Errorf("get purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	var orders []model.Order
	for _, id := range []string{d.OrderID, purchaseOrderID(purchases)} {
		if id == "" {
			continue
		}
		o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return d, errs.NewValidationError("orderId", "unknown order")
			}
			return d, fmt.Errorf("get order: %w", err)
		}
		orders = append(orders, o)
	}

	return normalizeDelivery(d, purchases, orders)
}

func purchaseOrderID(purchases []model.Purchase) string {
	if len(purchases) == 0 {
		return ""
	}
	return purchases[0].OrderID
}

const insertDeliveryQuery = `
	INSERT INTO deliveries (` + deliveryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func insertDelivery(ctx context.Context, tx pgx.Tx, d model.Delivery) error {
	_, err := tx.Exec(ctx, insertDeliveryQuery, d.ID, d.DeliveryNumber, d.PurchaseID, d.OrderID, d.ClientID,
		d.DeliveryDate, d.DeliveryLocation, d.VehiclePrice, d.Commission, d.OtherFee, d.Tax, d.TotalAmount, d.Status, d.Notes)
	return err
}

func (store *PostgresStorage) AddDelivery(ctx context.Context, d model.Delivery) (model.Delivery, error) {
	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.Delivery{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	d, err = resolveDelivery(ctx, tx, d)
	if err != nil {
		return model.Delivery{}, err
	}
	if d.ClientID == "" {
		return model.Delivery{}, errs.NewValidationError("clientId", "delivery does not resolve to a client")
	}

	d.ID = uuid.NewString()
	d.TotalAmount = derive.DeliveryTotal(d.VehiclePrice, d.Commission, d.OtherFee, d.Tax)
	d.Status = model.DeliveryIssued
	if d.DeliveryNumber, err = nextNumber(ctx, tx, deliveryPrefix(d.DeliveryDate)); err != nil {
		return model.Delivery{}, err
	}

	if err := insertDelivery(ctx, tx, d); err != nil {
		return model.Delivery{}, mapWriteError("insert delivery", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Delivery{}, fmt.Errorf("commit: %w", err)
	}

	return d, nil
}

func scanInspection(row pgx.Row) (model.Inspection, error) {
	var i model.Inspection
	err := row.Scan(&i.ID, &i.DeliveryID, &i.ReceivedDate, &i.InspectionDate, &i.InspectionResult, &i.Inspector, &i.Notes)
	return i, err
}

func (store *PostgresStorage) GetInspections(ctx context.Context, deliveryID string) ([]model.Inspection, error) {
	const query = `
		SELECT id, delivery_id, received_date, inspection_date, inspection_result, inspector, notes
		FROM inspections
		WHERE delivery_id = $1
		ORDER BY inspection_date ASC`

	rows, err := store.db.Query(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get inspections: %w", err)
	}
	return collect(rows, scanInspection)
}

const insertInspectionQuery = `
	INSERT INTO inspections (id, delivery_id, received_date, inspection_date, inspection_result, inspector, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (store *PostgresStorage) RecordInspection(ctx context.Context, insp model.Inspection) (model.Delivery, error) {
	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.Delivery{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	d, err := scanDelivery(tx.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, insp.DeliveryID))
	if err != nil {
		return model.Delivery{}, notFound("lock delivery", err)
	}

	next, err := inspectionOutcome(d.Status, insp.InspectionResult)
	if err != nil {
		return model.Delivery{}, err
	}

	_, err = tx.Exec(ctx, insertInspectionQuery, uuid.NewString(), insp.DeliveryID, insp.ReceivedDate,
		insp.InspectionDate, insp.InspectionResult, insp.Inspector, insp.Notes)
	if err != nil {
		return model.Delivery{}, fmt.Errorf("insert inspection: %w", err)
	}

	if _, err = tx.Exec(ctx, `UPDATE deliveries SET status = $1 WHERE id = $2`, next, d.ID); err != nil {
		return model.Delivery{}, fmt.Errorf("update delivery status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Delivery{}, fmt.Errorf("commit: %w", err)
	}

	d.Status = next
	return d, nil
}

// billing

const invoiceColumns = `id, invoice_number, order_id, client_id, invoice_date, due_date, vehicle_price, commission,
	other_fee, amount, tax, total_amount, paid_amount, status, notes`

func scanInvoice(row pgx.Row) (model.Invoice, error) {
	var i model.Invoice
	err := row.Scan(&i.ID, &i.InvoiceNumber, &i.OrderID, &i.ClientID, &i.InvoiceDate, &i.DueDate, &i.VehiclePrice,
		&i.Commission, &i.OtherFee, &i.Amount, &i.Tax, &i.TotalAmount, &i.PaidAmount, &i.Status, &i.Notes)
	return i, err
}

func (store *PostgresStorage) GetInvoices(ctx context.Context, f model.InvoiceFilter) ([]model.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR client_id = $1)
		  AND ($2 = '' OR status = $2)
		  AND (NOT $3 OR paid_amount < total_amount)
		  AND ($4 = '' OR invoice_number ILIKE '%' || $4 || '%')
		ORDER BY invoice_date DESC`

	rows, err := store.db.Query(ctx, query, f.ClientID, string(f.Status), f.UnpaidOnly, f.Search)
	if err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}
	return collect(rows, scanInvoice)
}

func (store *PostgresStorage) GetInvoice(ctx context.Context, id string) (model.Invoice, error) {
	inv, err := scanInvoice(store.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return model.Invoice{}, notFound("get invoice", err)
	}
	return inv, nil
}

const insertInvoiceQuery = `
	INSERT INTO invoices (` + invoiceColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

func insertInvoice(ctx context.Context, tx pgx.Tx, i model.Invoice) error {
	_, err := tx.Exec(ctx, insertInvoiceQuery, i.ID, i.InvoiceNumber, i.OrderID, i.ClientID, i.InvoiceDate, i.DueDate,
		i.VehiclePrice, i.Commission, i.OtherFee, i.Amount, i.Tax, i.TotalAmount, i.PaidAmount, i.Status, i.Notes)
	return err
}

func (store *PostgresStorage) AddInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, inv.OrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Invoice{}, errs.NewValidationError("orderId", "unknown order")
		}
		return model.Invoice{}, fmt.Errorf("get order: %w", err)
	}
	if inv.ClientID, err = invoiceClient(order, inv.ClientID); err != nil {
		return model.Invoice{}, err
	}

	inv.ID = uuid.NewString()
	inv.Amount = derive.InvoiceAmount(inv.VehiclePrice, inv.Commission, inv.OtherFee)
	inv.TotalAmount = derive.InvoiceTotal(inv.Amount, inv.Tax)
	inv.PaidAmount = 0
	if inv.Status != model.InvoiceDraft {
		inv.Status = model.InvoiceIssued
	}
	inv.Status = derive.InvoiceStatus(inv, store.now())
	if inv.InvoiceNumber, err = nextNumber(ctx, tx, invoicePrefix(inv.InvoiceDate)); err != nil {
		return model.Invoice{}, err
	}

	if err := insertInvoice(ctx, tx, inv); err != nil {
		return model.Invoice{}, mapWriteError("insert invoice", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Invoice{}, fmt.Errorf("commit: %w", err)
	}

	return inv, nil
}

func (store *PostgresStorage) IssueInvoice(ctx context.Context, id string) (model.Invoice, error) {
	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	inv, err := scanInvoice(tx.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return model.Invoice{}, notFound("lock invoice", err)
	}
	if inv.Status != model.InvoiceDraft {
		return model.Invoice{}, fmt.Errorf("%w: invoice %s is already issued", errs.ErrInvalidTransition, inv.InvoiceNumber)
	}

	inv.Status = model.InvoiceIssued
	inv.Status = derive.InvoiceStatus(inv, store.now())
	if _, err := tx.Exec(ctx, `UPDATE invoices SET status = $1 WHERE id = $2`, inv.Status, inv.ID); err != nil {
		return model.Invoice{}, fmt.Errorf("update invoice status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Invoice{}, fmt.Errorf("commit: %w", err)
	}

	return inv, nil
}

func scanPayment(row pgx.Row) (model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.InvoiceID, &p.PaymentDate, &p.Amount, &p.PaymentMethod, &p.BankName, &p.ReferenceNumber, &p.Notes)
	return p, err
}

func (store *PostgresStorage) GetPayments(ctx context.Context, invoiceID string) ([]model.Payment, error) {
	const query = `
		SELECT id, invoice_id, payment_date, amount, payment_method, bank_name, reference_number, notes
		FROM payments
		WHERE invoice_id = $1
		ORDER BY payment_date ASC`

	rows, err := store.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}
	return collect(rows, scanPayment)
}

const insertPaymentQuery = `
	INSERT INTO payments (id, invoice_id, payment_date, amount, payment_method, bank_name, reference_number, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (store *PostgresStorage) RecordPayments(ctx context.Context, payments []model.Payment) ([]model.Invoice, error) {
	const settleNoticesQuery = `
		UPDATE payment_notices n SET status = 'paid'
		WHERE n.status <> 'paid'
		  AND n.invoice_ids && $1::text[]
		  AND NOT EXISTS (
			SELECT 1 FROM invoices i
			WHERE i.id = ANY(n.invoice_ids) AND i.paid_amount < i.total_amount
		  )`

	if len(payments) == 0 {
		return nil, errs.NewValidationError("amount", "no payment given")
	}

	tx, err := store.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := store.now()
	locked := make(map[string]model.Invoice)
	var order []string
	for _, p := range payments {
		if p.Amount <= 0 {
			return nil, errs.NewValidationError("amount", "must be positive")
		}

		inv, ok := locked[p.InvoiceID]
		if !ok {
			inv, err = scanInvoice(tx.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, p.InvoiceID))
			if err != nil {
				return nil, notFound("lock invoice", err)
			}
			if inv.Status == model.InvoiceDraft {
				return nil, fmt.Errorf("%w: invoice %s is a draft", errs.ErrInvalidTransition, inv.InvoiceNumber)
			}
			order = append(order, inv.ID)
		}

		if p.Amount > derive.RemainingBalance(inv) {
			return nil, fmt.Errorf("%w: invoice %s has %d left", errs.ErrOverpayment, inv.InvoiceNumber, derive.RemainingBalance(inv))
		}
		inv.PaidAmount += p.Amount
		locked[inv.ID] = inv

		if p.PaymentDate.IsZero() {
			p.PaymentDate = now
		}
		_, err = tx.Exec(ctx, insertPaymentQuery, uuid.NewString(), p.InvoiceID, p.PaymentDate, p.Amount,
			p.PaymentMethod, p.BankName, p.ReferenceNumber, p.Notes)
		if err != nil {
			return nil, fmt.Errorf("insert payment: %w", err)
		}
	}

	updated := make([]model.Invoice, 0, len(order))
	for _, id := range order {
		inv := locked[id]
		inv.Status = derive.InvoiceStatus(inv, now)
		_, err = tx.Exec(ctx, `UPDATE invoices SET paid_amount = $1, status = $2 WHERE id = $3`, inv.PaidAmount, inv.Status, inv.ID)
		if err != nil {
			return nil, fmt.Errorf("update invoice: %w", err)
		}
		updated = append(updated, inv)
	}

	if _, err = tx.Exec(ctx, settleNoticesQuery, order); err != nil {
		return nil, fmt.Errorf("settle notices: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return updated, nil
}

func (store *PostgresStorage) GetOpenInvoices(ctx context.Context) ([]model.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE status IN ('issued', 'overdue')
		ORDER BY due_date ASC`

	rows, err := store.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get open invoices: %w", err)
	}
	return collect(rows, scanInvoice)
}

func (store *PostgresStorage) UpdateInvoiceStatus(ctx context.Context, id string, from, to model.InvoiceStatus) (bool, error) {
	tag, err := store.db.Exec(ctx, `UPDATE invoices SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := store.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists); err != nil {
			return false, fmt.Errorf("check invoice: %w", err)
		}
		if !exists {
			return false, errs.ErrNotFound
		}
		return false, nil
	}
	return true, nil
}

const noticeColumns = `id, notice_number, client_id, invoice_ids, invoice_count, total_amount, total_tax, grand_total,
	due_date, issued_date, payment_method, bank_name, branch_name, account_type, account_number, account_holder, status, notes`

func scanNotice(row pgx.Row) (model.PaymentNotice, error) {
	var n model.PaymentNotice
	err := row.Scan(&n.ID, &n.NoticeNumber, &n.ClientID, &n.InvoiceIDs, &n.InvoiceCount, &n.TotalAmount, &n.TotalTax,
		&n.GrandTotal, &n.DueDate, &n.IssuedDate, &n.PaymentMethod, &n.BankAccount.BankName, &n.BankAccount.BranchName,
		&n.BankAccount.AccountType, &n.BankAccount.AccountNumber, &n.BankAccount.AccountHolder, &n.Status, &n.Notes)
	return n, err
}

func (store *PostgresStorage) GetPaymentNotices(ctx context.Context, clientID string) ([]model.PaymentNotice, error) {
	query := `
		SELECT ` + noticeColumns + `
		FROM payment_notices
		WHERE ($1 = '' OR client_id = $1)
		ORDER BY issued_date DESC, notice_number DESC`

	rows, err := store.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("get payment notices: %w", err)
	}
	return collect(rows, scanNotice)
}

func (store *PostgresStorage) GetPaymentNotice(ctx context.Context, id string) (model.PaymentNotice, error) {
	n, err := scanNotice(store.db.QueryRow(ctx, `SELECT `+noticeColumns+` FROM payment_notices WHERE id = $1`, id))
	if err != nil {
		return model.PaymentNotice{}, notFound("get payment notice", err)
	}
	return n, nil
}

const insertNoticeQuery = `
	INSERT INTO payment_notices (` + noticeColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

func insertNotice(ctx context.Context, tx pgx.Tx, n model.PaymentNotice) error {
	_, err := tx.Exec(ctx, insertNoticeQuery, n.ID, n.NoticeNumber, n.ClientID, n.InvoiceIDs, n.InvoiceCount,
		n.TotalAmount, n.TotalTax, n.GrandTotal, n.DueDate, n.IssuedDate, n.PaymentMethod, n.BankAccount.BankName,
		n.BankAccount.BranchName, n.BankAccount.AccountType, n.BankAccount.AccountNumber, n.BankAccount.AccountHolder,
		n.Status, n.Notes)
	return err
}

func (store *PostgresStorage) AddPaymentNotice(ctx context.Context, n model.PaymentNotice) (model.PaymentNotice, error) {
	tx, err := store.db.Begin(ctx)
	if err != nil {
		return model.PaymentNotice{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	invoices := make([]model.Invoice, 0, len(n.InvoiceIDs))
	for _, id := range n.InvoiceIDs {
		inv, err := scanInvoice(tx.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.PaymentNotice{}, errs.NewValidationError("invoiceIds", "unknown invoice "+id)
			}
			return model.PaymentNotice{}, fmt.Errorf("get invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	built, err := derive.BuildPaymentNotice(n.ClientID, invoices, n.DueDate, n.IssuedDate, n.BankAccount)
	if err != nil {
		return model.PaymentNotice{}, err
	}
	built.Notes = n.Notes
	built.ID = uuid.NewString()
	if built.NoticeNumber, err = nextNumber(ctx, tx, noticePrefix(built.IssuedDate)); err != nil {
		return model.PaymentNotice{}, err
	}

	if err := insertNotice(ctx, tx, built); err != nil {
		return model.PaymentNotice{}, mapWriteError("insert payment notice", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.PaymentNotice{}, fmt.Errorf("commit: %w", err)
	}

	return built, nil
}

func (store *PostgresStorage) GetPayouts(ctx context.Context, salesPersonID string) ([]model.Payout, error) {
	const query = `
		SELECT id, payout_number, sales_person_id, month, base_amount, commission, total_amount, payment_date, status, notes
		FROM payouts
		WHERE ($1 = '' OR sales_person_id = $1)
		ORDER BY month DESC`

	rows, err := store.db.Query(ctx, query, salesPersonID)
	if err != nil {
		return nil, fmt.Errorf("get payouts: %w", err)
	}
	return collect(rows, func(row pgx.Row) (model.Payout, error) {
		var p model.Payout
		err := row.Scan(&p.ID, &p.PayoutNumber, &p.SalesPersonID, &p.Month, &p.BaseAmount, &p.Commission,
			&p.TotalAmount, &p.PaymentDate, &p.Status, &p.Notes)
		return p, err
	})
}
