package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitraworks/vitra/internal/domain"
)

// OrderStore implements domain.OrderStore using PostgreSQL.
//
// Scalar columns carry the fields we filter and sort on; the item list,
// payment ledger and financials snapshot are JSONB documents written
// whole on every update.
type OrderStore struct {
	pool *pgxpool.Pool
}

var _ domain.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates a new OrderStore instance.
func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// orderDoc is the JSONB column payload for one order row.
type orderDoc struct {
	Items           []domain.OrderLineItem   `json:"items"`
	Payments        []domain.Payment         `json:"payments"`
	InvoiceDiscount domain.Discount          `json:"invoiceDiscount"`
	TaxEnabled      bool                     `json:"taxEnabled"`
	TaxRate         int64                    `json:"taxRate"`
	Financials      domain.InvoiceFinancials `json:"financials"`
	InvoiceNotes    string                   `json:"invoiceNotes,omitempty"`
}

func encodeOrderDoc(order *domain.Order) ([]byte, error) {
	doc := orderDoc{
		Items:           order.Items,
		Payments:        order.Payments,
		InvoiceDiscount: order.InvoiceDiscount,
		TaxEnabled:      order.TaxEnabled,
		TaxRate:         order.TaxRate,
		Financials:      order.Financials,
		InvoiceNotes:    order.InvoiceNotes,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order document: %w", err)
	}
	return data, nil
}

func (o *orderDoc) apply(order *domain.Order) {
	order.Items = o.Items
	order.Payments = o.Payments
	order.InvoiceDiscount = o.InvoiceDiscount
	order.TaxEnabled = o.TaxEnabled
	order.TaxRate = o.TaxRate
	order.Financials = o.Financials
	order.InvoiceNotes = o.InvoiceNotes
	if order.Items == nil {
		order.Items = []domain.OrderLineItem{}
	}
	if order.Payments == nil {
		order.Payments = []domain.Payment{}
	}
}

// Create persists a new order.
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	data, err := encodeOrderDoc(order)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO orders (id, code, customer_name, phone, order_date, source, status, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.OrderCode, order.CustomerName, order.Phone,
		order.Date, order.Source, order.Status, data,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Errorf(domain.ECONFLICT, "order.create", "Order code %s already exists", order.OrderCode)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

const orderColumns = `id, code, customer_name, phone, order_date, source, status, doc, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order domain.Order
		data  []byte
	)
	err := row.Scan(
		&order.ID, &order.OrderCode, &order.CustomerName, &order.Phone,
		&order.Date, &order.Source, &order.Status, &data,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	var doc orderDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode order document: %w", err)
	}
	doc.apply(&order)
	return &order, nil
}

// Get returns an order by id.
func (s *OrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := scanOrder(s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// GetByCode returns an order by its order code.
func (s *OrderStore) GetByCode(ctx context.Context, code string) (*domain.Order, error) {
	order, err := scanOrder(s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE code = $1`, code,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by code: %w", err)
	}
	return order, nil
}

// List returns orders newest first. Archived orders are excluded unless
// includeArchived is set.
func (s *OrderStore) List(ctx context.Context, includeArchived bool, limit, offset int32) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// Update replaces a persisted order.
func (s *OrderStore) Update(ctx context.Context, order *domain.Order) error {
	data, err := encodeOrderDoc(order)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET code = $2, customer_name = $3, phone = $4, order_date = $5,
		    source = $6, status = $7, doc = $8, updated_at = $9
		WHERE id = $1`,
		order.ID, order.OrderCode, order.CustomerName, order.Phone,
		order.Date, order.Source, order.Status, data, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Delete removes an order permanently.
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// NextDailySequence atomically increments and returns the 1-based order
// sequence for the given civil date. The upsert makes concurrent order
// creation hand out distinct numbers without an explicit lock.
func (s *OrderStore) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	var seq int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO order_sequences (day, seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE
		SET seq = order_sequences.seq + 1
		RETURNING seq`,
		day.Format("2006-01-02"),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to advance daily sequence: %w", err)
	}
	return seq, nil
}
