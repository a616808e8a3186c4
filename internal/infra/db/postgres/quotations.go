package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation"
)

const uniqueViolation = "23505"

const selectQuotation = `
SELECT id, quotation_no, date, customer_name, customer_address, bike_reg_no,
       items, total_amount, remarks, created_at
FROM quotations`

// QuotationStore persists quotations in a single table, with line items as a
// jsonb column and a unique index on quotation_no.
type QuotationStore struct {
	db *DB
}

func NewQuotationStore(db *DB) *QuotationStore { return &QuotationStore{db: db} }

func (s *QuotationStore) Insert(ctx context.Context, q *quotation.Quotation) error {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO quotations (id, quotation_no, date, customer_name, customer_address,
		                        bike_reg_no, items, total_amount, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10)`,
		q.ID, q.QuotationNo, q.Date.Time, q.CustomerName, q.CustomerAddress,
		q.BikeRegNo, string(items), q.TotalAmount, q.Remarks, q.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return quotation.ErrDuplicateNumber
		}
		return err
	}
	return nil
}

func (s *QuotationStore) NumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM quotations WHERE quotation_no = $1)`, number).Scan(&exists)
	return exists, err
}

func (s *QuotationStore) List(ctx context.Context) ([]quotation.Quotation, error) {
	rows, err := s.db.Pool.Query(ctx, selectQuotation+` ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]quotation.Quotation, 0)
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *q)
	}
	return list, rows.Err()
}

func (s *QuotationStore) GetByID(ctx context.Context, id uuid.UUID) (*quotation.Quotation, error) {
	return s.getOne(ctx, selectQuotation+` WHERE id = $1`, id)
}

func (s *QuotationStore) GetByNumber(ctx context.Context, number string) (*quotation.Quotation, error) {
	return s.getOne(ctx, selectQuotation+` WHERE quotation_no = $1`, number)
}

func (s *QuotationStore) getOne(ctx context.Context, query string, arg any) (*quotation.Quotation, error) {
	q, err := scanQuotation(s.db.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, quotation.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuotationStore) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM quotations`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanQuotation(row pgx.Row) (*quotation.Quotation, error) {
	var (
		q     quotation.Quotation
		items []byte
	)
	if err := row.Scan(&q.ID, &q.QuotationNo, &q.Date.Time, &q.CustomerName, &q.CustomerAddress,
		&q.BikeRegNo, &items, &q.TotalAmount, &q.Remarks, &q.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &q.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &q, nil
}
