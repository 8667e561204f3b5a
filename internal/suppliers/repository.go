package suppliers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendata/vendata/internal/shared"
)

// Repository is the persistence boundary for supplier records. A
// uniqueness violation on the tax id surfaces as shared.ErrDuplicate so
// callers can produce a specific user message.
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Supplier, int, error)
	Get(ctx context.Context, id int64) (Supplier, error)
	Create(ctx context.Context, supplier Supplier) (Supplier, error)
	Update(ctx context.Context, id int64, supplier Supplier) (Supplier, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// List returns one page of suppliers plus the total match count. The
// search term is a case-sensitive substring matched against name,
// tax id, contact and address (any of the four). Without an explicit
// sort the order is insertion order (ORDER BY id).
func (r *repository) List(ctx context.Context, q ListQuery) ([]Supplier, int, error) {
	q = q.Normalize()

	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE name LIKE $1 OR tax_id LIKE $1 OR contact LIKE $1 OR address LIKE $1`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, tax_id, contact, address, created_at, updated_at FROM suppliers` + where +
		` ORDER BY ` + sortOrder(q.SortBy, q.SortOrder)

	argCount := len(args)
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, PerPage)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (q.Page-1)*PerPage)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Contact, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Supplier, error) {
	query := `SELECT id, name, tax_id, contact, address, created_at, updated_at FROM suppliers WHERE id = $1`
	var s Supplier
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.TaxID, &s.Contact, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Supplier{}, translateErr(err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	query := `INSERT INTO suppliers (name, tax_id, contact, address, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`
	now := time.Now().UTC()
	if err := r.db.QueryRow(ctx, query, supplier.Name, supplier.TaxID, supplier.Contact, supplier.Address, now).Scan(&supplier.ID); err != nil {
		return Supplier{}, translateErr(err)
	}
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	return supplier, nil
}

func (r *repository) Update(ctx context.Context, id int64, supplier Supplier) (Supplier, error) {
	query := `UPDATE suppliers SET name = $1, tax_id = $2, contact = $3, address = $4, updated_at = $5 WHERE id = $6 RETURNING created_at`
	now := time.Now().UTC()
	if err := r.db.QueryRow(ctx, query, supplier.Name, supplier.TaxID, supplier.Contact, supplier.Address, now, id).Scan(&supplier.CreatedAt); err != nil {
		return Supplier{}, translateErr(err)
	}
	supplier.ID = id
	supplier.UpdatedAt = now
	return supplier, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// sortOrder whitelists the sortable columns. Unknown fields fall back
// to insertion order.
func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "tax_id":
		return "tax_id " + dir
	case "contact":
		return "contact " + dir
	case "address":
		return "address " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "id ASC"
	}
}

func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.ErrNotFound
	}
	return err
}

var _ Repository = (*repository)(nil)
