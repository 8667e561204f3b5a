package suppliers

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vendata/vendata/internal/shared"
)

// PerPage is the fixed listing page size.
const PerPage = 10

// Supplier represents a supplier business record.
type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Contact   string    `json:"contact"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListQuery carries the listing filter, sort and page parameters.
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
}

// Normalize fills the defaults so that equivalent queries compare and
// cache identically whether or not the defaults were explicit.
func (q ListQuery) Normalize() ListQuery {
	if q.SortOrder == "" {
		q.SortOrder = "asc"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// CacheKey derives a deterministic fixed-width digest of the effective
// query parameters.
func (q ListQuery) CacheKey() string {
	q = q.Normalize()
	raw := fmt.Sprintf("suppliers:search=%s;sort_by=%s;sort_order=%s;page=%d", q.Search, q.SortBy, q.SortOrder, q.Page)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Page is one listing page plus its pagination metadata.
type Page struct {
	shared.Pagination
	Items []Supplier `json:"data"`
}

// NewPage assembles a listing page for the given query results.
func NewPage(items []Supplier, total, page int) *Page {
	if items == nil {
		items = []Supplier{}
	}
	return &Page{
		Pagination: shared.NewPagination(page, PerPage, total),
		Items:      items,
	}
}
