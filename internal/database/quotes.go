package database

import (
	"context"
	"strings"

	"quotes-server/internal/models"
	"quotes-server/internal/tags"

	"github.com/jackc/pgx/v5"
)

// QuotesPerPage is the fixed page size for every paginated quote listing.
const QuotesPerPage = 20

// QuotePage is one page of quotes plus the pager state the templates need.
type QuotePage struct {
	Quotes     []models.Quote
	Page       int
	TotalPages int
	Query      string
}

func (p *QuotePage) HasPrev() bool { return p.Page > 1 }
func (p *QuotePage) HasNext() bool { return p.Page < p.TotalPages }
func (p *QuotePage) PrevPage() int { return p.Page - 1 }
func (p *QuotePage) NextPage() int { return p.Page + 1 }

const quoteColumns = `
	q.id, q.text, q.tags, q.author_id, a.name AS author_name, q.created_at
`

func scanQuotes(rows pgx.Rows) ([]models.Quote, error) {
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var quote models.Quote
		err := rows.Scan(
			&quote.ID,
			&quote.Text,
			&quote.Tags,
			&quote.AuthorID,
			&quote.AuthorName,
			&quote.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if quotes == nil {
		return []models.Quote{}, nil
	}

	return quotes, nil
}

// ListQuotesPage returns the requested page in catalog order. Out-of-range
// pages clamp to the nearest valid page instead of failing; a catalog with
// no quotes still reports one (empty) page.
func (q *Queries) ListQuotesPage(ctx context.Context, page int) (*QuotePage, error) {
	return q.SearchQuotesPage(ctx, "", page)
}

// escapeLike neutralizes LIKE metacharacters so the query is matched as a
// literal substring, never as a pattern. Backslash is the default ESCAPE
// character in Postgres.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SearchQuotesPage filters quotes whose raw tags field contains the query
// as a case-insensitive substring, paginated like ListQuotesPage. An empty
// query means no filter.
func (q *Queries) SearchQuotesPage(ctx context.Context, query string, page int) (*QuotePage, error) {
	escaped := escapeLike(query)

	countSQL := `SELECT count(*) FROM quotes WHERE $1 = '' OR tags ILIKE '%' || $1 || '%'`

	var total int
	if err := q.db.QueryRow(ctx, countSQL, escaped).Scan(&total); err != nil {
		return nil, err
	}

	totalPages := (total + QuotesPerPage - 1) / QuotesPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	listSQL := `
		SELECT ` + quoteColumns + `
		FROM quotes q
		JOIN authors a ON a.id = q.author_id
		WHERE $1 = '' OR q.tags ILIKE '%' || $1 || '%'
		ORDER BY q.id
		LIMIT $2 OFFSET $3
	`
	rows, err := q.db.Query(ctx, listSQL, escaped, QuotesPerPage, (page-1)*QuotesPerPage)
	if err != nil {
		return nil, err
	}

	quotes, err := scanQuotes(rows)
	if err != nil {
		return nil, err
	}

	return &QuotePage{
		Quotes:     quotes,
		Page:       page,
		TotalPages: totalPages,
		Query:      query,
	}, nil
}

// TopQuotes returns the n most recently added quotes, newest first.
func (q *Queries) TopQuotes(ctx context.Context, n int) ([]models.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes q
		JOIN authors a ON a.id = q.author_id
		ORDER BY q.id DESC
		LIMIT $1
	`
	rows, err := q.db.Query(ctx, query, n)
	if err != nil {
		return nil, err
	}
	return scanQuotes(rows)
}

func (q *Queries) ListQuotesByAuthor(ctx context.Context, authorID int64) ([]models.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes q
		JOIN authors a ON a.id = q.author_id
		WHERE q.author_id = $1
		ORDER BY q.id
	`
	rows, err := q.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	return scanQuotes(rows)
}

// UniqueTags reads every quote's raw tags field and derives the sorted
// distinct tag listing.
func (q *Queries) UniqueTags(ctx context.Context) ([]string, error) {
	query := `SELECT tags FROM quotes`

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []string
	for rows.Next() {
		var field string
		if err := rows.Scan(&field); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags.Unique(fields), nil
}

type CreateQuoteParams struct {
	Text     string
	Tags     string
	AuthorID int64
}

func (q *Queries) CreateQuote(ctx context.Context, arg CreateQuoteParams) (*models.Quote, error) {
	query := `
		INSERT INTO quotes (text, tags, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, text, tags, author_id, created_at
	`
	var quote models.Quote

	err := q.db.QueryRow(ctx, query, arg.Text, arg.Tags, arg.AuthorID).Scan(
		&quote.ID,
		&quote.Text,
		&quote.Tags,
		&quote.AuthorID,
		&quote.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &quote, nil
}
