package database

import (
	"context"
	"errors"

	"quotes-server/internal/models"

	"github.com/jackc/pgx/v5"
)

func (q *Queries) ListAuthors(ctx context.Context) ([]models.Author, error) {
	query := `
		SELECT id, name, bio, created_at
		FROM authors
		ORDER BY name
	`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		var author models.Author
		err := rows.Scan(
			&author.ID,
			&author.Name,
			&author.Bio,
			&author.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if authors == nil {
		return []models.Author{}, nil
	}

	return authors, nil
}

func (q *Queries) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {
	query := `
		SELECT id, name, bio, created_at
		FROM authors
		WHERE id = $1
	`
	var author models.Author

	err := q.db.QueryRow(ctx, query, id).Scan(
		&author.ID,
		&author.Name,
		&author.Bio,
		&author.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &author, nil
}

type CreateAuthorParams struct {
	Name string
	Bio  *string
}

func (q *Queries) CreateAuthor(ctx context.Context, arg CreateAuthorParams) (*models.Author, error) {
	query := `
		INSERT INTO authors (name, bio)
		VALUES ($1, $2)
		RETURNING id, name, bio, created_at
	`
	var author models.Author

	err := q.db.QueryRow(ctx, query, arg.Name, arg.Bio).Scan(
		&author.ID,
		&author.Name,
		&author.Bio,
		&author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &author, nil
}
