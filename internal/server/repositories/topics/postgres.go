// Package topics provides the PostgreSQL-backed topic store.
package topics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/dbx"
	"github.com/dmitrijs2005/forohub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	query :=
		`INSERT INTO topics (title, message, status, author_id, course)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		topic.Title, topic.Message, string(topic.Status), topic.AuthorID, topic.Course).Scan(&topic.ID, &topic.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return topic, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	query :=
		`SELECT id, title, message, status, author_id, course, created_at FROM topics
		 WHERE id = $1
		 `

	t := &models.Topic{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Title, &t.Message, &t.Status, &t.AuthorID, &t.Course, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

// List returns topics oldest first.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]models.Topic, error) {
	query :=
		`SELECT id, title, message, status, author_id, course, created_at FROM topics
		 ORDER BY created_at, id
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Topic, 0)
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Message, &t.Status, &t.AuthorID, &t.Course, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ExistsByTitleAndMessage(ctx context.Context, title, message string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM topics WHERE title = $1 AND message = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, title, message).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) Update(ctx context.Context, topic *models.Topic) error {
	query :=
		`UPDATE topics SET title = $1, message = $2, status = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, topic.Title, topic.Message, string(topic.Status), topic.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return affectedOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
