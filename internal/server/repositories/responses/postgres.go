// Package responses provides the PostgreSQL-backed store for topic responses.
package responses

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/forohub/internal/dbx"
	"github.com/dmitrijs2005/forohub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, response *models.Response) (*models.Response, error) {
	query :=
		`INSERT INTO responses (solution, author_id, topic_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		response.Solution, response.AuthorID, response.TopicID, response.CreatedAt).Scan(&response.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return response, nil
}

// ListByTopic returns the responses of a topic oldest first, with author
// names and the topic title filled in.
func (r *PostgresRepository) ListByTopic(ctx context.Context, topicID int64) ([]models.ResponseDetail, error) {
	query :=
		`SELECT r.id, r.solution, r.author_id, r.topic_id, r.created_at, u.username, t.title
		 FROM responses r
		 JOIN users u ON u.id = r.author_id
		 JOIN topics t ON t.id = r.topic_id
		 WHERE r.topic_id = $1
		 ORDER BY r.created_at, r.id
		 `

	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.ResponseDetail, 0)
	for rows.Next() {
		var d models.ResponseDetail
		if err := rows.Scan(&d.ID, &d.Solution, &d.AuthorID, &d.TopicID, &d.CreatedAt, &d.AuthorName, &d.TopicTitle); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
