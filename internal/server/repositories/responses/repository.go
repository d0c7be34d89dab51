package responses

import (
	"context"

	"github.com/dmitrijs2005/forohub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, response *models.Response) (*models.Response, error)
	ListByTopic(ctx context.Context, topicID int64) ([]models.ResponseDetail, error)
}
