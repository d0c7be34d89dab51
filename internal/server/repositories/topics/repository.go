package topics

import (
	"context"

	"github.com/dmitrijs2005/forohub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	GetByID(ctx context.Context, id int64) (*models.Topic, error)
	List(ctx context.Context, limit, offset int) ([]models.Topic, error)
	ExistsByTitleAndMessage(ctx context.Context, title, message string) (bool, error)
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id int64) error
}
