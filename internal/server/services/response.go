package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/dbx"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/dmitrijs2005/forohub/internal/server/repositories/repomanager"
)

type ResponseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewResponseService(db *sql.DB, m repomanager.RepositoryManager) *ResponseService {
	return &ResponseService{db: db, repomanager: m, now: time.Now}
}

// CreateResponse stores a response by userID to topicID.
//
// The user is checked before the topic, so a request naming neither reports
// ErrUnknownUser. Checks and insert share one transaction; nothing is
// written when either check fails. A zero creationDate means now.
func (s *ResponseService) CreateResponse(ctx context.Context, userID, topicID int64, solution string, creationDate time.Time) (*models.ResponseDetail, error) {
	solution = strings.TrimSpace(solution)
	if solution == "" {
		return nil, validationError("solution is required")
	}
	if creationDate.IsZero() {
		creationDate = s.now()
	}

	var detail *models.ResponseDetail
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrUnknownUser
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		topic, err := s.repomanager.Topics(tx).GetByID(ctx, topicID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrUnknownTopic
			}
			return fmt.Errorf("error loading topic: %w", err)
		}

		r, err := s.repomanager.Responses(tx).Create(ctx, &models.Response{
			Solution:  solution,
			AuthorID:  user.ID,
			TopicID:   topic.ID,
			CreatedAt: creationDate,
		})
		if err != nil {
			return fmt.Errorf("error creating response: %w", err)
		}

		detail = &models.ResponseDetail{Response: *r, AuthorName: user.UserName, TopicTitle: topic.Title}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// ListByTopic returns the responses to topicID; an unknown topic yields
// common.ErrorNotFound.
func (s *ResponseService) ListByTopic(ctx context.Context, topicID int64) ([]models.ResponseDetail, error) {
	if _, err := s.repomanager.Topics(s.db).GetByID(ctx, topicID); err != nil {
		return nil, err
	}
	return s.repomanager.Responses(s.db).ListByTopic(ctx, topicID)
}
