package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/dmitrijs2005/forohub/internal/server/repositories/repomanager"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type TopicService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTopicService(db *sql.DB, m repomanager.RepositoryManager) *TopicService {
	return &TopicService{db: db, repomanager: m}
}

// TopicUpdate lists the fields to change; empty values keep the current ones.
type TopicUpdate struct {
	Title   string
	Message string
	Status  models.TopicStatus
}

// Create opens a new topic. The author must exist and the title/message
// pair must be unused.
func (s *TopicService) Create(ctx context.Context, authorID int64, title, message, course string) (*models.Topic, error) {
	title, message, course = strings.TrimSpace(title), strings.TrimSpace(message), strings.TrimSpace(course)
	if title == "" || message == "" || course == "" {
		return nil, validationError("title, message and course are required")
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, authorID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("error loading author: %w", err)
	}

	repo := s.repomanager.Topics(s.db)

	exists, err := repo.ExistsByTitleAndMessage(ctx, title, message)
	if err != nil {
		return nil, fmt.Errorf("error checking topic: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTopic
	}

	topic, err := repo.Create(ctx, &models.Topic{
		Title:    title,
		Message:  message,
		Status:   models.TopicOpen,
		AuthorID: authorID,
		Course:   course,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrDuplicateTopic
		}
		return nil, fmt.Errorf("error creating topic: %w", err)
	}
	return topic, nil
}

func (s *TopicService) Get(ctx context.Context, id int64) (*models.Topic, error) {
	return s.repomanager.Topics(s.db).GetByID(ctx, id)
}

// List returns one page of topics. page is zero-based; size is clamped to
// 1..MaxPageSize, with 0 meaning DefaultPageSize.
func (s *TopicService) List(ctx context.Context, page, size int) ([]models.Topic, error) {
	if page < 0 {
		return nil, validationError("page must not be negative")
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	if page > math.MaxInt/size {
		return nil, validationError("page is out of range")
	}
	return s.repomanager.Topics(s.db).List(ctx, size, page*size)
}

func (s *TopicService) Update(ctx context.Context, id int64, upd TopicUpdate) (*models.Topic, error) {
	repo := s.repomanager.Topics(s.db)

	topic, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changedText := false
	if t := strings.TrimSpace(upd.Title); t != "" && t != topic.Title {
		topic.Title, changedText = t, true
	}
	if m := strings.TrimSpace(upd.Message); m != "" && m != topic.Message {
		topic.Message, changedText = m, true
	}
	if upd.Status != "" {
		if !upd.Status.Valid() {
			return nil, validationError("status must be OPEN, CLOSED or SOLVED")
		}
		topic.Status = upd.Status
	}

	if changedText {
		exists, err := repo.ExistsByTitleAndMessage(ctx, topic.Title, topic.Message)
		if err != nil {
			return nil, fmt.Errorf("error checking topic: %w", err)
		}
		if exists {
			return nil, ErrDuplicateTopic
		}
	}

	if err := repo.Update(ctx, topic); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrDuplicateTopic
		}
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Topics(s.db).Delete(ctx, id)
}
