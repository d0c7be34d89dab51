package services

import (
	"context"
	"math"
	"testing"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTopicServiceWith(t *testing.T, users *fakeUsersRepo, topics *fakeTopicsRepo) *TopicService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewTopicService(db, &fakeRepoManager{u: users, t: topics})
}

func seededTopic() *models.Topic {
	return &models.Topic{ID: 1, Title: "Go", Message: "channels?", Status: models.TopicOpen, AuthorID: 1, Course: "golang"}
}

func TestTopicCreate(t *testing.T) {
	alice := &models.User{ID: 1, UserName: "alice"}

	t.Run("success", func(t *testing.T) {
		topics := newFakeTopicsRepo()
		s := newTopicServiceWith(t, newFakeUsersRepo(alice), topics)

		got, err := s.Create(context.Background(), 1, " Go ", "channels?", "golang")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "Go", got.Title)
		assert.Equal(t, models.TopicOpen, got.Status)
		assert.Len(t, topics.byID, 1)
	})

	t.Run("missing fields", func(t *testing.T) {
		s := newTopicServiceWith(t, newFakeUsersRepo(alice), newFakeTopicsRepo())

		_, err := s.Create(context.Background(), 1, "Go", "", "golang")
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("unknown author", func(t *testing.T) {
		topics := newFakeTopicsRepo()
		s := newTopicServiceWith(t, newFakeUsersRepo(alice), topics)

		_, err := s.Create(context.Background(), 9, "Go", "channels?", "golang")
		assert.ErrorIs(t, err, ErrUnknownUser)
		assert.ErrorIs(t, err, common.ErrorIntegrity)
		assert.Empty(t, topics.byID)
	})

	t.Run("duplicate title and message", func(t *testing.T) {
		s := newTopicServiceWith(t, newFakeUsersRepo(alice), newFakeTopicsRepo(seededTopic()))

		_, err := s.Create(context.Background(), 1, "Go", "channels?", "other")
		assert.ErrorIs(t, err, ErrDuplicateTopic)
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		topics := newFakeTopicsRepo()
		topics.createErr = common.ErrorAlreadyExists
		s := newTopicServiceWith(t, newFakeUsersRepo(alice), topics)

		_, err := s.Create(context.Background(), 1, "Go", "channels?", "golang")
		assert.ErrorIs(t, err, ErrDuplicateTopic)
	})
}

func TestTopicList_Paging(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, DefaultPageSize, 0},
		{"second page", 1, 5, 5, 5},
		{"clamped size", 2, 1000, MaxPageSize, 2 * MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics := newFakeTopicsRepo()
			s := newTopicServiceWith(t, newFakeUsersRepo(), topics)

			_, err := s.List(context.Background(), tt.page, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, topics.lastLimit)
			assert.Equal(t, tt.wantOffset, topics.lastOffset)
		})
	}

	s := newTopicServiceWith(t, newFakeUsersRepo(), newFakeTopicsRepo())
	_, err := s.List(context.Background(), -1, 10)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.List(context.Background(), math.MaxInt/5, 10)
	assert.ErrorIs(t, err, common.ErrorValidation, "offset would overflow")
}

func TestTopicGetAndDelete(t *testing.T) {
	topics := newFakeTopicsRepo(seededTopic())
	s := newTopicServiceWith(t, newFakeUsersRepo(), topics)
	ctx := context.Background()

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Title)

	require.NoError(t, s.Delete(ctx, 1))

	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 1), common.ErrorNotFound)
}

func TestTopicUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		topics := newFakeTopicsRepo(seededTopic())
		s := newTopicServiceWith(t, newFakeUsersRepo(), topics)

		got, err := s.Update(ctx, 1, TopicUpdate{Status: models.TopicSolved})
		require.NoError(t, err)
		assert.Equal(t, models.TopicSolved, got.Status)
		assert.Equal(t, "Go", got.Title)
		assert.Equal(t, models.TopicSolved, topics.byID[1].Status)
	})

	t.Run("new title", func(t *testing.T) {
		topics := newFakeTopicsRepo(seededTopic())
		s := newTopicServiceWith(t, newFakeUsersRepo(), topics)

		got, err := s.Update(ctx, 1, TopicUpdate{Title: "Go 1.24"})
		require.NoError(t, err)
		assert.Equal(t, "Go 1.24", got.Title)
		assert.Equal(t, "channels?", got.Message)
	})

	t.Run("invalid status", func(t *testing.T) {
		s := newTopicServiceWith(t, newFakeUsersRepo(), newFakeTopicsRepo(seededTopic()))

		_, err := s.Update(ctx, 1, TopicUpdate{Status: "ARCHIVED"})
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("collides with another topic", func(t *testing.T) {
		other := &models.Topic{ID: 2, Title: "Rust", Message: "channels?", Status: models.TopicOpen}
		s := newTopicServiceWith(t, newFakeUsersRepo(), newFakeTopicsRepo(seededTopic(), other))

		_, err := s.Update(ctx, 1, TopicUpdate{Title: "Rust"})
		assert.ErrorIs(t, err, ErrDuplicateTopic)
	})

	t.Run("missing topic", func(t *testing.T) {
		s := newTopicServiceWith(t, newFakeUsersRepo(), newFakeTopicsRepo())

		_, err := s.Update(ctx, 42, TopicUpdate{Title: "x"})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}
