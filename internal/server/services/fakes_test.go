package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/dbx"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	responsesrepo "github.com/dmitrijs2005/forohub/internal/server/repositories/responses"
	topicsrepo "github.com/dmitrijs2005/forohub/internal/server/repositories/topics"
	usersrepo "github.com/dmitrijs2005/forohub/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var errBoom = errors.New("boom")

type fakeUsersRepo struct {
	byID   map[int64]*models.User
	nextID int64
	err    error // returned by every call when set
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byID: map[int64]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.UserName == u.UserName {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	c := *u
	c.ID = f.nextID
	f.byID[c.ID] = &c
	return &c, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.UserName == login {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

type fakeTopicsRepo struct {
	byID   map[int64]*models.Topic
	nextID int64
	err    error

	createErr error

	lastLimit, lastOffset int
}

func newFakeTopicsRepo(topics ...*models.Topic) *fakeTopicsRepo {
	f := &fakeTopicsRepo{byID: map[int64]*models.Topic{}}
	for _, t := range topics {
		f.byID[t.ID] = t
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeTopicsRepo) Create(_ context.Context, t *models.Topic) (*models.Topic, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c := *t
	c.ID = f.nextID
	f.byID[c.ID] = &c
	return &c, nil
}

func (f *fakeTopicsRepo) GetByID(_ context.Context, id int64) (*models.Topic, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTopicsRepo) List(_ context.Context, limit, offset int) ([]models.Topic, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Topic
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		out = append(out, *f.byID[ids[i]])
	}
	return out, nil
}

func (f *fakeTopicsRepo) ExistsByTitleAndMessage(_ context.Context, title, message string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, t := range f.byID {
		if t.Title == title && t.Message == message {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTopicsRepo) Update(_ context.Context, t *models.Topic) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[t.ID]; !ok {
		return common.ErrorNotFound
	}
	c := *t
	f.byID[t.ID] = &c
	return nil
}

func (f *fakeTopicsRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeResponsesRepo struct {
	created []models.Response
	list    []models.ResponseDetail
	err     error
}

func (f *fakeResponsesRepo) Create(_ context.Context, r *models.Response) (*models.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := *r
	c.ID = int64(len(f.created) + 1)
	f.created = append(f.created, c)
	return &c, nil
}

func (f *fakeResponsesRepo) ListByTopic(_ context.Context, topicID int64) ([]models.ResponseDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ResponseDetail
	for _, d := range f.list {
		if d.TopicID == topicID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTopicsRepo
	r *fakeResponsesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Topics(dbx.DBTX) topicsrepo.Repository       { return m.t }
func (m *fakeRepoManager) Responses(dbx.DBTX) responsesrepo.Repository { return m.r }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}
