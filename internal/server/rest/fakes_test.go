package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/logging"
	"github.com/dmitrijs2005/forohub/internal/server/auth"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/dmitrijs2005/forohub/internal/server/services"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const aliceToken = "alice-token"

var alice = &models.User{ID: 1, UserName: "alice", PasswordHash: "h", Role: models.RoleUser}

// fakeResolver knows exactly one valid token.
type fakeResolver struct {
	err   error // returned for every token other than aliceToken
	calls int
}

func (f *fakeResolver) ResolveIdentity(_ context.Context, token string) (string, error) {
	f.calls++
	if token == aliceToken {
		return "alice", nil
	}
	if f.err != nil {
		return "", f.err
	}
	return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, auth.ErrSignatureMismatch)
}

type fakeUserService struct {
	registerErr error
	loginErr    error
	changeErr   error

	changedFor int64
}

func (f *fakeUserService) Register(_ context.Context, userName string, _ []byte) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: 2, UserName: userName, Role: models.RoleUser}, nil
}

func (f *fakeUserService) Login(_ context.Context, userName string, _ []byte) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "token-for-" + userName, nil
}

func (f *fakeUserService) ChangePassword(_ context.Context, userID int64, _, _ []byte) error {
	f.changedFor = userID
	return f.changeErr
}

func (f *fakeUserService) GetByUserName(_ context.Context, userName string) (*models.User, error) {
	if userName == alice.UserName {
		c := *alice
		return &c, nil
	}
	return nil, common.ErrorNotFound
}

type fakeTopicService struct {
	topics    map[int64]*models.Topic
	createErr error

	lastAuthor int64
	lastPage   int
	lastSize   int
}

func newFakeTopicService() *fakeTopicService {
	return &fakeTopicService{topics: map[int64]*models.Topic{
		10: {ID: 10, Title: "Go", Message: "channels?", Status: models.TopicOpen, AuthorID: 1, Course: "golang",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
}

func (f *fakeTopicService) Create(_ context.Context, authorID int64, title, message, course string) (*models.Topic, error) {
	f.lastAuthor = authorID
	if f.createErr != nil {
		return nil, f.createErr
	}
	t := &models.Topic{ID: 11, Title: title, Message: message, Course: course, AuthorID: authorID, Status: models.TopicOpen}
	f.topics[t.ID] = t
	return t, nil
}

func (f *fakeTopicService) Get(_ context.Context, id int64) (*models.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTopicService) List(_ context.Context, page, size int) ([]models.Topic, error) {
	f.lastPage, f.lastSize = page, size
	var out []models.Topic
	for _, t := range f.topics {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTopicService) Update(_ context.Context, id int64, upd services.TopicUpdate) (*models.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Status != "" {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("%w: bad status", common.ErrorValidation)
		}
		t.Status = upd.Status
	}
	return t, nil
}

func (f *fakeTopicService) Delete(_ context.Context, id int64) error {
	if _, ok := f.topics[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.topics, id)
	return nil
}

type fakeResponseService struct {
	err error

	lastUser  int64
	lastTopic int64
	lastDate  time.Time
}

func (f *fakeResponseService) CreateResponse(_ context.Context, userID, topicID int64, solution string, creationDate time.Time) (*models.ResponseDetail, error) {
	f.lastUser, f.lastTopic, f.lastDate = userID, topicID, creationDate
	if f.err != nil {
		return nil, f.err
	}
	return &models.ResponseDetail{
		Response:   models.Response{ID: 5, Solution: solution, AuthorID: userID, TopicID: topicID, CreatedAt: creationDate},
		AuthorName: "alice",
		TopicTitle: "Go",
	}, nil
}

func (f *fakeResponseService) ListByTopic(_ context.Context, topicID int64) ([]models.ResponseDetail, error) {
	if topicID != 10 {
		return nil, common.ErrorNotFound
	}
	return []models.ResponseDetail{
		{Response: models.Response{ID: 5, Solution: "use select", AuthorID: 1, TopicID: 10}, AuthorName: "alice", TopicTitle: "Go"},
	}, nil
}

type testServer struct {
	*HTTPServer
	resolver  *fakeResolver
	users     *fakeUserService
	topics    *fakeTopicService
	responses *fakeResponseService
	router    *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		resolver:  &fakeResolver{},
		users:     &fakeUserService{},
		topics:    newFakeTopicService(),
		responses: &fakeResponseService{},
	}
	ts.HTTPServer = NewHTTPServer(":0", time.Second, logging.Nop{}, ts.resolver, ts.users, ts.topics, ts.responses)
	ts.router = ts.Router()
	return ts
}

// do sends a request; token may be empty.
func (ts *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}
