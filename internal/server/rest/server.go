// Package rest exposes the ForoHub HTTP JSON API on top of gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/forohub/internal/logging"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/dmitrijs2005/forohub/internal/server/services"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// UserService is what the handlers and the authentication filter need from
// the user service.
type UserService interface {
	Register(ctx context.Context, userName string, password []byte) (*models.User, error)
	Login(ctx context.Context, userName string, password []byte) (string, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword []byte) error
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
}

type TopicService interface {
	Create(ctx context.Context, authorID int64, title, message, course string) (*models.Topic, error)
	Get(ctx context.Context, id int64) (*models.Topic, error)
	List(ctx context.Context, page, size int) ([]models.Topic, error)
	Update(ctx context.Context, id int64, upd services.TopicUpdate) (*models.Topic, error)
	Delete(ctx context.Context, id int64) error
}

type ResponseService interface {
	CreateResponse(ctx context.Context, userID, topicID int64, solution string, creationDate time.Time) (*models.ResponseDetail, error)
	ListByTopic(ctx context.Context, topicID int64) ([]models.ResponseDetail, error)
}

// IdentityResolver verifies a bearer token and returns its subject.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (string, error)
}

// Recorder receives request and token verification outcomes.
type Recorder interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	TokenRejected(reason string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, string, int, time.Duration) {}
func (nopRecorder) TokenRejected(string)                              {}

type Option func(*HTTPServer)

// WithRecorder reports request and token metrics to r.
func WithRecorder(r Recorder) Option {
	return func(s *HTTPServer) { s.recorder = r }
}

type HTTPServer struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	recorder        Recorder
	tokens          IdentityResolver
	users           UserService
	topics          TopicService
	responses       ResponseService
}

func NewHTTPServer(address string, shutdownTimeout time.Duration, l logging.Logger,
	tokens IdentityResolver, us UserService, ts TopicService, rs ResponseService, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		recorder:        nopRecorder{},
		tokens:          tokens,
		users:           us,
		topics:          ts,
		responses:       rs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with every middleware and route installed.
func (s *HTTPServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), gzip.Gzip(gzip.DefaultCompression))
	router.Use(s.requestID(), s.accessLog(), s.authenticate(), s.authorize())

	router.POST("/register", s.register)
	router.POST("/login", s.login)
	router.PUT("/users/me/password", s.changePassword)

	router.POST("/topics", s.createTopic)
	router.GET("/topics", s.listTopics)
	router.GET("/topics/:id", s.getTopic)
	router.PUT("/topics/:id", s.updateTopic)
	router.DELETE("/topics/:id", s.deleteTopic)
	router.GET("/topics/:id/responses", s.listResponses)

	router.POST("/responses", s.createResponse)

	router.GET("/v3/api-docs", s.apiDocs)
	router.GET("/v3/api-docs/swagger-config", s.swaggerConfig)
	router.GET("/swagger-ui.html", s.swaggerUI)
	router.GET("/swagger-ui/index.html", s.swaggerUI)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
