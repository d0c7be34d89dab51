// Package cli implements the interactive ForoHub command-line client.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/forohub/internal/client/api"
	"github.com/dmitrijs2005/forohub/internal/client/config"
)

// ForumAPI is the server surface the commands use.
type ForumAPI interface {
	LoggedIn() bool
	Logout()
	Register(ctx context.Context, userName string, password []byte) (*api.User, error)
	Login(ctx context.Context, userName string, password []byte) error
	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error
	CreateTopic(ctx context.Context, title, message, course string) (*api.Topic, error)
	ListTopics(ctx context.Context, page, size int) ([]api.Topic, error)
	GetTopic(ctx context.Context, id int64) (*api.Topic, error)
	CreateResponse(ctx context.Context, topicID int64, solution string) (*api.Response, error)
	ListResponses(ctx context.Context, topicID int64) ([]api.Response, error)
}

type App struct {
	config   *config.Config
	api      ForumAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerBaseURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "anonymous"
}
