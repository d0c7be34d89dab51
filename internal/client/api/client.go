// Package api is the HTTP client for the ForoHub JSON API used by the CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/forohub/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// Client talks to one ForoHub server. After Login it remembers the token and
// sends it with every request.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type User struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	Role     string `json:"role"`
}

type Topic struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	CreationDate time.Time `json:"creation_date"`
	Status       string    `json:"status"`
	AuthorID     int64     `json:"author_id"`
	Course       string    `json:"course"`
}

type Response struct {
	ID           int64     `json:"id"`
	Solution     string    `json:"solution"`
	AuthorID     int64     `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	TopicID      int64     `json:"topic_id"`
	TopicTitle   string    `json:"topic_title"`
	CreationDate time.Time `json:"creation_date"`
}

func (c *Client) LoggedIn() bool { return c.token != "" }

func (c *Client) Logout() { c.token = "" }

func (c *Client) Register(ctx context.Context, userName string, password []byte) (*User, error) {
	var u User
	body := map[string]string{"username": userName, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/register", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, userName string, password []byte) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": userName, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// ChangePassword changes the caller's password. The current token stops
// working, so the client is logged out on success.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	body := map[string]string{"old_password": string(oldPassword), "new_password": string(newPassword)}
	if err := c.do(ctx, http.MethodPut, "/users/me/password", body, nil); err != nil {
		return err
	}
	c.Logout()
	return nil
}

func (c *Client) CreateTopic(ctx context.Context, title, message, course string) (*Topic, error) {
	var t Topic
	body := map[string]string{"title": title, "message": message, "course": course}
	if err := c.do(ctx, http.MethodPost, "/topics", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) ListTopics(ctx context.Context, page, size int) ([]Topic, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out []Topic
	if err := c.do(ctx, http.MethodGet, "/topics?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTopic(ctx context.Context, id int64) (*Topic, error) {
	var t Topic
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/topics/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateResponse(ctx context.Context, topicID int64, solution string) (*Response, error) {
	var r Response
	body := map[string]any{"id_topic": topicID, "solution": solution}
	if err := c.do(ctx, http.MethodPost, "/responses", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListResponses(ctx context.Context, topicID int64) ([]Response, error) {
	var out []Response
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/topics/%d/responses", topicID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps an error status onto the shared sentinels, keeping the
// server's message for 400s.
func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, payload.Error)
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("%w: status %d", common.ErrorInternal, resp.StatusCode)
	}
}
