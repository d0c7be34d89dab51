package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/logging"
	"github.com/dmitrijs2005/forohub/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	policyKey    = "route_policy"
)

// requestID tags the request with the caller's X-Request-ID or a fresh UUID.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		s.recorder.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), latency)
		s.requestLogger(c).Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency.String(),
		)
	}
}

// authenticate attaches the caller's user to the request context when a
// valid bearer token is present. It never writes a response: failures leave
// the request unauthenticated and authorize decides what to do with it.
func (s *HTTPServer) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		policy := PolicyFor(c.Request.Method, c.Request.URL.Path)
		c.Set(policyKey, policy)

		if policy == Public {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := s.requestLogger(c)

		subject, err := s.tokens.ResolveIdentity(ctx, token)
		if err != nil {
			s.recorder.TokenRejected(auth.Reason(err))
			if errors.Is(err, common.ErrInvalidToken) {
				log.Warn(ctx, "token rejected", "reason", err.Error())
			} else {
				log.Error(ctx, "token verification failed", "error", err)
			}
			c.Next()
			return
		}

		user, err := s.users.GetByUserName(ctx, subject)
		if err != nil {
			log.Warn(ctx, "authenticated user not loaded", "subject", subject, "error", err)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(auth.WithUser(ctx, user))
		c.Next()
	}
}

// authorize rejects requests to non-public routes that carry no identity.
func (s *HTTPServer) authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy, _ := c.Get(policyKey); policy == Public {
			c.Next()
			return
		}
		if _, ok := auth.UserFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (s *HTTPServer) requestLogger(c *gin.Context) logging.Logger {
	return s.logger.With(requestIDKey, c.GetString(requestIDKey))
}
