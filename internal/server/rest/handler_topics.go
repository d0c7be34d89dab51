package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/forohub/internal/server/auth"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/dmitrijs2005/forohub/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) createTopic(c *gin.Context) {
	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "title, message and course are required")
		return
	}

	authorID := s.actingUserID(c, req.UserID)

	topic, err := s.topics.Create(c.Request.Context(), authorID, req.Title, req.Message, req.Course)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTopicResponse(topic))
}

func (s *HTTPServer) listTopics(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		badRequest(c, "page must be a number")
		return
	}
	size, err := queryInt(c, "size")
	if err != nil {
		badRequest(c, "size must be a number")
		return
	}

	topics, err := s.topics.List(c.Request.Context(), page, size)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]topicResponse, 0, len(topics))
	for i := range topics {
		out = append(out, newTopicResponse(&topics[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) getTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	topic, err := s.topics.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTopicResponse(topic))
}

func (s *HTTPServer) updateTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed body")
		return
	}

	topic, err := s.topics.Update(c.Request.Context(), id, services.TopicUpdate{
		Title:   req.Title,
		Message: req.Message,
		Status:  models.TopicStatus(req.Status),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTopicResponse(topic))
}

func (s *HTTPServer) deleteTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.topics.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// actingUserID returns the id_user from the body, or the caller when it is
// absent. Acting for someone else is allowed but logged.
func (s *HTTPServer) actingUserID(c *gin.Context, requested int64) int64 {
	user, _ := auth.UserFromContext(c.Request.Context())
	if requested == 0 {
		return user.ID
	}
	if requested != user.ID {
		s.requestLogger(c).Warn(c.Request.Context(), "id_user differs from the authenticated user",
			"id_user", requested, "caller_id", user.ID, "path", c.FullPath())
	}
	return requested
}

// pathID parses the :id parameter, writing 400 when it is not a positive
// integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
