package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) createResponse(c *gin.Context) {
	var req createResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "id_topic and solution are required")
		return
	}

	userID := s.actingUserID(c, req.UserID)

	var created time.Time
	if req.CreationDate != nil {
		created = *req.CreationDate
	}

	detail, err := s.responses.CreateResponse(c.Request.Context(), userID, req.TopicID, req.Solution, created)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.requestLogger(c).Info(c.Request.Context(), "response created", "response_id", detail.ID, "topic_id", detail.TopicID, "user_id", detail.AuthorID)
	c.JSON(http.StatusCreated, newResponseResponse(detail))
}

func (s *HTTPServer) listResponses(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	list, err := s.responses.ListByTopic(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]responseResponse, 0, len(list))
	for i := range list {
		out = append(out, newResponseResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}
