package rest

import (
	"net/http"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/server/auth"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	user, err := s.users.Register(c.Request.Context(), req.UserName, password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.requestLogger(c).Info(c.Request.Context(), "Registered", "username", user.UserName, "user_id", user.ID)
	c.JSON(http.StatusCreated, userResponse{ID: user.ID, UserName: user.UserName, Role: user.Role})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	token, err := s.users.Login(c.Request.Context(), req.UserName, password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "old_password and new_password are required")
		return
	}

	user, _ := auth.UserFromContext(c.Request.Context())

	oldPassword, newPassword := []byte(req.OldPassword), []byte(req.NewPassword)
	defer common.WipeByteArray(oldPassword)
	defer common.WipeByteArray(newPassword)

	if err := s.users.ChangePassword(c.Request.Context(), user.ID, oldPassword, newPassword); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
