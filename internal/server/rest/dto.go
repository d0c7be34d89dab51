package rest

import (
	"time"

	"github.com/dmitrijs2005/forohub/internal/server/models"
)

type credentialsRequest struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type createTopicRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Course  string `json:"course" binding:"required"`
	UserID  int64  `json:"id_user"`
}

type updateTopicRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type topicResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	CreationDate time.Time `json:"creation_date"`
	Status       string    `json:"status"`
	AuthorID     int64     `json:"author_id"`
	Course       string    `json:"course"`
}

func newTopicResponse(t *models.Topic) topicResponse {
	return topicResponse{
		ID:           t.ID,
		Title:        t.Title,
		Message:      t.Message,
		CreationDate: t.CreatedAt,
		Status:       string(t.Status),
		AuthorID:     t.AuthorID,
		Course:       t.Course,
	}
}

type createResponseRequest struct {
	UserID       int64      `json:"id_user"`
	TopicID      int64      `json:"id_topic" binding:"required"`
	Solution     string     `json:"solution" binding:"required"`
	CreationDate *time.Time `json:"creation_date"`
}

type responseResponse struct {
	ID           int64     `json:"id"`
	Solution     string    `json:"solution"`
	AuthorID     int64     `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	TopicID      int64     `json:"topic_id"`
	TopicTitle   string    `json:"topic_title"`
	CreationDate time.Time `json:"creation_date"`
}

func newResponseResponse(d *models.ResponseDetail) responseResponse {
	return responseResponse{
		ID:           d.ID,
		Solution:     d.Solution,
		AuthorID:     d.AuthorID,
		AuthorName:   d.AuthorName,
		TopicID:      d.TopicID,
		TopicTitle:   d.TopicTitle,
		CreationDate: d.CreatedAt,
	}
}
