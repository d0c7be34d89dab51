package models

import "time"

// Response is an answer posted by a user to a topic.
type Response struct {
	ID        int64
	Solution  string
	AuthorID  int64
	TopicID   int64
	CreatedAt time.Time
}

// ResponseDetail is a Response together with the names of the entities it
// references, as returned to API clients.
type ResponseDetail struct {
	Response
	AuthorName string
	TopicTitle string
}
