package models

import "time"

// TopicStatus is the lifecycle state of a topic.
type TopicStatus string

const (
	TopicOpen   TopicStatus = "OPEN"
	TopicClosed TopicStatus = "CLOSED"
	TopicSolved TopicStatus = "SOLVED"
)

// Valid reports whether s is one of the known statuses.
func (s TopicStatus) Valid() bool {
	switch s {
	case TopicOpen, TopicClosed, TopicSolved:
		return true
	}
	return false
}

type Topic struct {
	ID        int64
	Title     string
	Message   string
	Status    TopicStatus
	AuthorID  int64
	Course    string
	CreatedAt time.Time
}
