package notify

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the notice kind/severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is a single piece of structured user feedback.
type Notice struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Success builds a success notice with a fresh ID and timestamp.
func Success(title, description string) Notice {
	return newNotice(KindSuccess, title, description)
}

// Error builds an error notice with a fresh ID and timestamp.
func Error(title, description string) Notice {
	return newNotice(KindError, title, description)
}

func newNotice(kind Kind, title, description string) Notice {
	return Notice{
		ID:          uuid.New().String(),
		Kind:        kind,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
