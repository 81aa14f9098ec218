package models

import (
	"time"

	"github.com/google/uuid"
)

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast is one user-visible notification. Every mutating action ends in
// exactly one of these.
type Toast struct {
	ID        uuid.UUID  `json:"id"`
	Level     ToastLevel `json:"level"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}
