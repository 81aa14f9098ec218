// Package notify collects the toast notifications that every mutating action
// must end in. Message text can originate from the backend, so it is run
// through a strict HTML sanitizer before being stored for display.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/trendmart/storefront-client/internal/models"
)

const defaultCapacity = 50

// Notifier keeps a bounded ring of recent toasts per user.
type Notifier struct {
	mu       sync.Mutex
	policy   *bluemonday.Policy
	capacity int
	toasts   map[string][]models.Toast
}

func New() *Notifier {
	return &Notifier{
		policy:   bluemonday.StrictPolicy(),
		capacity: defaultCapacity,
		toasts:   make(map[string][]models.Toast),
	}
}

func (n *Notifier) Success(userID, message string) models.Toast {
	return n.push(userID, models.ToastSuccess, message)
}

func (n *Notifier) Error(userID, message string) models.Toast {
	return n.push(userID, models.ToastError, message)
}

func (n *Notifier) Warning(userID, message string) models.Toast {
	return n.push(userID, models.ToastWarning, message)
}

func (n *Notifier) push(userID string, level models.ToastLevel, message string) models.Toast {

	toast := models.Toast{
		ID:        uuid.New(),
		Level:     level,
		Message:   n.policy.Sanitize(message),
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	queue := append(n.toasts[userID], toast)
	if len(queue) > n.capacity {
		queue = queue[len(queue)-n.capacity:]
	}

	n.toasts[userID] = queue

	return toast
}

// Recent returns the retained toasts for a user, oldest first.
func (n *Notifier) Recent(userID string) []models.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.toasts[userID]
	out := make([]models.Toast, len(queue))
	copy(out, queue)

	return out
}

// Drop discards a user's toasts, used when their session is evicted.
func (n *Notifier) Drop(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.toasts, userID)
}
