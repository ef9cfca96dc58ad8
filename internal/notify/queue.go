// Package notify turns notification state into UI effects (toasts and
// celebrations) held in an explicit queue. The rendering layer drains the
// queue; nothing here runs on a timer.
package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"amorlias/internal/domain"
)

// EffectKind is what the rendering layer should show.
type EffectKind string

const (
	EffectToast       EffectKind = "toast"
	EffectCelebration EffectKind = "celebration"
)

// Level is the toast severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

const (
	celebrationDuration = 3 * time.Second
	promotionToastTTL   = 5 * time.Second
	errorToastTTL       = 4 * time.Second

	PromotionMessage = "Welcome to Amorlias! You now have access for Admin!"
)

// Effect is a pending UI side effect.
type Effect struct {
	Kind           EffectKind    `json:"kind"`
	Level          Level         `json:"level,omitempty"`
	Message        string        `json:"message,omitempty"`
	Duration       time.Duration `json:"duration_ms"`
	NotificationID *uuid.UUID    `json:"notification_id,omitempty"`
}

// MarshalJSON writes Duration in milliseconds.
func (e Effect) MarshalJSON() ([]byte, error) {
	type alias Effect
	return json.Marshal(struct {
		alias
		Duration int64 `json:"duration_ms"`
	}{alias: alias(e), Duration: e.Duration.Milliseconds()})
}

// Queue is a FIFO of effects for one user. Effects tied to a notification are
// queued at most once per notification and kind.
type Queue struct {
	mu      sync.Mutex
	pending []Effect
	seen    map[string]struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]struct{})}
}

// Push appends effects, skipping ones already queued for the same notification.
func (q *Queue) Push(effects ...Effect) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range effects {
		if e.NotificationID != nil {
			key := e.NotificationID.String() + "/" + string(e.Kind)
			if _, dup := q.seen[key]; dup {
				continue
			}
			q.seen[key] = struct{}{}
		}
		q.pending = append(q.pending, e)
	}
}

// Drain returns all pending effects in order and clears the queue.
func (q *Queue) Drain() []Effect {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	if out == nil {
		out = []Effect{}
	}
	return out
}

// Len returns the number of pending effects.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Hub keeps one queue per user.
type Hub struct {
	mu     sync.Mutex
	queues map[uuid.UUID]*Queue
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{queues: make(map[uuid.UUID]*Queue)}
}

// For returns the user's queue, creating it on first use.
func (h *Hub) For(userID uuid.UUID) *Queue {
	h.mu.Lock()
	defer h.mu.Unlock()
	q, ok := h.queues[userID]
	if !ok {
		q = NewQueue()
		h.queues[userID] = q
	}
	return q
}

// Plan derives effects from a user's notifications. The first unread
// promotion to admin yields a celebration followed by a success toast.
func Plan(notifications []domain.Notification) []Effect {
	for i := range notifications {
		n := &notifications[i]
		if n.Read || n.Type != domain.NotificationRoleChange || !promotesToAdmin(json.RawMessage(n.Data)) {
			continue
		}
		id := n.ID
		return []Effect{
			{Kind: EffectCelebration, Duration: celebrationDuration, NotificationID: &id},
			{Kind: EffectToast, Level: LevelSuccess, Message: PromotionMessage, Duration: promotionToastTTL, NotificationID: &id},
		}
	}
	return nil
}

// ErrorToast is queued when a user action fails.
func ErrorToast(msg string) Effect {
	return Effect{Kind: EffectToast, Level: LevelError, Message: msg, Duration: errorToastTTL}
}

func promotesToAdmin(data json.RawMessage) bool {
	if len(data) == 0 {
		return false
	}
	var payload struct {
		NewRole string `json:"new_role"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return false
	}
	return payload.NewRole == string(domain.RoleAdmin)
}
