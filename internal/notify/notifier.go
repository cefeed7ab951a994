package notify

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Notifier is the sink for user-facing dispatch notifications
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
	Warning(title, message string)
	Info(title, message string)
}

// Toast is the notification frame delivered to dashboard sessions
type Toast struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // "success", "error", "warning", "info"
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}

// Broadcaster fans a named event out to connected dashboard sessions
type Broadcaster interface {
	Publish(event string, data interface{})
}

// HubNotifier broadcasts toasts over the dashboard hub and mirrors them to
// the server log.
type HubNotifier struct {
	broadcaster Broadcaster
}

// NewHubNotifier creates a hub-backed notifier
func NewHubNotifier(b Broadcaster) *HubNotifier {
	return &HubNotifier{broadcaster: b}
}

func (n *HubNotifier) push(kind, title, message string) {
	toast := Toast{
		ID:        uuid.NewString(),
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().Unix(),
	}

	switch kind {
	case "error":
		log.Printf("❌ [NOTIFY] %s: %s", title, message)
	case "warning":
		log.Printf("⚠️  [NOTIFY] %s: %s", title, message)
	default:
		log.Printf("🔔 [NOTIFY] %s: %s", title, message)
	}

	if n.broadcaster != nil {
		n.broadcaster.Publish("notification", toast)
	}
}

func (n *HubNotifier) Success(title, message string) { n.push("success", title, message) }
func (n *HubNotifier) Error(title, message string)   { n.push("error", title, message) }
func (n *HubNotifier) Warning(title, message string) { n.push("warning", title, message) }
func (n *HubNotifier) Info(title, message string)    { n.push("info", title, message) }
