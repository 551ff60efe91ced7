package testutil

import (
	"errors"
	"sync"

	"sweep-go/internal/sweep"
)

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []sweep.Notification
	fail bool
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// SetFailing makes subsequent Notify calls record the payload and then fail.
func (n *RecordingNotifier) SetFailing() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fail = true
}

func (n *RecordingNotifier) Notify(msg sweep.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	if n.fail {
		return errors.New("notification center unavailable")
	}
	return nil
}

// Sent returns a copy of the notifications received so far.
func (n *RecordingNotifier) Sent() []sweep.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sweep.Notification(nil), n.sent...)
}

var _ sweep.Notifier = (*RecordingNotifier)(nil)
