package notify

import (
	"fmt"
	"io"

	"sweep-go/internal/config"
	"sweep-go/internal/sweep"
)

// NewNotifierFromConfig creates a Notifier based on the notifier config type.
// An empty type selects the log notifier. w receives stdout notifications.
func NewNotifierFromConfig(cfg config.NotifierConfig, logger sweep.Logger, w io.Writer) (sweep.Notifier, error) {
	var n sweep.Notifier
	switch cfg.Type {
	case "", "log":
		n = NewLogNotifier(logger)
	case "stdout":
		n = NewWriterNotifier(w)
	case "command":
		cn, err := NewCommandNotifier(cfg.Command, nil)
		if err != nil {
			return nil, err
		}
		n = cn
	default:
		return nil, fmt.Errorf("unknown notifier type: %s", cfg.Type)
	}
	return WithTitle(cfg.Title, n), nil
}
