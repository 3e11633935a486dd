// Package notify carries the fire-and-forget "something changed" signal the
// app emits after a mutation has been persisted, so external surfaces
// (widgets, status bars, sync hooks) can refresh themselves. Delivery is
// best-effort; nothing in the tracker depends on it.
package notify

import (
	"fmt"
	"os"
	"time"
)

type Notifier interface {
	TasksChanged() error
}

type Noop struct{}

func (Noop) TasksChanged() error { return nil }

// FileNotifier touches a marker file with the current instant. File
// watchers (a status bar script, a widget process) treat any write as a
// refresh request.
type FileNotifier struct {
	Path string
}

func (f FileNotifier) TasksChanged() error {
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := os.WriteFile(f.Path, []byte(stamp+"\n"), 0o644); err != nil {
		return fmt.Errorf("notify: touch %s: %w", f.Path, err)
	}
	return nil
}
