package api

import "time"

// EventType identifies a task history event.
type EventType string

const (
	EventTaskSubmitted EventType = "task.submitted"
	EventTaskStarted   EventType = "task.started"
	EventTaskCompleted EventType = "task.completed"
	EventTaskFailed    EventType = "task.failed"
)

// TaskEvent is a minimal append-only history record for audit/debugging.
// It is intentionally small and stable; richer history can be layered later.
type TaskEvent struct {
	TaskID TaskID
	At     time.Time
	Type   EventType

	// Optional context.
	Name string

	// Small, human-oriented details (e.g. an error string).
	// Keep this low-volume: do NOT dump large payloads here.
	Detail string
}
