// Package oplog provides the append-only operation log, backed by BoltDB.
// One entry is written per CLI invocation, failures included, so the
// audit trail stays complete even when the underlying command dies.
package oplog

import "time"

// Entry is a single logged operation.
type Entry struct {
	Time      time.Time `json:"time"`
	Operation string    `json:"operation"`
	Command   string    `json:"command"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(operation, command string, success bool, message string) *Entry {
	return &Entry{
		Time:      time.Now(),
		Operation: operation,
		Command:   command,
		Success:   success,
		Message:   message,
	}
}

// FormatTime returns a human-readable timestamp.
func (e *Entry) FormatTime() string {
	return e.Time.Format("2006-01-02 15:04:05")
}
