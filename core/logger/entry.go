package logger

// LogEntry is a single event. Exactly one of the event fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id"`

	Command    *CommandEvent    `json:"command,omitempty"`
	Assignment *AssignmentEvent `json:"assignment,omitempty"`
	Error      *ErrorEvent      `json:"error,omitempty"`
}

// CommandEvent records a completed command line.
type CommandEvent struct {
	Args       []string `json:"args"`
	Builtin    bool     `json:"builtin,omitempty"`
	Background bool     `json:"background,omitempty"`
	Status     int      `json:"status"`
}

// AssignmentEvent records an assignment line.
type AssignmentEvent struct {
	Name     string `json:"name"`
	Accepted bool   `json:"accepted"`
}

// ErrorEvent records a line that was reported and skipped, or a command
// that couldn't be started.
type ErrorEvent struct {
	Line    string `json:"line,omitempty"`
	Message string `json:"message"`
}

// LogType is implemented by the event types.
type LogType interface {
	apply(le *LogEntry)
}

func (e *CommandEvent) apply(le *LogEntry)    { le.Command = e }
func (e *AssignmentEvent) apply(le *LogEntry) { le.Assignment = e }
func (e *ErrorEvent) apply(le *LogEntry)      { le.Error = e }
