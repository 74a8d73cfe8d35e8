package observability

import (
	"sync"
	"time"
)

// Event one diagnostic entry surfaced in debug output
type Event struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Stage   string    `json:"stage"`
	Sheet   string    `json:"sheet,omitempty"`
	Message string    `json:"message"`
	Error   string    `json:"error,omitempty"`
}

// Recorder collects diagnostic events for one request and mirrors them to the log.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	log *Logger

	mu     sync.Mutex
	events []Event
}

// NewRecorder creates a Recorder writing through log
func NewRecorder(log *Logger) *Recorder {
	if log == nil {
		log = Nop()
	}
	return &Recorder{log: log}
}

// Info records an informational event
func (r *Recorder) Info(stage, sheet, msg string) {
	if r == nil {
		return
	}
	r.log.Debug().Str("stage", stage).Str("sheet", sheet).Msg(msg)
	r.add(Event{Level: "info", Stage: stage, Sheet: sheet, Message: msg})
}

// Warn records a recoverable failure
func (r *Recorder) Warn(stage, sheet, msg string, err error) {
	if r == nil {
		return
	}
	evt := Event{Level: "warn", Stage: stage, Sheet: sheet, Message: msg}
	if err != nil {
		evt.Error = err.Error()
	}
	r.log.Warn().Err(err).Str("stage", stage).Str("sheet", sheet).Msg(msg)
	r.add(evt)
}

func (r *Recorder) add(e Event) {
	e.Time = time.Now().UTC()
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events snapshot of recorded events in order
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
