// Package compliance provides the audit trail for request processing.
package compliance

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditEventType represents the type of audit event.
type AuditEventType string

const (
	// EventRequestReceived is logged when an instruction enters the engine.
	EventRequestReceived AuditEventType = "request.received"
	// EventGateRefusal is logged when the safety gate refuses an instruction.
	EventGateRefusal AuditEventType = "compliance.gate_refused"
	// EventCapabilityInvoked is logged immediately before a capability call.
	EventCapabilityInvoked AuditEventType = "capability.invoked"
	// EventCapabilityResult is logged after a capability call succeeds.
	EventCapabilityResult AuditEventType = "capability.result"
	// EventCapabilityError is logged after a capability call fails.
	EventCapabilityError AuditEventType = "capability.error"
	// EventRequestCompleted is logged with the full response when processing ends.
	EventRequestCompleted AuditEventType = "request.completed"
)

// AuditEvent represents an immutable audit record. Payload carries the
// event-specific data as opaque JSON.
type AuditEvent struct {
	ID         string          `json:"id"`
	EventType  AuditEventType  `json:"event_type"`
	RequestID  string          `json:"request_id,omitempty"`
	Capability string          `json:"capability,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	DryRun     bool            `json:"dry_run,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Recorder keeps an append-only, process-scoped audit log. Entries are
// ordered by append time and never mutated or removed; the log grows
// without bound for the life of the process.
type Recorder struct {
	mu     sync.RWMutex
	events []AuditEvent
}

// NewRecorder creates an empty audit recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// LogEvent records an audit event, assigning an ID and timestamp when absent.
func (r *Recorder) LogEvent(ctx context.Context, event AuditEvent) AuditEvent {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()

	return event
}

// LogRequestReceived logs an incoming instruction.
func (r *Recorder) LogRequestReceived(ctx context.Context, requestID, instruction string, dryRun bool) {
	payload, _ := json.Marshal(map[string]string{"instruction": instruction})
	r.LogEvent(ctx, AuditEvent{
		EventType: EventRequestReceived,
		RequestID: requestID,
		Payload:   payload,
		DryRun:    dryRun,
	})
}

// LogGateRefusal logs a safety gate veto with the triggering rule.
func (r *Recorder) LogGateRefusal(ctx context.Context, requestID, instruction, rule, message string, dryRun bool) {
	payload, _ := json.Marshal(map[string]string{
		"instruction": instruction,
		"rule":        rule,
		"message":     message,
	})
	r.LogEvent(ctx, AuditEvent{
		EventType: EventGateRefusal,
		RequestID: requestID,
		Payload:   payload,
		DryRun:    dryRun,
	})
}

// LogCapabilityInvoked logs a capability call before it runs.
func (r *Recorder) LogCapabilityInvoked(ctx context.Context, requestID, capability string, args any, dryRun bool) {
	payload, _ := json.Marshal(args)
	r.LogEvent(ctx, AuditEvent{
		EventType:  EventCapabilityInvoked,
		RequestID:  requestID,
		Capability: capability,
		Payload:    payload,
		DryRun:     dryRun,
	})
}

// LogCapabilityResult logs a successful capability outcome.
func (r *Recorder) LogCapabilityResult(ctx context.Context, requestID, capability string, result any, dryRun bool) {
	payload, _ := json.Marshal(result)
	r.LogEvent(ctx, AuditEvent{
		EventType:  EventCapabilityResult,
		RequestID:  requestID,
		Capability: capability,
		Payload:    payload,
		DryRun:     dryRun,
	})
}

// LogCapabilityError logs a failed capability outcome.
func (r *Recorder) LogCapabilityError(ctx context.Context, requestID, capability, errMsg string, dryRun bool) {
	payload, _ := json.Marshal(map[string]string{"error": errMsg})
	r.LogEvent(ctx, AuditEvent{
		EventType:  EventCapabilityError,
		RequestID:  requestID,
		Capability: capability,
		Payload:    payload,
		DryRun:     dryRun,
	})
}

// LogRequestCompleted logs the final response for a request.
func (r *Recorder) LogRequestCompleted(ctx context.Context, requestID string, response any, dryRun bool) {
	payload, _ := json.Marshal(response)
	r.LogEvent(ctx, AuditEvent{
		EventType: EventRequestCompleted,
		RequestID: requestID,
		Payload:   payload,
		DryRun:    dryRun,
	})
}

// AuditFilter specifies criteria for querying audit events.
type AuditFilter struct {
	RequestID string
	EventType AuditEventType
	DryRun    *bool
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// QueryEvents retrieves audit events matching the filter, newest first.
func (r *Recorder) QueryEvents(ctx context.Context, filter AuditFilter) []AuditEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []AuditEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if filter.RequestID != "" && e.RequestID != filter.RequestID {
			continue
		}
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		if filter.DryRun != nil && e.DryRun != *filter.DryRun {
			continue
		}
		if !filter.StartTime.IsZero() && e.CreatedAt.Before(filter.StartTime) {
			continue
		}
		if !filter.EndTime.IsZero() && e.CreatedAt.After(filter.EndTime) {
			continue
		}
		matched = append(matched, e)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched
}

// Events returns a copy of the full log in append order.
func (r *Recorder) Events() []AuditEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Len reports the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}
