// Package agent turns free-text clerical instructions into an ordered
// plan of capability calls: safety gate, intent extraction, a fixed
// four-step orchestration, and summary generation, with every step
// mirrored into the audit trail.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arogyalabs/clinicflow/internal/capability"
	"github.com/arogyalabs/clinicflow/internal/compliance"
	"github.com/arogyalabs/clinicflow/internal/observability/metrics"
	"github.com/arogyalabs/clinicflow/pkg/logging"
)

var tracer trace.Tracer = otel.Tracer("clinicflow.internal.agent")

// Capabilities is the operation surface the orchestrator drives.
type Capabilities interface {
	SearchPatient(ctx context.Context, name string) *capability.PatientSearchResult
	CheckInsuranceEligibility(ctx context.Context, patientID string) *capability.EligibilityResult
	FindAvailableSlots(ctx context.Context, specialty, startDate string, daysAhead int) *capability.SlotSearchResult
	BookAppointment(ctx context.Context, patientID, slotID, specialty, reason string) *capability.BookingResult
}

// StepResult records one executed capability step and its outcome.
type StepResult struct {
	Step   string            `json:"step"`
	Result capability.Result `json:"result"`
}

// Response is the structured outcome of processing one instruction.
type Response struct {
	Success   bool         `json:"success"`
	Refused   bool         `json:"refused,omitempty"`
	Error     string       `json:"error,omitempty"`
	Request   string       `json:"request,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	DryRun    bool         `json:"dry_run,omitempty"`
	Results   []StepResult `json:"results,omitempty"`
	Summary   string       `json:"summary,omitempty"`
}

// Options configures an Agent.
type Options struct {
	// Capabilities is required.
	Capabilities Capabilities
	// Audit receives one entry per processing event. Defaults to a
	// fresh recorder when nil.
	Audit *compliance.Recorder
	// Logger defaults to the standard JSON logger when nil.
	Logger *logging.Logger
	// Metrics may be nil.
	Metrics *metrics.EngineMetrics
}

// Agent is the workflow orchestration engine. One instruction is fully
// processed per call; the engine holds no per-request state.
type Agent struct {
	caps    Capabilities
	audit   *compliance.Recorder
	logger  *logging.Logger
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// New creates an Agent.
func New(opts Options) *Agent {
	if opts.Audit == nil {
		opts.Audit = compliance.NewRecorder()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &Agent{
		caps:    opts.Capabilities,
		audit:   opts.Audit,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		now:     time.Now,
	}
}

// Audit exposes the agent's audit recorder.
func (a *Agent) Audit() *compliance.Recorder {
	return a.audit
}

// ProcessRequest processes a free-text instruction: gate, extract,
// orchestrate, summarize. When dryRun is set, read-only capabilities
// still execute but the booking step is simulated and commits nothing.
func (a *Agent) ProcessRequest(ctx context.Context, text string, dryRun bool) (resp *Response) {
	started := time.Now()
	requestID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "agent.process_request")
	defer span.End()
	span.SetAttributes(
		attribute.String("clinicflow.request_id", requestID),
		attribute.Bool("clinicflow.dry_run", dryRun),
	)

	a.logger.Info("processing request", "request_id", requestID, "dry_run", dryRun)
	a.audit.LogRequestReceived(ctx, requestID, text, dryRun)

	if gate := EvaluateGate(text); !gate.Allowed {
		a.logger.Warn("request refused", "request_id", requestID, "rule", gate.Rule)
		a.audit.LogGateRefusal(ctx, requestID, text, gate.Rule, gate.Message, dryRun)
		a.metrics.ObserveGateRefusal(gate.Rule)
		a.metrics.ObserveRequest("refused", dryRun, time.Since(started).Seconds())
		return &Response{
			Success:   false,
			Refused:   true,
			Error:     gate.Message,
			RequestID: requestID,
			DryRun:    dryRun,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("request processing panic", "request_id", requestID, "panic", fmt.Sprint(r))
			resp = &Response{
				Success:   false,
				Error:     fmt.Sprintf("Error processing request: %v", r),
				RequestID: requestID,
				DryRun:    dryRun,
			}
			a.audit.LogRequestCompleted(ctx, requestID, resp, dryRun)
			a.metrics.ObserveRequest("error", dryRun, time.Since(started).Seconds())
		}
	}()

	resp = a.orchestrate(ctx, requestID, text, dryRun)
	a.audit.LogRequestCompleted(ctx, requestID, resp, dryRun)

	outcome := "completed"
	switch {
	case resp.Success:
	case resp.Error != "":
		outcome = "aborted"
	default:
		outcome = "failed"
	}
	a.metrics.ObserveRequest(outcome, dryRun, time.Since(started).Seconds())

	return resp
}

// orchestrate runs the fixed four-step plan over the extracted intent.
func (a *Agent) orchestrate(ctx context.Context, requestID, text string, dryRun bool) *Response {
	intent := ExtractIntent(text, a.now())
	var results []StepResult

	abort := func(reason string) *Response {
		a.logger.Warn("request aborted", "request_id", requestID, "reason", reason)
		return &Response{
			Success:   false,
			Error:     reason,
			RequestID: requestID,
			DryRun:    dryRun,
			Results:   results,
		}
	}

	// Step 1: resolve the patient when a name was given.
	var patientID string
	if intent.PatientName != "" {
		a.audit.LogCapabilityInvoked(ctx, requestID, capability.OpSearchPatient,
			map[string]string{"name": intent.PatientName}, dryRun)
		res := a.caps.SearchPatient(ctx, intent.PatientName)
		a.logOutcome(ctx, requestID, capability.OpSearchPatient, res, dryRun)
		results = append(results, StepResult{Step: capability.OpSearchPatient, Result: res})
		if res.Success && res.Patient != nil {
			patientID = res.Patient.ID
		}
	}

	// Step 2: insurance eligibility when asked for. An unresolved
	// patient is a hard prerequisite failure here.
	if MentionsInsurance(text) {
		switch {
		case patientID != "":
			a.audit.LogCapabilityInvoked(ctx, requestID, capability.OpCheckInsuranceEligibility,
				map[string]string{"patient_id": patientID}, dryRun)
			res := a.caps.CheckInsuranceEligibility(ctx, patientID)
			a.logOutcome(ctx, requestID, capability.OpCheckInsuranceEligibility, res, dryRun)
			results = append(results, StepResult{Step: capability.OpCheckInsuranceEligibility, Result: res})
		case intent.PatientName != "":
			return abort(fmt.Sprintf("Patient '%s' not found. Cannot check insurance eligibility.", intent.PatientName))
		}
	}

	// Step 3: slot search when a specialty was mentioned. The result is
	// reused by the booking step below.
	var slots *capability.SlotSearchResult
	if intent.Specialty != "" {
		a.audit.LogCapabilityInvoked(ctx, requestID, capability.OpFindAvailableSlots,
			map[string]any{"specialty": intent.Specialty, "start_date": intent.StartDate, "days_ahead": intent.DaysAhead}, dryRun)
		res := a.caps.FindAvailableSlots(ctx, intent.Specialty, intent.StartDate, intent.DaysAhead)
		a.logOutcome(ctx, requestID, capability.OpFindAvailableSlots, res, dryRun)
		results = append(results, StepResult{Step: capability.OpFindAvailableSlots, Result: res})
		slots = res
	}

	// Step 4: booking, only on an explicit booking instruction and only
	// with every prerequisite resolved.
	if intent.WantsBooking {
		if patientID == "" {
			return abort("Cannot book appointment: Patient not found. Please provide patient name.")
		}
		if intent.Specialty == "" {
			return abort("Cannot book appointment: Specialty not specified.")
		}
		if slots == nil || !slots.Success || len(slots.AvailableSlots) == 0 {
			return abort("Cannot book appointment: No available slots found.")
		}

		slot := slots.AvailableSlots[0]
		args := map[string]string{
			"patient_id": patientID,
			"slot_id":    slot.SlotID,
			"specialty":  intent.Specialty,
			"reason":     intent.Reason,
		}
		a.audit.LogCapabilityInvoked(ctx, requestID, capability.OpBookAppointment, args, dryRun)

		var res *capability.BookingResult
		if dryRun {
			res = &capability.BookingResult{
				Success: true,
				DryRun:  true,
				Message: "Would execute book_appointment",
			}
		} else {
			res = a.caps.BookAppointment(ctx, patientID, slot.SlotID, intent.Specialty, intent.Reason)
		}
		a.logOutcome(ctx, requestID, capability.OpBookAppointment, res, dryRun)
		results = append(results, StepResult{Step: capability.OpBookAppointment, Result: res})
	}

	success := true
	for _, r := range results {
		if !r.Result.Succeeded() {
			success = false
			break
		}
	}

	return &Response{
		Success:   success,
		Request:   text,
		RequestID: requestID,
		DryRun:    dryRun,
		Results:   results,
		Summary:   GenerateSummary(results),
	}
}

func (a *Agent) logOutcome(ctx context.Context, requestID, op string, res capability.Result, dryRun bool) {
	if res.Succeeded() {
		a.audit.LogCapabilityResult(ctx, requestID, op, res, dryRun)
	} else {
		a.audit.LogCapabilityError(ctx, requestID, op, res.ErrorMessage(), dryRun)
	}
}
