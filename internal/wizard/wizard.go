// Package wizard drives the multi-step order submission workflow: fixed
// linear steps with per-step required-field checks, a transient draft kept
// across back/forward navigation, and a single record-creation call on final
// confirmation.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/botstudio/backend/internal/receipt"
	"github.com/botstudio/backend/internal/store"
	"github.com/botstudio/backend/internal/types"
)

type Flow string

const (
	BotFlow      Flow = "bot"
	SiteFlow     Flow = "site"
	CategoryFlow Flow = "category"
	PlanFlow     Flow = "plan"
)

const (
	stepType        = "type"
	stepFeatures    = "features"
	stepCategory    = "category"
	stepPlan        = "plan"
	stepContact     = "contact"
	stepDescription = "description"
	stepConfirm     = "confirm"
)

var flowSteps = map[Flow][]string{
	BotFlow:      {stepType, stepContact, stepDescription, stepConfirm},
	SiteFlow:     {stepType, stepFeatures, stepContact, stepDescription, stepConfirm},
	CategoryFlow: {stepCategory, stepContact, stepDescription, stepConfirm},
	PlanFlow:     {stepPlan, stepContact, stepConfirm},
}

type Phase string

const (
	EditingPhase    Phase = "editing"
	SubmittingPhase Phase = "submitting"
	SucceededPhase  Phase = "succeeded"
	FailedPhase     Phase = "failed"
)

var (
	ErrUnknownFlow      = errors.New("unknown wizard flow")
	ErrNotOnFinalStep   = errors.New("confirmation is only possible on the final step")
	ErrAlreadySucceeded = errors.New("wizard already completed, restart to submit again")
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
)

// ValidationError blocks a step transition. Field names the offending input
// so the UI can show the message inline.
type ValidationError struct {
	Step    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: %s", e.Step, e.Message)
}

// Draft holds the values entered so far. It lives only for the duration of
// one submission attempt and is never persisted partially.
type Draft struct {
	CustomerName string         `json:"customer_name"`
	Contact      types.Contact  `json:"contact"`
	Categories   []string       `json:"categories"`
	PlanID       string         `json:"plan_id"`
	Description  string         `json:"description"`
	Features     []string       `json:"features"`
	Budget       string         `json:"budget"`
	Timeline     types.Timeline `json:"timeline"`
	Priority     types.Priority `json:"priority"`
}

// RecordCreator is the single store capability the workflow needs.
type RecordCreator interface {
	Create(ctx context.Context, collection string, rec store.Record) (string, error)
}

type Wizard struct {
	flow  Flow
	steps []string
	step  int
	phase Phase
	draft Draft
}

func New(flow Flow) (*Wizard, error) {
	steps, ok := flowSteps[flow]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlow, flow)
	}
	return &Wizard{
		flow:  flow,
		steps: steps,
		step:  1,
		phase: EditingPhase,
	}, nil
}

func (w *Wizard) Flow() Flow    { return w.flow }
func (w *Wizard) Step() int     { return w.step }
func (w *Wizard) Phase() Phase  { return w.phase }
func (w *Wizard) Draft() *Draft { return &w.draft }

func (w *Wizard) StepName() string {
	return w.steps[w.step-1]
}

func (w *Wizard) FinalStep() bool {
	return w.step == len(w.steps)
}

// Advance moves to the next step if the current step's required fields are
// filled. On a validation error the step stays unchanged and no side effect
// happens.
func (w *Wizard) Advance() error {
	if w.phase != EditingPhase {
		return ErrAlreadySucceeded
	}
	if w.FinalStep() {
		return ErrNotOnFinalStep
	}
	if err := w.validateStep(w.StepName()); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back is always allowed and never clears entered values.
func (w *Wizard) Back() {
	if w.phase == EditingPhase && w.step > 1 {
		w.step--
	}
}

// Restart discards the draft and returns to the first step. It is the only
// way out of the succeeded and failed phases besides retrying a failed
// submission.
func (w *Wizard) Restart() {
	w.draft = Draft{}
	w.step = 1
	w.phase = EditingPhase
}

func (w *Wizard) validateStep(name string) error {
	switch name {
	case stepType, stepCategory:
		if len(w.draft.Categories) == 0 {
			return &ValidationError{Step: name, Field: "categories", Message: "select at least one category"}
		}
	case stepPlan:
		if w.draft.PlanID == "" {
			return &ValidationError{Step: name, Field: "plan_id", Message: "select a plan"}
		}
	case stepContact:
		if w.draft.Contact.Empty() {
			return &ValidationError{Step: name, Field: "contact", Message: "fill in at least one contact channel"}
		}
	case stepDescription:
		if strings.TrimSpace(w.draft.Description) == "" {
			return &ValidationError{Step: name, Field: "description", Message: "describe what you need"}
		}
	case stepFeatures, stepConfirm:
		// no required fields, any selection count is fine
	}
	return nil
}

func (w *Wizard) validateAll() error {
	for _, name := range w.steps {
		if err := w.validateStep(name); err != nil {
			return err
		}
	}
	if !types.ValidTimeline(w.draft.Timeline) {
		return &ValidationError{Step: stepConfirm, Field: "timeline", Message: "unknown timeline"}
	}
	return nil
}

// Result is what a successful submission hands back to the caller: the
// created record's identifier plus the rendered receipt.
type Result struct {
	OrderID  string
	Receipt  []byte
	Filename string
}

// Submit runs the final confirmation: it revalidates every step, issues
// exactly one create call, and renders exactly one receipt on success. On
// failure the draft is kept so the user can retry with another explicit
// Submit; nothing is retried automatically.
func (w *Wizard) Submit(ctx context.Context, creator RecordCreator, now time.Time) (*Result, error) {
	switch w.phase {
	case SucceededPhase:
		return nil, ErrAlreadySucceeded
	case SubmittingPhase:
		return nil, ErrSubmitInFlight
	case EditingPhase:
		if !w.FinalStep() {
			return nil, ErrNotOnFinalStep
		}
	}

	if err := w.validateAll(); err != nil {
		return nil, err
	}

	order := w.buildOrder(now)

	doc, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order %w", err)
	}

	w.phase = SubmittingPhase
	id, err := creator.Create(ctx, store.OrdersCollection, store.Record{Doc: doc, Active: true})
	if err != nil {
		w.phase = FailedPhase
		return nil, fmt.Errorf("failed to create order %w", err)
	}

	order.ID = id
	body, filename := receipt.Render(order, now)
	w.phase = SucceededPhase

	return &Result{OrderID: id, Receipt: body, Filename: filename}, nil
}

func (w *Wizard) buildOrder(now time.Time) types.Order {
	priority := w.draft.Priority
	if priority == "" {
		priority = types.MediumPriority
	}
	return types.Order{
		CustomerName: w.draft.CustomerName,
		Contact:      w.draft.Contact,
		Category:     strings.Join(w.draft.Categories, ", "),
		Description:  w.draft.Description,
		Features:     w.draft.Features,
		Plan:         w.draft.PlanID,
		Budget:       w.draft.Budget,
		Timeline:     w.draft.Timeline,
		Priority:     priority,
		Status:       types.PendingStatus,
		CreatedAt:    now,
	}
}
