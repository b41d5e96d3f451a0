package forms

import (
	"context"
	"strings"
	"sync"
	"time"

	"eggmart/internal/models"
	"eggmart/internal/repositories"
)

// State is the form lifecycle phase.
type State int

const (
	// StateEditing accepts input changes and submissions.
	StateEditing State = iota
	// StateSubmitted holds the transient success message until the reset
	// delay elapses.
	StateSubmitted
)

// FieldErrors maps a form field name to its validation message. An empty map
// means the input is submittable.
type FieldErrors map[string]string

// Input carries the raw form fields. Passwords live only here; they are
// never copied onto the record.
type Input struct {
	FullName        string
	Phone           string
	Username        string
	Password        string
	ConfirmPassword string
	Module          string
}

// SuccessMessage is shown after a successful submission until the form
// resets.
const SuccessMessage = "Distributor added successfully"

// Controller drives the add-distributor form: it validates input, creates
// the record on submit, and clears itself back to the editing state after a
// fixed delay. A zero reset delay clears synchronously.
type Controller struct {
	mu         sync.Mutex
	state      State
	input      Input
	message    string
	store      repositories.RecordStore
	resetDelay time.Duration
	resetTimer *time.Timer
}

func NewController(store repositories.RecordStore, resetDelay time.Duration) *Controller {
	return &Controller{store: store, resetDelay: resetDelay}
}

// SetInput replaces the form fields. Ignored while a submission message is
// showing.
func (c *Controller) SetInput(in Input) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEditing {
		return
	}
	c.input = in
}

// Validate checks the current fields and returns one message per failing
// field.
func (c *Controller) Validate() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validate(c.input)
}

func validate(in Input) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(in.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if strings.TrimSpace(in.Username) == "" {
		errs["username"] = "Username is required"
	}
	if in.Password == "" {
		errs["password"] = "Password is required"
	}
	if in.ConfirmPassword == "" {
		errs["confirmPassword"] = "Confirm password is required"
	} else if in.Password != "" && in.Password != in.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if in.Module == "" {
		errs["module"] = "Select a module"
	} else if !models.Module(in.Module).Valid() {
		errs["module"] = "Unknown module"
	}
	return errs
}

// Submit validates and, when clean, adds a new record (password excluded) to
// the store. On success the controller enters StateSubmitted and schedules
// the reset back to a blank editing form. On validation failure it returns
// the field errors and no record.
func (c *Controller) Submit(ctx context.Context) (*models.DistributorRecord, FieldErrors) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateEditing {
		return nil, FieldErrors{"form": "Submission already in progress"}
	}

	errs := validate(c.input)
	if len(errs) > 0 {
		return nil, errs
	}

	rec := &models.DistributorRecord{
		FullName: strings.TrimSpace(c.input.FullName),
		Phone:    strings.TrimSpace(c.input.Phone),
		Username: strings.TrimSpace(c.input.Username),
		Module:   models.Module(c.input.Module),
	}
	c.store.Add(ctx, rec)

	c.state = StateSubmitted
	c.message = SuccessMessage

	if c.resetDelay > 0 {
		c.resetTimer = time.AfterFunc(c.resetDelay, c.reset)
	} else {
		c.resetLocked()
	}

	return rec, nil
}

// Cancel discards unsaved input and any pending reset, returning the form to
// a blank editing state immediately.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	c.resetLocked()
}

func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.input = Input{}
	c.message = ""
	c.state = StateEditing
	c.resetTimer = nil
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message returns the transient success message, if any.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Input returns the current form fields.
func (c *Controller) Input() Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}
