// Package submit drives one form from a draft to a single REST call and its outcome.
package submit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/notify"
)

// ErrPending is returned when Submit is called while a previous call is still in flight.
var ErrPending = errors.New("submission already in progress")

type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "idle"
}

type (
	// Outcome is the state of the last submission.
	Outcome struct {
		State   State
		Payload interface{} // decoded answer, on success
		Reason  string      // user facing message, on failure
		Err     error
	}

	// Form is one submission: what to validate and send, and what to tell the user.
	Form struct {
		Draft    core.Draft // nil for calls without a body
		Endpoint core.Endpoint
		Result   interface{} // decode target of the answer; may be nil

		SuccessMessage string
		FailureMessage string // fallback when the server gives no reason
		RedirectTo     string // navigated to after the redirect delay on success; may be empty

		Public bool // sent without a credential
	}

	Notifier interface {
		Show(msg string, kind notify.Kind)
	}

	Navigator interface {
		Navigate(path string)
	}

	Deps struct {
		Client    core.APIClient
		Validator *core.Validator
		Notifier  Notifier
		Navigator Navigator // may be nil when no form redirects
		Logger    core.Logger
	}
)

// Controller serializes the submissions of one form instance.
type Controller struct {
	deps          Deps
	redirectDelay time.Duration

	mu       sync.Mutex
	outcome  Outcome
	redirect *time.Timer
	closed   bool
}

func NewController(deps Deps, redirectDelay time.Duration) *Controller {
	return &Controller{deps: deps, redirectDelay: redirectDelay}
}

// Submit validates the draft and, if it is valid, performs exactly one call to the form's endpoint.
// It returns ErrPending while a previous call is in flight, and a *core.ValidationError without
// any network call when the draft is invalid. Call failures are reported through the Outcome.
func (c *Controller) Submit(ctx context.Context, cred core.Credential, f Form) (Outcome, error) {
	c.mu.Lock()
	if c.outcome.State == Pending {
		c.mu.Unlock()
		return Outcome{State: Pending}, ErrPending
	}
	if res := c.deps.Validator.Validate(f.Draft); !res.IsValid() {
		out := c.outcome
		c.mu.Unlock()
		return out, res.Err()
	}
	if cred.IsZero() && !f.Public {
		out := c.fail(f, cred, core.ErrNotAuthenticated)
		c.mu.Unlock()
		return out, nil
	}
	c.outcome = Outcome{State: Pending}
	c.mu.Unlock()

	var body *core.Payload
	if f.Draft != nil {
		p := f.Draft.Payload()
		body = &p
	}
	err := c.deps.Client.Do(ctx, cred, f.Endpoint, body, f.Result)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.fail(f, cred, err), nil
	}
	c.outcome = Outcome{State: Succeeded, Payload: f.Result}
	if f.SuccessMessage != "" {
		c.deps.Notifier.Show(f.SuccessMessage, notify.Success)
	}
	if f.RedirectTo != "" && c.deps.Navigator != nil {
		c.scheduleRedirect(f.RedirectTo)
	}
	return c.outcome, nil
}

// Outcome returns the state of the last submission.
func (c *Controller) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Close cancels a scheduled navigation. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.redirect != nil {
		c.redirect.Stop()
		c.redirect = nil
	}
}

// fail must be called with c.mu held.
func (c *Controller) fail(f Form, cred core.Credential, err error) Outcome {
	reason := core.Reason(err, f.FailureMessage)
	msg := fmt.Sprintf("submitting %s: %v", f.Endpoint, err)
	if core.IsAuthError(err) {
		c.deps.Logger.Warn(msg, err, cred)
	} else {
		c.deps.Logger.Error(msg, err, cred)
	}

	c.outcome = Outcome{State: Failed, Reason: reason, Err: err}
	c.deps.Notifier.Show(reason, notify.Error)
	return c.outcome
}

// scheduleRedirect must be called with c.mu held.
func (c *Controller) scheduleRedirect(path string) {
	if c.closed {
		return
	}
	if c.redirect != nil {
		c.redirect.Stop()
	}
	c.redirect = time.AfterFunc(c.redirectDelay, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.redirect = nil
		c.mu.Unlock()
		c.deps.Navigator.Navigate(path)
	})
}
