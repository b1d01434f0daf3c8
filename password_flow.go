package account

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/AnatolNica/heronexus-account/credstore"
	"github.com/AnatolNica/heronexus-account/internal/attempt"
)

// Submit runs one password-change attempt: clear the prior error, validate
// locally, then prove the current password against the remote service.
//
// Submit is a no-op returning [ErrSubmitInFlight] while a previous attempt
// is outstanding — at most one password-change request is in flight per form
// instance. On success the three fields are cleared, the editor closes, and
// a success notification fires. On failure the fields are retained and the
// error is attached to the form so the user can correct and resubmit
// without retyping.
func (f *PasswordForm) Submit(ctx context.Context) error {
	c := f.client
	if c == nil || c.remote == nil || c.store == nil {
		return ErrClientNotReady
	}

	f.core.mu.Lock()
	if !f.core.mounted {
		f.core.mu.Unlock()
		return ErrFormUnmounted
	}
	if f.core.phase == PhaseSubmitting {
		f.core.mu.Unlock()
		c.metricInc(MetricSubmitSuppressed)
		return ErrSubmitInFlight
	}
	if !f.core.editableLocked() {
		f.core.mu.Unlock()
		return ErrFormNotEditing
	}

	f.core.errText = ""
	f.core.errCause = nil
	fields := f.fields

	if err := ValidatePasswordChange(fields.New, fields.Confirm); err != nil {
		f.core.phase = PhaseFailed
		f.core.errText = formErrorText(err, WorkflowPasswordChange)
		f.core.errCause = err
		f.core.mu.Unlock()
		c.metricInc(MetricValidationFailed)
		return err
	}

	gen := f.core.generation
	f.core.phase = PhaseSubmitting
	f.core.mu.Unlock()

	attemptID := attempt.NewID()

	cred, err := c.store.Current(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNoCredential) {
			// The change-password control should not have been reachable
			// without a session. Silent no-op, not a user-facing error.
			c.logger.Warn("password change skipped, no session credential",
				zap.String("attempt_id", attemptID))
			c.metricInc(MetricUnauthenticatedSkip)
			f.settle(gen, PhaseEditing, "", nil)
			return err
		}
		c.logger.Error("password change aborted, credential store read failed",
			zap.String("attempt_id", attemptID), zap.Error(err))
		f.settle(gen, PhaseFailed, WorkflowPasswordChange.fallbackMessage(), err)
		return err
	}

	start := time.Now()
	err = c.remote.UpdatePassword(ctx, cred, fields.Current, fields.New)
	c.observeRemote(start)

	if err != nil {
		if errors.Is(err, ErrTransport) {
			c.metricInc(MetricTransportFailure)
		} else {
			c.metricInc(MetricPasswordChangeRejected)
		}
		c.logger.Info("password change rejected",
			zap.String("attempt_id", attemptID), zap.Error(err))
		f.settle(gen, PhaseFailed, formErrorText(err, WorkflowPasswordChange), err)
		return err
	}

	c.metricInc(MetricPasswordChangeSuccess)

	f.core.mu.Lock()
	applied := f.core.mounted && f.core.generation == gen
	if applied {
		f.fields = PasswordFields{}
		f.core.phase = PhaseSucceeded
		f.core.errText = ""
		f.core.errCause = nil
	}
	f.core.mu.Unlock()

	if applied {
		c.notify(ctx, Notification{
			Workflow:  WorkflowPasswordChange,
			AttemptID: attemptID,
			Severity:  SeveritySuccess,
			Message:   "Password changed",
		})
	} else {
		c.logger.Debug("password change result discarded, form torn down",
			zap.String("attempt_id", attemptID))
	}
	return nil
}

// settle applies a post-submission phase if the form instance is still the
// one that submitted. Fields are always retained on failure paths.
func (f *PasswordForm) settle(gen uint64, phase FormPhase, errText string, cause error) {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || f.core.generation != gen {
		return
	}
	f.core.phase = phase
	f.core.errText = errText
	f.core.errCause = cause
}
