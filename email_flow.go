package account

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/AnatolNica/heronexus-account/credstore"
	"github.com/AnatolNica/heronexus-account/internal/attempt"
)

// Submit runs one email-change attempt with the same phase discipline as
// [PasswordForm.Submit].
//
// When the success response carries a reissued session credential, the store
// swap happens before the profile update and before the success notification
// fires: any concurrent authenticated call issued after this point must use
// the new credential, never the old one. The profile email is set only from
// the server-confirmed value. On success the NewEmail field is reset to that
// confirmed address, the password field is cleared, and the editor closes.
func (f *EmailForm) Submit(ctx context.Context) error {
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

	if err := ValidateEmailChange(fields.NewEmail); err != nil {
		f.core.phase = PhaseFailed
		f.core.errText = formErrorText(err, WorkflowEmailChange)
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
			c.logger.Warn("email change skipped, no session credential",
				zap.String("attempt_id", attemptID))
			c.metricInc(MetricUnauthenticatedSkip)
			f.settle(gen, PhaseEditing, "", nil)
			return err
		}
		c.logger.Error("email change aborted, credential store read failed",
			zap.String("attempt_id", attemptID), zap.Error(err))
		f.settle(gen, PhaseFailed, WorkflowEmailChange.fallbackMessage(), err)
		return err
	}

	start := time.Now()
	result, err := c.remote.UpdateEmail(ctx, cred, fields.NewEmail, fields.Password)
	c.observeRemote(start)

	if err != nil {
		if errors.Is(err, ErrTransport) {
			c.metricInc(MetricTransportFailure)
		} else {
			c.metricInc(MetricEmailChangeRejected)
		}
		c.logger.Info("email change rejected",
			zap.String("attempt_id", attemptID), zap.Error(err))
		f.settle(gen, PhaseFailed, formErrorText(err, WorkflowEmailChange), err)
		return err
	}

	// Server-confirmed updates apply even if the user has navigated away:
	// the backend has already committed the mutation.
	if !result.Token.Empty() {
		if err := c.store.Replace(ctx, result.Token); err != nil {
			// The old credential is already invalid server-side; without the
			// swap every subsequent authenticated call will fail.
			c.logger.Error("reissued credential could not be stored",
				zap.String("attempt_id", attemptID), zap.Error(err))
			f.settle(gen, PhaseFailed, WorkflowEmailChange.fallbackMessage(), err)
			return err
		}
		c.metricInc(MetricCredentialReissued)
	}

	if result.Email != "" {
		if _, err := c.store.UpdateProfile(ctx, credstore.ProfilePatch{Email: &result.Email}); err != nil {
			c.logger.Error("confirmed email could not be stored",
				zap.String("attempt_id", attemptID), zap.Error(err))
			f.settle(gen, PhaseFailed, WorkflowEmailChange.fallbackMessage(), err)
			return err
		}
	} else {
		c.logger.Warn("email change response carried no confirmed address",
			zap.String("attempt_id", attemptID))
	}

	c.metricInc(MetricEmailChangeSuccess)

	f.core.mu.Lock()
	applied := f.core.mounted && f.core.generation == gen
	if applied {
		f.fields = EmailFields{NewEmail: result.Email}
		f.core.phase = PhaseSucceeded
		f.core.errText = ""
		f.core.errCause = nil
	}
	f.core.mu.Unlock()

	if applied {
		c.notify(ctx, Notification{
			Workflow:  WorkflowEmailChange,
			AttemptID: attemptID,
			Severity:  SeveritySuccess,
			Message:   "Email changed",
		})
	} else {
		c.logger.Debug("email change result discarded, form torn down",
			zap.String("attempt_id", attemptID))
	}
	return nil
}

func (f *EmailForm) settle(gen uint64, phase FormPhase, errText string, cause error) {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || f.core.generation != gen {
		return
	}
	f.core.phase = phase
	f.core.errText = errText
	f.core.errCause = cause
}
