package account

import "sync"

// FormPhase is the discrete state of a single editable workflow instance.
// Bundling phase, fields, and error into one tagged machine keeps illegal
// combinations ("submitting and succeeded simultaneously") unrepresentable.
type FormPhase uint8

const (
	// PhaseIdle is an exported constant or variable used by the account client.
	PhaseIdle FormPhase = iota
	// PhaseEditing is an exported constant or variable used by the account client.
	PhaseEditing
	// PhaseSubmitting is an exported constant or variable used by the account client.
	PhaseSubmitting
	// PhaseSucceeded is an exported constant or variable used by the account client.
	PhaseSucceeded
	// PhaseFailed is an exported constant or variable used by the account client.
	PhaseFailed
)

// String describes the string operation and its observable behavior.
func (p FormPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PasswordFields are the three inputs of the password-change editor.
type PasswordFields struct {
	Current string
	New     string
	Confirm string
}

// EmailFields are the two inputs of the email-change editor.
type EmailFields struct {
	NewEmail string
	Password string
}

// formCore carries the phase machine shared by both workflows. The
// generation counter implements apply-if-still-mounted: a submission records
// the generation it started under, and its result is discarded if Cancel or
// Teardown advanced it in the meantime.
type formCore struct {
	mu         sync.Mutex
	phase      FormPhase
	generation uint64
	mounted    bool
	errText    string
	errCause   error
}

func (c *formCore) resetLocked() {
	c.generation++
	c.phase = PhaseIdle
	c.errText = ""
	c.errCause = nil
}

// editableLocked reports whether a submit may start from the current phase.
// Failed is editable: the user corrects the retained fields and resubmits.
func (c *formCore) editableLocked() bool {
	return c.phase == PhaseEditing || c.phase == PhaseFailed
}

// PasswordForm is one password-change workflow instance:
// Idle → Editing → Submitting → {Succeeded | Failed → Editing}. Created by
// [Client.NewPasswordForm] when the user opens the editor, reset to Idle on
// cancel; Succeeded also reads as closed.
type PasswordForm struct {
	core   formCore
	fields PasswordFields
	client *Client
}

// NewPasswordForm creates a mounted password-change form in the Idle phase.
func (c *Client) NewPasswordForm() *PasswordForm {
	return &PasswordForm{
		core:   formCore{phase: PhaseIdle, mounted: true},
		client: c,
	}
}

// Open transitions the form into Editing. Opening an already-editing or
// submitting form is a no-op.
func (f *PasswordForm) Open() {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || f.core.phase == PhaseEditing || f.core.phase == PhaseSubmitting {
		return
	}
	f.core.phase = PhaseEditing
}

// SetFields records the editor inputs. From Failed this returns the form to
// Editing; the previous error stays attached until the next submit clears it.
func (f *PasswordForm) SetFields(fields PasswordFields) {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || !f.core.editableLocked() {
		return
	}
	f.fields = fields
	f.core.phase = PhaseEditing
}

// Fields returns the current editor inputs.
func (f *PasswordForm) Fields() PasswordFields {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	return f.fields
}

// Phase returns the current form phase.
func (f *PasswordForm) Phase() FormPhase {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	return f.core.phase
}

// Err returns the text in the form's error slot and its underlying cause.
func (f *PasswordForm) Err() (string, error) {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	return f.core.errText, f.core.errCause
}

// Cancel closes the editor: fields and error are cleared and the form
// returns to Idle. An in-flight submission runs to completion but its form
// updates are discarded. No user-visible effect beyond the reset.
func (f *PasswordForm) Cancel() {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || f.core.phase == PhaseIdle {
		return
	}
	f.fields = PasswordFields{}
	f.core.resetLocked()
}

// Teardown unmounts the instance, e.g. when the user navigates away. Any
// result arriving afterwards is discarded without touching form state.
func (f *PasswordForm) Teardown() {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	f.fields = PasswordFields{}
	f.core.generation++
	f.core.mounted = false
}

// EmailForm is one email-change workflow instance with the same phase
// structure as [PasswordForm]. On success the NewEmail field is reset to the
// server-confirmed address rather than blanked.
type EmailForm struct {
	core   formCore
	fields EmailFields
	client *Client
}

// NewEmailForm creates a mounted email-change form in the Idle phase.
func (c *Client) NewEmailForm() *EmailForm {
	return &EmailForm{
		core:   formCore{phase: PhaseIdle, mounted: true},
		client: c,
	}
}

// Open transitions the form into Editing. Opening an already-editing or
// submitting form is a no-op.
func (f *EmailForm) Open() {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || f.core.phase == PhaseEditing || f.core.phase == PhaseSubmitting {
		return
	}
	f.core.phase = PhaseEditing
}

// SetFields records the editor inputs. From Failed this returns the form to
// Editing; the previous error stays attached until the next submit clears it.
func (f *EmailForm) SetFields(fields EmailFields) {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || !f.core.editableLocked() {
		return
	}
	f.fields = fields
	f.core.phase = PhaseEditing
}

// Fields returns the current editor inputs.
func (f *EmailForm) Fields() EmailFields {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	return f.fields
}

// Phase returns the current form phase.
func (f *EmailForm) Phase() FormPhase {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	return f.core.phase
}

// Err returns the text in the form's error slot and its underlying cause.
func (f *EmailForm) Err() (string, error) {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	return f.core.errText, f.core.errCause
}

// Cancel closes the editor: fields and error are cleared and the form
// returns to Idle.
func (f *EmailForm) Cancel() {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	if !f.core.mounted || f.core.phase == PhaseIdle {
		return
	}
	f.fields = EmailFields{}
	f.core.resetLocked()
}

// Teardown unmounts the instance. Any result arriving afterwards is
// discarded without touching form state; server-confirmed store updates
// still apply.
func (f *EmailForm) Teardown() {
	f.core.mu.Lock()
	defer f.core.mu.Unlock()

	f.fields = EmailFields{}
	f.core.generation++
	f.core.mounted = false
}
