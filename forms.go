package sessions

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Form validity follows the submit-button contract: a form can be submitted
// iff every constrained field satisfies its constraint. Validation is
// synchronous; callers re-evaluate CanSubmit after each field change.

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(3, 0),
		),
	)
}

// CanSubmit reports whether the login form may be submitted.
func (r LoginRequest) CanSubmit() bool {
	return r.Validate() == nil
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(3, 20)),
		validation.Field(&r.LastName, validation.Required, validation.Length(3, 20)),
		validation.Field(&r.Password, validation.Required, validation.Length(3, 40)),
	)
}

// CanSubmit reports whether the register form may be submitted.
func (r RegisterRequest) CanSubmit() bool {
	return r.Validate() == nil
}

// SessionForm is the create/update form for a session. Constructing one is
// role-gated: the admin check consults the identity store once, at
// construction time, not continuously.
type SessionForm struct {
	Name        string
	Date        string
	TeacherID   int64
	Description string

	editing *Session
}

// NewSessionForm returns an empty create form. Non-admin identities are
// denied; anonymous callers surface Unauthenticated.
func NewSessionForm(store *IdentityStore) (*SessionForm, error) {
	if err := requireAdmin(store, ActionCreateSession); err != nil {
		return nil, err
	}
	return &SessionForm{}, nil
}

// NewSessionUpdateForm returns a form pre-filled from an existing session.
func NewSessionUpdateForm(store *IdentityStore, session *Session) (*SessionForm, error) {
	if err := requireAdmin(store, ActionUpdateSession); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, wrapKind(ErrNotFound, nil, map[string]any{"reason": "no session to edit"})
	}

	return &SessionForm{
		Name:        session.Name,
		Date:        session.Date.Format("2006-01-02"),
		TeacherID:   session.TeacherID,
		Description: session.Description,
		editing:     session,
	}, nil
}

func (f SessionForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&f.TeacherID, validation.Required),
		validation.Field(&f.Description, validation.Required, validation.Length(0, 2000)),
	)
}

// CanSubmit reports whether the session form may be submitted.
func (f SessionForm) CanSubmit() bool {
	return f.Validate() == nil
}

// Draft converts the form into the wire payload. It fails with Validation
// when a constraint is unsatisfied, so an invalid form never reaches the
// network.
func (f SessionForm) Draft() (SessionDraft, error) {
	if err := f.Validate(); err != nil {
		return SessionDraft{}, wrapKind(ErrValidation, err, nil)
	}

	date, err := parseFormDate(f.Date)
	if err != nil {
		return SessionDraft{}, wrapKind(ErrValidation, err, map[string]any{"field": "date"})
	}

	return SessionDraft{
		Name:        f.Name,
		Description: f.Description,
		Date:        date,
		TeacherID:   f.TeacherID,
	}, nil
}

// Editing returns the session being updated, if this is an update form.
func (f SessionForm) Editing() (*Session, bool) {
	return f.editing, f.editing != nil
}

func parseFormDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func requireAdmin(store *IdentityStore, action Action) error {
	identity, _ := store.Current()
	access := AccessFor(identity)

	if access == AccessAnonymous {
		return wrapKind(ErrUnauthenticated, nil, map[string]any{"action": string(action)})
	}
	if !Permit(access, action) {
		return wrapKind(ErrForbidden, nil, map[string]any{
			"action": string(action),
			"role":   identity.Role(),
		})
	}
	return nil
}
