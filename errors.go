package sessions

import (
	stderrors "errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeUnauthenticated = "session_unauthenticated"
	TextCodeForbidden       = "session_forbidden"
	TextCodeNotFound        = "session_resource_not_found"
	TextCodeConflict        = "session_duplicate_resource"
	TextCodeValidation      = "session_validation_failed"
	TextCodeTransport       = "session_transport_failure"
)

// ErrUnauthenticated is returned when an action requires an identity and none
// is present, or the server rejects the credential.
var ErrUnauthenticated = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrForbidden is returned when an identity is present but its role does not
// permit the action.
var ErrForbidden = goerrors.New("insufficient role", goerrors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(goerrors.CodeForbidden)

// ErrNotFound is returned when the requested resource id does not exist.
var ErrNotFound = goerrors.New("resource not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrConflict is returned on duplicate registration.
var ErrConflict = goerrors.New("resource already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeConflict).
	WithCode(goerrors.CodeConflict)

// ErrValidation is returned when a client-side field constraint fails. It is
// resolved locally by disabling submission and never reaches the network.
var ErrValidation = goerrors.New("validation failed", goerrors.CategoryValidation).
	WithTextCode(TextCodeValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrTransport covers network and server failures that fit no other kind.
var ErrTransport = goerrors.New("transport failure", goerrors.CategoryOperation).
	WithTextCode(TextCodeTransport).
	WithCode(goerrors.CodeInternal)

func IsUnauthenticated(err error) bool { return stderrors.Is(err, ErrUnauthenticated) }
func IsForbidden(err error) bool       { return stderrors.Is(err, ErrForbidden) }
func IsNotFound(err error) bool        { return stderrors.Is(err, ErrNotFound) }
func IsConflict(err error) bool        { return stderrors.Is(err, ErrConflict) }
func IsValidation(err error) bool      { return stderrors.Is(err, ErrValidation) }
func IsTransport(err error) bool       { return stderrors.Is(err, ErrTransport) }

// statusOf extracts the HTTP status recorded by the gateway plumbing, or 0.
func statusOf(err error) int {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich == nil {
		return 0
	}
	if status, ok := rich.Metadata["status"].(int); ok {
		return status
	}
	return 0
}

// wrapKind attaches a cause and metadata to one of the taxonomy errors while
// keeping errors.Is matching against the base.
func wrapKind(base *goerrors.Error, err error, meta map[string]any) error {
	clone := base.Clone()
	if clone == nil {
		return base
	}
	clone.Source = base
	if err != nil {
		if meta == nil {
			meta = map[string]any{}
		}
		meta["error"] = err.Error()
	}
	if len(meta) > 0 {
		return clone.WithMetadata(meta)
	}
	return clone
}
