package guidemate

import "net/http"

// ErrorKind enumerates the failures the service reports to its transport.
// The presentation layer matches on the kind; messages are advisory.
type ErrorKind string

const (
	KindBadRequest          ErrorKind = "bad_request"
	KindNoActiveRoute       ErrorKind = "no_active_route"
	KindAlreadyHasRoute     ErrorKind = "already_has_route"
	KindDestinationNotFound ErrorKind = "destination_not_found"
	KindOutsideCoverage     ErrorKind = "outside_coverage"
	KindUnreachable         ErrorKind = "unreachable"
	KindInternal            ErrorKind = "internal"
)

// Error is a tagged service failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps an error kind onto a response status.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNoActiveRoute, KindDestinationNotFound:
		return http.StatusNotFound
	case KindAlreadyHasRoute:
		return http.StatusConflict
	case KindOutsideCoverage, KindUnreachable:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
