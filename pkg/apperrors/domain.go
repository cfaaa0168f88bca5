package apperrors

import "net/http"

// ErrNotFound wraps a repository "not found" sentinel.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation.
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserInactive = New(
	CodeUserInactive,
	"auth",
	"User account is deactivated",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"admin",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// --- profiles ---

// ErrProfileRequired - the caller has to complete profile setup first.
var ErrProfileRequired = New(
	CodeProfileRequired,
	"profile",
	"Please complete your profile first",
	http.StatusPreconditionRequired, // 428
)

var ErrInvalidBloodType = New(
	CodeInvalidBloodType,
	"blood_type",
	"Unknown blood type",
	http.StatusBadRequest,
)

// --- blood requests & donations ---

var ErrRequestNotActive = New(
	CodeRequestNotActive,
	"blood_request",
	"Blood request is no longer active",
	http.StatusConflict,
)

var ErrDonorNotEligible = New(
	CodeDonorNotEligible,
	"donation",
	"Donor is still within the 56 day cooldown period",
	http.StatusUnprocessableEntity,
)

var ErrInvalidEventWindow = New(
	CodeInvalidEventWindow,
	"donation_event",
	"Event end time must be after start time",
	http.StatusBadRequest,
)
