package apperrors

// ErrorCode is the stable, machine readable part of an error response.
type ErrorCode string

const (
	CodeInternalError ErrorCode = "INTERNAL_ERROR"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeUserInactive       ErrorCode = "USER_INACTIVE"

	// Blood donation domain
	CodeProfileRequired    ErrorCode = "PROFILE_REQUIRED"
	CodeInvalidBloodType   ErrorCode = "INVALID_BLOOD_TYPE"
	CodeDonorNotEligible   ErrorCode = "DONOR_NOT_ELIGIBLE"
	CodeRequestNotActive   ErrorCode = "REQUEST_NOT_ACTIVE"
	CodeInvalidEventWindow ErrorCode = "INVALID_EVENT_WINDOW"
)
