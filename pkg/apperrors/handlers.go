package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error *AppError `json:"error"`
}

// HandleError writes err as {"error": {...}}. Errors that are not AppErrors become
// 500s. Outside debug mode a 500 never exposes its message, details or cause.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "code", appErr.Code, "error", appErr.Unwrap())
		if gin.Mode() != gin.DebugMode {
			appErr = &AppError{
				Code:     appErr.Code,
				Domain:   appErr.Domain,
				Message:  "Internal server error",
				HTTPCode: appErr.HTTPCode,
			}
		}
	}

	c.JSON(appErr.HTTPCode, errorBody{Error: appErr})
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
