package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
)

// HTTPError is a transport failure raised by the handlers themselves, such as
// a malformed body or an oversized upload.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

func badRequest(message string, err error) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Code: "invalid_request", Message: message, Err: err}
}

// appErrorStatus maps application error codes to response statuses.
var appErrorStatus = map[string]int{
	apperrors.CodeInvalidInput:    http.StatusBadRequest,
	apperrors.CodeNotFound:        http.StatusNotFound,
	apperrors.CodeConfiguration:   http.StatusServiceUnavailable,
	apperrors.CodeExternalService: http.StatusBadGateway,
}

// asHTTPError resolves any handler error into the response it produces.
// Service errors carry an application code; anything else is a 500 whose
// detail stays in the log.
func asHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := appErrorStatus[appErr.Code]; ok {
			code := appErr.Code
			if code == apperrors.CodeInvalidInput {
				code = "invalid_request"
			}
			message := strings.TrimSpace(appErr.Message)
			if message == "" {
				message = http.StatusText(status)
			}
			return &HTTPError{Status: status, Code: code, Message: message, Err: err}
		}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// abortWithError hands err to errorHandlingMiddleware and stops the chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
