package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the uniform error envelope: {"error": {"message", "code",
// "statusCode"}}. code is a short machine-readable string.
type Err struct {
	Error ErrBody `json:"error"`
}

type ErrBody struct {
	Message    string `json:"message"`
	Code       string `json:"code"`
	StatusCode int    `json:"statusCode"`
}

func newErr(statusCode int, code, message string) *Err {
	return &Err{
		Error: ErrBody{
			Message:    message,
			Code:       code,
			StatusCode: statusCode,
		},
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

func ErrUnauthorized(message string) *Err {
	return newErr(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
}

func ErrForbidden(err error) *Err {
	return newErr(http.StatusForbidden, "FORBIDDEN", err.Error())
}

func ErrNotFound(err error) *Err {
	return newErr(http.StatusNotFound, "NOT_FOUND", err.Error())
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, "CONFLICT", err.Error())
}

// ErrInternalServerError wraps an opaque failure, usually from the store. The
// wrapped chain is logged server-side.
func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.Error.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("code", err.Error.Code),
			zap.String("message", err.Error.Message),
		)
	}

	ctx.JSON(err.Error.StatusCode, err)
}
