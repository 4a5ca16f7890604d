package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/pkg/logger"
)

// Error kinds reported by the API.
const (
	KindValidation     = "ValidationError"
	KindAuthentication = "AuthenticationError"
	KindAuthorization  = "AuthorizationError"
	KindNotFound       = "NotFoundError"
	KindConflict       = "ConflictError"
	KindInternal       = "InternalError"
)

// Response is the unified success envelope.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// ErrorResponse is the unified failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AppError represents a structured application error with HTTP status and kind.
type AppError struct {
	HTTPStatus int    // HTTP status code (e.g. 400, 404, 500)
	Kind       string // One of the Kind* constants
	Message    string // Human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

// Pre-defined error constructors

func NewBadRequest(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

func NewBadRequestf(format string, args ...interface{}) *AppError {
	return NewBadRequest(fmt.Sprintf(format, args...))
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Kind: KindAuthentication, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Kind: KindAuthorization, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Kind: KindConflict, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Kind: KindInternal, Message: msg}
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		StatusCode: http.StatusCreated,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

// Error sends an error response. If err is an *AppError, its status is used;
// otherwise the error is logged and a generic 500 is returned so that
// internals never reach the client.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		abortWith(c, appErr.HTTPStatus, appErr.Message)
		return
	}
	logger.Ctx(c).Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("unexpected error")
	abortWith(c, http.StatusInternalServerError, "internal server error")
}

func abortWith(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: msg})
}

// Convenience error response functions

func BadRequest(c *gin.Context, msg string) {
	abortWith(c, http.StatusBadRequest, msg)
}

func Unauthorized(c *gin.Context, msg string) {
	abortWith(c, http.StatusUnauthorized, msg)
}

func Forbidden(c *gin.Context, msg string) {
	abortWith(c, http.StatusForbidden, msg)
}

func NotFound(c *gin.Context, msg string) {
	abortWith(c, http.StatusNotFound, msg)
}

func TooManyRequests(c *gin.Context, msg string) {
	abortWith(c, http.StatusTooManyRequests, msg)
}

func ServerError(c *gin.Context, msg string) {
	abortWith(c, http.StatusInternalServerError, msg)
}
