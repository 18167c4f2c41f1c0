package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "continuum/internal/errors"
	"continuum/internal/logger"
	"continuum/internal/uuid"
	appvalidator "continuum/internal/validator"
)

// location is the user's calendar. Derived day counts, renewal steps and
// date query parameters are read in it.
var location = time.Local

// SetLocation sets the calendar handlers use. A nil loc keeps the current one.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// now is the clock used for derived fields and defaults. Tests replace it.
var now = func() time.Time {
	return time.Now().In(location)
}

// dateLayout is the civil-date form accepted by calendar query parameters.
const dateLayout = "2006-01-02"

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// parsePathID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a well-formed UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// bindJSON decodes the request body into req. Binding rule failures are
// validation errors; anything else means the body could not be read.
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.WithMessage(apperrors.ErrValidation, appvalidator.Describe(err))
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Request body is not valid JSON: "+err.Error())
}

// validationError reports the failure of a model Validate hook.
func validationError(err error) error {
	return apperrors.WithMessage(apperrors.ErrValidation, strings.ReplaceAll(err.Error(), "\n", "; "))
}

// trimPtr trims the pointed-to string in place.
func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter as midnight
// in the location of the handler clock. ok is false when the parameter is
// absent.
func parseDateQuery(c *gin.Context, key string) (t time.Time, ok bool, err error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err = time.ParseInLocation(dateLayout, raw, now().Location())
	if err != nil {
		return time.Time{}, false, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"Invalid "+key+": expected YYYY-MM-DD")
	}
	return t, true, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
