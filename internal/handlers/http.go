package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amontoya/webawards/internal/errors"
	"github.com/amontoya/webawards/internal/services"
)

// Error codes for standardized API error responses
const (
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"

	ErrCodeVotingClosed         = "VOTING_CLOSED"
	ErrCodeVotingPaused         = "VOTING_PAUSED"
	ErrCodeVotingNotStarted     = "VOTING_NOT_STARTED"
	ErrCodeDataLoadingPeriod    = "DATA_LOADING_PERIOD"
	ErrCodeQuotaExceeded        = "QUOTA_EXCEEDED"
	ErrCodeAlreadyVoted         = "ALREADY_VOTED"
	ErrCodeTeamNotParticipating = "TEAM_NOT_PARTICIPATING"
	ErrCodeRoleNotPermitted     = "ROLE_NOT_PERMITTED"
	ErrCodeSelfDelete           = "SELF_DELETE"
	ErrCodePasswordMismatch     = "PASSWORD_MISMATCH"
)

// APIError represents an error with an HTTP status code and error code
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrBadRequest     = &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: "Bad request"}
	ErrUnauthorized   = &APIError{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: "Unauthorized"}
	ErrNotFound       = &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: "Not found"}
	ErrInternalServer = &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error"}
)

// NewAPIError creates a new API error with custom message and code
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// BadRequest creates a 400 error with custom message
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: message}
}

// Unauthorized creates a 401 error with custom message
func Unauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: message}
}

// Forbidden creates a 403 error with custom message
func Forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: ErrCodeForbidden, Message: message}
}

// NotFound creates a 404 error with custom message
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// Conflict creates a 409 error with custom message
func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: ErrCodeConflict, Message: message}
}

// InternalError creates a 500 error, logs the original error
func InternalError(err error) *APIError {
	log.Printf("Internal error: %v", err)
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error"}
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondOK writes a 200 OK JSON response
func respondOK(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a 201 Created JSON response
func respondCreated(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusCreated, data)
}

// respondSuccess writes a 200 OK with a message
func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// respondDeleted writes a 204 No Content response
func respondDeleted(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*APIError); ok {
		respondJSON(w, apiErr.Status, apiErr)
		return
	}
	apiErr := ToAPIError(err)
	respondJSON(w, apiErr.Status, apiErr)
}

// decodeJSON decodes JSON from request body into the target
func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if err == io.EOF {
			return BadRequest("Request body is empty")
		}
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

// parseIntParam extracts and parses an integer URL parameter
func parseIntParam(r *http.Request, name string) (int, error) {
	param := chi.URLParam(r, name)
	if param == "" {
		return 0, BadRequest("Missing " + name + " parameter")
	}
	id, err := strconv.Atoi(param)
	if err != nil {
		return 0, BadRequest("Invalid " + name + " parameter")
	}
	return id, nil
}

// ToAPIError converts service errors to appropriate API errors. Each
// ballot rejection keeps its own error code so clients can tell them
// apart.
func ToAPIError(err error) *APIError {
	switch err {
	case services.ErrRoleNotPermitted:
		return NewAPIError(http.StatusForbidden, ErrCodeRoleNotPermitted, err.Error())
	case services.ErrQuotaExceeded:
		return NewAPIError(http.StatusConflict, ErrCodeQuotaExceeded, err.Error())
	case services.ErrDuplicateVote:
		return NewAPIError(http.StatusConflict, ErrCodeAlreadyVoted, err.Error())
	case services.ErrTeamNotFound:
		return NotFound(err.Error())
	case services.ErrTeamNotParticipating:
		return NewAPIError(http.StatusBadRequest, ErrCodeTeamNotParticipating, err.Error())
	case services.ErrVotingClosed:
		return NewAPIError(http.StatusForbidden, ErrCodeVotingClosed, err.Error())
	case services.ErrVotingPaused:
		return NewAPIError(http.StatusForbidden, ErrCodeVotingPaused, err.Error())
	case services.ErrVotingNotStarted:
		return NewAPIError(http.StatusForbidden, ErrCodeVotingNotStarted, err.Error())
	case services.ErrDataLoadingPeriod:
		return NewAPIError(http.StatusForbidden, ErrCodeDataLoadingPeriod, err.Error())
	case services.ErrSelfDelete:
		return NewAPIError(http.StatusBadRequest, ErrCodeSelfDelete, err.Error())
	case services.ErrPasswordMismatch:
		return NewAPIError(http.StatusUnauthorized, ErrCodePasswordMismatch, err.Error())
	}

	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		switch appErr.Kind {
		case errors.ErrNotFound:
			return NotFound(appErr.Message)
		case errors.ErrValidation, errors.ErrInvalidInput:
			return &APIError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: appErr.Message}
		case errors.ErrConflict:
			return Conflict(appErr.Message)
		case errors.ErrUnauthorized:
			return Unauthorized(appErr.Message)
		case errors.ErrForbidden:
			return Forbidden(appErr.Message)
		default:
			return InternalError(err)
		}
	}

	if svcErr, ok := err.(*services.ServiceError); ok {
		return BadRequest(svcErr.Message)
	}

	return InternalError(err)
}
