// Package httpapi is the transport boundary: it decodes the action-dispatch
// request, runs the syntactic validators, calls the auth service, and
// translates every outcome into the wire format. Raw internal errors never
// reach the caller; they are logged with a correlation id that also appears
// in the error body.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/brianXcode/tezda-auth-service/internal/common"
	"github.com/brianXcode/tezda-auth-service/internal/server/models"
	"github.com/brianXcode/tezda-auth-service/internal/server/services"
	"github.com/brianXcode/tezda-auth-service/internal/server/validation"
)

// Actions accepted by the /auth endpoint.
const (
	ActionRegister = "REGISTER"
	ActionLogin    = "LOGIN"
)

// Error type names serialized in failure responses.
const (
	errTypeBadRequest       = "BadRequest"
	errTypeMethodNotAllowed = "MethodNotAllowed"
	errTypeUnauthorized = "Unauthorized"
	errTypeForbidden    = "Forbidden"
	errTypeNotFound     = "NotFound"
	errTypeConflict     = "Conflict"
	errTypeInternal     = "InternalServerError"
)

const weakPasswordMessage = "Password must be at least 8 characters and include one lowercase letter, one uppercase letter, one digit, and one symbol"

type authRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// errorResponse is the uniform failure envelope. ID is a fresh correlation
// identifier; the same id is attached to the server-side log line carrying
// the full error.
type errorResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	ErrorType string `json:"errorType"`
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", errTypeMethodNotAllowed, nil)
		return
	}

	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid request body", errTypeBadRequest, err)
		return
	}

	if req.Action == "" || req.Email == "" || req.Password == "" {
		s.writeError(w, r, http.StatusBadRequest, "Missing required fields", errTypeBadRequest, nil)
		return
	}

	// Cheap fail-fast gate: nothing below runs until the address is
	// syntactically sound.
	if !validation.Email(req.Email) {
		s.writeError(w, r, http.StatusBadRequest, "Invalid email format", errTypeBadRequest, nil)
		return
	}

	switch req.Action {
	case ActionRegister:
		// Strength is a registration precondition only. At login the
		// submitted password is just a candidate: a weak one must still
		// reach verification and fail as Unauthorized, not BadRequest.
		if !validation.Password(req.Password) {
			s.writeError(w, r, http.StatusBadRequest, weakPasswordMessage, errTypeBadRequest, nil)
			return
		}
		_, err := s.auth.Register(ctx, services.RegisterRequest{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			Role:     models.Role(req.Role),
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusCreated, registerResponse{
			Success: true,
			Message: "User registered successfully",
		})

	case ActionLogin:
		res, err := s.auth.Login(ctx, req.Email, req.Password)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, loginResponse{
			Message: "Login successful",
			Token:   res.Token,
			User:    res.User.Public(),
		})

	default:
		s.writeError(w, r, http.StatusBadRequest, "Invalid action", errTypeBadRequest, nil)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Auth Service Running!"))
}

// writeServiceError maps service-layer sentinels to the disclosed status,
// message, and error type.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeError(w, r, http.StatusConflict, "Email already in use", errTypeConflict, err)
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, r, http.StatusNotFound, "User Not Found", errTypeNotFound, err)
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeError(w, r, http.StatusUnauthorized, "Unauthorized", errTypeUnauthorized, err)
	case errors.Is(err, common.ErrorAccessDenied):
		s.writeError(w, r, http.StatusForbidden, "Access Denied", errTypeForbidden, err)
	case errors.Is(err, common.ErrorIncompleteIdentity):
		s.writeError(w, r, http.StatusBadRequest, "User email and userId are required", errTypeBadRequest, err)
	default:
		s.writeError(w, r, http.StatusInternalServerError, "An internal server error occurred.", errTypeInternal, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message, errorType string, cause error) {
	body := errorResponse{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   message,
		ErrorType: errorType,
	}

	logArgs := []any{"errorId", body.ID, "status", status, "errorType", errorType}
	if cause != nil {
		logArgs = append(logArgs, "error", cause.Error())
	}
	s.logger.Warn(r.Context(), "request failed", logArgs...)

	s.writeJSON(w, r, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "writing response failed", "error", err.Error())
	}
}
