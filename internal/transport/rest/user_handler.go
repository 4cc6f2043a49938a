package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	usererrors "github.com/avlasov/sneakerhub/internal/user/errors"
	"github.com/avlasov/sneakerhub/internal/user/service"
	"github.com/avlasov/sneakerhub/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// UserHandler serves the unauthenticated registration and login endpoints.
type UserHandler struct {
	service  service.UserService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewUserHandler(service service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

func (h *UserHandler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// Register creates a new account and responds with a fresh bearer token.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	creds, ok := h.decodeCredentials(w, r, mLogger)
	if !ok {
		return
	}

	result, err := h.service.Register(r.Context(), creds)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserAlreadyExists) {
			web.RespondError(w, mLogger, http.StatusConflict, "User already exists")
			return
		}
		mLogger.ErrorContext(r.Context(), "Registration failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Registration failed")
		return
	}

	mLogger.InfoContext(r.Context(), "User registered", "email", creds.Email)
	web.RespondJSON(w, mLogger, http.StatusCreated, struct {
		Message string `json:"message"`
		*service.AuthResultDto
	}{"User registered successfully", result})
}

// Login authenticates an existing account.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	creds, ok := h.decodeCredentials(w, r, mLogger)
	if !ok {
		return
	}

	result, err := h.service.Login(r.Context(), creds)
	if err != nil {
		if errors.Is(err, usererrors.ErrInvalidCredentials) {
			web.RespondError(w, mLogger, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		mLogger.ErrorContext(r.Context(), "Login failed", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Login failed")
		return
	}

	web.RespondJSON(w, mLogger, http.StatusOK, struct {
		Message string `json:"message"`
		*service.AuthResultDto
	}{"Login successful", result})
}

func (h *UserHandler) decodeCredentials(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (service.CredentialsDto, bool) {
	var creds service.CredentialsDto
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "Email and password are required")
		return creds, false
	}
	if err := h.validate.Struct(creds); err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, credentialsValidationMessage(err))
		return creds, false
	}
	return creds, true
}

func credentialsValidationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Email and password are required"
	}
	for _, fieldErr := range validationErrors {
		if fieldErr.Field() == "Password" && fieldErr.Tag() == "min" {
			return "Password must be at least 6 characters"
		}
		if fieldErr.Field() == "Email" && fieldErr.Tag() == "email" {
			return "A valid email address is required"
		}
	}
	return "Email and password are required"
}

func (h *UserHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
