package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/Playlister/internal/auth"
	"github.com/GoArmGo/Playlister/internal/domain"
	"github.com/GoArmGo/Playlister/internal/usecase"
)

// AuthHandler — обработчик регистрации, входа и профиля.
type AuthHandler struct {
	accounts usecase.AccountUseCase
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(accounts usecase.AccountUseCase, sessions *auth.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

type registerRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	PasswordVerify string `json:"passwordVerify" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// Register — POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.accounts.Register(r.Context(), usecase.RegisterInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		PasswordVerify: req.PasswordVerify,
	})
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.sessions.Login(w, r, user.ID); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, userResponse{Success: true, User: user}, h.logger)
}

// Login — POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.sessions.Login(w, r, user.ID); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, userResponse{Success: true, User: user}, h.logger)
}

// Logout — GET /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true}, h.logger)
}

// LoggedIn — GET /auth/loggedIn. Без сессии отвечает loggedIn=false, а не 401.
func (h *AuthHandler) LoggedIn(w http.ResponseWriter, r *http.Request) {
	type loggedInResponse struct {
		LoggedIn bool         `json:"loggedIn"`
		User     *domain.User `json:"user"`
	}

	userID, ok := h.sessions.UserID(r)
	if !ok {
		respondWithJSON(w, http.StatusOK, loggedInResponse{}, h.logger)
		return
	}

	user, err := h.accounts.CurrentUser(r.Context(), userID)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, loggedInResponse{LoggedIn: user != nil, User: user}, h.logger)
}

// UpdateProfile — PUT /auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithDomainError(w, r, domain.ErrUnauthenticated, h.logger)
		return
	}

	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), userID, usecase.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	h.logger.Info("profile updated", "user_id", userID)
	respondWithJSON(w, http.StatusOK, userResponse{Success: true, User: user}, h.logger)
}
