// Package handler содержит HTTP-обработчики и middleware сервера.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GoArmGo/Playlister/internal/domain"
)

// maxBodyBytes ограничивает размер JSON-тела запроса
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// errorResponse — единый формат ответа с ошибкой.
type errorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, errorResponse{Success: false, ErrorMessage: message}, logger)
}

// respondWithDomainError сопоставляет ошибку сценария с HTTP-статусом.
// Неизвестные ошибки логируются и отдаются клиенту как 500 без подробностей.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, verr.Error(), logger)
	case errors.Is(err, domain.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", logger)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Wrong email or password provided.", logger)
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Authentication error", logger)
	case errors.Is(err, domain.ErrPlaylistNotFound):
		respondWithError(w, http.StatusNotFound, "Playlist not found", logger)
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found", logger)
	case errors.Is(err, domain.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, "An account with this email address already exists.", logger)
	default:
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

// decodeJSON читает тело запроса в dst и проверяет теги validate.
// Любая проблема возвращается как *domain.ValidationError.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("", "некорректное тело запроса")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.NewValidationError(fe.Field(), validationMessage(fe))
		}
		return domain.NewValidationError("", err.Error())
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "email":
		return "некорректный email"
	case "min":
		return "слишком короткое значение"
	case "gte":
		return "значение должно быть не меньше " + fe.Param()
	default:
		return "некорректное значение"
	}
}
