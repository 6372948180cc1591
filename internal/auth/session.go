package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/GoArmGo/Playlister/internal/domain"
)

const (
	sessionName = "playlister"
	userIDKey   = "user_id"
	sessionTTL  = 7 * 24 * 60 * 60
)

// SessionManager хранит ID пользователя в подписанной cookie.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager создает хранилище сессий с ключом подписи secret.
func NewSessionManager(secret string, secure bool) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionTTL,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// Login записывает ID пользователя в сессию.
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID domain.ID) error {
	// Get возвращает новую сессию даже при поврежденной cookie
	session, _ := m.store.Get(r, sessionName)
	session.Values[userIDKey] = string(userID)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

// Logout удаляет cookie сессии.
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

// UserID возвращает ID пользователя из cookie, если сессия действительна.
func (m *SessionManager) UserID(r *http.Request) (domain.ID, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	id, ok := session.Values[userIDKey].(string)
	if !ok || id == "" {
		return "", false
	}
	return domain.ID(id), true
}

type ctxKey struct{}

// WithUserID кладет ID вызывающего в контекст запроса.
func WithUserID(ctx context.Context, id domain.ID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserIDFromContext достает ID вызывающего, положенный middleware.
func UserIDFromContext(ctx context.Context) (domain.ID, bool) {
	id, ok := ctx.Value(ctxKey{}).(domain.ID)
	return id, ok && id != ""
}
