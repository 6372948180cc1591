package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/Playlister/internal/domain"
)

func init() {
	hashCost = bcrypt.MinCost
}

func TestAuthorize(t *testing.T) {
	alice := &domain.User{ID: "a1", Email: "alice@example.com"}

	tests := []struct {
		name    string
		owner   *domain.User
		caller  domain.ID
		wantErr error
	}{
		{"owner matches caller", alice, "a1", nil},
		{"other caller", alice, "b2", domain.ErrForbidden},
		{"empty caller", alice, "", domain.ErrForbidden},
		{"owner not found", nil, "a1", domain.ErrForbidden},
		{"owner without id", &domain.User{}, "", domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.owner, tt.caller)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := CheckPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "battery staple")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "x")
	assert.Error(t, err)
}

func TestSessionManager(t *testing.T) {
	sm := NewSessionManager("test-secret-key-32-bytes-long!!!", false)

	t.Run("no cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := sm.UserID(r)
		assert.False(t, ok)
	})

	t.Run("login then read", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		require.NoError(t, sm.Login(w, r, "a1"))

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.True(t, cookies[0].HttpOnly)

		next := httptest.NewRequest(http.MethodGet, "/store/playlists/", nil)
		for _, c := range cookies {
			next.AddCookie(c)
		}
		id, ok := sm.UserID(next)
		assert.True(t, ok)
		assert.Equal(t, domain.ID("a1"), id)
	})

	t.Run("cookie signed with another key", func(t *testing.T) {
		other := NewSessionManager("another-secret-key-32-bytes-long", false)
		w := httptest.NewRecorder()
		require.NoError(t, other.Login(w, httptest.NewRequest(http.MethodPost, "/", nil), "a1"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w.Result().Cookies() {
			r.AddCookie(c)
		}
		_, ok := sm.UserID(r)
		assert.False(t, ok)
	})

	t.Run("logout expires cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, sm.Logout(w, httptest.NewRequest(http.MethodGet, "/auth/logout", nil)))

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Less(t, cookies[0].MaxAge, 0)
	})
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := UserIDFromContext(WithUserID(context.Background(), "a1"))
	assert.True(t, ok)
	assert.Equal(t, domain.ID("a1"), id)
}
