// Package auth содержит проверку владения, хеширование паролей и cookie-сессии.
package auth

import "github.com/GoArmGo/Playlister/internal/domain"

// Authorize разрешает операцию только владельцу ресурса.
// owner — пользователь, найденный по ownerEmail плейлиста; nil, если его нет.
func Authorize(owner *domain.User, callerID domain.ID) error {
	if owner == nil || callerID == "" || owner.ID != callerID {
		return domain.ErrForbidden
	}
	return nil
}
