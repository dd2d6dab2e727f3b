// internal/interfaces/http/middleware/context.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/domain/user"
	"github.com/luxfakia/storefront/internal/pkg/i18n"
	"github.com/luxfakia/storefront/internal/pkg/session"
)

// Context keys set by the middleware chain
const (
	KeyRequestID = "request_id"
	KeySession   = "session"
	KeyUser      = "user"
	KeyUserID    = "user_id"
	KeyProfile   = "auth_profile"
	KeyLang      = "lang"
)

// GetSession returns the request session. It is nil outside the session middleware.
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(KeySession); ok {
		return v.(*session.Session)
	}
	return nil
}

// GetCurrentUser returns the logged-in user, if any
func GetCurrentUser(c *gin.Context) (*user.User, bool) {
	if v, ok := c.Get(KeyUser); ok {
		return v.(*user.User), true
	}
	return nil, false
}

// GetUserIDFromContext extracts the logged-in user id
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	if v, ok := c.Get(KeyUserID); ok {
		return v.(uint), true
	}
	return 0, false
}

// GetProfile returns the authorization profile of the actor
func GetProfile(c *gin.Context) authz.Profile {
	if v, ok := c.Get(KeyProfile); ok {
		return v.(authz.Profile)
	}
	return authz.Anonymous
}

// GetLang returns the UI language of the request
func GetLang(c *gin.Context) string {
	return i18n.Normalize(c.GetString(KeyLang))
}

// IsXHR reports whether the request came from fetch/XMLHttpRequest
func IsXHR(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// Flash queues a translated message for the next page
func Flash(c *gin.Context, category, key string, args ...interface{}) {
	s := GetSession(c)
	if s == nil {
		return
	}
	msg := i18n.T(GetLang(c), key)
	if len(args) > 0 {
		msg = i18n.Tf(GetLang(c), key, args...)
	}
	if err := s.AddFlash(c.Request.Context(), category, msg); err != nil {
		_ = c.Error(err)
	}
}

func translate(c *gin.Context, key string) string {
	return i18n.T(GetLang(c), key)
}
