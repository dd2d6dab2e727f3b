// internal/interfaces/http/middleware/session.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/domain/user"
	"github.com/luxfakia/storefront/internal/pkg/i18n"
	"github.com/luxfakia/storefront/internal/pkg/session"
	"github.com/sirupsen/logrus"
)

// UserLoader resolves the user recorded in a session
type UserLoader interface {
	GetProfile(userID uint) (*user.User, error)
}

// Session loads the browser session and issues its cookie when new
func Session(manager *session.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.Load(c.Request.Context(), c.Request)
		if err != nil {
			logger.WithError(err).WithField("request_id", c.GetString(KeyRequestID)).Error("failed to load session")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if err := manager.WriteCookie(c.Writer, s); err != nil {
			logger.WithError(err).Error("failed to write session cookie")
		}
		c.Set(KeySession, s)
		c.Next()
	}
}

// CurrentUser resolves the session login into the request context. A login
// naming a deleted account is dropped.
func CurrentUser(users UserLoader, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if s == nil {
			c.Next()
			return
		}
		if id, ok := s.UserID(); ok {
			u, err := users.GetProfile(id)
			switch {
			case err == nil:
				c.Set(KeyUser, u)
				c.Set(KeyUserID, u.ID)
				c.Set(KeyProfile, u.AuthProfile())
			case errors.Is(err, user.ErrUserNotFound):
				if err := s.ClearUser(c.Request.Context()); err != nil {
					logger.WithError(err).Warn("failed to clear stale session login")
				}
			default:
				logger.WithError(err).WithField("user_id", id).Error("failed to load session user")
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Next()
	}
}

// Language picks the UI language: the session choice, else Accept-Language,
// else fallback
func Language(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := ""
		if s := GetSession(c); s != nil && i18n.Supported(s.Lang()) {
			lang = s.Lang()
		} else if header := c.GetHeader("Accept-Language"); header != "" {
			lang = i18n.FromAcceptLanguage(header)
		} else {
			lang = i18n.Normalize(fallback)
		}
		c.Set(KeyLang, lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}
