// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/sirupsen/logrus"
)

// LoginRequired sends anonymous visitors to the login page
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserIDFromContext(c); ok {
			c.Next()
			return
		}
		Deny(c, authz.Gate(authz.Anonymous, c.Request.URL.RequestURI()), nil)
	}
}

// AdminGate guards the whole admin surface
func AdminGate(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := authz.Gate(GetProfile(c), c.Request.URL.RequestURI())
		if !d.Allowed() {
			Deny(c, d, logger.WithField("path", c.Request.URL.Path))
			return
		}
		c.Next()
	}
}

// Require checks one admin action against the actor's profile
func Require(action authz.Action, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := authz.Decide(GetProfile(c), action)
		if !d.Allowed() {
			Deny(c, d, logger.WithField("action", action))
			return
		}
		c.Next()
	}
}

// Deny turns a refused decision into a flash and a redirect, or a JSON
// status for XHR callers
func Deny(c *gin.Context, d authz.Decision, log *logrus.Entry) {
	if log != nil {
		uid, _ := GetUserIDFromContext(c)
		log.WithFields(logrus.Fields{"user_id": uid, "reason": d.Reason}).Info("access denied")
	}

	status := http.StatusForbidden
	key, category := "access_denied", "danger"
	switch d.Outcome {
	case authz.DenyLogin:
		status, key, category = http.StatusUnauthorized, "login_required", "info"
	case authz.DenyHome:
		key = "staff_only"
	}

	if IsXHR(c) {
		c.AbortWithStatusJSON(status, gin.H{
			"status":   "error",
			"message":  translate(c, key),
			"redirect": d.Redirect,
		})
		return
	}
	Flash(c, category, key)
	c.Redirect(http.StatusFound, d.Redirect)
	c.Abort()
}
