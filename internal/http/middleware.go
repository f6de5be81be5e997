package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"courseapi/internal/domain"
	"courseapi/internal/service"
)

const (
	currentUserKey = "currentUser"
	requestIDKey   = "requestID"

	accessDeniedMessage = "Access Denied"
)

// credentialParser extracts the caller-supplied identifier and secret
// from a request. ok is false when the header is absent or unparsable.
type credentialParser func(r *http.Request) (email, password string, ok bool)

func basicCredentials(r *http.Request) (string, string, bool) {
	return r.BasicAuth()
}

// requireAuth verifies basic credentials on every call and attaches the
// resolved user to the request context. All denial reasons collapse to
// the same response; the specific reason is logged only, so callers
// cannot probe which accounts exist. Holds no state between requests.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := h.parseCredentials(c.Request)
		if !ok {
			h.logger.WithField("request_id", requestID(c)).Warn("auth header not found")
			h.denyAccess(c)
			return
		}

		user, err := h.users.Authenticate(c.Request.Context(), email, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				h.logger.WithFields(logrus.Fields{
					"request_id": requestID(c),
					"email":      email,
				}).Warnf("authentication failure: %v", err)
				h.denyAccess(c)
				return
			}
			h.logger.WithField("request_id", requestID(c)).Errorf("authenticate: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func (h *Handler) denyAccess(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": accessDeniedMessage})
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// requestIDMiddleware tags each request with an id so log lines can be
// correlated without leaking diagnostics to the response body.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Location")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
