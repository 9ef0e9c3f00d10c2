package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mealsnap/backend/internal/domain"
)

// ContextUserKey is the gin context key under which middleware stores the
// resolved user id
const ContextUserKey = "user_id"

// DefaultUserIDHeader names the request header carrying the caller's user id
const DefaultUserIDHeader = "X-User-ID"

// IdentityProvider resolves which user a request acts on behalf of
type IdentityProvider interface {
	UserID(r *http.Request) (string, error)
}

// HeaderIdentity resolves the user id from a request header. There is no
// session or token layer; clients identify themselves directly.
type HeaderIdentity struct {
	header string
}

// NewHeaderIdentity creates a header-based identity provider, defaulting to
// the X-User-ID header when name is blank
func NewHeaderIdentity(name string) *HeaderIdentity {
	if strings.TrimSpace(name) == "" {
		name = DefaultUserIDHeader
	}
	return &HeaderIdentity{header: name}
}

// UserID implements IdentityProvider
func (p *HeaderIdentity) UserID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get(p.header))
	if id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}

// IdentityMiddleware rejects requests that lack a resolvable user identity
// and stores the user id on the context for downstream handlers
func IdentityMiddleware(provider IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := provider.UserID(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": domain.ErrUnauthorized.Error(),
			})
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}
