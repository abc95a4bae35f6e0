package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/workshop-manager/workshop-manager/internal/constants"
	apierrors "github.com/workshop-manager/workshop-manager/internal/errors"
	"github.com/workshop-manager/workshop-manager/internal/services"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// InjectCapability resolves the authenticated user's workshop capability from
// its employee link and stores it in the context. Runs after RequireAuth.
func InjectCapability(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			apierrors.Unauthorized(c, "Unknown user")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCapability, authService.CapabilityOf(user))
		c.Next()
	}
}

// RequireCapability rejects requests whose capability is below min.
// Runs after InjectCapability.
func RequireCapability(min services.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetCapability(c).AtLeast(min) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCapability retrieves the capability stored by InjectCapability.
// Missing means none.
func GetCapability(c *gin.Context) services.Capability {
	value, exists := c.Get(constants.ContextKeyCapability)
	if !exists {
		return services.CapabilityNone
	}

	capability, ok := value.(services.Capability)
	if !ok {
		return services.CapabilityNone
	}

	return capability
}
