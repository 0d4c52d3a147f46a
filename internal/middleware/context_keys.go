package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// canApproveKey stores whether the authenticated user holds the approval capability.
const canApproveKey = contextKey("canApprove")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetCanApproveFromContext reports whether the authenticated user may
// approve or reject pending records. Missing claim means no.
func GetCanApproveFromContext(c *gin.Context) bool {
	val, exists := c.Get(string(canApproveKey))
	if !exists {
		return false
	}
	canApprove, ok := val.(bool)
	return ok && canApprove
}
