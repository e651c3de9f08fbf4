package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medibook/utils"
)

// patientIDKey is the gin context key carrying the authenticated patient id.
const patientIDKey = "patientID"

// OptionalAuth extracts the patient id from a Bearer token when one is
// present and valid, and otherwise lets the request through anonymously.
// The booking flow works for guests; authentication only changes which
// steps it walks through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if id, err := utils.ExtractIDFromToken(tokenString); err == nil {
				c.Set(patientIDKey, id)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid Bearer token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		id, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(patientIDKey, id)
		c.Next()
	}
}

// PatientID returns the authenticated patient id, empty for guests.
func PatientID(c *gin.Context) string {
	if v, ok := c.Get(patientIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
