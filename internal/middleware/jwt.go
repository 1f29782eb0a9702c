package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret = []byte("anchor-care-secret-2026")

const (
	RoleFamily    = "family"
	RoleCaregiver = "caregiver"
)

// NewToken issues an HS256 bearer token. recipientID is set for caregiver
// tokens so /care-logs/caregiver/today can resolve the active recipient.
func NewToken(subjectID, name, role, recipientID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"name": name,
		"role": role,
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	if recipientID != "" {
		claims["recipient_id"] = recipientID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret)
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
			return JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		sub, _ := claims["sub"].(string)
		name, _ := claims["name"].(string)
		role, _ := claims["role"].(string)
		c.Set("subject_id", sub)
		c.Set("subject_name", name)
		c.Set("role", role)
		if rid, ok := claims["recipient_id"].(string); ok {
			c.Set("recipient_id", rid)
		}

		// Renew when less than a day remains.
		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < 24*time.Hour {
				rid, _ := claims["recipient_id"].(string)
				if newToken, err := NewToken(sub, name, role, rid); err == nil {
					c.Header("X-New-Token", newToken)
				}
			}
		}

		c.Next()
	}
}

// RequireRole guards a route group to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
