package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key carrying the authenticated user's ID.
const ContextUserID = "user_id"

// Authenticate verifies an HS512 bearer token and stores the subject user ID
// on the context.
func Authenticate() gin.HandlerFunc {
	secret := os.Getenv("JWT_SECRET")
	return func(c *gin.Context) {
		claims, ok := parseToken(c, secret)
		if !ok {
			return
		}
		userID, err := subjectID(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// AdminOnly verifies the token and additionally requires the ADMIN role.
func AdminOnly() gin.HandlerFunc {
	secret := os.Getenv("JWT_SECRET")
	return func(c *gin.Context) {
		claims, ok := parseToken(c, secret)
		if !ok {
			return
		}
		if !hasAdminRole(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access only"})
			return
		}
		if userID, err := subjectID(claims); err == nil {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the context.
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func parseToken(c *gin.Context, secret string) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no bearer token"})
		return nil, false
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if token.Method.Alg() != "HS512" {
			return nil, fmt.Errorf("only HS512 is allowed")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
		return nil, false
	}
	return claims, true
}

func subjectID(claims jwt.MapClaims) (int64, error) {
	switch sub := claims["sub"].(type) {
	case float64:
		return int64(sub), nil
	case string:
		return strconv.ParseInt(sub, 10, 64)
	default:
		return 0, fmt.Errorf("missing sub claim")
	}
}

func hasAdminRole(claims jwt.MapClaims) bool {
	switch roles := claims["roles"].(type) {
	case []interface{}:
		for _, r := range roles {
			if s, ok := r.(string); ok && s == "ADMIN" {
				return true
			}
		}
	case []string:
		for _, s := range roles {
			if s == "ADMIN" {
				return true
			}
		}
	case string:
		return roles == "ADMIN"
	}
	return false
}
