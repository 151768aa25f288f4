package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	adminRole = "admin"
)

// PermissionLookup resolves the permission codes granted to a role.
type PermissionLookup interface {
	PermissionsForRole(ctx context.Context, roleName string) ([]string, error)
}

type Auth struct {
	secret []byte
	perms  PermissionLookup
	log    *logrus.Logger
}

func NewAuth(secret string, perms PermissionLookup, log *logrus.Logger) *Auth {
	return &Auth{secret: []byte(secret), perms: perms, log: log}
}

// tokenFromRequest prefers the access_token cookie and falls back to a Bearer header.
func tokenFromRequest(c *gin.Context) (string, string) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, ""
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization is missing"
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Invalid authorization format. Expected 'Bearer <token>'"
	}
	return parts[1], ""
}

func (a *Auth) parseClaims(tokenString string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// IssueToken signs an HS256 token for the given subject and role.
func (a *Auth) IssueToken(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString(a.secret)
}

// Authenticate validates the JWT and stores the caller's id and role on the context.
func (a *Auth) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := tokenFromRequest(c)
		if msg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, msg))
			return
		}

		claims, ok := a.parseClaims(tokenString)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		userRole, ok := claims["role"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}
		userID, _ := claims["sub"].(string)

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, userRole)
		c.Next()
	}
}

// RequirePermission checks that the caller's role holds every listed permission.
// It must run after Authenticate. Admin always passes.
func (a *Auth) RequirePermission(requiredPerms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextUserRole)
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}
		if userRole == adminRole {
			c.Next()
			return
		}

		userPerms, err := a.perms.PermissionsForRole(c.Request.Context(), userRole)
		if err != nil {
			if a.log != nil {
				a.log.WithFields(logrus.Fields{"module": "auth", "role": userRole}).Error("failed to load permissions: " + err.Error())
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to verify permissions"))
			return
		}

		permSet := make(map[string]bool, len(userPerms))
		for _, p := range userPerms {
			permSet[p] = true
		}
		for _, required := range requiredPerms {
			if !permSet[required] {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing permission '"+required+"'"))
				return
			}
		}

		c.Next()
	}
}

// ParseToken validates a raw token and returns its subject and role. Used by
// the websocket endpoint, which receives the token as a query parameter.
func (a *Auth) ParseToken(tokenString string) (string, string, bool) {
	claims, ok := a.parseClaims(tokenString)
	if !ok {
		return "", "", false
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", "", false
	}
	sub, _ := claims["sub"].(string)
	return sub, role, true
}
