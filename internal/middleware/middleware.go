package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petit-bistro/service-reservation/internal/auth"
	clientDomain "github.com/petit-bistro/service-reservation/internal/domain/client"
	"github.com/petit-bistro/service-reservation/internal/response"
)

const (
	requestIDHeader = "X-Request-ID"
	clientKey       = "client"
)

// IdentityResolver maps a verified token subject to an active client. The
// account service implements it; handlers read the resolved identity from
// the request context.
type IdentityResolver interface {
	ResolveActive(ctx context.Context, email string) (*clientDomain.Client, error)
}

// ClientIdentity is the resolved caller stored on the request context.
type ClientIdentity struct {
	ID    uint
	Email string
}

// RecoveryMiddleware recovers from handler panics and logs the stack.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatus(500)
	})
}

// LoggerMiddleware logs every request with latency and status.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.Writer.Header().Get(requestIDHeader)),
		)
	}
}

// RequestIDMiddleware attaches a request ID, generating one when the caller
// did not supply it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// CORSMiddleware applies permissive CORS headers for browser clients.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// SecurityHeadersMiddleware sets baseline security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Next()
	}
}

// AuthMiddleware verifies the bearer token and resolves the caller through
// the identity resolver. Requests without a valid, active identity never
// reach a handler.
func AuthMiddleware(jwtManager *auth.JWTManager, identity IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		email, err := jwtManager.Verify(token)
		if err != nil {
			response.Unauthorized(c, "cannot confirm credentials")
			c.Abort()
			return
		}

		resolved, err := identity.ResolveActive(c.Request.Context(), email)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(clientKey, ClientIdentity{ID: resolved.ID(), Email: resolved.Email()})
		c.Next()
	}
}

// GetClient returns the resolved caller identity set by AuthMiddleware.
func GetClient(c *gin.Context) (ClientIdentity, bool) {
	v, ok := c.Get(clientKey)
	if !ok {
		return ClientIdentity{}, false
	}
	identity, ok := v.(ClientIdentity)
	return identity, ok
}
