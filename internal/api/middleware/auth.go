package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/api/shared/result"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	CREDENTIAL_KEY contextKey = "credential"
)

// ParseAuthorization extracts the bearer credential from an Authorization header.
// Verification is left to the lifecycle core.
func ParseAuthorization(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid Authorization header format")
	}

	if strings.ToLower(parts[0]) != "bearer" {
		return "", fmt.Errorf("unsupported authorization type: %s", parts[0])
	}

	credential := strings.TrimSpace(parts[1])
	if credential == "" {
		return "", errors.New("empty bearer credential")
	}

	return credential, nil
}

// Bearer returns a gin middleware requiring a bearer credential.
// The credential is stored in the context for handlers to forward.
func Bearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential, err := ParseAuthorization(c.GetHeader("Authorization"))
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			r := result.Failure(domain.NewUnauthenticatedError(domain.CodeInvalidCredential, err))
			c.AbortWithStatusJSON(r.Status, r)
			return
		}

		c.Set(string(CREDENTIAL_KEY), credential)
		c.Next()
	}
}

// Credential returns the bearer credential stored by Bearer
func Credential(c *gin.Context) string {
	return c.GetString(string(CREDENTIAL_KEY))
}
