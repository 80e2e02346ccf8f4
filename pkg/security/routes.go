package security

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assetconsole/internal/rate_limiter"
	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	loginAttempts = 10
	loginWindow   = 5 * time.Minute
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
}

type LoginHandler struct {
	authenticator Authenticator
	rateLimiter   *rate_limiter.RateLimiter
	logger        *zap.Logger
}

func NewLoginHandler(authenticator Authenticator, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		authenticator: authenticator,
		rateLimiter:   rate_limiter.NewRateLimiter(loginAttempts, loginWindow),
		logger:        logger,
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth", l.LoginHandler())
}

func (l *LoginHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := clientIdentity(c)

		if !l.rateLimiter.IsAllowed(clientKey) {
			remaining := l.rateLimiter.GetRemainingRequests(clientKey)
			c.Header("X-RateLimit-Limit", strconv.Itoa(loginAttempts))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Header("X-RateLimit-Reset", time.Now().Add(loginWindow).Format(time.RFC3339))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many login attempts. Try again later.",
				"remaining": remaining,
				"reset_at":  time.Now().Add(loginWindow).Format(time.RFC3339),
			})
			return
		}

		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		result, err := l.authenticator.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			var backendErr *custom_error.BackendError
			if errors.As(err, &backendErr) && backendErr.Status == http.StatusUnauthorized {
				c.JSON(http.StatusUnauthorized, gin.H{"error": backendErr.Message})
				return
			}
			l.logger.Warn("login against backend failed", zap.String("username", req.Username), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to connect to server. Please check your connection."})
			return
		}

		token, err := GenerateJWT(models.Operator{Username: req.Username, BackendToken: result.Token})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "data": result.Data})
	}
}

// clientIdentity prefers proxy headers, then falls back to the socket address.
// Private addresses are shared by many operators, so the user agent is appended.
func clientIdentity(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])
	}

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.",
		"192.168.",
		"127.",
		"169.254.",
		"::1",
		"fc00::",
		"fe80::",
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}

	for second := 16; second <= 31; second++ {
		if strings.HasPrefix(ip, "172."+strconv.Itoa(second)+".") {
			return true
		}
	}

	return false
}
