package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"io.winapps.timelineapp/internal/auth"
)

// AuthMiddleware resolves the bearer token to a user and sets "uid" on the
// request context. The signature is verified first, so a forged token
// never costs a store lookup; the session itself is then resolved from the
// Redis cache or the sessions table. A well-signed token with no live
// session row is a revoked token and is rejected: logout must hold until
// expiry, so signature alone never admits a request.
func AuthMiddleware(postgres *pgxpool.Pool, redisClient *redis.Client, sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with 'Bearer '"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
			c.Abort()
			return
		}

		// Step 1: verify the signature and expiry
		if _, err := auth.ParseSessionToken(sessionSecret, token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		ctx := context.Background()

		// Step 2: Redis session cache
		var userID string
		if uid, err := redisClient.Get(ctx, "session:"+token).Result(); err == nil && uid != "" {
			userID = uid
		}

		// Step 3: sessions table
		if userID == "" {
			query := `SELECT user_id FROM sessions WHERE token = $1 AND expires_at > NOW()`
			if err := postgres.QueryRow(ctx, query, token).Scan(&userID); err == nil && userID != "" {
				// Re-warm the cache for subsequent requests
				redisClient.Set(ctx, "session:"+token, userID, time.Hour)
			}
		}

		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("uid", userID)
		c.Next()
	}
}

// AdminMiddleware allows only administrator accounts through. It runs
// after AuthMiddleware and re-reads the flag on every request.
func AdminMiddleware(postgres *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("uid")
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		var isAdmin bool
		query := `SELECT is_admin FROM users WHERE id = $1`
		if err := postgres.QueryRow(context.Background(), query, uid).Scan(&isAdmin); err != nil || !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
