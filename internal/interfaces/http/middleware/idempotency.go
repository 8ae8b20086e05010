package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"growfin.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the cached response when a request arrives
// twice with the same Idempotency-Key. Requests without the header pass
// through untouched. Used on money-moving endpoints (payment recording,
// application submission) where a client retry must not double-apply.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)

		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == "processing" {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
				})
				return
			}

			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(http.StatusOK, val)
			c.Abort()
			return
		} else if err.Error() != "redis: nil" {
			// redis unavailable, process without the guarantee
			c.Next()
			return
		}

		success, err := redisSetNX(ctx, storageKey, "processing", LockDuration)
		if err != nil || !success {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			// failed attempts release the key so the client can retry
			_ = redisDel(ctx, storageKey)
		}
	}
}
