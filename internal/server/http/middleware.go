// Package httpserver exposes the REST API: gin routing, token middleware,
// and handlers over the auth and collection services.
package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BharadwajRachakonda/todo-backend/internal/model"
	"github.com/BharadwajRachakonda/todo-backend/internal/token"
)

// Token header names, kept from the original API surface.
const (
	userTokenHeader       = "auth-token"
	collectionTokenHeader = "auth-token-collection"
)

const (
	ctxUserKey       = "auth.user"
	ctxCollectionKey = "auth.collection"
)

// RequireUser verifies the user token header and stores the identity in the
// request context. Missing and invalid tokens are both 401.
func RequireUser(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userTokenHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate using a valid token"})
			return
		}
		ident, err := tokens.VerifyUser(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate using a valid token"})
			return
		}
		c.Set(ctxUserKey, ident)
		c.Next()
	}
}

// RequireCollection verifies the collection token header and stores the
// identity in the request context. A user token in this slot fails.
func RequireCollection(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(collectionTokenHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate using a valid collection token"})
			return
		}
		ident, err := tokens.VerifyCollection(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate using a valid collection token"})
			return
		}
		c.Set(ctxCollectionKey, ident)
		c.Next()
	}
}

// UserFromContext returns the identity set by RequireUser.
func UserFromContext(c *gin.Context) (model.UserIdentity, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return model.UserIdentity{}, false
	}
	ident, ok := v.(model.UserIdentity)
	return ident, ok
}

// CollectionFromContext returns the identity set by RequireCollection.
func CollectionFromContext(c *gin.Context) (model.CollectionIdentity, bool) {
	v, ok := c.Get(ctxCollectionKey)
	if !ok {
		return model.CollectionIdentity{}, false
	}
	ident, ok := v.(model.CollectionIdentity)
	return ident, ok
}

// Logging emits one structured log line per request: metadata only, never
// bodies, credentials, or tokens.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", c.ClientIP()),
		)
	}
}

// Recovery turns panics into opaque 500 responses.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			}
		}()
		c.Next()
	}
}
