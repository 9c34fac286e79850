package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	providerRepo "slotwise/database/repository/provider"
	"slotwise/utils"
)

const (
	authCachePrefix = "auth:"
	authCacheTTL    = 15 * time.Minute
)

// JWTAuthProviderMiddleware validates provider tokens, with a Redis cache in
// front of the store so repeated requests do not hit Mongo. The token hash is
// compared against the provider's stored hash, which lets a login from
// another device invalidate older tokens.
func JWTAuthProviderMiddleware(repo providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		providerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || providerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + computedHash

		authCache := utils.GetAuthCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			// Sliding expiration: refresh the TTL and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("providerID", providerID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: verify against the stored token hash.
		proj := bson.M{"id": 1, "token_hash": 1}
		prov, err := repo.GetByIDWithProjection(c.Request.Context(), providerID, proj)
		if err != nil || prov == nil {
			logger.Error("Provider not found when validating token", zap.String("providerID", providerID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Provider not found"})
			return
		}
		if computedHash != prov.TokenHash {
			logger.Error("Token hash mismatch", zap.String("providerID", providerID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("providerID", providerID)
		c.Next()
	}
}
