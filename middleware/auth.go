package middleware

import (
	"context"
	"net/http"
	"strings"

	"tutorhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	RoleTutor   = "tutor"
	RoleStudent = "student"
)

// JWTAuthTutorMiddleware authenticates a tutor token and stores the tutor ID
// in the context under "tutorID".
func JWTAuthTutorMiddleware() gin.HandlerFunc {
	return jwtAuth(RoleTutor)
}

// JWTAuthStudentMiddleware authenticates a student token and stores the
// student ID in the context under "studentID".
func JWTAuthStudentMiddleware() gin.HandlerFunc {
	return jwtAuth(RoleStudent)
}

// JWTAuthAnyMiddleware accepts either role; handlers read "subjectID".
func JWTAuthAnyMiddleware() gin.HandlerFunc {
	return jwtAuth("")
}

// jwtAuth validates the bearer token, checks the revocation cache and
// places the subject in the context. Tokens are issued by the identity
// service; this layer only verifies them. An empty wantRole accepts any
// known role.
func jwtAuth(wantRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}

		subject, role, err := utils.ExtractSubjectAndRole(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		if role != RoleTutor && role != RoleStudent {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		if wantRole != "" && role != wantRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "wrong role for this endpoint"})
			return
		}

		if revoked(c.Request.Context(), subject, tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		c.Set("subjectID", subject)
		c.Set("role", role)
		switch role {
		case RoleTutor:
			c.Set("tutorID", subject)
		case RoleStudent:
			c.Set("studentID", subject)
		}
		c.Next()
	}
}

// revoked reports whether the auth cache pins this subject to a different
// token hash. An absent key means nothing was revoked. Cache outages fail
// open.
func revoked(ctx context.Context, subject, tokenString string) bool {
	cacheKey := utils.AuthCachePrefix + subject
	pinned, err := utils.GetAuthCacheClient().Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		return false
	}
	return pinned != utils.HashToken(tokenString)
}
