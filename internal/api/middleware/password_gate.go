package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequirePasswordChangeCompletedMiddleware 拒绝仍需改密的账号访问业务接口。
// 标记来自 AuthMiddleware 写入的访问令牌声明，不查库。
func RequirePasswordChangeCompletedMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(MustChangePasswordKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "password change required"})
			return
		}
		c.Next()
	}
}
