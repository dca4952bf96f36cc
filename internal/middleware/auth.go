package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// AuthRequired проверяет наличие корректного статичного Bearer-токена.
// Токен берётся из ADMIN_TOKEN; если переменная не задана, проверка отключена.
func AuthRequired() gin.HandlerFunc {
	token := os.Getenv("ADMIN_TOKEN")
	if token == "" {
		return func(c *gin.Context) { c.Next() }
	}
	expected := "Bearer " + token
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
