package auth

import (
	"log"

	"unwrapped_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes настраивает маршруты авторизации аккаунтов
func SetupRoutes(r *gin.RouterGroup, db *storage.DB) {
	handler := NewHandler(db)

	r.POST("/CreateAccount", handler.CreateAccount)
	r.POST("/VerifyAccount", handler.VerifyAccount)

	log.Printf("[ROUTER] Auth routes registered")
}
