package summary

import (
	"log"

	"github.com/gin-gonic/gin"
)

// SetupRoutes настраивает маршруты генерации карточек
func SetupRoutes(r *gin.RouterGroup, service *Service) {
	handler := NewHandler(service)

	r.POST("/generate", handler.Generate)
	r.POST("/stats", handler.Stats)

	log.Printf("[ROUTER] Summary routes registered")
}
