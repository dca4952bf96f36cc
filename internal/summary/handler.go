package summary

import (
	"errors"
	"log"
	"net/http"
	"time"

	"unwrapped_go/internal/httputil"
	telegram "unwrapped_go/pkg/telegram"

	"github.com/gin-gonic/gin"
)

// Handler обслуживает HTTP-запросы генерации карточек.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type generateInput struct {
	Channel string `json:"channel" binding:"required"`
	Year    int    `json:"year"`
}

// Generate строит карточку и отдаёт PNG в ответе.
func (h *Handler) Generate(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}
	defer h.Service.Cleanup(result)

	c.File(result.CardPath)
}

// Stats строит карточку, но возвращает только числовую сводку.
// Полезно для интеграций, которым не нужна картинка.
func (h *Handler) Stats(c *gin.Context) {
	result, ok := h.run(c)
	if !ok {
		return
	}
	defer h.Service.Cleanup(result)

	c.JSON(http.StatusOK, gin.H{
		"channel":     result.Snapshot.Channel,
		"subscribers": result.Snapshot.Subscribers,
		"year":        result.Snapshot.Year,
		"summary":     result.Summary,
	})
}

// run разбирает вход и выполняет генерацию с единым разбором ошибок.
func (h *Handler) run(c *gin.Context) (*Result, bool) {
	var input generateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid data")
		return nil, false
	}
	if input.Year == 0 {
		input.Year = time.Now().Year()
	}

	result, err := h.Service.Generate(c.Request.Context(), input.Channel, input.Year, nil)
	if err != nil {
		switch {
		case errors.Is(err, telegram.ErrChannelUnavailable):
			httputil.RespondError(c, http.StatusNotFound, "канал недоступен или не существует")
		case errors.Is(err, ErrNoPosts):
			httputil.RespondError(c, http.StatusNotFound, "за этот год постов не найдено")
		case errors.Is(err, ErrTooManyGenerations):
			httputil.RespondError(c, http.StatusTooManyRequests, "суточный лимит генераций по каналу исчерпан")
		default:
			log.Printf("[HANDLER ERROR] не удалось построить карточку: %v", err)
			httputil.RespondError(c, http.StatusInternalServerError, "не удалось построить карточку")
		}
		return nil, false
	}
	return result, true
}
