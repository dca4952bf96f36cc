// Package bot реализует Telegram-бота, который принимает имя канала
// и отвечает карточкой с годовой статистикой.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"unwrapped_go/internal/summary"
	telegram "unwrapped_go/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const startMessage = `Hi! Send me a public channel username and I will build its yearly unwrapped card.

Examples:
@durov
@durov 2024

The year is optional and defaults to the current one.`

// Bot крутит long polling и обслуживает входящие сообщения.
type Bot struct {
	api     *tgbotapi.BotAPI
	service *summary.Service
}

func New(token string, service *summary.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать бота: %w", err)
	}
	log.Printf("[BOT] Авторизован как @%s", api.Self.UserName)
	return &Bot{api: api, service: service}, nil
}

// Run блокируется до отмены контекста, читая обновления через long polling.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			// Генерация долгая, поэтому каждое сообщение обрабатываем отдельно:
			// очередь к Telegram всё равно сериализует шлюз выше.
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[BOT] Паника при обработке сообщения: %v", r)
		}
	}()

	switch msg.Command() {
	case "start", "help":
		b.reply(msg.Chat.ID, startMessage)
		return
	}

	channel, year, err := parseRequest(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID, err.Error())
		return
	}

	b.generate(ctx, msg.Chat.ID, channel, year)
}

// parseRequest разбирает текст вида "@channel" или "@channel 2024".
func parseRequest(text string) (string, int, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "@") {
		return "", 0, errors.New("Send a channel username starting with @, for example: @durov 2024")
	}
	channel := fields[0]

	year := time.Now().Year()
	if len(fields) > 1 {
		parsed, err := strconv.Atoi(fields[1])
		if err != nil {
			return "", 0, errors.New("The year must be a number, for example: @durov 2024")
		}
		year = parsed
	}
	if err := summary.ValidateYear(year); err != nil {
		return "", 0, fmt.Errorf("Please pick a year between %d and %d", summary.MinYear, time.Now().Year())
	}
	return channel, year, nil
}

func (b *Bot) generate(ctx context.Context, chatID int64, channel string, year int) {
	status, err := b.api.Send(tgbotapi.NewMessage(chatID, "Collecting channel history..."))
	if err != nil {
		log.Printf("[BOT] Не удалось отправить статусное сообщение: %v", err)
		return
	}

	// Промежуточные стадии показываем правкой статусного сообщения.
	progress := func(text string) {
		edit := tgbotapi.NewEditMessageText(chatID, status.MessageID, text)
		if _, err := b.api.Send(edit); err != nil {
			log.Printf("[BOT] Не удалось обновить статус: %v", err)
		}
	}

	result, err := b.service.Generate(ctx, channel, year, progress)
	if err != nil {
		b.editStatus(chatID, status.MessageID, userMessage(err))
		return
	}
	defer b.service.Cleanup(result)

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(result.CardPath))
	photo.Caption = summary.BuildCaption(result)
	photo.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("[BOT] Не удалось отправить карточку: %v", err)
		b.editStatus(chatID, status.MessageID, "Something went wrong while sending the card. Please try again later.")
		return
	}

	// Статусное сообщение больше не нужно.
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, status.MessageID)); err != nil {
		log.Printf("[BOT] Не удалось удалить статус: %v", err)
	}
}

// userMessage переводит внутренние ошибки в понятный пользователю текст.
func userMessage(err error) string {
	switch {
	case errors.Is(err, telegram.ErrChannelUnavailable):
		return "I could not find that channel. Make sure it is public and the username is correct."
	case errors.Is(err, summary.ErrNoPosts):
		return "That channel has no posts for the requested year."
	case errors.Is(err, summary.ErrTooManyGenerations):
		return "That channel was unwrapped too many times today. Please try again tomorrow."
	default:
		log.Printf("[BOT] Ошибка генерации: %v", err)
		return "Something went wrong. Please try again later."
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("[BOT] Не удалось отправить ответ: %v", err)
	}
}

func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		log.Printf("[BOT] Не удалось обновить статус: %v", err)
	}
}
