package telegram

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"unwrapped_go/models"
	"unwrapped_go/pkg/storage"
	"unwrapped_go/pkg/telegram/limiter"

	"github.com/gotd/td/tg"
)

const (
	// Размер страницы истории: максимум, который отдаёт MessagesGetHistory.
	historyPageSize = 100
	// Шаг уведомлений о прогрессе выгрузки.
	progressEvery = 300
)

// Progress получает человекочитаемые сообщения о ходе выгрузки,
// чтобы UI-слой мог обновлять статус пользователю.
type Progress func(text string)

func notify(progress Progress, text string) {
	if progress != nil {
		progress(text)
	}
}

// Fetcher выгружает данные каналов через единственную MTProto-сессию.
// Шлюз ограничивает весь процесс выгрузки одним запросом на процесс:
// лимиты Telegram общие, и параллельные выгрузки разных каналов
// провоцировали бы дублирующиеся флуд-паузы.
type Fetcher struct {
	DB        *storage.DB
	Artifacts *storage.Artifacts
	Gate      *limiter.Gate
	Backoff   *limiter.Backoff
}

func NewFetcher(db *storage.DB, artifacts *storage.Artifacts, gate *limiter.Gate, backoff *limiter.Backoff) *Fetcher {
	return &Fetcher{DB: db, Artifacts: artifacts, Gate: gate, Backoff: backoff}
}

func (f *Fetcher) dbConn() *sql.DB {
	if f.DB == nil {
		return nil
	}
	return f.DB.Conn
}

// FetchYear выгружает посты канала за календарный год и сохраняет снимок
// в сессионный JSON-артефакт. Возвращает снимок и путь к артефакту.
func (f *Fetcher) FetchYear(ctx context.Context, account *models.Account, username string, year int, session string, progress Progress) (*models.ChannelSnapshot, string, error) {
	if err := f.Gate.Acquire(ctx); err != nil {
		return nil, "", err
	}
	defer f.Gate.Release()

	var snapshot *models.ChannelSnapshot
	client := NewAccountClient(account, f.dbConn())
	err := client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(client)

		channel, err := resolveChannel(ctx, api, f.Backoff, username)
		if err != nil {
			return err
		}
		notify(progress, fmt.Sprintf("Канал %s найден, получаем число подписчиков...", channel.Title))

		subscribers := f.subscriberCount(ctx, api, channel)

		notify(progress, fmt.Sprintf("Выгружаем посты за %d год...", year))
		posts, err := f.collectYear(ctx, api, channel, year, progress)
		if err != nil {
			return err
		}

		snapshot = &models.ChannelSnapshot{
			Channel:       channel.Title,
			Subscribers:   subscribers,
			Year:          year,
			FetchedAt:     time.Now().UTC(),
			MessagesCount: len(posts),
			Messages:      posts,
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	path, err := f.Artifacts.SaveSnapshot(snapshot, username, session)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[FETCH] канал %s: %d постов за %d год, артефакт %s", username, snapshot.MessagesCount, year, path)
	return snapshot, path, nil
}

// subscriberCount возвращает число подписчиков. Показатель необязательный:
// любая ошибка даёт 0 и не срывает выгрузку.
func (f *Fetcher) subscriberCount(ctx context.Context, api *tg.Client, channel *tg.Channel) int {
	var full *tg.MessagesChatFull
	err := f.Backoff.Call(ctx, func(ctx context.Context) error {
		r, err := api.ChannelsGetFullChannel(ctx, &tg.InputChannel{
			ChannelID:  channel.ID,
			AccessHash: channel.AccessHash,
		})
		if err != nil {
			return err
		}
		full = r
		return nil
	})
	if err != nil {
		log.Printf("[FETCH] не удалось получить подписчиков канала %s: %v", channel.Title, err)
		return 0
	}

	channelFull, ok := full.FullChat.(*tg.ChannelFull)
	if !ok {
		return 0
	}
	count, _ := channelFull.GetParticipantsCount()
	return count
}

// collectYear постранично идёт по истории от новых постов к старым,
// оставляя только попавшие в [1 января year, 1 января year+1) по UTC.
// Как только встречен пост старше окна, пагинация останавливается.
func (f *Fetcher) collectYear(ctx context.Context, api *tg.Client, channel *tg.Channel, year int, progress Progress) ([]models.ChannelPost, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	peer := &tg.InputPeerChannel{ChannelID: channel.ID, AccessHash: channel.AccessHash}

	var posts []models.ChannelPost
	offsetID := 0
	for {
		var history tg.MessagesMessagesClass
		err := f.Backoff.Call(ctx, func(ctx context.Context) error {
			h, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
				Peer:     peer,
				OffsetID: offsetID,
				Limit:    historyPageSize,
			})
			if err != nil {
				return err
			}
			history = h
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("не удалось получить историю канала: %w", err)
		}

		channelMessages, ok := history.(*tg.MessagesChannelMessages)
		if !ok {
			return nil, fmt.Errorf("unexpected messages type: %T", history)
		}
		if len(channelMessages.Messages) == 0 {
			break
		}

		prevOffset := offsetID
		reachedStart := false
		for _, raw := range channelMessages.Messages {
			// Служебные сообщения статистике не нужны, но смещение по ним
			// тоже двигаем, иначе пагинация зациклится.
			offsetID = raw.GetID()

			msg, ok := raw.(*tg.Message)
			if !ok {
				continue
			}

			date := time.Unix(int64(msg.Date), 0).UTC()
			if date.Before(start) {
				reachedStart = true
				break
			}
			if !date.Before(end) {
				continue
			}

			posts = append(posts, mapMessage(msg, date))
			if len(posts)%progressEvery == 0 {
				notify(progress, fmt.Sprintf("Выгружаем посты за %d год... найдено %d", year, len(posts)))
			}
		}
		if reachedStart || offsetID == prevOffset {
			break
		}
	}
	return posts, nil
}
