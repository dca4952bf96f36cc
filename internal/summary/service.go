// Package summary связывает выгрузку, агрегацию и отрисовку в один
// цикл обработки запроса "канал X, год Y".
package summary

import (
	"context"
	"fmt"
	"log"
	"time"

	"unwrapped_go/internal/card"
	"unwrapped_go/internal/stats"
	"unwrapped_go/models"
	"unwrapped_go/pkg/storage"
	telegram "unwrapped_go/pkg/telegram"

	"github.com/google/uuid"
)

// Телеграм появился в 2013 году, более ранние годы не имеют смысла.
const MinYear = 2013

// Лимит генераций по одному каналу за сутки. Выгрузка истории дорогая,
// а её результат за сутки почти не меняется.
const maxDailyGenerations = 10

// ErrNoPosts сообщает, что за запрошенный год в канале не нашлось постов.
var ErrNoPosts = fmt.Errorf("за запрошенный год постов не найдено")

// ErrTooManyGenerations сообщает, что суточный лимит по каналу исчерпан.
var ErrTooManyGenerations = fmt.Errorf("суточный лимит генераций по каналу исчерпан")

// Service выполняет полный цикл генерации карточки.
type Service struct {
	DB        *storage.DB
	Artifacts *storage.Artifacts
	Fetcher   *telegram.Fetcher
	Renderer  *card.Renderer
}

// Result — итог успешной генерации. Артефакты остаются на диске до
// вызова Cleanup: вызывающий сначала доставляет карточку пользователю.
type Result struct {
	Username string
	Session  string
	Snapshot *models.ChannelSnapshot
	Summary  models.StatsSummary
	CardPath string
}

// ValidateYear проверяет запрошенный год отчёта.
func ValidateYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return fmt.Errorf("год %d ещё не наступил", year)
	}
	if year < MinYear {
		return fmt.Errorf("год %d раньше появления Telegram", year)
	}
	return nil
}

// Generate строит карточку канала за год. При любой ошибке уже
// созданные артефакты удаляются; при успехе их удаляет вызывающий
// через Cleanup после доставки.
func (s *Service) Generate(ctx context.Context, channel string, year int, progress telegram.Progress) (*Result, error) {
	username, err := telegram.NormalizeUsername(channel)
	if err != nil {
		return nil, err
	}
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	account, err := s.DB.GetAuthorizedAccount()
	if err != nil {
		return nil, fmt.Errorf("нет авторизованного аккаунта для выгрузки: %w", err)
	}

	// Недоступность журнала не должна блокировать генерацию.
	if count, err := s.DB.CountGenerations(username, time.Now().Add(-24*time.Hour)); err != nil {
		log.Printf("[SUMMARY] не удалось проверить лимит генераций: %v", err)
	} else if count >= maxDailyGenerations {
		return nil, fmt.Errorf("%w: %s", ErrTooManyGenerations, username)
	}

	session := uuid.NewString()
	started := time.Now()

	// Гарантируем очистку на любом аварийном пути.
	done := false
	defer func() {
		if !done {
			s.Artifacts.Cleanup(username, session)
		}
	}()

	snapshot, _, err := s.Fetcher.FetchYear(ctx, account, username, year, session, progress)
	if err != nil {
		return nil, err
	}
	if snapshot.MessagesCount == 0 {
		return nil, fmt.Errorf("%w: %s, %d", ErrNoPosts, username, year)
	}

	if progress != nil {
		progress("Считаем статистику и рисуем карточку...")
	}
	summary := stats.Aggregate(snapshot)

	avatar, err := s.Fetcher.ChannelPhoto(ctx, account, username)
	if err != nil {
		// Карточка рисуется и без аватара.
		log.Printf("[SUMMARY] аватар канала %s недоступен: %v", username, err)
		avatar = nil
	}

	cardPath := s.Artifacts.CardPath(username, session)
	if err := s.Renderer.RenderToFile(snapshot, summary, avatar, cardPath); err != nil {
		return nil, err
	}

	// Журнал генераций не должен срывать доставку карточки.
	if _, err := s.DB.SaveGeneration(models.Generation{
		Channel:       username,
		Year:          year,
		MessagesCount: snapshot.MessagesCount,
		Duration:      time.Since(started),
	}); err != nil {
		log.Printf("[SUMMARY] не удалось записать журнал генерации: %v", err)
	}

	log.Printf("[SUMMARY] канал %s за %d: %d постов, карточка готова за %s",
		username, year, snapshot.MessagesCount, time.Since(started).Round(time.Millisecond))

	done = true
	return &Result{
		Username: username,
		Session:  session,
		Snapshot: snapshot,
		Summary:  summary,
		CardPath: cardPath,
	}, nil
}

// Cleanup удаляет артефакты завершённой генерации.
func (s *Service) Cleanup(result *Result) {
	if result == nil {
		return
	}
	s.Artifacts.Cleanup(result.Username, result.Session)
}
