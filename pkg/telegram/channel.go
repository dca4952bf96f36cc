package telegram

import (
	"context"
	"fmt"
	"strings"

	"unwrapped_go/pkg/telegram/limiter"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

// ErrChannelUnavailable объединяет случаи "нет данных": канал приватный,
// не существует или имя некорректно. Вызывающий показывает пользователю
// единое сообщение и не создаёт артефактов.
var ErrChannelUnavailable = fmt.Errorf("канал недоступен или не существует")

// NormalizeUsername приводит пользовательский ввод к имени канала:
// допускаются формы @name, name и https://t.me/name.
func NormalizeUsername(input string) (string, error) {
	name := strings.TrimSpace(input)
	name = strings.TrimPrefix(name, "https://t.me/")
	name = strings.TrimPrefix(name, "@")
	if name == "" || strings.ContainsAny(name, " \t/") {
		return "", fmt.Errorf("некорректное имя канала: %q", input)
	}
	return name, nil
}

// resolveChannel находит вещательный канал по имени пользователя.
func resolveChannel(ctx context.Context, api *tg.Client, backoff *limiter.Backoff, username string) (*tg.Channel, error) {
	var resolved *tg.ContactsResolvedPeer
	err := backoff.Call(ctx, func(ctx context.Context) error {
		r, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
		if err != nil {
			return err
		}
		resolved = r
		return nil
	})
	if err != nil {
		if tgerr.Is(err, "CHANNEL_PRIVATE", "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID", "CHANNEL_INVALID") {
			return nil, fmt.Errorf("%w: %s", ErrChannelUnavailable, username)
		}
		return nil, fmt.Errorf("не удалось распознать канал: %w", err)
	}

	channel, err := findBroadcastChannel(resolved.GetChats())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrChannelUnavailable, username)
	}
	return channel, nil
}

// findBroadcastChannel выбирает вещательный канал из списка чатов.
func findBroadcastChannel(chats []tg.ChatClass) (*tg.Channel, error) {
	for _, peer := range chats {
		if ch, ok := peer.(*tg.Channel); ok {
			// Мегагруппы (обсуждения) пропускаем: статистика строится
			// только по вещательным каналам.
			if ch.Megagroup {
				continue
			}
			if ch.Broadcast {
				return ch, nil
			}
		}
	}
	return nil, fmt.Errorf("broadcast channel not found")
}
