package models

import "time"

// ChannelSnapshot — выгрузка канала за один календарный год.
// Снимок сериализуется в сессионный JSON-артефакт и служит единственной
// точкой передачи данных между выгрузкой и агрегацией: обе фазы могут
// выполняться независимо, ничего не теряя.
type ChannelSnapshot struct {
	Channel       string        `json:"channel"`
	Subscribers   int           `json:"subscribers"`
	Year          int           `json:"year"`
	FetchedAt     time.Time     `json:"fetched_at"`
	MessagesCount int           `json:"messages_count"`
	// Посты в обратном хронологическом порядке, как отдаёт лента Telegram.
	Messages []ChannelPost `json:"messages"`
}
