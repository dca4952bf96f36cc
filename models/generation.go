package models

import "time"

// Generation отражает запись таблицы generations: один построенный отчёт.
// Журнал нужен для наблюдения за нагрузкой и диагностики долгих выгрузок.
type Generation struct {
	ID            int           `json:"id"`
	Channel       string        `json:"channel"`
	Year          int           `json:"year"`
	MessagesCount int           `json:"messages_count"`
	Duration      time.Duration `json:"duration"`
	CreatedAt     time.Time     `json:"created_at"`
}
