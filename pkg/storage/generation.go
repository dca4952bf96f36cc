package storage

import (
	"time"

	"unwrapped_go/models"
)

// SaveGeneration записывает факт построения отчёта в журнал generations.
// Длительность храним в миллисекундах, чтобы не зависеть от точности
// интервальных типов.
func (db *DB) SaveGeneration(g models.Generation) (*models.Generation, error) {
	query := `
               INSERT INTO generations (channel, year, messages_count, duration_ms)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at
       `
	err := db.Conn.QueryRow(
		query,
		g.Channel,
		g.Year,
		g.MessagesCount,
		g.Duration.Milliseconds(),
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CountGenerations возвращает число отчётов по каналу за сутки.
// Используется для ограничения повторных генераций одного канала.
func (db *DB) CountGenerations(channel string, since time.Time) (int, error) {
	var count int
	err := db.Conn.QueryRow(
		"SELECT COUNT(*) FROM generations WHERE channel = $1 AND created_at >= $2",
		channel,
		since.UTC(),
	).Scan(&count)
	return count, err
}
