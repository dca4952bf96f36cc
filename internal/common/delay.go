package common

import (
	"context"
	"time"
)

// Sleep выполняет ожидание указанной длительности и регулярно проверяет
// контекст на отмену, чтобы не блокировать долгие паузы флуд-контроля.
// Используем шаг в пять секунд, чтобы можно было вовремя завершить работу по требованию.
func Sleep(ctx context.Context, d time.Duration) error {
	const step = 5 * time.Second
	for remaining := d; remaining > 0; {
		wait := step
		if remaining < wait {
			wait = remaining
		}
		select {
		case <-ctx.Done():
			// Возвращаем ошибку контекста, чтобы вызвать обработку прерывания выше по стеку.
			return ctx.Err()
		case <-time.After(wait):
		}
		remaining -= wait
	}
	return nil
}
