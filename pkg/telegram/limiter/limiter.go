// Package limiter сериализует обращения к единственной MTProto-сессии
// и повторяет запросы, отклонённые флуд-контролем Telegram.
package limiter

import (
	"context"
	"fmt"
	"log"
	"time"

	"unwrapped_go/internal/common"

	"github.com/gotd/td/tgerr"
)

// Gate — шлюз с ёмкостью один. Лимиты Telegram общие для всех каналов,
// поэтому выгрузки сериализуются целиком, а не по каналу.
// Нулевой *Gate пропускает всех без ожидания: тесты подставляют его
// вместо настоящего шлюза.
type Gate struct {
	slot chan struct{}
}

func NewGate() *Gate {
	return &Gate{slot: make(chan struct{}, 1)}
}

// Acquire занимает шлюз или ждёт его освобождения. Возвращает ошибку
// контекста, если ожидание прервано.
func (g *Gate) Acquire(ctx context.Context) error {
	if g == nil {
		return nil
	}
	log.Printf("[GATE] ожидание доступа к сессии")
	select {
	case g.slot <- struct{}{}:
		log.Printf("[GATE] доступ получен")
		return nil
	case <-ctx.Done():
		log.Printf("[GATE] ожидание прервано: %v", ctx.Err())
		return ctx.Err()
	}
}

// Release освобождает шлюз. Повторный вызов безопасен.
func (g *Gate) Release() {
	if g == nil {
		return
	}
	select {
	case <-g.slot:
		log.Printf("[GATE] доступ освобождён")
	default:
	}
}

// Backoff повторяет операцию, пока Telegram отвечает FLOOD_WAIT,
// выжидая предписанную паузу перед каждой попыткой. Остальные ошибки
// возвращаются без изменений.
type Backoff struct {
	// MaxWait ограничивает суммарное время пауз. Ноль повторяет
	// исходное поведение без ограничения.
	MaxWait time.Duration

	// Notify вызывается перед каждой паузой, чтобы UI мог показать
	// пользователю, что работа не зависла.
	Notify func(wait time.Duration)

	// sleep подменяется в тестах.
	sleep func(ctx context.Context, d time.Duration) error
}

func (b *Backoff) sleepFn() func(ctx context.Context, d time.Duration) error {
	if b.sleep != nil {
		return b.sleep
	}
	return common.Sleep
}

// Call выполняет операцию с повтором по флуд-контролю.
func (b *Backoff) Call(ctx context.Context, op func(ctx context.Context) error) error {
	var waited time.Duration
	for {
		err := op(ctx)
		wait, ok := tgerr.AsFloodWait(err)
		if !ok {
			return err
		}

		waited += wait
		if b.MaxWait > 0 && waited > b.MaxWait {
			return fmt.Errorf("превышен лимит ожидания флуд-контроля (%s): %w", b.MaxWait, err)
		}

		log.Printf("[FLOOD] Telegram просит подождать %s", wait)
		if b.Notify != nil {
			b.Notify(wait)
		}
		if err := b.sleepFn()(ctx, wait); err != nil {
			return err
		}
	}
}
