package models

import "time"

// Типы медиа поста. Документы без видеодорожки при подсчёте
// распределения попадают в текстовую корзину, поэтому на карточке
// всегда ровно четыре категории.
const (
	MediaText     = "text"
	MediaPhoto    = "photo"
	MediaVideo    = "video"
	MediaPoll     = "poll"
	MediaDocument = "document"
)

// Reaction — одна позиция из списка реакций поста.
type Reaction struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ChannelPost — один пост канала вместе с метриками вовлечённости.
// Отсутствующие у Telegram числовые поля записываются нулями ещё при
// выгрузке, чтобы агрегация не разбирала опциональность повторно.
type ChannelPost struct {
	ID        int        `json:"id"`
	Date      time.Time  `json:"date"`
	Text      string     `json:"text"`
	MediaType string     `json:"media_type"`
	Views     int        `json:"views"`
	Forwards  int        `json:"forwards"`
	Reactions []Reaction `json:"reactions"`
}

// ReactionTotal возвращает суммарное число реакций поста.
func (p ChannelPost) ReactionTotal() int {
	total := 0
	for _, r := range p.Reactions {
		total += r.Count
	}
	return total
}
