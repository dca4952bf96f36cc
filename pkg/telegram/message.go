package telegram

import (
	"fmt"
	"time"

	"unwrapped_go/models"

	"github.com/gotd/td/tg"
)

// mapMessage переводит сырое сообщение Telegram в пост снимка.
// Отсутствующие числовые поля становятся нулями здесь, чтобы агрегация
// работала с уже нормализованными данными.
func mapMessage(msg *tg.Message, date time.Time) models.ChannelPost {
	views, _ := msg.GetViews()
	forwards, _ := msg.GetForwards()

	post := models.ChannelPost{
		ID:        msg.ID,
		Date:      date,
		Text:      msg.Message,
		MediaType: mediaKind(msg),
		Views:     views,
		Forwards:  forwards,
	}

	if reactions, ok := msg.GetReactions(); ok {
		for _, r := range reactions.Results {
			post.Reactions = append(post.Reactions, models.Reaction{
				Type:  reactionLabel(r.Reaction),
				Count: r.Count,
			})
		}
	}
	return post
}

// mediaKind определяет тип медиа поста. Видео в Telegram приходит как
// документ с видеоатрибутом, поэтому документы разбираются отдельно.
func mediaKind(msg *tg.Message) string {
	media, ok := msg.GetMedia()
	if !ok {
		return models.MediaText
	}
	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		return models.MediaPhoto
	case *tg.MessageMediaPoll:
		return models.MediaPoll
	case *tg.MessageMediaDocument:
		docClass, ok := m.GetDocument()
		if !ok {
			return models.MediaDocument
		}
		doc, ok := docClass.AsNotEmpty()
		if !ok {
			return models.MediaDocument
		}
		for _, attr := range doc.Attributes {
			if _, ok := attr.(*tg.DocumentAttributeVideo); ok {
				return models.MediaVideo
			}
		}
		return models.MediaDocument
	default:
		return models.MediaText
	}
}

// reactionLabel возвращает текстовую метку реакции: эмодзи для обычных,
// идентификатор документа для кастомных.
func reactionLabel(reaction tg.ReactionClass) string {
	switch r := reaction.(type) {
	case *tg.ReactionEmoji:
		return r.Emoticon
	case *tg.ReactionCustomEmoji:
		return fmt.Sprintf("custom:%d", r.DocumentID)
	default:
		return ""
	}
}
