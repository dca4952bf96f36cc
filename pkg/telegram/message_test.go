package telegram

import (
	"testing"
	"time"

	"unwrapped_go/models"

	"github.com/gotd/td/tg"
)

// TestMediaKind проверяет классификацию медиа, включая видео,
// которое Telegram отдаёт как документ с видеоатрибутом.
func TestMediaKind(t *testing.T) {
	plain := &tg.Message{Message: "привет"}
	if got := mediaKind(plain); got != models.MediaText {
		t.Fatalf("сообщение без медиа должно быть text, получено %s", got)
	}

	photo := &tg.Message{}
	photo.SetMedia(&tg.MessageMediaPhoto{})
	if got := mediaKind(photo); got != models.MediaPhoto {
		t.Fatalf("ожидался photo, получено %s", got)
	}

	poll := &tg.Message{}
	poll.SetMedia(&tg.MessageMediaPoll{})
	if got := mediaKind(poll); got != models.MediaPoll {
		t.Fatalf("ожидался poll, получено %s", got)
	}

	video := &tg.Message{}
	videoMedia := &tg.MessageMediaDocument{}
	videoMedia.SetDocument(&tg.Document{
		Attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeVideo{}},
	})
	video.SetMedia(videoMedia)
	if got := mediaKind(video); got != models.MediaVideo {
		t.Fatalf("документ с видеоатрибутом должен быть video, получено %s", got)
	}

	doc := &tg.Message{}
	docMedia := &tg.MessageMediaDocument{}
	docMedia.SetDocument(&tg.Document{
		Attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeFilename{FileName: "a.pdf"}},
	})
	doc.SetMedia(docMedia)
	if got := mediaKind(doc); got != models.MediaDocument {
		t.Fatalf("ожидался document, получено %s", got)
	}
}

// TestMapMessage убеждается, что отсутствующие просмотры и пересылки
// превращаются в нули, а реакции суммируются по списку.
func TestMapMessage(t *testing.T) {
	date := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	bare := &tg.Message{ID: 5, Message: "текст"}
	post := mapMessage(bare, date)
	if post.Views != 0 || post.Forwards != 0 {
		t.Fatalf("отсутствующие метрики должны быть нулями: %+v", post)
	}
	if post.ID != 5 || !post.Date.Equal(date) {
		t.Fatalf("идентификатор или дата искажены: %+v", post)
	}

	rich := &tg.Message{ID: 6}
	rich.SetViews(100)
	rich.SetForwards(7)
	rich.SetReactions(tg.MessageReactions{Results: []tg.ReactionCount{
		{Reaction: &tg.ReactionEmoji{Emoticon: "❤️"}, Count: 3},
		{Reaction: &tg.ReactionEmoji{Emoticon: "😂"}, Count: 2},
	}})
	post = mapMessage(rich, date)
	if post.Views != 100 || post.Forwards != 7 {
		t.Fatalf("метрики потеряны: %+v", post)
	}
	if post.ReactionTotal() != 5 {
		t.Fatalf("ожидалось 5 реакций, получено %d", post.ReactionTotal())
	}
	if post.Reactions[0].Type != "❤️" {
		t.Fatalf("метка реакции искажена: %+v", post.Reactions[0])
	}
}

// TestNormalizeUsername проверяет допустимые формы ввода имени канала.
func TestNormalizeUsername(t *testing.T) {
	for _, input := range []string{"@mychannel", "mychannel", "https://t.me/mychannel", " @mychannel "} {
		got, err := NormalizeUsername(input)
		if err != nil {
			t.Fatalf("ввод %q не должен давать ошибку: %v", input, err)
		}
		if got != "mychannel" {
			t.Fatalf("ввод %q: ожидалось mychannel, получено %s", input, got)
		}
	}

	for _, input := range []string{"", "@", "два слова", "a/b"} {
		if _, err := NormalizeUsername(input); err == nil {
			t.Fatalf("ввод %q должен отклоняться", input)
		}
	}
}

// TestFindBroadcastChannel убеждается, что мегагруппы пропускаются.
func TestFindBroadcastChannel(t *testing.T) {
	group := &tg.Channel{ID: 1, Megagroup: true}
	broadcast := &tg.Channel{ID: 2, Broadcast: true}

	ch, err := findBroadcastChannel([]tg.ChatClass{group, broadcast})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if ch.ID != 2 {
		t.Fatalf("ожидался канал 2, получен %d", ch.ID)
	}

	if _, err := findBroadcastChannel([]tg.ChatClass{group}); err == nil {
		t.Fatalf("без вещательного канала ожидалась ошибка")
	}
}
