package telegram

import (
	"bytes"
	"context"
	"log"

	"unwrapped_go/models"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
)

// ChannelPhoto скачивает аватар канала. Отсутствие аватара или ошибка
// загрузки дают nil без ошибки: карточка рисуется и без него.
func (f *Fetcher) ChannelPhoto(ctx context.Context, account *models.Account, username string) ([]byte, error) {
	if err := f.Gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer f.Gate.Release()

	var photoBytes []byte
	client := NewAccountClient(account, f.dbConn())
	err := client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(client)

		channel, err := resolveChannel(ctx, api, f.Backoff, username)
		if err != nil {
			return err
		}

		photo, ok := channel.Photo.(*tg.ChatPhoto)
		if !ok {
			return nil
		}

		loc := &tg.InputPeerPhotoFileLocation{
			Big: true,
			Peer: &tg.InputPeerChannel{
				ChannelID:  channel.ID,
				AccessHash: channel.AccessHash,
			},
			PhotoID: photo.PhotoID,
		}

		var buf bytes.Buffer
		err = f.Backoff.Call(ctx, func(ctx context.Context) error {
			buf.Reset()
			_, err := downloader.NewDownloader().Download(api, loc).Stream(ctx, &buf)
			return err
		})
		if err != nil {
			log.Printf("[FETCH] не удалось скачать аватар %s: %v", username, err)
			return nil
		}
		photoBytes = buf.Bytes()
		return nil
	})
	return photoBytes, err
}
