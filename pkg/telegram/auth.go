package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"unwrapped_go/models"
	"unwrapped_go/pkg/storage"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// RequestCode отправляет код подтверждения и сохраняет хеш в БД.
func RequestCode(db *storage.DB, account *models.Account) (string, error) {
	client := NewAccountClient(account, db.Conn)

	var phoneCodeHash string
	ctx := context.Background()
	err := client.Run(ctx, func(ctx context.Context) error {
		sentCode, err := client.Auth().SendCode(ctx, account.Phone, auth.SendCodeOptions{})
		if err != nil {
			return err
		}
		sent, ok := sentCode.(*tg.AuthSentCode)
		if !ok {
			log.Printf("[ERROR] Неожиданный тип ответа SendCode: %T", sentCode)
			return fmt.Errorf("unexpected sent code type: %T", sentCode)
		}
		phoneCodeHash = sent.PhoneCodeHash
		// Сохраняем полученный хеш в БД для дальнейшей авторизации.
		return db.UpdatePhoneCodeHash(account.ID, phoneCodeHash)
	})
	return phoneCodeHash, err
}

// CompleteAuthorization завершает авторизацию аккаунта после получения кода.
// Пароль двухфакторной аутентификации берётся из окружения, чтобы не
// хранить его в коде или в БД открытым текстом.
func CompleteAuthorization(db *storage.DB, account *models.Account, code string) error {
	client := NewAccountClient(account, db.Conn)

	ctx := context.Background()
	return client.Run(ctx, func(ctx context.Context) error {
		if _, err := client.Auth().SignIn(ctx, account.Phone, code, account.PhoneCodeHash); err != nil {
			if errors.Is(err, auth.ErrPasswordAuthNeeded) {
				password := os.Getenv("TWO_FA_PASSWORD")
				if password == "" {
					return fmt.Errorf("требуется пароль 2FA, но TWO_FA_PASSWORD не задан")
				}
				if _, err := client.Auth().Password(ctx, password); err != nil {
					log.Printf("[ERROR] Password authentication failed: %v", err)
					return fmt.Errorf("password authentication failed: %w", err)
				}
				log.Printf("[INFO] Successfully authorized phone: %s", account.Phone)
				return nil
			}
			log.Printf("[ERROR] Authorization failed: %v", err)
			return fmt.Errorf("authorization error: %w", err)
		}

		log.Printf("[INFO] Successfully authorized phone: %s", account.Phone)
		return nil
	})
}
