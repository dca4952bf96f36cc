package telegram

import (
	"database/sql"
	"math/rand"
	"time"

	"unwrapped_go/models"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
)

// NewAccountClient создаёт клиент Telegram для аккаунта с хранилищем
// сессии в БД. Без подключения к БД сессия живёт только в памяти —
// такой режим используют тесты и первичная авторизация.
func NewAccountClient(account *models.Account, db *sql.DB) *telegram.Client {
	var storage session.Storage = &session.StorageMemory{}
	if db != nil && account.ID > 0 {
		storage = &DBSessionStorage{DB: db, AccountID: account.ID}
	}

	randSrc := rand.New(rand.NewSource(time.Now().UnixNano()))
	return telegram.NewClient(account.ApiID, account.ApiHash, telegram.Options{
		SessionStorage: storage,
		Random:         randSrc,
	})
}
