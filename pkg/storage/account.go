package storage

import (
	"log"

	"unwrapped_go/models"
)

func (db *DB) CreateAccount(account models.Account) (*models.Account, error) {
	query := `
               INSERT INTO accounts (phone, api_id, api_hash, phone_code_hash)
               VALUES ($1, $2, $3, $4)
               RETURNING id
       `
	err := db.Conn.QueryRow(
		query,
		account.Phone,
		account.ApiID,
		account.ApiHash,
		account.PhoneCodeHash,
	).Scan(&account.ID)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetLastAccount нужен, чтобы использовать свежесозданный аккаунт
// без дополнительного запроса его идентификатора.
func (db *DB) GetLastAccount() (*models.Account, error) {
	var account models.Account
	query := `
               SELECT id, phone, api_id, api_hash, phone_code_hash, is_authorized
               FROM accounts
               ORDER BY id DESC
               LIMIT 1
       `
	err := db.Conn.QueryRow(query).Scan(
		&account.ID,
		&account.Phone,
		&account.ApiID,
		&account.ApiHash,
		&account.PhoneCodeHash,
		&account.IsAuthorized,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAuthorizedAccount возвращает первый авторизованный аккаунт.
// Через него выполняются все выгрузки каналов; порядок по id делает
// выбор детерминированным при нескольких записях.
func (db *DB) GetAuthorizedAccount() (*models.Account, error) {
	var account models.Account
	query := `
               SELECT id, phone, api_id, api_hash, phone_code_hash, is_authorized
               FROM accounts
               WHERE is_authorized = true
               ORDER BY id
               LIMIT 1
       `
	err := db.Conn.QueryRow(query).Scan(
		&account.ID,
		&account.Phone,
		&account.ApiID,
		&account.ApiHash,
		&account.PhoneCodeHash,
		&account.IsAuthorized,
	)
	if err != nil {
		log.Printf("[DB ERROR] Не удалось получить авторизованный аккаунт: %v", err)
		return nil, err
	}
	return &account, nil
}

func (db *DB) MarkAccountAsAuthorized(accountID int) error {
	_, err := db.Conn.Exec(
		"UPDATE accounts SET is_authorized = true WHERE id = $1",
		accountID,
	)
	return err
}

// UpdatePhoneCodeHash обновляет hash, чтобы повторно не запрашивать код у пользователя.
func (db *DB) UpdatePhoneCodeHash(accountID int, hash string) error {
	_, err := db.Conn.Exec(
		"UPDATE accounts SET phone_code_hash = $1 WHERE id = $2",
		hash,
		accountID,
	)
	return err
}
