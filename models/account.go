package models

// Account хранит учётные данные пользовательской сессии Telegram.
// Все запросы к каналам выполняются через авторизованный аккаунт,
// поэтому без хотя бы одной записи с is_authorized сервис бесполезен.
type Account struct {
	ID            int    `json:"id"`
	Phone         string `json:"phone"`
	ApiID         int    `json:"api_id"`
	ApiHash       string `json:"api_hash"`
	IsAuthorized  bool   `json:"is_authorized"`
	PhoneCodeHash string `json:"phone_code_hash"`
}
