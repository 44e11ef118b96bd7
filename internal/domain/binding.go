package domain

import "time"

// Binding is the durable mapping between a chat identity and an external
// provider account. One live binding exists per (chat, provider) pair;
// re-linking overwrites the account id and credential in place.
type Binding struct {
	ChatID            int64     `json:"chat_id"`
	Provider          string    `json:"provider"`
	ExternalAccountID string    `json:"external_account_id"`
	AccessToken       string    `json:"-"`
	LinkedAt          time.Time `json:"linked_at"`
}
