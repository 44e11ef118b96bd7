package telegram

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// LoginURLBuilder constructs the link server login URL handed to the user as
// an inline keyboard button.
type LoginURLBuilder struct {
	base string
}

// NewLoginURLBuilder creates a builder over the link server's public base URL
func NewLoginURLBuilder(publicBaseURL string) *LoginURLBuilder {
	return &LoginURLBuilder{base: strings.TrimSuffix(publicBaseURL, "/")}
}

// Build returns the login URL for a chat and provider
func (b *LoginURLBuilder) Build(chatID int64, provider string) string {
	q := url.Values{}
	q.Set("chat_id", strconv.FormatInt(chatID, 10))
	q.Set("provider", provider)
	return fmt.Sprintf("%s/login?%s", b.base, q.Encode())
}
