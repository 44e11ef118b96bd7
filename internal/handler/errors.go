package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed   = "Method not allowed"
	ErrMsgGenericServerError = "Something went wrong"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidChatID     = "Invalid chat_id query parameter"

	// Link flow error messages
	ErrMsgMissingParameterError = "Missing required parameter"
	ErrMsgInvalidStateError     = "Link request is invalid or has expired. Please start again from the chat."
	ErrMsgUnknownProviderError  = "Unknown provider"
	ErrMsgExchangeFailedError   = "The provider rejected the sign-in. Please start again from the chat."
	ErrMsgProfileFailedError    = "Could not read your account profile. Please start again from the chat."
	ErrMsgBindingNotFoundError  = "No linked account found"
	ErrMsgProviderDeniedError   = "Sign-in was cancelled or denied"
)
