package telegram

// Friendly message constants for Telegram responses
const (
	MsgWelcome = "👋 Welcome! I can connect your external accounts to this chat.\n\n" +
		"Use /connect to link an account, /status to see your links, /help for everything else."

	MsgHelp = "Available commands:\n" +
		"/connect [twitter|google] - link an external account\n" +
		"/status - show your linked accounts\n" +
		"/help - show this message"

	MsgUnknownProvider = "❓ I don't know that provider. Try /connect twitter or /connect google."
	MsgConnectPrompt   = "Tap the button below to sign in. The link expires in a few minutes."
	MsgNoLinks         = "You have no linked accounts yet. Use /connect to add one."
	MsgStatusHeader    = "🔗 Your linked accounts:"

	MsgGenericError = "❌ Something went wrong."
)
