package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorError   = 0xED4245 // Red (alias for ColorDanger)
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
)

// Relay constants
const (
	WebhookName           = "Translation Webhook"
	WebhookUsernameSuffix = " (Translated)"
	DirectMessageTarget   = "English"
)

// Discord limits
const (
	MaxMessageLength    = 2000
	MaxEmbedDescription = 4096
	MaxFetchMessages    = 100
	DefaultSummaryLimit = 20
)
