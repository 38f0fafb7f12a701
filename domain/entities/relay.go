package entities

// DefaultUserLanguage is used when a user has not set a preference
const DefaultUserLanguage = "en"

// RelayRequest is an inbound guild message considered for translation
type RelayRequest struct {
	Key     ChannelKey
	Content string
}

// RelayPlan is the outcome of the relay policy for one message
type RelayPlan struct {
	Source   string   // Detected source language
	Lines    []string // Formatted translation lines in configured order
	Settings Settings // Channel settings at the time of relay
}

// HasTranslations reports whether anything should be posted
func (p *RelayPlan) HasTranslations() bool {
	return p != nil && len(p.Lines) > 0
}

// ChatLine is one message of a conversation being summarized
type ChatLine struct {
	Speaker string
	Content string
}

// Status is what the /status command reports for a channel and user
type Status struct {
	Languages    []string
	UserLanguage string // Empty when not set
	Stats        ChannelStats
}

// AdHocTranslation is the result of an inline translation request
type AdHocTranslation struct {
	Source string
	Target string
	Text   string
}

// Summary is a conversation summary in the requesting user's language
type Summary struct {
	Language string
	Text     string
}
