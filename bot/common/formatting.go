package common

import (
	"fmt"
	"strings"

	"relaybot/domain/languages"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	titleCaser = cases.Title(language.English)
	printer    = message.NewPrinter(language.English)
)

// FormatCount formats a counter with thousand separators
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFieldName turns a snake_case key into a title ("auto_delete" -> "Auto Delete")
func FormatFieldName(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// FormatLanguage renders a code with its flag when one is known ("ja 🇯🇵")
func FormatLanguage(code string, flags *languages.FlagTable) string {
	if flag := flags.Flag(code); flag != "" {
		return fmt.Sprintf("%s %s", code, flag)
	}
	return code
}

// FormatLanguageList renders codes with flags, comma separated
func FormatLanguageList(codes []string, flags *languages.FlagTable) string {
	formatted := make([]string, len(codes))
	for i, code := range codes {
		formatted[i] = FormatLanguage(code, flags)
	}
	return strings.Join(formatted, ", ")
}

// FormatOnOff renders a boolean setting
func FormatOnOff(enabled bool) string {
	if enabled {
		return "On"
	}
	return "Off"
}

// Truncate shortens s to at most limit runes, marking the cut with an ellipsis
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

// ModalValues collects the text input values of a modal submission keyed by custom ID
func ModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, comp := range data.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, innerComp := range row.Components {
			if textInput, ok := innerComp.(*discordgo.TextInput); ok {
				values[textInput.CustomID] = textInput.Value
			}
		}
	}
	return values
}
