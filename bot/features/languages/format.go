package languages

import (
	"fmt"
	"strings"

	"relaybot/bot/common"
	"relaybot/domain/languages"
)

// buildLanguageList renders the flag table as "code: flag" lines sorted by code
func buildLanguageList(flags *languages.FlagTable) string {
	var b strings.Builder
	b.WriteString("**Supported Codes**")
	for _, entry := range flags.Entries() {
		fmt.Fprintf(&b, "\n%s: %s", entry.Code, entry.Flag)
	}
	return common.Truncate(b.String(), common.MaxMessageLength)
}
