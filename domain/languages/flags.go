package languages

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// defaultFlags is used when no flag table file is present
var defaultFlags = map[string]string{
	"en":    "🇺🇸",
	"ja":    "🇯🇵",
	"de":    "🇩🇪",
	"fr":    "🇫🇷",
	"es":    "🇪🇸",
	"it":    "🇮🇹",
	"ko":    "🇰🇷",
	"zh-cn": "🇨🇳",
	"ru":    "🇷🇺",
	"pt":    "🇵🇹",
	"ar":    "🇸🇦",
	"hi":    "🇮🇳",
}

// FlagTable maps language codes to emoji flags. It is read-only after construction.
type FlagTable struct {
	flags map[string]string
}

// Entry is one row of the flag table
type Entry struct {
	Code string
	Flag string
}

// NewFlagTable builds a table from a code → flag map; codes are lower-cased
func NewFlagTable(flags map[string]string) *FlagTable {
	table := &FlagTable{flags: make(map[string]string, len(flags))}
	for code, flag := range flags {
		table.flags[strings.ToLower(strings.TrimSpace(code))] = flag
	}
	return table
}

// DefaultFlagTable returns the built-in table
func DefaultFlagTable() *FlagTable {
	return NewFlagTable(defaultFlags)
}

// LoadFlagTable reads a JSON object of code → flag from path.
// A missing file yields the built-in table.
func LoadFlagTable(path string) (*FlagTable, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultFlagTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read flag table %s: %w", path, err)
	}

	var flags map[string]string
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("failed to parse flag table %s: %w", path, err)
	}
	return NewFlagTable(flags), nil
}

// Flag returns the emoji for code, or "" when unknown
func (t *FlagTable) Flag(code string) string {
	return t.flags[strings.ToLower(code)]
}

// Len returns the number of known codes
func (t *FlagTable) Len() int {
	return len(t.flags)
}

// Entries returns all rows sorted by code
func (t *FlagTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.flags))
	for code, flag := range t.flags {
		entries = append(entries, Entry{Code: code, Flag: flag})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries
}
