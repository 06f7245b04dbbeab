// Package lang holds the two display languages of the site and the
// selector that swaps translatable page text between them.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

type Code string

const (
	// Primary is the native language of the shop and the default.
	Primary Code = "bg"
	// Secondary is the translation language.
	Secondary Code = "en"
)

var (
	supportedCodes = []Code{Primary, Secondary}
	supportedTags  = []language.Tag{language.Bulgarian, language.English}
	matcher        = language.NewMatcher(supportedTags)
)

// Supported returns the languages in display order.
func Supported() []Code {
	out := make([]Code, len(supportedCodes))
	copy(out, supportedCodes)
	return out
}

// Parse resolves a tag such as "en", "en-US" or "bg-BG" to a supported code.
func Parse(value string) (Code, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case string(Primary):
		return Primary, true
	case string(Secondary):
		return Secondary, true
	}
	return "", false
}

// MatchAccept picks a supported code from an Accept-Language header.
func MatchAccept(header string) (Code, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return supportedCodes[idx], true
}

func (c Code) String() string { return string(c) }

// Label is the switcher caption, always in the language itself.
func (c Code) Label() string {
	if c == Secondary {
		return "EN"
	}
	return "БГ"
}
