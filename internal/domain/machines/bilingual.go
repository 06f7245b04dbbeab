package machines

import (
	"encoding/json"
	"strings"

	"zozikafe/internal/domain/lang"
)

// legacySeparator joined the two variants in data written by the old site.
const legacySeparator = "|"

// Bilingual carries the Bulgarian (primary) and English (secondary) text of a field.
type Bilingual struct {
	BG string `json:"bg"`
	EN string `json:"en"`
}

// NewBilingual builds a pair; an empty secondary falls back to the primary.
func NewBilingual(bg, en string) Bilingual {
	bg = strings.TrimSpace(bg)
	en = strings.TrimSpace(en)
	if en == "" {
		en = bg
	}
	return Bilingual{BG: bg, EN: en}
}

// ParseLegacy splits a "bg|en" string. Anything after a second separator is dropped.
func ParseLegacy(s string) Bilingual {
	parts := strings.Split(s, legacySeparator)
	b := Bilingual{BG: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		b.EN = strings.TrimSpace(parts[1])
	}
	return b
}

// Pick projects the pair into code. The secondary language falls back to the
// primary text when its own variant is blank.
func (b Bilingual) Pick(code lang.Code) string {
	if code == lang.Secondary && strings.TrimSpace(b.EN) != "" {
		return b.EN
	}
	return b.BG
}

// UnmarshalJSON accepts both the structured object and the legacy "bg|en" string.
func (b *Bilingual) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		*b = ParseLegacy(legacy)
		return nil
	}
	type plain Bilingual
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Bilingual(p)
	return nil
}
