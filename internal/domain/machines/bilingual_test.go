package machines

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zozikafe/internal/domain/lang"
)

func TestBilingualPick(t *testing.T) {
	tests := []struct {
		name   string
		pair   Bilingual
		code   lang.Code
		expect string
	}{
		{"primary", Bilingual{BG: "Тип А", EN: "Type A"}, lang.Primary, "Тип А"},
		{"secondary", Bilingual{BG: "Тип А", EN: "Type A"}, lang.Secondary, "Type A"},
		{"secondary empty falls back", Bilingual{BG: "Тип А"}, lang.Secondary, "Тип А"},
		{"secondary blank falls back", Bilingual{BG: "Тип А", EN: "  "}, lang.Secondary, "Тип А"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.pair.Pick(tt.code))
		})
	}
}

func TestNewBilingualDefaultsSecondary(t *testing.T) {
	b := NewBilingual(" Двоен бойлер ", "")
	assert.Equal(t, "Двоен бойлер", b.BG)
	assert.Equal(t, "Двоен бойлер", b.EN)
}

func TestBilingualUnmarshalLegacyString(t *testing.T) {
	var m Machine
	raw := `{"id":7,"name":"X","type":"Тип А|Type A","features":["X|Y","Само БГ"],"status":"sold"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, Bilingual{BG: "Тип А", EN: "Type A"}, m.Type)
	require.Len(t, m.Features, 2)
	assert.Equal(t, Bilingual{BG: "X", EN: "Y"}, m.Features[0])
	assert.Equal(t, "Само БГ", m.Features[1].Pick(lang.Secondary))
	assert.Equal(t, StatusSold, m.Status)
}

func TestBilingualStructuredRoundTrip(t *testing.T) {
	in := Bilingual{BG: "a|b", EN: "c"}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Bilingual
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out, "separator inside structured text must survive")
}

func TestStatusToggled(t *testing.T) {
	assert.Equal(t, StatusSold, StatusAvailable.Toggled())
	assert.Equal(t, StatusAvailable, StatusSold.Toggled())
	assert.Equal(t, StatusAvailable, StatusAvailable.Toggled().Toggled())

	s, ok := ParseStatus(" SOLD ")
	assert.True(t, ok)
	assert.Equal(t, StatusSold, s)
	_, ok = ParseStatus("reserved")
	assert.False(t, ok)
}

func TestPublicSamples(t *testing.T) {
	list := PublicSamples(fixedNow)
	require.Len(t, list, 3)
	assert.Equal(t, StatusAvailable, list[0].Status)
	assert.Equal(t, StatusAvailable, list[1].Status)
	assert.Equal(t, StatusSold, list[2].Status)
	for _, m := range list {
		assert.Empty(t, m.Description)
	}
	assert.NotEmpty(t, AdminSamples(fixedNow)[0].Description)
}
