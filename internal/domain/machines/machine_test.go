package machines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestCloneDoesNotShareFeatures(t *testing.T) {
	m := Machine{ID: 1, Features: []Bilingual{{BG: "a", EN: "b"}}}
	c := m.Clone()
	c.Features[0].BG = "changed"
	assert.Equal(t, "a", m.Features[0].BG)
}

func TestIndexOf(t *testing.T) {
	list := []Machine{{ID: 5}, {ID: 9}}
	assert.Equal(t, 1, IndexOf(list, 9))
	assert.Equal(t, -1, IndexOf(list, 3))
}
