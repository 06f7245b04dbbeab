package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"public.html", "admin.html", "login.html", "confirm_delete.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
