package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string in JSON
// and urlencoded form bodies using bluemonday. Entities are decoded again
// afterwards so stored text stays plain; templates escape on output.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	clean := func(s string) string { return html.UnescapeString(policy.Sanitize(s)) }

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		switch {
		case strings.HasPrefix(c.ContentType(), gin.MIMEJSON):
			buf, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
				return
			}
			if len(bytes.TrimSpace(buf)) == 0 {
				c.Request.Body = io.NopCloser(bytes.NewReader(buf))
				break
			}
			var body interface{}
			if err := json.Unmarshal(buf, &body); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
				return
			}
			newBody, _ := json.Marshal(sanitizeValue(body, clean))
			c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
			c.Request.ContentLength = int64(len(newBody))

		case c.ContentType() == gin.MIMEPOSTForm:
			if err := c.Request.ParseForm(); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed form"})
				return
			}
			for _, values := range []map[string][]string{c.Request.PostForm, c.Request.Form} {
				for k, vs := range values {
					for i := range vs {
						vs[i] = clean(vs[i])
					}
					values[k] = vs
				}
			}
		}

		c.Next()
	}
}

// sanitizeValue walks decoded JSON; feature lists nest objects in arrays.
func sanitizeValue(v interface{}, clean func(string) string) interface{} {
	switch t := v.(type) {
	case string:
		return clean(t)
	case map[string]interface{}:
		for k, inner := range t {
			t[k] = sanitizeValue(inner, clean)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = sanitizeValue(inner, clean)
		}
		return t
	default:
		return v
	}
}
