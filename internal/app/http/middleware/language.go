package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"zozikafe/internal/domain/lang"
)

const (
	LangCookie = "zozikafe_lang"
	langKey    = "lang"
	cookieAge  = 365 * 24 * 60 * 60
)

// SiteDefault supplies the stored site-wide language.
type SiteDefault interface {
	LanguagePreference(ctx context.Context) (lang.Code, bool)
}

// Language resolves the visitor's language: ?lang= (remembered in a cookie),
// then the cookie, then the site default, then Accept-Language, then Bulgarian.
func Language(def SiteDefault) gin.HandlerFunc {
	return func(c *gin.Context) {
		var code lang.Code
		resolved := false

		if q := c.Query("lang"); q != "" {
			if parsed, ok := lang.Parse(q); ok {
				code, resolved = parsed, true
				SetLanguageCookie(c, code)
			}
		}
		if !resolved {
			if v, err := c.Cookie(LangCookie); err == nil {
				code, resolved = lang.Parse(v)
			}
		}
		if !resolved && def != nil {
			code, resolved = def.LanguagePreference(c.Request.Context())
		}
		if !resolved {
			code, resolved = lang.MatchAccept(c.GetHeader("Accept-Language"))
		}
		if !resolved {
			code = lang.Primary
		}

		c.Set(langKey, code)
		c.Next()
	}
}

// LangFrom returns the language resolved by Language, or Bulgarian.
func LangFrom(c *gin.Context) lang.Code {
	if v, ok := c.Get(langKey); ok {
		if code, ok := v.(lang.Code); ok {
			return code
		}
	}
	return lang.Primary
}

func SetLanguageCookie(c *gin.Context, code lang.Code) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(LangCookie, code.String(), cookieAge, "/", "", false, false)
	c.Set(langKey, code)
}
