// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

var supportedLocales = []language.Tag{language.English, language.Indonesian}

// I18nMiddleware picks the response language from Accept-Language, e.g.
// "id-ID,id;q=0.9,en;q=0.8" selects Indonesian.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if !i18n.IsSupported(defaultLang) {
		defaultLang = i18n.DefaultLang
	}
	matcher := language.NewMatcher(supportedLocales)

	return func(c *gin.Context) {
		lang := defaultLang

		if header := c.GetHeader("Accept-Language"); header != "" {
			if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
				_, index, confidence := matcher.Match(tags...)
				if confidence != language.No {
					base, _ := supportedLocales[index].Base()
					lang = base.String()
				}
			}
		}

		c.Set(utils.ContextKeyLang, lang)
		c.Next()
	}
}
