// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"github.com/mkamel/corsite-backend/internal/utils"
	"github.com/mkamel/corsite-backend/models"
)

// bypassHeader requests the raw, unlocalized response payload. Used by the
// admin panel so editors see every translation at once.
const bypassHeader = "X-Bypass-Localization"

// localeMatcher negotiates Accept-Language against the declared locales.
// The tag order mirrors [models.LocaleFallbackOrder] so the matcher's index
// maps directly onto a locale.
var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
	language.Chinese,
})

// withLocale resolves the response locale for every request and stores it in
// the request context.
//
// Resolution order:
//  1. the "lang" query parameter, when it names a declared locale;
//  2. Accept-Language negotiation via [language.NewMatcher];
//  3. [models.DefaultLocale].
//
// A truthy bypass header additionally marks the request as unlocalized.
func (h *Handler) withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		locale := models.DefaultLocale
		if lang := models.Locale(r.URL.Query().Get("lang")); models.IsDeclaredLocale(lang) {
			locale = lang
		} else if header := r.Header.Get("Accept-Language"); header != "" {
			if tags, _, err := language.ParseAcceptLanguage(header); err == nil {
				_, index, _ := localeMatcher.Match(tags...)
				if index >= 0 && index < len(models.LocaleFallbackOrder) {
					locale = models.LocaleFallbackOrder[index]
				}
			}
		}

		ctx = context.WithValue(ctx, utils.LocaleCtxKey, locale)
		if bypass := r.Header.Get(bypassHeader); bypass == "true" || bypass == "1" {
			ctx = context.WithValue(ctx, utils.BypassLocalizationCtxKey, true)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
