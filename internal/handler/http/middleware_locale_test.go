// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamel/corsite-backend/internal/service"
	"github.com/mkamel/corsite-backend/internal/utils"
	"github.com/mkamel/corsite-backend/models"
)

// resolveLocale runs one request through withLocale and reports what the
// downstream handler observed.
func resolveLocale(t *testing.T, target string, header http.Header) (models.Locale, bool) {
	t.Helper()
	h := newTestHandler(&service.Services{})

	var locale models.Locale
	var bypassed bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale = utils.GetLocaleFromContext(r.Context())
		bypassed = utils.LocalizationBypassed(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	h.withLocale(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	return locale, bypassed
}

func TestWithLocale_QueryParameterWins(t *testing.T) {
	locale, _ := resolveLocale(t, "/api/pages/about?lang=fr", http.Header{
		"Accept-Language": []string{"zh-CN"},
	})
	assert.Equal(t, models.LocaleFR, locale)
}

func TestWithLocale_AcceptLanguageNegotiation(t *testing.T) {
	locale, _ := resolveLocale(t, "/api/pages/about", http.Header{
		"Accept-Language": []string{"zh-CN, zh;q=0.9, en;q=0.5"},
	})
	assert.Equal(t, models.LocaleZH, locale)
}

func TestWithLocale_UnknownQueryParamFallsThrough(t *testing.T) {
	locale, _ := resolveLocale(t, "/api/pages/about?lang=de", http.Header{
		"Accept-Language": []string{"fr-FR"},
	})
	assert.Equal(t, models.LocaleFR, locale)
}

func TestWithLocale_DefaultsToEnglish(t *testing.T) {
	locale, _ := resolveLocale(t, "/api/pages/about", nil)
	assert.Equal(t, models.DefaultLocale, locale)
}

func TestWithLocale_UnsupportedLanguageDefaults(t *testing.T) {
	locale, _ := resolveLocale(t, "/api/pages/about", http.Header{
		"Accept-Language": []string{"xx-unknown"},
	})
	assert.Equal(t, models.DefaultLocale, locale)
}

func TestWithLocale_BypassHeader(t *testing.T) {
	_, bypassed := resolveLocale(t, "/api/pages/about", http.Header{
		"X-Bypass-Localization": []string{"true"},
	})
	assert.True(t, bypassed)

	_, bypassed = resolveLocale(t, "/api/pages/about", http.Header{
		"X-Bypass-Localization": []string{"0"},
	})
	assert.False(t, bypassed)
}

// ─────────────────────────────────────────────
// respond: locale applied to the payload
// ─────────────────────────────────────────────

func TestRespond_LocalizesPayload(t *testing.T) {
	h := newTestHandler(&service.Services{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, map[string]any{
			"heading": map[string]any{"en": "About", "fr": "À propos"},
		}, http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pages/about?lang=fr", nil)
	rec := httptest.NewRecorder()
	h.withLocale(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"heading":"À propos"}`, rec.Body.String())
}

func TestRespond_BypassReturnsAllTranslations(t *testing.T) {
	h := newTestHandler(&service.Services{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, map[string]any{
			"heading": map[string]any{"en": "About", "fr": "À propos"},
		}, http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pages/about?lang=fr", nil)
	req.Header.Set("X-Bypass-Localization", "1")
	rec := httptest.NewRecorder()
	h.withLocale(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"heading":{"en":"About","fr":"À propos"}}`, rec.Body.String())
}
