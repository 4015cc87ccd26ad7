package models

// Locale identifies one of the display languages supported by the site
// content. The set is closed: documents embed per-locale text under these
// exact keys.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
	LocaleZH Locale = "zh"
)

// DefaultLocale is used when a request carries no usable language hint.
const DefaultLocale = LocaleEN

// LocaleFallbackOrder is the deterministic priority used when a localized
// value is missing the requested locale. The requested locale is always
// tried first; the remaining declared locales are tried in this order.
var LocaleFallbackOrder = []Locale{LocaleEN, LocaleFR, LocaleZH}

// IsDeclaredLocale reports whether code is one of the supported locales.
func IsDeclaredLocale(code Locale) bool {
	for _, l := range LocaleFallbackOrder {
		if l == code {
			return true
		}
	}
	return false
}

// LocalizedText carries the per-locale variants of one logical text field.
// It marshals to a plain JSON object keyed by locale code, e.g.
//
//	{"en": "About us", "fr": "À propos", "zh": "关于我们"}
//
// which is exactly the shape stored inside JSONB documents.
type LocalizedText map[Locale]string

// Resolve projects the text down to a single display locale.
//
// It returns the value at the requested locale if present, otherwise the
// first populated locale in [LocaleFallbackOrder]. The second return value
// is false only when no declared locale carries a value, in which case the
// caller should render null.
func (t LocalizedText) Resolve(locale Locale) (string, bool) {
	if v, ok := t[locale]; ok {
		return v, true
	}
	for _, l := range LocaleFallbackOrder {
		if l == locale {
			continue
		}
		if v, ok := t[l]; ok {
			return v, true
		}
	}
	return "", false
}

// Plainer is the capability a lazy storage-layer document exposes to be
// converted into plain data before response shaping. The localizer
// materializes such values exactly once per traversal.
type Plainer interface {
	Plain() any
}
