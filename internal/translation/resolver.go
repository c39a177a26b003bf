package translation

import "strings"

// Resolve returns the complete label set for a locale. Resolution order:
// merchant-saved override for the locale (used wholesale, never merged
// field-by-field), then the built-in preset, then English. The caller
// may pass nil overrides when the configuration store is unavailable.
func Resolve(locale string, overrides map[string]LabelSet) LabelSet {
	locale = normalize(locale)

	if override, ok := overrides[locale]; ok && !override.IsZero() {
		return override
	}
	if preset, ok := Preset(locale); ok {
		return preset
	}
	return Default()
}

func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	// Region subtags collapse to the base language: "pt-BR" -> "pt".
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		locale = locale[:idx]
	}
	if locale == "" {
		return DefaultLocale
	}
	return locale
}
