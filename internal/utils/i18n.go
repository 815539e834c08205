package utils

// Minimal server-side i18n for fixed keys.
// UI strings live in the frontend; the server provides only essentials.

var translations = map[string]map[string]string{
	"fr": {
		"health.ok":       "ok",
		"error.internal":  "Une erreur est survenue",
		"account.deleted": "Compte supprimé",
	},
	"en": {
		"health.ok":       "ok",
		"error.internal":  "An error occurred",
		"account.deleted": "Account deleted",
	},
}

// T returns the translated string for key in locale; falls back to French.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := translations["fr"]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
