package i18n

import "fmt"

// Language is a supported book language.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// DefaultLanguage is used when no preference has been stored.
const DefaultLanguage = English

// Languages lists every supported language in display order.
var Languages = []Language{English, Arabic}

// ParseLanguage returns the Language for s, or an error for anything other
// than "en" or "ar".
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case English, Arabic:
		return Language(s), nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == English || l == Arabic
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Direction returns the text direction for the language ("rtl" or "ltr").
func (l Language) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// RTL reports whether the language is written right to left.
func (l Language) RTL() bool { return l == Arabic }

// Translations holds the UI labels for one language.
type Translations map[string]string

// T returns the translations for the given language.
func T(lang Language) Translations {
	if lang == Arabic {
		return translationsAR
	}
	return translationsEN
}

// Get returns the label for key, or the key itself when it is missing.
func (t Translations) Get(key string) string {
	if v, ok := t[key]; ok {
		return v
	}
	return key
}

// Format looks up key and applies fmt.Sprintf with args.
func (t Translations) Format(key string, args ...any) string {
	return fmt.Sprintf(t.Get(key), args...)
}

var translationsEN = Translations{
	"brand":              "The Unseen Flutter",
	"part":               "Part",
	"chapter":            "Chapter",
	"chapters":           "Chapters:",
	"chapter_count":      "%d chapters",
	"read_time":          "Reading time",
	"sections":           "In this chapter",
	"previous_chapter":   "Previous Chapter",
	"next_chapter":       "Next Chapter",
	"close_chapter":      "Close Chapter",
	"coming_soon":        "Coming Soon!",
	"coming_soon.body":   "Chapter %d of Part %d is currently under development. We're working hard to bring you the best content possible.",
	"back_to_parts":      "← Back to Parts",
	"error_loading_part": "Error Loading Part",
	"error_loading_body": "Sorry, this part could not be loaded. Please try again.",
	"close":              "Close",
	"not_found":          "Not Found",
	"not_found.body":     "The page you are looking for does not exist.",
	"toggle_language":    "العربية",
	"toggle_theme.light": "Dark mode",
	"toggle_theme.dark":  "Light mode",
}

var translationsAR = Translations{
	"brand":              "Flutter المخفي",
	"part":               "الجزء",
	"chapter":            "الفصل",
	"chapters":           "الفصول:",
	"chapter_count":      "%d فصول",
	"read_time":          "وقت القراءة",
	"sections":           "في هذا الفصل",
	"previous_chapter":   "الفصل السابق",
	"next_chapter":       "الفصل التالي",
	"close_chapter":      "إغلاق الفصل",
	"coming_soon":        "قريباً!",
	"coming_soon.body":   "الفصل %d من الجزء %d قيد التطوير حالياً. نحن نعمل بجد لتقديم أفضل محتوى ممكن.",
	"back_to_parts":      "← العودة للأجزاء",
	"error_loading_part": "خطأ في تحميل الجزء",
	"error_loading_body": "عذراً، تعذر تحميل هذا الجزء. يرجى المحاولة مرة أخرى.",
	"close":              "إغلاق",
	"not_found":          "غير موجود",
	"not_found.body":     "الصفحة التي تبحث عنها غير موجودة.",
	"toggle_language":    "English",
	"toggle_theme.light": "الوضع الداكن",
	"toggle_theme.dark":  "الوضع الفاتح",
}
