package docs

import "strings"

// Language is a normalized code-block language tag. The set is closed:
// extending it is a code change, not configuration.
type Language string

// The recognized languages. Fence tokens outside this set normalize to
// LangUnknown; an empty token normalizes to LangText.
const (
	LangGo      Language = "go"
	LangCpp     Language = "cpp"
	LangRust    Language = "rust"
	LangTS      Language = "ts"
	LangJS      Language = "js"
	LangPython  Language = "python"
	LangJava    Language = "java"
	LangText    Language = "text"
	LangUnknown Language = "unknown"
)

// languageAliases maps lowercased fence tokens to their canonical language.
var languageAliases = map[string]Language{
	"go":         LangGo,
	"golang":     LangGo,
	"cpp":        LangCpp,
	"c++":        LangCpp,
	"cxx":        LangCpp,
	"rust":       LangRust,
	"rs":         LangRust,
	"ts":         LangTS,
	"typescript": LangTS,
	"tsx":        LangTS,
	"js":         LangJS,
	"javascript": LangJS,
	"jsx":        LangJS,
	"python":     LangPython,
	"py":         LangPython,
	"python3":    LangPython,
	"java":       LangJava,
	"text":       LangText,
	"txt":        LangText,
	"plain":      LangText,
	"plaintext":  LangText,
}

// NormalizeLanguage maps a raw fence token to the closed language set.
// The second return value reports whether the token was recognized; callers
// emit an info diagnostic when it was not. An empty token counts as
// recognized and maps to LangText.
func NormalizeLanguage(tag string) (Language, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return LangText, true
	}
	if lang, ok := languageAliases[tag]; ok {
		return lang, true
	}
	return LangUnknown, false
}
