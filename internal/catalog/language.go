package catalog

import (
	"fmt"
	"strings"
)

// Language selects the display language of rendered messages.
type Language string

const (
	// LangCN is the primary language. Every other language must carry the same keys.
	LangCN Language = "CN"
	// LangEN is the secondary language.
	LangEN Language = "EN"
)

// Primary is the language used when none is configured.
const Primary = LangCN

// Languages lists the supported languages, primary first.
var Languages = []Language{LangCN, LangEN}

// ParseLanguage accepts a case-insensitive language code.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case LangCN:
		return LangCN, nil
	case LangEN:
		return LangEN, nil
	case "":
		return Primary, nil
	}
	return "", &ConfigError{Message: fmt.Sprintf("unsupported language %q (want CN or EN)", s)}
}

func (l Language) String() string {
	return string(l)
}
