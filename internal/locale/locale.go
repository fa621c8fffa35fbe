// Package locale picks the display language for label dictionaries.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported lists the display languages in order of preference.
// The first entry is the fallback.
var Supported = []language.Tag{
	language.Vietnamese,
	language.English,
}

var matcher = language.NewMatcher(Supported)

// Default is used when no preference matches.
func Default() language.Tag {
	return Supported[0]
}

// Match returns the supported tag that best fits prefs. Each pref may be a
// single tag ("en") or a full Accept-Language header value.
func Match(prefs ...string) language.Tag {
	var wanted []language.Tag
	for _, pref := range prefs {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return Default()
	}
	_, idx, conf := matcher.Match(wanted...)
	if conf == language.No {
		return Default()
	}
	return Supported[idx]
}

// Text holds one string per supported language.
type Text map[language.Tag]string

// In returns the string for tag, falling back to the default language.
func (t Text) In(tag language.Tag) string {
	if s, ok := t[tag]; ok {
		return s
	}
	return t[Default()]
}

// Complete reports whether t has a non-empty entry for every supported language.
func (t Text) Complete() bool {
	for _, tag := range Supported {
		if strings.TrimSpace(t[tag]) == "" {
			return false
		}
	}
	return true
}
