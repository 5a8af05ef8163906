package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

type Dictionary map[string]string

// T returns the entry for key, or the key itself when it is missing.
func (d Dictionary) T(key string) string {
	if s, ok := d[key]; ok {
		return s
	}
	return key
}

// Dictionaries holds one dictionary per locale. Lookups fall back to the
// default locale and finally to the key itself.
type Dictionaries struct {
	def    string
	byLang map[string]Dictionary
}

// LoadDictionaries reads the embedded locales/<locale>.json files for the
// given locales. The default locale must exist; others may be missing and
// then fall back entirely.
func LoadDictionaries(def string, locales []string) (*Dictionaries, error) {
	d := &Dictionaries{def: def, byLang: map[string]Dictionary{}}
	for _, l := range locales {
		raw, err := localeFS.ReadFile(path.Join("locales", l+".json"))
		if err != nil {
			if l == def {
				return nil, fmt.Errorf("i18n: default dictionary %s: %w", l, err)
			}
			continue
		}
		var dict Dictionary
		if err := json.Unmarshal(raw, &dict); err != nil {
			return nil, fmt.Errorf("i18n: parse %s.json: %w", l, err)
		}
		d.byLang[l] = dict
	}
	return d, nil
}

// Lookup returns the full dictionary for locale merged over the default.
func (d *Dictionaries) Lookup(locale string) Dictionary {
	out := Dictionary{}
	maps.Copy(out, d.byLang[d.def])
	if locale != d.def {
		maps.Copy(out, d.byLang[locale])
	}
	return out
}

func (d *Dictionaries) T(locale, key string) string {
	if s, ok := d.byLang[locale][key]; ok {
		return s
	}
	if s, ok := d.byLang[d.def][key]; ok {
		return s
	}
	return key
}

// Tf is T with {name} placeholders substituted.
func (d *Dictionaries) Tf(locale, key string, args map[string]string) string {
	s := d.T(locale, key)
	for k, v := range args {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
