// Package i18n resolves the visitor's locale and serves the per-locale
// UI dictionaries.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Resolver picks a locale from the cookie, then Accept-Language, then the
// default, and rewrites paths to carry the locale as first segment.
type Resolver struct {
	locales []string
	def     string
	matcher language.Matcher
}

func NewResolver(def string, locales []string) (*Resolver, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("i18n: no locales configured")
	}
	tags := make([]language.Tag, 0, len(locales))
	norm := make([]string, 0, len(locales))
	found := false
	for _, l := range locales {
		tag, err := language.Parse(strings.TrimSpace(l))
		if err != nil {
			return nil, fmt.Errorf("i18n: bad locale %q: %w", l, err)
		}
		tags = append(tags, tag)
		norm = append(norm, tag.String())
		if tag.String() == def {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("i18n: default locale %q not in %v", def, norm)
	}
	return &Resolver{locales: norm, def: def, matcher: language.NewMatcher(tags)}, nil
}

func (r *Resolver) Default() string   { return r.def }
func (r *Resolver) Locales() []string { return append([]string(nil), r.locales...) }

func (r *Resolver) Supported(locale string) bool {
	for _, l := range r.locales {
		if l == locale {
			return true
		}
	}
	return false
}

// Resolve returns the cookie locale when supported, else the best
// Accept-Language match, else the default.
func (r *Resolver) Resolve(cookie, acceptLanguage string) string {
	if r.Supported(cookie) {
		return cookie
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			if _, idx, conf := r.matcher.Match(tags...); conf != language.No {
				return r.locales[idx]
			}
		}
	}
	return r.def
}

// Split separates a leading locale segment from path. ok is false when the
// first segment is not a supported locale; rest is then the path unchanged.
func (r *Resolver) Split(path string) (locale, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, tail, _ := strings.Cut(trimmed, "/")
	if !r.Supported(seg) {
		return "", path, false
	}
	return seg, "/" + tail, true
}

// Localize rewrites path so its first segment is locale, replacing any
// locale already present.
func (r *Resolver) Localize(locale, path string) string {
	_, rest, _ := r.Split(path)
	if rest == "" || rest == "/" {
		return "/" + locale + "/"
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return "/" + locale + rest
}
