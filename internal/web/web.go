// Package web holds the embedded HTML templates and their helper funcs.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	html "github.com/gofiber/template/html/v2"

	"dealerlot/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static serves the embedded stylesheet and images under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Engine returns a template engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(map[string]any{
		"media": Media,
		"eur":   EUR,
		"km":    KM,
		"loc":   Loc,
		"add":   func(a, b int) int { return a + b },
		"card":  Card,
	})
	return engine
}

// Card narrows the page data to what the vehicle card partial reads.
func Card(root map[string]any, v domain.Vehicle) map[string]any {
	return map[string]any{"V": v, "Locale": root["Locale"], "L": root["L"]}
}

// Media maps a stored image reference to a URL. Absolute URLs (CDN
// uploads) pass through; anything else is served from /media.
func Media(src string) string {
	if strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://") {
		return src
	}
	return "/media/" + strings.TrimPrefix(src, "/")
}

// EUR formats a price in whole euros with thousands separators.
func EUR(v float64) string {
	return "€" + group(int64(v+0.5))
}

func KM(n int) string { return group(int64(n)) + " km" }

// Loc prefixes path with the locale segment.
func Loc(locale, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + locale + path
}

func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
