package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"dealerlot/internal/config"
	"dealerlot/internal/repos"
	"dealerlot/internal/server"
)

const (
	adminEmail = "admin@dealerlot.test"
	adminPass  = "Adm1n-Pass!"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DBDSN:         ":memory:",
		MediaDir:      t.TempDir(),
		DefaultLocale: "en",
		Locales:       []string{"en", "de", "nl", "fr"},
		AdminEmail:    adminEmail,
		CatalogTTL:    time.Minute,
	}
}

// newTestApp builds the full application over a seeded in-memory database.
func newTestApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repos.SeedAdmin(db, adminEmail, adminPass); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	app, err := server.New(db, cfg)
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	return app
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	tok := extractCookie(do(t, app, httptest.NewRequest("GET", "/login", nil)), "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

// postForm sends a urlencoded form with the csrf token and any extra cookies.
func postForm(t *testing.T, app *fiber.App, path, csrf string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if csrf != "" {
		form.Set("csrf", csrf)
	}
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrf})
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(t, app, req)
}

// login signs in as the seeded admin and returns the session cookie.
func login(t *testing.T, app *fiber.App, csrf string) *http.Cookie {
	t.Helper()
	resp := postForm(t, app, "/login", csrf, url.Values{"email": {adminEmail}, "password": {adminPass}})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin" {
		t.Fatalf("login: status %d location %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("no session cookie after login")
	}
	return &http.Cookie{Name: "sid", Value: sid}
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) int {
	t.Helper()
	resp := do(t, app, httptest.NewRequest("GET", path, nil))
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Locale string         `json:"locale"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

// captureLogs redirects the standard logger for the duration of the test.
func captureLogs(t *testing.T) func() []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	log.SetOutput(buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return func() []logEntry {
		buf.mu.Lock()
		defer buf.mu.Unlock()
		var out []logEntry
		for _, line := range strings.Split(buf.b.String(), "\n") {
			if i := strings.Index(line, "{"); i >= 0 {
				var e logEntry
				if json.Unmarshal([]byte(line[i:]), &e) == nil && e.Action != "" {
					out = append(out, e)
				}
			}
		}
		return out
	}
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
