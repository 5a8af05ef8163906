package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRootRedirectsToResolvedLocale(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	cases := []struct {
		name, path, cookie, accept, want string
	}{
		{"default", "/", "", "", "/en/"},
		{"accept-language", "/", "", "de-DE,de;q=0.9,en;q=0.5", "/de/"},
		{"unsupported accept-language", "/", "", "ja-JP", "/en/"},
		{"cookie wins", "/", "nl", "de-DE", "/nl/"},
		{"bogus cookie ignored", "/", "xx", "fr-BE", "/fr/"},
		{"query kept", "/vehicles?make=Volvo&sort=price-asc", "", "", "/en/vehicles?make=Volvo&sort=price-asc"},
		{"detail", "/vehicles/daf-lf-box", "", "nl-NL", "/nl/vehicles/daf-lf-box"},
		{"contact", "/contact", "de", "", "/de/contact"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "locale", Value: tc.cookie})
			}
			resp := do(t, app, req)
			if resp.StatusCode != http.StatusFound {
				t.Fatalf("want 302, got %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Location"); got != tc.want {
				t.Fatalf("want redirect to %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLocalizedPageStoresLocaleCookie(t *testing.T) {
	app := newTestApp(t, testConfig(t))

	resp := do(t, app, httptest.NewRequest("GET", "/fr/vehicles", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if extractCookie(resp, "locale") != "fr" {
		t.Fatal("locale cookie not stored")
	}
	html := body(t, resp)
	if !strings.Contains(html, `lang="fr"`) || !strings.Contains(html, "Véhicules") {
		t.Fatal("page not rendered in French")
	}
	// untranslated keys fall back to English
	if !strings.Contains(html, "Dealerlot Trucks") {
		t.Fatal("missing fallback site name")
	}
	// language switcher keeps the current page
	if !strings.Contains(html, `href="/de/vehicles"`) {
		t.Fatal("language switcher should link to /de/vehicles")
	}

	req := httptest.NewRequest("GET", "/fr/", nil)
	req.AddCookie(&http.Cookie{Name: "locale", Value: "fr"})
	if resp := do(t, app, req); extractCookie(resp, "locale") != "" {
		t.Fatal("cookie should only be re-sent when it changes")
	}
}

func TestNonPublicPathsAreNotRedirected(t *testing.T) {
	app := newTestApp(t, testConfig(t))
	for _, p := range []string{"/login", "/healthz", "/api/v1/facets"} {
		resp := do(t, app, httptest.NewRequest("GET", p, nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: want 200, got %d", p, resp.StatusCode)
		}
	}
}
