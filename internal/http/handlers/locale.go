package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"dealerlot/internal/i18n"
)

const localeCookie = "locale"

// LocaleMiddleware resolves the locale of every request. Public pages
// without a locale prefix are redirected to their localized URL; other
// paths (admin, API, login) just get the resolved locale attached.
type LocaleMiddleware struct {
	Resolver      *i18n.Resolver
	Dicts         *i18n.Dictionaries
	SecureCookies bool
}

func (m *LocaleMiddleware) isPublic(path string) bool {
	if path == "/" {
		return true
	}
	for _, p := range []string{"/vehicles", "/contact"} {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func (m *LocaleMiddleware) Handle(c *fiber.Ctx) error {
	path := c.Path()
	locale, rest, ok := m.Resolver.Split(path)
	if !ok {
		locale = m.Resolver.Resolve(c.Cookies(localeCookie), c.Get(fiber.HeaderAcceptLanguage))
		if m.isPublic(path) && (c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead) {
			target := m.Resolver.Localize(locale, path)
			if q := string(c.Request().URI().QueryString()); q != "" {
				target += "?" + q
			}
			return c.Redirect(target, fiber.StatusFound)
		}
		rest = "/"
	} else if c.Cookies(localeCookie) != locale {
		c.Cookie(&fiber.Cookie{
			Name:     localeCookie,
			Value:    locale,
			Path:     "/",
			Expires:  time.Now().Add(365 * 24 * time.Hour),
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   m.SecureCookies,
		})
	}

	c.Locals(localsLocale, locale)
	c.Locals(localsDict, m.Dicts.Lookup(locale))
	c.Locals(localsLocales, m.Resolver.Locales())
	c.Locals(localsRest, rest)
	return c.Next()
}
