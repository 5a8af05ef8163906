package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dealerlot/internal/i18n"
)

// Locals keys set by the locale middleware.
const (
	localsLocale  = "locale"
	localsDict    = "dict"
	localsLocales = "locales"
	localsRest    = "rest"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if present
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	// Pick up the token the CSRF middleware put into Locals, falling back to
	// the cookie on the request that first issued it.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok

	data["Locale"] = Locale(c)
	dict, _ := c.Locals(localsDict).(i18n.Dictionary)
	if dict == nil {
		dict = i18n.Dictionary{}
	}
	data["L"] = dict
	data["Locales"], _ = c.Locals(localsLocales).([]string)
	rest, _ := c.Locals(localsRest).(string)
	if rest == "" {
		rest = "/"
	}
	data["Rest"] = rest
	return c.Render(tmpl, data)
}

// Locale is the request's resolved locale ("" before the locale middleware ran).
func Locale(c *fiber.Ctx) string {
	l, _ := c.Locals(localsLocale).(string)
	return l
}

// NotFound renders the friendly 404 page.
func NotFound(c *fiber.Ctx, msg string) error {
	c.Status(fiber.StatusNotFound)
	return render(c, "notfound", fiber.Map{"Message": msg})
}

// RenderError renders a status page without exposing err to the visitor.
func RenderError(c *fiber.Ctx, status int, msg string) error {
	c.Status(status)
	return render(c, "notfound", fiber.Map{"Message": msg})
}
