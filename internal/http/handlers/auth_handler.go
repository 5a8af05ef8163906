package handlers

import (
	"time"

	"dealerlot/internal/log"
	"dealerlot/internal/services"
	"dealerlot/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const loginFailed = "Invalid email or password"

type AuthHandler struct {
	Auth          *services.AuthService
	SecureCookies bool
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) fail(c *fiber.Ctx, fields map[string]any) error {
	log.Security(c, "auth.login.fail", fields)
	c.Status(fiber.StatusUnauthorized)
	return render(c, "login", fiber.Map{"Err": loginFailed})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		return h.fail(c, map[string]any{"email": email, "reason": "bad_format"})
	}
	if !validate.Password(pass) {
		return h.fail(c, map[string]any{"email": email, "reason": "bad_password_format"})
	}

	// rotate the session id on login
	sid := uuid.NewString()
	if _, err := h.Auth.Login(sid, email, pass); err != nil {
		return h.fail(c, map[string]any{"email": email})
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.SecureCookies,
	})

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.SecureCookies,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
