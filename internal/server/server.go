// Package server assembles the Fiber application: middleware, routes and
// the outbound adapters picked from configuration.
package server

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"dealerlot/internal/config"
	"dealerlot/internal/http/handlers"
	"dealerlot/internal/i18n"
	applog "dealerlot/internal/log"
	"dealerlot/internal/services"
	"dealerlot/internal/web"
)

const bodyLimit = 1 << 20 // 1 MiB

// Uploader picks Cloudinary when configured and the local media dir
// otherwise.
func Uploader(cfg config.Config, mediaDir string) (services.Uploader, error) {
	if cfg.CloudinaryURL != "" {
		return services.NewCloudinaryUploader(cfg.CloudinaryURL, "dealerlot")
	}
	return &services.DiskUploader{Dir: mediaDir}, nil
}

// Mailer picks SendGrid when an API key is configured; otherwise enquiries
// are only stored and logged.
func Mailer(cfg config.Config) services.Mailer {
	if cfg.SendGridAPIKey != "" {
		return services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.ContactFrom, cfg.ContactTo)
	}
	return services.LogMailer{}
}

func New(db *sqlx.DB, cfg config.Config) (*fiber.App, error) {
	resolver, err := i18n.NewResolver(cfg.DefaultLocale, cfg.Locales)
	if err != nil {
		return nil, err
	}
	dicts, err := i18n.LoadDictionaries(resolver.Default(), resolver.Locales())
	if err != nil {
		return nil, err
	}

	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	images, err := Uploader(cfg, mediaDir)
	if err != nil {
		return nil, err
	}
	deps := handlers.NewDeps(db, cfg, dicts, images, Mailer(cfg))

	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: errorHandler(dicts),
	})
	if cfg.CatalogRefresh != "" {
		refresher := services.NewRefresher(deps.Catalog)
		if err := refresher.Start(cfg.CatalogRefresh); err != nil {
			return nil, fmt.Errorf("catalog refresh schedule %q: %w", cfg.CatalogRefresh, err)
		}
		app.Hooks().OnShutdown(func() error {
			refresher.Stop()
			return nil
		})
	}
	// Global body size guard
	app.Server().MaxRequestBodySize = bodyLimit

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachUser(deps.Auth))
	locales := &handlers.LocaleMiddleware{Resolver: resolver, Dicts: dicts, SecureCookies: cfg.SecureCookies}
	app.Use(locales.Handle)
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.SecureCookies,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return handlers.RenderError(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	log.Printf("[static] /media  -> %s", mediaDir)
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static(), MaxAge: 3600}))
	app.Get("/media/*", mediaHandler(mediaDir))

	// ---------- Public pages, one group per locale ----------
	browseLimiter := limiter.New(limiter.Config{Max: 30, Expiration: time.Minute})
	contactLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.contact.hit", nil)
			return handlers.RenderError(c, fiber.StatusTooManyRequests, "Too many messages. Please try again later.")
		},
	})
	for _, l := range resolver.Locales() {
		g := app.Group("/" + l)
		g.Get("/", deps.CatalogHandler.Home)
		g.Get("/vehicles", browseLimiter, deps.CatalogHandler.List)
		g.Get("/vehicles/:id", deps.CatalogHandler.Detail)
		g.Get("/contact", deps.ContactHandler.Form)
		g.Post("/contact", contactLimiter, deps.ContactHandler.Submit)
	}

	// ---------- API ----------
	api := app.Group("/api/v1", limiter.New(limiter.Config{
		Max:        30,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|api"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.api.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	api.Get("/vehicles", deps.CatalogHandler.APIList)
	api.Get("/vehicles/:id", deps.CatalogHandler.APIVehicle)
	api.Get("/facets", deps.CatalogHandler.APIFacets)

	// ---------- Auth & admin ----------
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return handlers.RenderError(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/", deps.AdminHandler.Vehicles)
	admin.Get("/vehicles/new", deps.AdminHandler.NewForm)
	admin.Post("/vehicles", deps.AdminHandler.Create)
	admin.Get("/vehicles/:id/edit", deps.AdminHandler.EditForm)
	admin.Post("/vehicles/:id", deps.AdminHandler.Update)
	admin.Post("/vehicles/:id/delete", deps.AdminHandler.Delete)
	admin.Post("/vehicles/:id/images", deps.AdminHandler.UploadImage)
	admin.Get("/enquiries", deps.AdminHandler.Enquiries)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			applog.Error(c, "health.db.fail", err, nil)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return handlers.NotFound(c, "")
	})
	return app, nil
}

// errorHandler logs and shows a friendly message without internals.
func errorHandler(dicts *i18n.Dictionaries) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		applog.Error(c, "server.error", err, map[string]any{"code": code})

		msg := dicts.T(handlers.Locale(c), "error.generic")
		if code == fiber.StatusNotFound {
			msg = dicts.T(handlers.Locale(c), "error.notfound")
		}
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(code).JSON(fiber.Map{"error": msg})
		}
		if rerr := handlers.RenderError(c, code, msg); rerr != nil {
			return c.Status(code).SendString(msg)
		}
		return nil
	}
}

// Guarded media to avoid traversal
func mediaHandler(mediaDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	}
}
