package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dealerlot/internal/domain"
	"dealerlot/internal/log"
	"dealerlot/internal/services"
	"dealerlot/internal/validate"
)

type ContactHandler struct {
	Contact *services.ContactService
	Catalog *services.CatalogService
}

func (h *ContactHandler) vehicle(id string) *domain.Vehicle {
	if id, ok := validate.ID(id); ok {
		if v, err := h.Catalog.Vehicle(id); err == nil {
			return &v
		}
	}
	return nil
}

// GET /{locale}/contact
func (h *ContactHandler) Form(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{
		"Vehicle": h.vehicle(c.Query("vehicle")),
		"Form":    services.ContactForm{},
		"Field":   "",
		"Sent":    c.Query("sent") == "1",
	})
}

// POST /{locale}/contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	f := services.ContactForm{
		VehicleID: c.FormValue("vehicle"),
		Name:      c.FormValue("name"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		Message:   c.FormValue("message"),
	}
	e, err := h.Contact.Submit(c.UserContext(), f, Locale(c))

	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		log.Security(c, "validation.fail", map[string]any{"field": verr.Field, "form": "contact"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "contact", fiber.Map{
			"Vehicle": h.vehicle(f.VehicleID),
			"Form":    f,
			"Field":   verr.Field,
			"Err":     verr.Error(),
		})
	case errors.Is(err, services.ErrRelay):
		// stored; the sales team still sees it in the admin list
		log.Error(c, "contact.relay.fail", err, map[string]any{"enquiry_id": e.ID})
	case err != nil:
		log.Error(c, "contact.save.fail", err, nil)
		return err
	}

	log.Audit(c, "contact.enquiry", map[string]any{"enquiry_id": e.ID, "vehicle_id": e.VehicleID})
	return c.Redirect("/"+Locale(c)+"/contact?sent=1", fiber.StatusSeeOther)
}
