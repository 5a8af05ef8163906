package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dealerlot/internal/domain"
	applog "dealerlot/internal/log"
	"dealerlot/internal/services"
	"dealerlot/internal/validate"
)

type AdminHandler struct {
	Inventory *services.InventoryService
	Contact   *services.ContactService
}

func vehicleForm(c *fiber.Ctx) validate.VehicleForm {
	return validate.VehicleForm{
		Make:         c.FormValue("make"),
		Model:        c.FormValue("model"),
		Category:     c.FormValue("category"),
		Condition:    c.FormValue("condition"),
		Year:         c.FormValue("year"),
		Mileage:      c.FormValue("mileage"),
		Price:        c.FormValue("price"),
		Horsepower:   c.FormValue("horsepower"),
		EngineType:   c.FormValue("engine"),
		Transmission: c.FormValue("transmission"),
		Axle:         c.FormValue("axle"),
		Location:     c.FormValue("location"),
		Country:      c.FormValue("country"),
		Available:    c.FormValue("available") != "",
		Featured:     c.FormValue("featured") != "",
	}
}

func formOf(v domain.Vehicle) validate.VehicleForm {
	f := validate.VehicleForm{
		Make: v.Make, Model: v.Model, Category: string(v.Category), Condition: string(v.Condition),
		Year: strconv.Itoa(v.Year), Mileage: strconv.Itoa(v.Mileage),
		Price:      strconv.FormatFloat(v.Price, 'f', -1, 64),
		EngineType: string(v.EngineType), Transmission: string(v.Transmission),
		Axle: v.AxleConfiguration, Location: v.Location, Country: v.Country,
		Available: v.Available, Featured: v.Featured,
	}
	if v.Horsepower != nil {
		f.Horsepower = strconv.Itoa(*v.Horsepower)
	}
	return f
}

func (h *AdminHandler) renderForm(c *fiber.Ctx, status int, v domain.Vehicle, f validate.VehicleForm, errMsg string) error {
	c.Status(status)
	return render(c, "admin_vehicle_form", fiber.Map{
		"V": v, "F": f, "Err": errMsg,
		"Categories":    domain.Categories(),
		"Conditions":    domain.Conditions(),
		"EngineTypes":   domain.EngineTypes(),
		"Transmissions": domain.Transmissions(),
	})
}

// GET /admin
func (h *AdminHandler) Vehicles(c *fiber.Ctx) error {
	list, err := h.Inventory.List()
	if err != nil {
		applog.Error(c, "admin.vehicles.list.fail", err, nil)
		return RenderError(c, fiber.StatusInternalServerError, "Could not load vehicles")
	}
	return render(c, "admin_vehicles", fiber.Map{"Vehicles": list})
}

// GET /admin/vehicles/new
func (h *AdminHandler) NewForm(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, domain.Vehicle{}, validate.VehicleForm{Available: true}, "")
}

// POST /admin/vehicles
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	f := vehicleForm(c)
	v, err := h.Inventory.Create(f)
	var verr *validate.Error
	if errors.As(err, &verr) {
		applog.Security(c, "validation.fail", map[string]any{"field": verr.Field, "form": "vehicle"})
		return h.renderForm(c, fiber.StatusBadRequest, domain.Vehicle{}, f, verr.Error())
	}
	if err != nil {
		applog.Error(c, "admin.vehicles.create.fail", err, nil)
		return RenderError(c, fiber.StatusInternalServerError, "Could not save vehicle")
	}
	applog.Audit(c, "admin.vehicles.create", map[string]any{"vehicle_id": v.ID})
	return c.Redirect("/admin/vehicles/"+v.ID+"/edit", fiber.StatusSeeOther)
}

// GET /admin/vehicles/:id/edit
func (h *AdminHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return NotFound(c, "Vehicle not found")
	}
	v, err := h.Inventory.Get(id)
	if errors.Is(err, services.ErrNotFound) {
		return NotFound(c, "Vehicle not found")
	}
	if err != nil {
		applog.Error(c, "admin.vehicles.get.fail", err, map[string]any{"vehicle_id": id})
		return RenderError(c, fiber.StatusInternalServerError, "Could not load vehicle")
	}
	return h.renderForm(c, fiber.StatusOK, v, formOf(v), "")
}

// POST /admin/vehicles/:id
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return NotFound(c, "Vehicle not found")
	}
	f := vehicleForm(c)
	v, err := h.Inventory.Update(id, f)
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"field": verr.Field, "form": "vehicle"})
		cur, _ := h.Inventory.Get(id)
		return h.renderForm(c, fiber.StatusBadRequest, cur, f, verr.Error())
	case errors.Is(err, services.ErrNotFound):
		return NotFound(c, "Vehicle not found")
	case err != nil:
		applog.Error(c, "admin.vehicles.update.fail", err, map[string]any{"vehicle_id": id})
		return RenderError(c, fiber.StatusInternalServerError, "Could not save vehicle")
	}
	applog.Audit(c, "admin.vehicles.update", map[string]any{"vehicle_id": v.ID, "price": v.Price, "available": v.Available})
	return c.Redirect("/admin/vehicles/"+v.ID+"/edit", fiber.StatusSeeOther)
}

// POST /admin/vehicles/:id/delete
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	err := h.Inventory.Delete(id)
	if errors.Is(err, services.ErrNotFound) {
		return NotFound(c, "Vehicle not found")
	}
	if err != nil {
		applog.Error(c, "admin.vehicles.delete.fail", err, map[string]any{"vehicle_id": id})
		return RenderError(c, fiber.StatusInternalServerError, "Could not delete vehicle")
	}
	applog.Audit(c, "admin.vehicles.delete", map[string]any{"vehicle_id": id})
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

// POST /admin/vehicles/:id/images
func (h *AdminHandler) UploadImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "image"})
		return c.Status(fiber.StatusBadRequest).SendString("missing image")
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	url, err := h.Inventory.AttachImage(c.UserContext(), id, fh.Filename, file)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return NotFound(c, "Vehicle not found")
	case errors.Is(err, services.ErrUnsupportedImage):
		applog.Security(c, "validation.fail", map[string]any{"field": "image", "filename": fh.Filename})
		return c.Status(fiber.StatusBadRequest).SendString("unsupported image type")
	case err != nil:
		applog.Error(c, "admin.vehicles.image.fail", err, map[string]any{"vehicle_id": id})
		return RenderError(c, fiber.StatusBadGateway, "Could not upload image")
	}
	applog.Audit(c, "admin.vehicles.image", map[string]any{"vehicle_id": id, "url": url})
	return c.Redirect("/admin/vehicles/"+id+"/edit", fiber.StatusSeeOther)
}

// GET /admin/enquiries
func (h *AdminHandler) Enquiries(c *fiber.Ctx) error {
	list, err := h.Contact.Latest(100)
	if err != nil {
		applog.Error(c, "admin.enquiries.list.fail", err, nil)
		return RenderError(c, fiber.StatusInternalServerError, "Could not load enquiries")
	}
	return render(c, "admin_enquiries", fiber.Map{"Enquiries": list})
}
