package handlers

import (
	"errors"
	"net/url"
	"slices"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dealerlot/internal/catalog"
	"dealerlot/internal/domain"
	"dealerlot/internal/i18n"
	"dealerlot/internal/log"
	"dealerlot/internal/services"
	"dealerlot/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Dicts   *i18n.Dictionaries
}

type chipLink struct {
	Label    string
	Href     string
	ClearAll bool
}

type option struct {
	Value   string
	Label   string
	Count   int
	Checked bool
}

type facetGroup struct {
	Key     string
	Title   string
	Options []option
}

type rangeInput struct {
	Key, Title     string
	Min, Max       string
	Floor, Ceiling string
}

type sortOption struct {
	Key      domain.SortKey
	Label    string
	Selected bool
}

func queryValues(c *fiber.Ctx) url.Values {
	q, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	return q
}

func href(base string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}

// GET /{locale}/
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Catalog.Featured(c.UserContext(), 6)
	if err != nil {
		log.Error(c, "home.featured.fail", err, nil)
		return err
	}
	return render(c, "home", fiber.Map{"Featured": featured})
}

// GET /{locale}/vehicles
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	locale := Locale(c)
	spec := catalog.ParseQuery(queryValues(c))
	res, err := h.Catalog.Browse(c.UserContext(), spec, c.QueryInt("page", 1), services.DefaultPageSize)
	if err != nil {
		log.Error(c, "catalog.browse.fail", err, nil)
		return err
	}

	base := "/" + locale + "/vehicles"
	chips := make([]chipLink, 0, len(res.Chips))
	for _, chip := range res.Chips {
		chips = append(chips, chipLink{
			Label:    chip.Label,
			Href:     href(base, catalog.Encode(catalog.Without(spec, chip))),
			ClearAll: chip.Dimension == domain.DimClearAll,
		})
	}

	pageHref := func(p int) string {
		q := catalog.Encode(spec)
		if p > 1 {
			q.Set("page", strconv.Itoa(p))
		}
		return href(base, q)
	}
	viewHref := func(v domain.ViewMode) string {
		s := spec
		s.ViewMode = v
		return href(base, catalog.Encode(s))
	}
	var prev, next string
	if res.Page > 1 {
		prev = pageHref(res.Page - 1)
	}
	if res.Page < res.Pages {
		next = pageHref(res.Page + 1)
	}

	view := spec.ViewMode
	if view == "" {
		view = domain.ViewGrid
	}

	return render(c, "catalog", fiber.Map{
		"Title":     h.Dicts.T(locale, "catalog.title"),
		"Page":      res,
		"Spec":      spec,
		"View":      view,
		"Chips":     chips,
		"Groups":    h.groups(locale, spec, res.Facets),
		"Ranges":    h.ranges(locale, spec, res.Facets),
		"Sorts":     h.sorts(locale, spec.SortBy),
		"Results":   h.Dicts.Tf(locale, "catalog.results", map[string]string{"count": strconv.Itoa(res.Total)}),
		"PageLabel": h.Dicts.Tf(locale, "catalog.page", map[string]string{"page": strconv.Itoa(res.Page), "pages": strconv.Itoa(res.Pages)}),
		"PrevHref":  prev,
		"NextHref":  next,
		"GridHref":  viewHref(domain.ViewGrid),
		"ListHref":  viewHref(domain.ViewList),
	})
}

func (h *CatalogHandler) groups(locale string, spec domain.FilterSpec, f catalog.FacetSummary) []facetGroup {
	group := func(key, titleKey string, values []catalog.FacetValue, selected []string, label func(string) string) facetGroup {
		g := facetGroup{Key: key, Title: h.Dicts.T(locale, titleKey)}
		for _, v := range values {
			g.Options = append(g.Options, option{
				Value: v.Value, Label: label(v.Value), Count: v.Count,
				Checked: slices.Contains(selected, v.Value),
			})
		}
		return g
	}
	same := func(s string) string { return s }
	return []facetGroup{
		group("make", "filter.make", f.Makes, spec.Make, same),
		group("category", "filter.category", f.Categories, strs(spec.Category), catalog.TagLabel),
		group("condition", "filter.condition", f.Conditions, strs(spec.Condition), catalog.TagLabel),
		group("engine", "filter.engine", f.EngineTypes, strs(spec.EngineType), catalog.TagLabel),
		group("transmission", "filter.transmission", f.Transmissions, strs(spec.Transmission), catalog.TagLabel),
		group("axle", "filter.axle", f.Axles, spec.AxleConfiguration, same),
		group("country", "filter.country", f.Countries, spec.Country, same),
	}
}

func (h *CatalogHandler) ranges(locale string, spec domain.FilterSpec, f catalog.FacetSummary) []rangeInput {
	fl := func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	in := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	return []rangeInput{
		{Key: "price", Title: h.Dicts.T(locale, "filter.price"), Min: fl(spec.PriceMin), Max: fl(spec.PriceMax),
			Floor: strconv.FormatFloat(f.Price.Min, 'f', 0, 64), Ceiling: strconv.FormatFloat(f.Price.Max, 'f', 0, 64)},
		{Key: "year", Title: h.Dicts.T(locale, "filter.year"), Min: in(spec.YearMin), Max: in(spec.YearMax),
			Floor: strconv.Itoa(f.Year.Min), Ceiling: strconv.Itoa(f.Year.Max)},
		{Key: "mileage", Title: h.Dicts.T(locale, "filter.mileage"), Min: in(spec.MileageMin), Max: in(spec.MileageMax),
			Floor: strconv.Itoa(f.Mileage.Min), Ceiling: strconv.Itoa(f.Mileage.Max)},
	}
}

func (h *CatalogHandler) sorts(locale string, cur domain.SortKey) []sortOption {
	if cur == "" {
		cur = domain.DefaultSort
	}
	out := make([]sortOption, 0, len(domain.SortKeys()))
	for _, k := range domain.SortKeys() {
		out = append(out, sortOption{Key: k, Label: h.Dicts.T(locale, "sort."+string(k)), Selected: k == cur})
	}
	return out
}

// GET /{locale}/vehicles/:id
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	locale := Locale(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "vehicle"})
		return NotFound(c, h.Dicts.T(locale, "vehicle.notfound"))
	}
	v, err := h.Catalog.Vehicle(id)
	if errors.Is(err, services.ErrNotFound) {
		return NotFound(c, h.Dicts.T(locale, "vehicle.notfound"))
	}
	if err != nil {
		log.Error(c, "vehicle.get.fail", err, map[string]any{"vehicle_id": id})
		return err
	}
	return render(c, "vehicle", fiber.Map{"Title": v.Title(), "V": v})
}

// apiChip carries the query that lists the catalog without this chip.
type apiChip struct {
	domain.FilterChip
	Remove string `json:"remove"`
}

// GET /api/v1/vehicles
func (h *CatalogHandler) APIList(c *fiber.Ctx) error {
	spec := catalog.ParseQuery(queryValues(c))
	res, err := h.Catalog.Browse(c.UserContext(), spec, c.QueryInt("page", 1), c.QueryInt("pageSize", services.DefaultPageSize))
	if err != nil {
		log.Error(c, "api.vehicles.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load vehicles"})
	}
	chips := make([]apiChip, 0, len(res.Chips))
	for _, chip := range res.Chips {
		chips = append(chips, apiChip{FilterChip: chip, Remove: catalog.Encode(catalog.Without(spec, chip)).Encode()})
	}
	return c.JSON(fiber.Map{
		"query":    catalog.Encode(spec).Encode(),
		"vehicles": res.Vehicles,
		"total":    res.Total,
		"page":     res.Page,
		"pages":    res.Pages,
		"pageSize": res.PageSize,
		"chips":    chips,
		"active":   catalog.ActiveFilters(spec),
	})
}

// GET /api/v1/vehicles/:id
func (h *CatalogHandler) APIVehicle(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "vehicle"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid vehicle id"})
	}
	v, err := h.Catalog.Vehicle(id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "vehicle not found"})
	}
	if err != nil {
		log.Error(c, "api.vehicle.fail", err, map[string]any{"vehicle_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load vehicle"})
	}
	return c.JSON(v)
}

// GET /api/v1/facets
func (h *CatalogHandler) APIFacets(c *fiber.Ctx) error {
	f, err := h.Catalog.Facets(c.UserContext())
	if err != nil {
		log.Error(c, "api.facets.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load facets"})
	}
	return c.JSON(f)
}

func strs[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
