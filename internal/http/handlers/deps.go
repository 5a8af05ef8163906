package handlers

import (
	"dealerlot/internal/config"
	"dealerlot/internal/i18n"
	"dealerlot/internal/repos"
	"dealerlot/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth    *services.AuthService
	Catalog *services.CatalogService

	CatalogHandler *CatalogHandler
	ContactHandler *ContactHandler
	AdminHandler   *AdminHandler
	AuthHandler    *AuthHandler
}

// NewDeps wires repos, services and handlers. images and mailer are the
// outbound adapters chosen by the caller (CDN or disk, SendGrid or log).
func NewDeps(db *sqlx.DB, cfg config.Config, dicts *i18n.Dictionaries, images services.Uploader, mailer services.Mailer) *Deps {
	vehicleRepo := repos.NewVehicleRepo(db)
	userRepo := repos.NewUserRepo(db)
	enquiryRepo := repos.NewEnquiryRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(vehicleRepo, services.NewSnapshot(vehicleRepo, cfg.CatalogTTL))
	invSvc := services.NewInventoryService(vehicleRepo, catalogSvc, images)
	contactSvc := services.NewContactService(enquiryRepo, catalogSvc, mailer)

	return &Deps{
		Auth:           authSvc,
		Catalog:        catalogSvc,
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc, Dicts: dicts},
		ContactHandler: &ContactHandler{Contact: contactSvc, Catalog: catalogSvc},
		AdminHandler:   &AdminHandler{Inventory: invSvc, Contact: contactSvc},
		AuthHandler:    &AuthHandler{Auth: authSvc, SecureCookies: cfg.SecureCookies},
	}
}
