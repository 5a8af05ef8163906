package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"dealerlot/internal/domain"
	"dealerlot/internal/repos"
	"dealerlot/internal/validate"
)

// InventoryService owns admin writes to the vehicle table. Every successful
// write drops the catalog snapshot.
type InventoryService struct {
	Vehicles *repos.VehicleRepo
	Catalog  *CatalogService
	Images   Uploader
	Now      func() time.Time
}

func NewInventoryService(vehicles *repos.VehicleRepo, catalog *CatalogService, images Uploader) *InventoryService {
	return &InventoryService{Vehicles: vehicles, Catalog: catalog, Images: images, Now: time.Now}
}

// List bypasses the snapshot so the admin table is always current.
func (s *InventoryService) List() ([]domain.Vehicle, error) {
	return s.Vehicles.ListAll()
}

func (s *InventoryService) Get(id string) (domain.Vehicle, error) {
	v, err := s.Vehicles.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, ErrNotFound
	}
	return v, err
}

func (s *InventoryService) Create(f validate.VehicleForm) (domain.Vehicle, error) {
	now := s.Now().UTC()
	v, err := validate.Vehicle(f, domain.Vehicle{}, now)
	if err != nil {
		return domain.Vehicle{}, err
	}
	v.ID = uuid.NewString()
	v.Images = []string{}
	v.CreatedAt, v.UpdatedAt = now, now
	if err := s.Vehicles.Create(v); err != nil {
		return domain.Vehicle{}, err
	}
	s.Catalog.Invalidate()
	return v, nil
}

func (s *InventoryService) Update(id string, f validate.VehicleForm) (domain.Vehicle, error) {
	base, err := s.Get(id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	now := s.Now().UTC()
	v, err := validate.Vehicle(f, base, now)
	if err != nil {
		return domain.Vehicle{}, err
	}
	v.UpdatedAt = now
	if err := s.Vehicles.Update(v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Vehicle{}, ErrNotFound
		}
		return domain.Vehicle{}, err
	}
	s.Catalog.Invalidate()
	return v, nil
}

func (s *InventoryService) Delete(id string) error {
	if err := s.Vehicles.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.Catalog.Invalidate()
	return nil
}

// AttachImage uploads r and appends the resulting URL to the vehicle.
func (s *InventoryService) AttachImage(ctx context.Context, id, filename string, r io.Reader) (string, error) {
	if _, err := s.Get(id); err != nil {
		return "", err
	}
	url, err := s.Images.Upload(ctx, id, filename, r)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if err := s.Vehicles.AppendImage(id, url, s.Now()); err != nil {
		return "", err
	}
	s.Catalog.Invalidate()
	return url, nil
}
