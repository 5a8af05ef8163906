package catalog_test

import (
	"time"

	"dealerlot/internal/domain"
)

func ptr[T any](v T) *T { return &v }

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func vehicle(id string, mut ...func(*domain.Vehicle)) domain.Vehicle {
	v := domain.Vehicle{
		ID:           id,
		Make:         "Volvo",
		Model:        "FH16",
		Category:     domain.CategoryTractorUnit,
		Condition:    domain.ConditionUsed,
		Year:         2019,
		Mileage:      300000,
		Price:        50000,
		EngineType:   domain.EngineDiesel,
		Transmission: domain.TransmissionAutomatedManual,
		Location:     "Rotterdam",
		Country:      "NL",
		Available:    true,
		CreatedAt:    epoch,
		UpdatedAt:    epoch,
	}
	for _, m := range mut {
		m(&v)
	}
	return v
}

func ids(vs []domain.Vehicle) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func fixture() []domain.Vehicle {
	return []domain.Vehicle{
		vehicle("a", func(v *domain.Vehicle) {
			v.Make, v.Category, v.Price, v.Year, v.Mileage = "Volvo", domain.CategoryTipper, 10000, 2015, 450000
			v.AxleConfiguration = "6x4"
			v.CreatedAt = epoch.Add(1 * time.Hour)
		}),
		vehicle("b", func(v *domain.Vehicle) {
			v.Make, v.Category, v.Price, v.Year, v.Mileage = "Scania", domain.CategoryBoxTruck, 25000, 2020, 120000
			v.Condition, v.Featured, v.Available = domain.ConditionCertified, true, false
			v.EngineType, v.Transmission = domain.EngineElectric, domain.TransmissionAutomatic
			v.Country = "DE"
			v.CreatedAt = epoch.Add(3 * time.Hour)
		}),
		vehicle("c", func(v *domain.Vehicle) {
			v.Make, v.Category, v.Price, v.Year, v.Mileage = "DAF", domain.CategoryTipper, 50000, 2022, 20000
			v.Condition, v.Featured = domain.ConditionNew, true
			v.AxleConfiguration = "8x4"
			v.CreatedAt = epoch.Add(2 * time.Hour)
		}),
		vehicle("d", func(v *domain.Vehicle) {
			v.Make, v.Price, v.Year, v.Mileage = "Scania", 25000, 2018, 300000
			v.Transmission = domain.TransmissionManual
			v.CreatedAt = epoch
		}),
	}
}
