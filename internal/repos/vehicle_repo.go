package repos

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"dealerlot/internal/domain"
	applog "dealerlot/internal/log"
)

type VehicleRepo struct{ db *sqlx.DB }

func NewVehicleRepo(db *sqlx.DB) *VehicleRepo { return &VehicleRepo{db: db} }

type vehicleRow struct {
	ID                string        `db:"id"`
	Make              string        `db:"make"`
	Model             string        `db:"model"`
	Category          string        `db:"category"`
	Condition         string        `db:"condition"`
	Year              int           `db:"year"`
	Mileage           int           `db:"mileage"`
	Price             float64       `db:"price"`
	Horsepower        sql.NullInt64 `db:"horsepower"`
	EngineType        string        `db:"engine_type"`
	Transmission      string        `db:"transmission"`
	AxleConfiguration string        `db:"axle_configuration"`
	Location          string        `db:"location"`
	Country           string        `db:"country"`
	Available         bool          `db:"available"`
	Featured          bool          `db:"featured"`
	ImagesJSON        string        `db:"images_json"`
	CreatedAt         string        `db:"created_at"`
	UpdatedAt         string        `db:"updated_at"`
}

const vehicleColumns = `
    id, make, model, category, condition, year, mileage, price, horsepower,
    engine_type, transmission, axle_configuration, location, country,
    available, featured, images_json, created_at, updated_at`

func (r vehicleRow) toDomain() domain.Vehicle {
	v := domain.Vehicle{
		ID:                r.ID,
		Make:              r.Make,
		Model:             r.Model,
		Category:          domain.Category(r.Category),
		Condition:         domain.Condition(r.Condition),
		Year:              r.Year,
		Mileage:           r.Mileage,
		Price:             r.Price,
		EngineType:        domain.EngineType(r.EngineType),
		Transmission:      domain.Transmission(r.Transmission),
		AxleConfiguration: r.AxleConfiguration,
		Location:          r.Location,
		Country:           r.Country,
		Available:         r.Available,
		Featured:          r.Featured,
		Images:            []string{},
		CreatedAt:         parseTS(r.CreatedAt),
		UpdatedAt:         parseTS(r.UpdatedAt),
	}
	if r.Horsepower.Valid {
		hp := int(r.Horsepower.Int64)
		v.Horsepower = &hp
	}
	if r.ImagesJSON != "" {
		if err := json.Unmarshal([]byte(r.ImagesJSON), &v.Images); err != nil {
			// the listing stays browsable; the admin can re-upload
			applog.Event("vehicle.images.decode", err, map[string]any{"vehicle_id": r.ID})
			v.Images = []string{}
		}
	}
	return v
}

func fromDomain(v domain.Vehicle) (vehicleRow, error) {
	images := v.Images
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return vehicleRow{}, err
	}
	row := vehicleRow{
		ID:                v.ID,
		Make:              v.Make,
		Model:             v.Model,
		Category:          string(v.Category),
		Condition:         string(v.Condition),
		Year:              v.Year,
		Mileage:           v.Mileage,
		Price:             v.Price,
		EngineType:        string(v.EngineType),
		Transmission:      string(v.Transmission),
		AxleConfiguration: v.AxleConfiguration,
		Location:          v.Location,
		Country:           v.Country,
		Available:         v.Available,
		Featured:          v.Featured,
		ImagesJSON:        string(b),
		CreatedAt:         formatTS(v.CreatedAt),
		UpdatedAt:         formatTS(v.UpdatedAt),
	}
	if v.Horsepower != nil {
		row.Horsepower = sql.NullInt64{Int64: int64(*v.Horsepower), Valid: true}
	}
	return row, nil
}

// ListAll returns the whole catalog, newest listing first.
func (r *VehicleRepo) ListAll() ([]domain.Vehicle, error) {
	var rows []vehicleRow
	if err := r.db.Select(&rows, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at DESC, id`); err != nil {
		return nil, err
	}
	out := make([]domain.Vehicle, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Get returns sql.ErrNoRows when the id is unknown.
func (r *VehicleRepo) Get(id string) (domain.Vehicle, error) {
	var row vehicleRow
	if err := r.db.Get(&row, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id); err != nil {
		return domain.Vehicle{}, err
	}
	return row.toDomain(), nil
}

func (r *VehicleRepo) Create(v domain.Vehicle) error {
	row, err := fromDomain(v)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExec(`
		INSERT INTO vehicles(`+vehicleColumns+`)
		VALUES (:id, :make, :model, :category, :condition, :year, :mileage, :price, :horsepower,
		        :engine_type, :transmission, :axle_configuration, :location, :country,
		        :available, :featured, :images_json, :created_at, :updated_at)
	`, row)
	return err
}

// Update overwrites every mutable column; created_at is kept.
func (r *VehicleRepo) Update(v domain.Vehicle) error {
	row, err := fromDomain(v)
	if err != nil {
		return err
	}
	res, err := r.db.NamedExec(`
		UPDATE vehicles SET
		  make=:make, model=:model, category=:category, condition=:condition, year=:year,
		  mileage=:mileage, price=:price, horsepower=:horsepower, engine_type=:engine_type,
		  transmission=:transmission, axle_configuration=:axle_configuration, location=:location,
		  country=:country, available=:available, featured=:featured, images_json=:images_json,
		  updated_at=:updated_at
		WHERE id=:id
	`, row)
	if err != nil {
		return err
	}
	return expectOne(res, v.ID)
}

func (r *VehicleRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res, id)
}

// AppendImage adds url to the end of the vehicle's image list.
func (r *VehicleRepo) AppendImage(id, url string, at time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	if err := tx.Get(&raw, `SELECT images_json FROM vehicles WHERE id = ?`, id); err != nil {
		return err
	}
	var images []string
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &images); err != nil {
			return fmt.Errorf("images of %s: %w", id, err)
		}
	}
	b, err := json.Marshal(append(images, url))
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE vehicles SET images_json = ?, updated_at = ? WHERE id = ?`, string(b), formatTS(at), id); err != nil {
		return err
	}
	return tx.Commit()
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("vehicle %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
