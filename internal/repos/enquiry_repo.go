package repos

import (
	"dealerlot/internal/domain"

	"github.com/jmoiron/sqlx"
)

type EnquiryRepo struct{ db *sqlx.DB }

func NewEnquiryRepo(db *sqlx.DB) *EnquiryRepo { return &EnquiryRepo{db: db} }

func (r *EnquiryRepo) Create(e domain.Enquiry) error {
	_, err := r.db.Exec(`
		INSERT INTO enquiries(id, vehicle_id, name, email, phone, message, locale)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.VehicleID, e.Name, e.Email, e.Phone, e.Message, e.Locale)
	return err
}

func (r *EnquiryRepo) ListLatest(limit int) ([]domain.Enquiry, error) {
	var out []domain.Enquiry
	err := r.db.Select(&out, `
		SELECT id, vehicle_id, name, email, phone, message, locale, COALESCE(created_at,'') AS created_at
		FROM enquiries
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	return out, err
}
