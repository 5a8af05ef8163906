package domain

const RoleAdmin = "ADMIN"

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

type Enquiry struct {
	ID        string `db:"id" json:"id"`
	VehicleID string `db:"vehicle_id" json:"vehicleId,omitempty"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Message   string `db:"message" json:"message"`
	Locale    string `db:"locale" json:"locale"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
