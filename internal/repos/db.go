package repos

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"dealerlot/internal/domain"
	applog "dealerlot/internal/log"
)

// Timestamps are stored as fixed-width UTC text so they order lexically.
const tsLayout = "2006-01-02T15:04:05.000Z"

func formatTS(t time.Time) string { return t.UTC().Format(tsLayout) }

func parseTS(s string) time.Time {
	if t, err := time.Parse(tsLayout, s); err == nil {
		return t
	}
	// rows written by CURRENT_TIMESTAMP defaults
	t, _ := time.Parse(time.DateTime, s)
	return t
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo listings if the catalog is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Vehicles
CREATE TABLE IF NOT EXISTS vehicles(
  id TEXT PRIMARY KEY,
  make TEXT NOT NULL,
  model TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  condition TEXT NOT NULL CHECK (condition IN ('new','used','certified')),
  year INTEGER NOT NULL,
  mileage INTEGER NOT NULL CHECK (mileage >= 0),
  price NUMERIC NOT NULL CHECK (price >= 0),
  horsepower INTEGER CHECK (horsepower IS NULL OR horsepower >= 0),
  engine_type TEXT NOT NULL CHECK (engine_type IN ('diesel','electric','hybrid','gas')),
  transmission TEXT NOT NULL CHECK (transmission IN ('manual','automatic','automated-manual')),
  axle_configuration TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  available INTEGER NOT NULL DEFAULT 1,
  featured INTEGER NOT NULL DEFAULT 0,
  images_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles(created_at);
CREATE INDEX IF NOT EXISTS idx_vehicles_make       ON vehicles(make);
CREATE INDEX IF NOT EXISTS idx_vehicles_featured   ON vehicles(featured);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Contact form enquiries
CREATE TABLE IF NOT EXISTS enquiries(
  id TEXT PRIMARY KEY,
  vehicle_id TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL,
  locale TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_enquiries_created_at ON enquiries(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM vehicles`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hp := func(v int) *int { return &v }
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	demo := []domain.Vehicle{
		{ID: "volvo-fh16-750", Make: "Volvo", Model: "FH16 750", Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			Year: 2019, Mileage: 412000, Price: 68500, Horsepower: hp(750), EngineType: domain.EngineDiesel,
			Transmission: domain.TransmissionAutomatedManual, AxleConfiguration: "6x4", Location: "Rotterdam", Country: "NL",
			Available: true, Featured: true, Images: []string{"vehicles/volvo-fh16-750/main.jpg"}},
		{ID: "scania-r450-tipper", Make: "Scania", Model: "R450", Category: domain.CategoryTipper, Condition: domain.ConditionCertified,
			Year: 2021, Mileage: 158000, Price: 94000, Horsepower: hp(450), EngineType: domain.EngineDiesel,
			Transmission: domain.TransmissionAutomatedManual, AxleConfiguration: "8x4", Location: "Hamburg", Country: "DE",
			Available: true, Featured: true, Images: []string{"vehicles/scania-r450-tipper/main.jpg"}},
		{ID: "daf-lf-box", Make: "DAF", Model: "LF 230", Category: domain.CategoryBoxTruck, Condition: domain.ConditionUsed,
			Year: 2017, Mileage: 265000, Price: 27900, Horsepower: hp(230), EngineType: domain.EngineDiesel,
			Transmission: domain.TransmissionManual, AxleConfiguration: "4x2", Location: "Antwerp", Country: "BE",
			Available: true, Images: []string{"vehicles/daf-lf-box/main.jpg"}},
		{ID: "mercedes-eactros", Make: "Mercedes-Benz", Model: "eActros 300", Category: domain.CategoryBoxTruck, Condition: domain.ConditionNew,
			Year: 2024, Mileage: 150, Price: 289000, EngineType: domain.EngineElectric,
			Transmission: domain.TransmissionAutomatic, AxleConfiguration: "6x2", Location: "Stuttgart", Country: "DE",
			Available: true, Featured: true},
		{ID: "man-tgs-crane", Make: "MAN", Model: "TGS 26.440", Category: domain.CategoryCraneTruck, Condition: domain.ConditionUsed,
			Year: 2016, Mileage: 338000, Price: 74500, Horsepower: hp(440), EngineType: domain.EngineDiesel,
			Transmission: domain.TransmissionAutomatedManual, AxleConfiguration: "6x4", Location: "Lyon", Country: "FR",
			Available: false, Images: []string{"vehicles/man-tgs-crane/main.jpg", "vehicles/man-tgs-crane/side.jpg"}},
		{ID: "iveco-daily-van", Make: "Iveco", Model: "Daily 35S16", Category: domain.CategoryVan, Condition: domain.ConditionUsed,
			Year: 2020, Mileage: 98000, Price: 21500, Horsepower: hp(156), EngineType: domain.EngineGas,
			Transmission: domain.TransmissionManual, Location: "Utrecht", Country: "NL", Available: true},
		{ID: "renault-d-wide-reefer", Make: "Renault", Model: "D Wide", Category: domain.CategoryRefrigerated, Condition: domain.ConditionCertified,
			Year: 2022, Mileage: 121000, Price: 79900, Horsepower: hp(320), EngineType: domain.EngineHybrid,
			Transmission: domain.TransmissionAutomatic, AxleConfiguration: "4x2", Location: "Lille", Country: "FR", Available: true},
		{ID: "schmitz-flatbed", Make: "Schmitz Cargobull", Model: "S.PR", Category: domain.CategoryTrailer, Condition: domain.ConditionUsed,
			Year: 2014, Mileage: 0, Price: 14500, EngineType: domain.EngineDiesel,
			Transmission: domain.TransmissionManual, AxleConfiguration: "3-axle", Location: "Venlo", Country: "NL", Available: true},
	}

	applog.Event("seed.vehicles", nil, map[string]any{"count": len(demo)})
	repo := NewVehicleRepo(db)
	for i := range demo {
		demo[i].CreatedAt = base.Add(time.Duration(i) * 24 * time.Hour)
		demo[i].UpdatedAt = demo[i].CreatedAt
		if err := repo.Create(demo[i]); err != nil {
			return fmt.Errorf("seed %s: %w", demo[i].ID, err)
		}
	}
	return nil
}

// SeedAdmin ensures an ADMIN account with the given credentials exists.
// The password is bcrypt-hashed; an existing account gets the new hash.
func SeedAdmin(db *sqlx.DB, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES(?,?,?,?,?)
		ON CONFLICT(email) DO UPDATE SET password_hash=excluded.password_hash, updated_at=CURRENT_TIMESTAMP
	`, "u-admin", strings.ToLower(email), "Admin", string(h), domain.RoleAdmin)
	return err
}
