package repos_test

import (
	"bytes"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dealerlot/internal/domain"
	"dealerlot/internal/repos"
)

func TestOpenDBSeedsCatalog(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	all, err := repos.NewVehicleRepo(db).ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 8 {
		t.Fatalf("want 8 seeded vehicles, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatalf("catalog not newest-first at %d", i)
		}
	}
	if all[0].ID != "schmitz-flatbed" {
		t.Fatalf("newest seeded vehicle should come first, got %s", all[0].ID)
	}
}

func TestVehicleCRUD(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	repo := repos.NewVehicleRepo(db)
	now := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	hp := 480

	v := domain.Vehicle{
		ID: "v-test", Make: "Volvo", Model: "FMX", Category: domain.CategoryTipper,
		Condition: domain.ConditionUsed, Year: 2018, Mileage: 200000, Price: 55000.5,
		Horsepower: &hp, EngineType: domain.EngineDiesel, Transmission: domain.TransmissionManual,
		Location: "Gent", Country: "BE", Available: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(v); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get("v-test")
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 55000.5 || got.Horsepower == nil || *got.Horsepower != 480 || !got.CreatedAt.Equal(now) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Images == nil || len(got.Images) != 0 {
		t.Fatalf("want empty image list, got %#v", got.Images)
	}

	got.Price = 51000
	got.Horsepower = nil
	got.Available = false
	got.UpdatedAt = now.Add(time.Hour)
	if err := repo.Update(got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.AppendImage("v-test", "https://img.example/1.jpg", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("append image: %v", err)
	}
	got, _ = repo.Get("v-test")
	if got.Price != 51000 || got.Horsepower != nil || got.Available {
		t.Fatalf("update not applied: %+v", got)
	}
	if len(got.Images) != 1 || got.Images[0] != "https://img.example/1.jpg" {
		t.Fatalf("images: %#v", got.Images)
	}

	if err := repo.Delete("v-test"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get("v-test"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want ErrNoRows after delete, got %v", err)
	}
	if err := repo.Delete("v-test"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("deleting twice should report ErrNoRows, got %v", err)
	}
	if err := repo.Update(v); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("updating a missing vehicle should report ErrNoRows, got %v", err)
	}
}

func TestSchemaRejectsBadEnums(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	err = repos.NewVehicleRepo(db).Create(domain.Vehicle{
		ID: "bad", Make: "X", Category: domain.CategoryVan, Condition: "mint",
		EngineType: domain.EngineGas, Transmission: domain.TransmissionManual,
	})
	if err == nil {
		t.Fatal("expected CHECK constraint failure for condition")
	}
}

func TestSeedAdminHashesPassword(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := repos.SeedAdmin(db, "admin@dealerlot.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	// second call rotates the hash instead of failing
	if err := repos.SeedAdmin(db, "admin@dealerlot.test", "N3w-Passw0rd"); err != nil {
		t.Fatal(err)
	}
	u, err := repos.NewUserRepo(db).ByEmail("ADMIN@dealerlot.test")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(u.Hash, "Passw0rd") || !strings.HasPrefix(u.Hash, "$2") {
		t.Fatalf("unexpected hash %q", u.Hash)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("N3w-Passw0rd")) != nil {
		t.Fatal("hash does not match rotated password")
	}
	if err := repos.SeedAdmin(db, "", "x"); err == nil {
		t.Fatal("empty email must be rejected")
	}
}

func TestSessionsAndEnquiries(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := repos.SeedAdmin(db, "admin@dealerlot.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	users := repos.NewUserRepo(db)
	if err := users.BindSession("sid-1", "u-admin"); err != nil {
		t.Fatal(err)
	}
	u, err := users.SessionUser("sid-1")
	if err != nil || u.Role != domain.RoleAdmin {
		t.Fatalf("session user: %+v %v", u, err)
	}
	if err := users.UnbindSession("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := users.SessionUser("sid-1"); err == nil {
		t.Fatal("unbound session still resolves")
	}

	enq := repos.NewEnquiryRepo(db)
	if err := enq.Create(domain.Enquiry{ID: "e-1", Name: "Ann", Email: "ann@x.test", Message: "Is it available?", Locale: "de"}); err != nil {
		t.Fatal(err)
	}
	list, err := enq.ListLatest(10)
	if err != nil || len(list) != 1 || list[0].Locale != "de" || list[0].CreatedAt == "" {
		t.Fatalf("list enquiries: %+v %v", list, err)
	}
}

func TestCorruptImagesAreLogged(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE vehicles SET images_json = '{not json' WHERE id = 'schmitz-flatbed'`); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	v, err := repos.NewVehicleRepo(db).Get("schmitz-flatbed")
	if err != nil {
		t.Fatal(err)
	}
	if v.Images == nil || len(v.Images) != 0 {
		t.Fatalf("corrupt images should decode to an empty list, got %#v", v.Images)
	}
	out := buf.String()
	if !strings.Contains(out, `"action":"vehicle.images.decode"`) || !strings.Contains(out, "schmitz-flatbed") {
		t.Fatalf("decode failure not logged: %s", out)
	}
}
