package validate

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"dealerlot/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()./-]{6,24}$`)
	reAxle  = regexp.MustCompile(`^([0-9]{1,2}x[0-9]{1,2}|[0-9]-axle)$`)
	reISO2  = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Error names the form field that failed validation.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (vehicle/enquiry ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 80 {
		return "", false
	}
	return s, true
}

// Phone is optional; an empty value is valid.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

func Message(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	return s, n >= 5 && n <= 2000
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// VehicleForm is the raw admin form input for a listing.
type VehicleForm struct {
	Make, Model, Category, Condition string
	Year, Mileage, Price, Horsepower string
	EngineType, Transmission, Axle   string
	Location, Country                string
	Available, Featured              bool
}

// Vehicle checks the form and copies it onto base, leaving ID, images and
// timestamps untouched. The first failing field is reported.
func Vehicle(f VehicleForm, base domain.Vehicle, now time.Time) (domain.Vehicle, error) {
	v := base
	var ok bool

	if v.Make, ok = Name(f.Make); !ok {
		return v, &Error{Field: "make", Reason: "required, at most 80 characters"}
	}
	v.Model = strings.TrimSpace(f.Model)
	if utf8.RuneCountInString(v.Model) > 80 {
		return v, &Error{Field: "model", Reason: "at most 80 characters"}
	}
	if v.Category, ok = oneOf(f.Category, domain.Categories()); !ok {
		return v, &Error{Field: "category", Reason: "unknown category"}
	}
	if v.Condition, ok = oneOf(f.Condition, domain.Conditions()); !ok {
		return v, &Error{Field: "condition", Reason: "unknown condition"}
	}
	if v.EngineType, ok = oneOf(f.EngineType, domain.EngineTypes()); !ok {
		return v, &Error{Field: "engine", Reason: "unknown engine type"}
	}
	if v.Transmission, ok = oneOf(f.Transmission, domain.Transmissions()); !ok {
		return v, &Error{Field: "transmission", Reason: "unknown transmission"}
	}

	year, err := strconv.Atoi(strings.TrimSpace(f.Year))
	if err != nil || year < 1900 || year > now.Year()+2 {
		return v, &Error{Field: "year", Reason: fmt.Sprintf("must be between 1900 and %d", now.Year()+2)}
	}
	v.Year = year

	mileage, err := strconv.Atoi(strings.TrimSpace(f.Mileage))
	if err != nil || mileage < 0 {
		return v, &Error{Field: "mileage", Reason: "must be a whole number of km, zero or more"}
	}
	v.Mileage = mileage

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return v, &Error{Field: "price", Reason: "must be zero or more"}
	}
	v.Price = price

	v.Horsepower = nil
	if hp := strings.TrimSpace(f.Horsepower); hp != "" {
		n, err := strconv.Atoi(hp)
		if err != nil || n < 0 {
			return v, &Error{Field: "horsepower", Reason: "must be a whole number"}
		}
		v.Horsepower = &n
	}

	v.AxleConfiguration = strings.ToLower(strings.TrimSpace(f.Axle))
	if v.AxleConfiguration != "" && !reAxle.MatchString(v.AxleConfiguration) {
		return v, &Error{Field: "axle", Reason: "use a form like 6x4 or 3-axle"}
	}
	v.Location = strings.TrimSpace(f.Location)
	v.Country = strings.ToUpper(strings.TrimSpace(f.Country))
	if v.Country != "" && !reISO2.MatchString(v.Country) {
		return v, &Error{Field: "country", Reason: "two-letter country code"}
	}
	v.Available = f.Available
	v.Featured = f.Featured
	return v, nil
}

func oneOf[T ~string](s string, allowed []T) (T, bool) {
	t := T(strings.ToLower(strings.TrimSpace(s)))
	return t, slices.Contains(allowed, t)
}
