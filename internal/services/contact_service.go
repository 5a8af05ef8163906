package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"dealerlot/internal/domain"
	applog "dealerlot/internal/log"
	"dealerlot/internal/repos"
	"dealerlot/internal/validate"
)

// ErrRelay means the enquiry was stored but the notification mail failed.
var ErrRelay = errors.New("enquiry stored, relay failed")

// Mailer delivers a plain notification to the sales inbox.
type Mailer interface {
	Send(ctx context.Context, subject, plain, htmlBody string) error
}

type SendGridMailer struct {
	client   *sendgrid.Client
	From, To string
}

func NewSendGridMailer(apiKey, from, to string) *SendGridMailer {
	return &SendGridMailer{client: sendgrid.NewSendClient(apiKey), From: from, To: to}
}

func (m *SendGridMailer) Send(ctx context.Context, subject, plain, htmlBody string) error {
	from := mail.NewEmail("Dealerlot", m.From)
	to := mail.NewEmail("Sales", m.To)
	msg := mail.NewSingleEmail(from, subject, to, plain, htmlBody)
	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", resp.StatusCode)
	}
	return nil
}

// LogMailer is used when no SendGrid key is configured; it only records
// that a message would have been sent.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, subject, _, _ string) error {
	applog.Event("contact.mail.skipped", nil, map[string]any{"subject": subject})
	return nil
}

type ContactForm struct {
	VehicleID, Name, Email, Phone, Message string
}

type ContactService struct {
	Enquiries *repos.EnquiryRepo
	Catalog   *CatalogService
	Mail      Mailer
}

func NewContactService(enquiries *repos.EnquiryRepo, catalog *CatalogService, m Mailer) *ContactService {
	return &ContactService{Enquiries: enquiries, Catalog: catalog, Mail: m}
}

// Submit validates and stores the enquiry, then relays it.
func (s *ContactService) Submit(ctx context.Context, f ContactForm, locale string) (domain.Enquiry, error) {
	e := domain.Enquiry{ID: uuid.NewString(), Locale: locale}
	var ok bool
	if e.Name, ok = validate.Name(f.Name); !ok {
		return e, &validate.Error{Field: "name", Reason: "required"}
	}
	if e.Email, ok = validate.Email(f.Email); !ok {
		return e, &validate.Error{Field: "email", Reason: "not a valid address"}
	}
	if e.Phone, ok = validate.Phone(f.Phone); !ok {
		return e, &validate.Error{Field: "phone", Reason: "not a valid number"}
	}
	if e.Message, ok = validate.Message(f.Message); !ok {
		return e, &validate.Error{Field: "message", Reason: "between 5 and 2000 characters"}
	}

	subject := "Website enquiry"
	if id := strings.TrimSpace(f.VehicleID); id != "" {
		v, err := s.Catalog.Vehicle(id)
		if err != nil {
			return e, &validate.Error{Field: "vehicle", Reason: "unknown vehicle"}
		}
		e.VehicleID = v.ID
		subject = "Enquiry: " + v.Title()
	}

	if err := s.Enquiries.Create(e); err != nil {
		return e, err
	}

	plain := fmt.Sprintf("From: %s <%s> %s\nLocale: %s\nVehicle: %s\n\n%s", e.Name, e.Email, e.Phone, e.Locale, e.VehicleID, e.Message)
	htmlBody := "<p><strong>" + html.EscapeString(e.Name) + "</strong> &lt;" + html.EscapeString(e.Email) + "&gt;</p><p>" +
		strings.ReplaceAll(html.EscapeString(e.Message), "\n", "<br>") + "</p>"
	if err := s.Mail.Send(ctx, subject, plain, htmlBody); err != nil {
		return e, fmt.Errorf("%w: enquiry %s: %v", ErrRelay, e.ID, err)
	}
	return e, nil
}

func (s *ContactService) Latest(limit int) ([]domain.Enquiry, error) {
	return s.Enquiries.ListLatest(limit)
}
