package mail

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"strconv"
	"strings"
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/njprem/tokyo_attractions_backend/internal/domain"
	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

//go:embed templates
var templateFS embed.FS

var bookingTemplate = template.Must(template.ParseFS(templateFS, "templates/booking_confirmation.tmpl"))

// BookingMailer sends a single confirmation mail per booking. Failed sends
// are reported to the caller and not retried.
type BookingMailer struct {
	dialer *gomail.Dialer
	sender string
}

func NewBookingMailer(host string, port int, username, password, sender string) *BookingMailer {
	dialer := gomail.NewDialer(strings.TrimSpace(host), port, username, password)
	dialer.Timeout = 5 * time.Second
	return &BookingMailer{
		dialer: dialer,
		sender: strings.TrimSpace(sender),
	}
}

func (m *BookingMailer) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	if m == nil || m.dialer == nil || m.dialer.Host == "" || m.sender == "" {
		return errors.New("mailer missing configuration")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.buildMessage(booking)
	if err != nil {
		return err
	}
	return m.dialer.DialAndSend(msg)
}

type bookingMailData struct {
	BookingID       string
	UserName        string
	AttractionName  string
	Location        string
	VisitDate       string
	Visitors        int
	TotalPrice      string
	SpecialRequests string
}

func (m *BookingMailer) buildMessage(booking *domain.Booking) (*gomail.Message, error) {
	data := bookingMailData{
		BookingID:      booking.ID,
		UserName:       booking.UserName,
		AttractionName: booking.Attraction.Name,
		Location:       booking.Attraction.Location,
		VisitDate:      booking.VisitDate.Format("Mon, 2 Jan 2006"),
		Visitors:       booking.Visitors,
		TotalPrice:     formatYen(booking.TotalPrice),
	}
	if booking.SpecialRequests != nil {
		data.SpecialRequests = *booking.SpecialRequests
	}

	subject := new(bytes.Buffer)
	if err := bookingTemplate.ExecuteTemplate(subject, "subject", data); err != nil {
		return nil, err
	}
	plainBody := new(bytes.Buffer)
	if err := bookingTemplate.ExecuteTemplate(plainBody, "plainBody", data); err != nil {
		return nil, err
	}
	htmlBody := new(bytes.Buffer)
	if err := bookingTemplate.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("To", booking.UserEmail)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())
	return msg, nil
}

func formatYen(amount float64) string {
	if amount == 0 {
		return "Free"
	}
	return "¥" + formatThousands(int64(amount+0.5))
}

func formatThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(d)
	}
	return out.String()
}

var _ ports.BookingNotifier = (*BookingMailer)(nil)
