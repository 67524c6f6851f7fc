package utils

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"sort"
	"strings"
)

const companyName = "PawCare"

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #8b5cf6; margin: 0;">PawCare</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
		</div>
	</div>
</body>
</html>
`

// SendFunc matches smtp.SendMail so tests can capture outgoing mail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends HTML emails through an SMTP relay.
type Mailer struct {
	From     string
	Password string
	Host     string
	Port     string
	BaseURL  string

	send SendFunc
}

// NewMailer returns a Mailer, or nil when SMTP is not configured.
func NewMailer(from, password, host, port, baseURL string) *Mailer {
	if from == "" || password == "" || host == "" || port == "" {
		return nil
	}
	return &Mailer{From: from, Password: password, Host: host, Port: port, BaseURL: baseURL, send: smtp.SendMail}
}

// WithSendFunc swaps the transport, used by tests.
func (m *Mailer) WithSendFunc(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

func (m *Mailer) sendEmail(to []string, subject, body string) error {
	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", companyName, m.From),
		"To":           strings.Join(to, ","),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
		"X-Mailer":     "PawCare-Mailer",
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var message strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&message, "%s: %s\r\n", k, headers[k])
	}
	message.WriteString("\r\n" + body)

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := m.send(m.Host+":"+m.Port, auth, m.From, to, []byte(message.String())); err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// AppointmentDetails is what the customer sees in booking emails.
type AppointmentDetails struct {
	BookingID string
	DogName   string
	Vaccines  []string
	Date      string
	Time      string
	Center    string
}

// escaped returns a copy safe to place in an HTML body.
func (d AppointmentDetails) escaped() AppointmentDetails {
	out := AppointmentDetails{
		BookingID: html.EscapeString(d.BookingID),
		DogName:   html.EscapeString(d.DogName),
		Date:      html.EscapeString(d.Date),
		Time:      html.EscapeString(d.Time),
		Center:    html.EscapeString(d.Center),
	}
	for _, v := range d.Vaccines {
		out.Vaccines = append(out.Vaccines, html.EscapeString(v))
	}
	return out
}

func (m *Mailer) SendVaccinationScheduledEmail(to string, d AppointmentDetails) error {
	subject := "Vaccination Appointment Scheduled - " + companyName
	d = d.escaped()
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Appointment Scheduled</h1>
					<p>Hello,</p>
					<p><strong>%s</strong> is booked for <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong>, %s.</p>
					<p>Booking reference: <code>%s</code></p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/my-bookings" style="background-color: #8b5cf6; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View My Bookings</a>
					</div>
					<p>Best regards,<br>The PawCare Team</p>
				</div>`+emailFooter,
		d.DogName, strings.Join(d.Vaccines, ", "), d.Date, d.Time, d.Center, d.BookingID, m.BaseURL)

	return m.sendEmail([]string{to}, subject, body)
}

func (m *Mailer) SendVaccinationCancelledEmail(to string, d AppointmentDetails) error {
	subject := "Vaccination Appointment Cancelled - " + companyName
	d = d.escaped()
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Appointment Cancelled</h1>
					<p>Hello,</p>
					<p>The vaccination appointment for <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong>, %s has been cancelled.</p>
					<p>You can pick another time slot whenever you are ready.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/vaccination" style="background-color: #8b5cf6; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Book Again</a>
					</div>
					<p>Best regards,<br>The PawCare Team</p>
				</div>`+emailFooter,
		d.DogName, d.Date, d.Time, d.Center, m.BaseURL)

	return m.sendEmail([]string{to}, subject, body)
}
