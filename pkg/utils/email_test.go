package utils

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailerRequiresConfig(t *testing.T) {
	assert.Nil(t, NewMailer("", "secret", "smtp.example.com", "587", ""))
	assert.Nil(t, NewMailer("noreply@example.com", "secret", "", "587", ""))
	assert.NotNil(t, NewMailer("noreply@example.com", "secret", "smtp.example.com", "587", ""))
}

func TestSendVaccinationScheduledEmail(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m := NewMailer("noreply@example.com", "secret", "smtp.example.com", "587", "https://pawcare.example.com").
		WithSendFunc(func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
			gotAddr, gotTo, gotMsg = addr, to, string(msg)
			return nil
		})

	err := m.SendVaccinationScheduledEmail("owner@example.com", AppointmentDetails{
		BookingID: "b-1",
		DogName:   "Rex",
		Vaccines:  []string{"Rabies", "DHPP"},
		Date:      "2025-06-01",
		Time:      "09:00",
		Center:    "Main Center",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Vaccination Appointment Scheduled")
	assert.Contains(t, gotMsg, "Rabies, DHPP")
	assert.Contains(t, gotMsg, "https://pawcare.example.com/my-bookings")
}

func TestSendEmailPropagatesTransportError(t *testing.T) {
	m := NewMailer("noreply@example.com", "secret", "smtp.example.com", "587", "").
		WithSendFunc(func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		})

	err := m.SendVaccinationCancelledEmail("owner@example.com", AppointmentDetails{DogName: "Rex"})
	assert.EqualError(t, err, "connection refused")
}

func TestEmailEscapesCustomerInput(t *testing.T) {
	var gotMsg string
	m := NewMailer("noreply@example.com", "secret", "smtp.example.com", "587", "").
		WithSendFunc(func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
			gotMsg = string(msg)
			return nil
		})

	d := AppointmentDetails{
		DogName:  `<script>alert("rex")</script>`,
		Vaccines: []string{"Rabies & <b>DHPP</b>"},
		Center:   `<a href="http://evil.example">Main</a>`,
	}
	require.NoError(t, m.SendVaccinationScheduledEmail("owner@example.com", d))
	assert.NotContains(t, gotMsg, "<script>")
	assert.NotContains(t, gotMsg, "<b>DHPP</b>")
	assert.NotContains(t, gotMsg, `<a href="http://evil.example">`)
	assert.Contains(t, gotMsg, "&lt;script&gt;")
	assert.Contains(t, gotMsg, "Rabies &amp; &lt;b&gt;DHPP&lt;/b&gt;")

	require.NoError(t, m.SendVaccinationCancelledEmail("owner@example.com", d))
	assert.NotContains(t, gotMsg, "<script>")
	assert.Contains(t, gotMsg, "&lt;a href=&#34;http://evil.example&#34;&gt;Main&lt;/a&gt;")
}
