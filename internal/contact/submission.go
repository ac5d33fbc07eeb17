// Package contact relays contact-form submissions to the team inbox through a
// transactional email provider.
package contact

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Public messages returned to the browser.
const (
	MsgRequired      = "First name, business email, and details are required to submit the form."
	MsgNotConfigured = "Email service is not configured. Please try again later."
	MsgSendFailed    = "Failed to send your message. Please try again later."
	MsgUnexpected    = "Something went wrong while submitting the form."
)

// Submission is the JSON body posted by the contact form.
type Submission struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName"`
	BusinessEmail string `json:"businessEmail" validate:"required"`
	JobTitle      string `json:"jobTitle"`
	Company       string `json:"company"`
	Country       string `json:"country"`
	Details       string `json:"details" validate:"required"`
}

var validate = validator.New()

// Normalize trims every field.
func (s Submission) Normalize() Submission {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.BusinessEmail = strings.TrimSpace(s.BusinessEmail)
	s.JobTitle = strings.TrimSpace(s.JobTitle)
	s.Company = strings.TrimSpace(s.Company)
	s.Country = strings.TrimSpace(s.Country)
	s.Details = strings.TrimSpace(s.Details)
	return s
}

// Validate checks the required fields.
func (s Submission) Validate() error {
	return validate.Struct(s)
}

// FullName joins the non-empty name parts.
func (s Submission) FullName() string {
	return joinNonEmpty(" ", s.FirstName, s.LastName)
}

// Message is a provider-neutral plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
	ReplyTo string
}

// Compose builds the notification email. siteHost names the site the
// submission came from.
func Compose(s Submission, siteHost, from, to string) Message {
	name := s.FullName()
	lines := []string{
		"New contact submission on " + siteHost,
		"",
		"Name: " + name,
		"Email: " + s.BusinessEmail,
		labeled("Job Title: ", s.JobTitle),
		labeled("Company / Institution: ", s.Company),
		labeled("Country: ", s.Country),
		"",
		"Details:",
		s.Details,
	}
	return Message{
		From:    from,
		To:      []string{to},
		Subject: "Contact request from " + name,
		Text:    joinNonEmpty("\n", lines...),
		ReplyTo: s.BusinessEmail,
	}
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
