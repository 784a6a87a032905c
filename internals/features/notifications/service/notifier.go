// internals/features/notifications/service/notifier.go
package service

import (
	"log"

	"quest4knowledge_backend/internals/configs"
)

/* =========================================================
   Notifier

   Fire-and-forget outbound messages. Delivery failure is
   logged, never surfaced to a caller — a ledger-consistent
   operation must not fail because an email bounced.
========================================================= */

type GigAssignedNote struct {
	GigRefCode   string
	GigTitle     string
	SubjectName  string
	TutorName    string
	TutorEmail   string
	ClientName   string
	ClientEmail  string
	TotalHours   string
	Remuneration string // pre-formatted, currency included
	ClientFee    string
	StartDate    string
	EndDate      string
	Notes        string
}

type SessionVerifiedNote struct {
	SessionRefCode string
	GigRefCode     string
	SubjectName    string
	TutorName      string
	TutorEmail     string
	SessionDate    string
	HoursLogged    string
	Remuneration   string
	VerifiedBy     string
}

type MeetingScheduledNote struct {
	OnlineRefCode string
	GigRefCode    string
	SubjectName   string
	TutorName     string
	TutorEmail    string
	ClientName    string
	ClientEmail   string
	MeetingCode   string
	PinCode       string
	StartsAt      string
	EndsAt        string
	JoinURL       string
}

type Notifier interface {
	GigAssigned(n GigAssignedNote)
	SessionVerified(n SessionVerifiedNote)
	MeetingScheduled(n MeetingScheduledNote)
}

// NewNotifier picks sendgrid when an API key is configured, otherwise the
// console notifier (dev / CI).
func NewNotifier(settings configs.Settings) Notifier {
	if settings.SendgridAPIKey != "" {
		return NewSendgridNotifier(settings)
	}
	log.Println("⚠️ SENDGRID_API_KEY not set, using console notifier")
	return &ConsoleNotifier{}
}
