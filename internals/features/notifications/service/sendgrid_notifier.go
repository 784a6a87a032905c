// internals/features/notifications/service/sendgrid_notifier.go
package service

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"quest4knowledge_backend/internals/configs"
)

type SendgridNotifier struct {
	client   *sendgrid.Client
	from     *mail.Email
	frontend string
	support  string
}

func NewSendgridNotifier(settings configs.Settings) *SendgridNotifier {
	return &SendgridNotifier{
		client:   sendgrid.NewSendClient(settings.SendgridAPIKey),
		from:     mail.NewEmail("Quest4Knowledge", settings.DefaultFromEmail),
		frontend: settings.FrontendURL,
		support:  settings.AdminEmail,
	}
}

func (n *SendgridNotifier) GigAssigned(note GigAssignedNote) {
	subject := fmt.Sprintf("New Gig Assignment: %s (%s)", note.SubjectName, note.GigRefCode)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"You have been assigned a new tutoring gig.\n\n"+
			"Gig: %s — %s\nSubject: %s\nTotal hours: %s\nRemuneration: %s\n"+
			"Start: %s\nEnd: %s\n\nClient: %s (%s)\n\n%s\n"+
			"Log in to your dashboard at %s/dashboard to view full details.\n\n"+
			"Best regards,\nQuest4Knowledge Team",
		note.TutorName, note.GigRefCode, note.GigTitle, note.SubjectName,
		note.TotalHours, note.Remuneration, note.StartDate, note.EndDate,
		note.ClientName, note.ClientEmail, note.Notes, n.frontend)
	n.send(subject, note.TutorName, note.TutorEmail, body)

	clientSubject := fmt.Sprintf("Tutor Assigned for %s - %s", note.SubjectName, note.TutorName)
	clientBody := fmt.Sprintf(
		"Dear %s,\n\n"+
			"A tutor has been assigned to your gig %s.\n\n"+
			"Tutor: %s\nSubject: %s\nTotal hours: %s\nFee: %s\n"+
			"Start: %s\nEnd: %s\n\n"+
			"Questions? Contact us at %s.\n\nBest regards,\nQuest4Knowledge Team",
		note.ClientName, note.GigRefCode, note.TutorName, note.SubjectName,
		note.TotalHours, note.ClientFee, note.StartDate, note.EndDate, n.support)
	n.send(clientSubject, note.ClientName, note.ClientEmail, clientBody)
}

func (n *SendgridNotifier) SessionVerified(note SessionVerifiedNote) {
	subject := fmt.Sprintf("Session Verified: %s - %s", note.SubjectName, note.SessionDate)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your tutoring session has been verified and approved.\n\n"+
			"Session: %s (gig %s)\nDate: %s\nHours logged: %s\nVerified by: %s\n\n"+
			"Remuneration earned: %s\n"+
			"This amount will be processed according to your payment schedule.\n\n"+
			"Best regards,\nQuest4Knowledge Team",
		note.TutorName, note.SessionRefCode, note.GigRefCode, note.SessionDate,
		note.HoursLogged, note.VerifiedBy, note.Remuneration)
	n.send(subject, note.TutorName, note.TutorEmail, body)
}

func (n *SendgridNotifier) MeetingScheduled(note MeetingScheduledNote) {
	subject := fmt.Sprintf("Online Session Scheduled: %s - %s", note.SubjectName, note.StartsAt)
	body := func(name string) string {
		return fmt.Sprintf(
			"Dear %s,\n\n"+
				"An online tutoring session has been scheduled.\n\n"+
				"Meeting code: %s\nPIN code: %s\n\n"+
				"Session: %s (gig %s)\nSubject: %s\nStarts: %s\nEnds: %s\n\n"+
				"How to join:\n1. Go to %s\n2. Enter the PIN code\n3. Click \"Join Session\"\n\n"+
				"Please join a few minutes early to test audio and video.\n\n"+
				"Best regards,\nQuest4Knowledge Team",
			name, note.MeetingCode, note.PinCode, note.OnlineRefCode, note.GigRefCode,
			note.SubjectName, note.StartsAt, note.EndsAt, note.JoinURL)
	}
	n.send(subject, note.TutorName, note.TutorEmail, body(note.TutorName))
	n.send(subject, note.ClientName, note.ClientEmail, body(note.ClientName))
}

func (n *SendgridNotifier) send(subject, toName, toEmail, body string) {
	if toEmail == "" {
		return
	}
	msg := mail.NewSingleEmail(n.from, subject, mail.NewEmail(toName, toEmail), body, "")
	resp, err := n.client.Send(msg)
	if err != nil {
		log.Printf("[NOTIFY] sendgrid error to=%s subject=%q: %v", toEmail, subject, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("[NOTIFY] sendgrid status=%d to=%s subject=%q", resp.StatusCode, toEmail, subject)
	}
}
