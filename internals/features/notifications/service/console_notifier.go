// internals/features/notifications/service/console_notifier.go
package service

import "log"

// ConsoleNotifier logs instead of sending. Used when no mail credentials
// are configured.
type ConsoleNotifier struct{}

func (ConsoleNotifier) GigAssigned(n GigAssignedNote) {
	log.Printf("[NOTIFY] gig assigned: gig=%s tutor=%s client=%s", n.GigRefCode, n.TutorEmail, n.ClientEmail)
}

func (ConsoleNotifier) SessionVerified(n SessionVerifiedNote) {
	log.Printf("[NOTIFY] session verified: session=%s gig=%s tutor=%s by=%s", n.SessionRefCode, n.GigRefCode, n.TutorEmail, n.VerifiedBy)
}

func (ConsoleNotifier) MeetingScheduled(n MeetingScheduledNote) {
	log.Printf("[NOTIFY] meeting scheduled: session=%s gig=%s code=%s", n.OnlineRefCode, n.GigRefCode, n.MeetingCode)
}
