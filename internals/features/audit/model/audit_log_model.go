// internals/features/audit/model/audit_log_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

/* =========================================================
   Model: audit_logs

   Append-only trail for everything that touches a gig or
   its ledger: lifecycle transitions, manual adjustments,
   session verification. Entries are written inside the same
   transaction as the mutation they describe and never
   updated or deleted.
========================================================= */

type AuditLogModel struct {
	AuditLogID uint `gorm:"primaryKey;column:audit_log_id" json:"audit_log_id"`

	AuditLogGigID uint `gorm:"not null;index:idx_audit_logs_gig;column:audit_log_gig_id" json:"audit_log_gig_id"`

	AuditLogAt     time.Time      `gorm:"autoCreateTime;column:audit_log_at" json:"audit_log_at"`
	AuditLogActor  string         `gorm:"type:varchar(254);not null;column:audit_log_actor" json:"audit_log_actor"`
	AuditLogAction string         `gorm:"type:varchar(60);not null;index;column:audit_log_action" json:"audit_log_action"`
	AuditLogDetail datatypes.JSON `gorm:"type:jsonb;column:audit_log_detail" json:"audit_log_detail,omitempty"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

/* =========================
   Action names
========================= */

const (
	ActionGigCreated      = "gig_created"
	ActionGigAssigned     = "gig_assigned"
	ActionGigUnassigned   = "gig_unassigned"
	ActionGigStarted      = "gig_started"
	ActionGigOnHold       = "gig_on_hold"
	ActionGigResumed      = "gig_resumed"
	ActionGigCompleted    = "gig_completed"
	ActionGigCancelled    = "gig_cancelled"
	ActionGigExpired      = "gig_expired"
	ActionGigResized      = "gig_hours_resized"
	ActionHoursAdjusted   = "gig_hours_adjusted"
	ActionSessionCreated  = "session_created"
	ActionSessionUpdated  = "session_updated"
	ActionSessionDeleted  = "session_deleted"
	ActionSessionVerified = "session_verified"
	ActionSessionUnverified = "session_unverified"
	ActionMeetingScheduled = "meeting_scheduled"
	ActionMeetingCancelled = "meeting_cancelled"
)
