// internals/features/audit/service/audit_service.go
package service

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditModel "quest4knowledge_backend/internals/features/audit/model"
)

// Append writes one audit entry using the caller's transaction so the
// entry commits (or rolls back) together with the mutation it records.
func Append(tx *gorm.DB, gigID uint, actor, action string, detail map[string]interface{}) error {
	entry := auditModel.AuditLogModel{
		AuditLogGigID:  gigID,
		AuditLogActor:  actor,
		AuditLogAction: action,
	}
	if len(detail) > 0 {
		raw, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		entry.AuditLogDetail = datatypes.JSON(raw)
	}
	return tx.Create(&entry).Error
}
