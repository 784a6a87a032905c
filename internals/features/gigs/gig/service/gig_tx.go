// internals/features/gigs/gig/service/gig_tx.go
package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quest4knowledge_backend/internals/apperr"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	helper "quest4knowledge_backend/internals/helpers"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================================================
   Locked gig transactions.

   Every mutation of a gig or its sessions runs through here:
   one transaction, SELECT ... FOR UPDATE on the gig row, so
   concurrent verify/unverify/edit cannot interleave into a
   lost update on total_hours_remaining. Retryable contention
   (serialization failure, deadlock) is retried a bounded
   number of times before surfacing as a concurrency
   conflict.
========================================================= */

const (
	maxTxAttempts  = 3
	txRetryBackoff = 50 * time.Millisecond
)

// WithGigLock loads the gig under a row lock and runs fn inside the same
// transaction. fn must persist whatever it mutates via tx.
func WithGigLock(ctx context.Context, db *gorm.DB, gigID uint, fn func(tx *gorm.DB, gig *gigModel.GigModel) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var gig gigModel.GigModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&gig, gigID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("gig %s not found", refcode.Gig(gigID))
				}
				return err
			}
			return fn(tx, &gig)
		})
		if err == nil {
			return nil
		}
		if !helper.IsRetryableTxError(err) {
			return err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt) * txRetryBackoff)
	}
	return apperr.ConcurrencyConflict(lastErr)
}
