// internals/features/gigs/reports/service/report_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"quest4knowledge_backend/internals/apperr"
	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
	sessionModel "quest4knowledge_backend/internals/features/gigs/gig_sessions/model"
	"quest4knowledge_backend/internals/helpers/hourledger"
	"quest4knowledge_backend/internals/helpers/refcode"
)

/* =========================================================
   Reporting aggregator. Read-only, no locks: a report is a
   snapshot, slight staleness under concurrent writes is
   fine. Zero denominators always yield 0, never a division
   error.
========================================================= */

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

/* =========================
   Per-gig report
========================= */

type GigReport struct {
	GigRefCode string `json:"gig_ref_code"`
	Status     string `json:"gig_status"`

	HoursTotal        decimal.Decimal `json:"hours_total"`
	HoursCompleted    decimal.Decimal `json:"hours_completed"`
	HoursRemaining    decimal.Decimal `json:"hours_remaining"`
	CompletionPercent decimal.Decimal `json:"completion_percent"`

	TutorHourlyRate  decimal.Decimal `json:"tutor_hourly_rate"`
	ClientHourlyRate decimal.Decimal `json:"client_hourly_rate"`
	ProfitMargin     decimal.Decimal `json:"profit_margin"`
	ProfitPercent    decimal.Decimal `json:"profit_percent"`

	IsOverdue     bool `json:"is_overdue"`
	DaysRemaining int  `json:"days_remaining"`

	SessionsLogged     int64 `json:"sessions_logged"`
	SessionsVerified   int64 `json:"sessions_verified"`
	SessionsUnverified int64 `json:"sessions_unverified"`
}

// BuildGigReport derives every per-gig metric from the gig row alone.
// Session counts are filled in by the service.
func BuildGigReport(g *gigModel.GigModel, now time.Time) GigReport {
	completed := g.HoursCompleted()
	profit := g.GigTotalClientFee.Sub(g.GigTotalTutorRemuneration)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return GigReport{
		GigRefCode:        g.RefCode(),
		Status:            string(g.GigStatus),
		HoursTotal:        g.GigTotalHours,
		HoursCompleted:    completed,
		HoursRemaining:    g.GigTotalHoursRemaining,
		CompletionPercent: hourledger.RatioPercent(completed, g.GigTotalHours),
		TutorHourlyRate:   hourledger.PerHour(g.GigTotalTutorRemuneration, g.GigTotalHours),
		ClientHourlyRate:  hourledger.PerHour(g.GigTotalClientFee, g.GigTotalHours),
		ProfitMargin:      hourledger.Round2(profit),
		ProfitPercent:     hourledger.RatioPercent(profit, g.GigTotalClientFee),
		IsOverdue:         g.GigStatus == gigModel.GigStatusActive && g.GigEndDate.Before(today),
		DaysRemaining:     daysRemaining(g.GigEndDate, today),
	}
}

// daysRemaining is 0 once the end date has passed, never negative.
func daysRemaining(endDate, today time.Time) int {
	d := int(endDate.Sub(today).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func (svc *ReportService) GigReport(ctx context.Context, gigID uint) (*GigReport, error) {
	var gig gigModel.GigModel
	if err := svc.DB.WithContext(ctx).First(&gig, gigID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("gig %s not found", refcode.Gig(gigID))
		}
		return nil, err
	}

	report := BuildGigReport(&gig, time.Now().UTC())

	type sessionCounts struct {
		Logged   int64
		Verified int64
	}
	var counts sessionCounts
	err := svc.DB.WithContext(ctx).
		Model(&sessionModel.GigSessionModel{}).
		Select("COUNT(*) AS logged, COUNT(*) FILTER (WHERE gig_session_is_verified) AS verified").
		Where("gig_session_gig_id = ?", gigID).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	report.SessionsLogged = counts.Logged
	report.SessionsVerified = counts.Verified
	report.SessionsUnverified = counts.Logged - counts.Verified
	return &report, nil
}

/* =========================
   Dashboard rollup
========================= */

type DashboardReport struct {
	GigsByStatus    map[string]int64 `json:"gigs_by_status"`
	UnassignedCount int64            `json:"unassigned_count"`
	OverdueCount    int64            `json:"overdue_count"`

	TotalVerifiedHours decimal.Decimal `json:"total_verified_hours"`

	// Money totals exclude cancelled gigs.
	TotalRemuneration decimal.Decimal `json:"total_remuneration"`
	TotalClientFee    decimal.Decimal `json:"total_client_fee"`
	TotalProfit       decimal.Decimal `json:"total_profit"`

	SessionsAwaitingVerification int64 `json:"sessions_awaiting_verification"`
}

func (svc *ReportService) Dashboard(ctx context.Context) (*DashboardReport, error) {
	db := svc.DB.WithContext(ctx)
	out := &DashboardReport{GigsByStatus: map[string]int64{}}

	var statusRows []struct {
		Status string
		N      int64
	}
	if err := db.Model(&gigModel.GigModel{}).
		Select("gig_status AS status, COUNT(*) AS n").
		Group("gig_status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		out.GigsByStatus[row.Status] = row.N
	}

	if err := db.Model(&gigModel.GigModel{}).
		Where("gig_tutor_id IS NULL AND gig_status NOT IN ?",
			[]gigModel.GigStatus{gigModel.GigStatusCompleted, gigModel.GigStatusCancelled, gigModel.GigStatusExpired}).
		Count(&out.UnassignedCount).Error; err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format("2006-01-02")
	if err := db.Model(&gigModel.GigModel{}).
		Where("gig_status = ? AND gig_end_date < ?", gigModel.GigStatusActive, today).
		Count(&out.OverdueCount).Error; err != nil {
		return nil, err
	}

	var moneyRow struct {
		VerifiedHours decimal.Decimal
		Remuneration  decimal.Decimal
		ClientFee     decimal.Decimal
	}
	if err := db.Model(&gigModel.GigModel{}).
		Select(`COALESCE(SUM(gig_total_hours - gig_total_hours_remaining), 0) AS verified_hours,
			COALESCE(SUM(gig_total_tutor_remuneration), 0) AS remuneration,
			COALESCE(SUM(gig_total_client_fee), 0) AS client_fee`).
		Where("gig_status <> ?", gigModel.GigStatusCancelled).
		Scan(&moneyRow).Error; err != nil {
		return nil, err
	}
	out.TotalVerifiedHours = hourledger.Round2(moneyRow.VerifiedHours)
	out.TotalRemuneration = hourledger.Round2(moneyRow.Remuneration)
	out.TotalClientFee = hourledger.Round2(moneyRow.ClientFee)
	out.TotalProfit = hourledger.Round2(moneyRow.ClientFee.Sub(moneyRow.Remuneration))

	if err := db.Model(&sessionModel.GigSessionModel{}).
		Where("gig_session_is_verified = false").
		Count(&out.SessionsAwaitingVerification).Error; err != nil {
		return nil, err
	}

	return out, nil
}
