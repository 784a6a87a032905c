// internals/features/gigs/reports/service/report_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	gigModel "quest4knowledge_backend/internals/features/gigs/gig/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func reportGig() *gigModel.GigModel {
	return &gigModel.GigModel{
		GigID:                     3,
		GigStatus:                 gigModel.GigStatusActive,
		GigTotalTutorRemuneration: dec("3000.00"),
		GigTotalClientFee:         dec("4500.00"),
		GigTotalHours:             dec("10.00"),
		GigTotalHoursRemaining:    dec("6.00"),
		GigStartDate:              day(2026, 3, 1),
		GigEndDate:                day(2026, 3, 31),
	}
}

func TestBuildGigReportMetrics(t *testing.T) {
	r := BuildGigReport(reportGig(), day(2026, 3, 10))

	assert.True(t, r.HoursCompleted.Equal(dec("4.00")), "hours completed: %s", r.HoursCompleted)
	assert.True(t, r.CompletionPercent.Equal(dec("40.00")), "completion: %s", r.CompletionPercent)
	assert.True(t, r.TutorHourlyRate.Equal(dec("300.00")), "tutor rate: %s", r.TutorHourlyRate)
	assert.True(t, r.ClientHourlyRate.Equal(dec("450.00")), "client rate: %s", r.ClientHourlyRate)
	assert.True(t, r.ProfitMargin.Equal(dec("1500.00")), "profit: %s", r.ProfitMargin)
	assert.True(t, r.ProfitPercent.Equal(dec("33.33")), "profit %%: %s", r.ProfitPercent)
	assert.False(t, r.IsOverdue)
	assert.Equal(t, 21, r.DaysRemaining)
}

func TestBuildGigReportZeroDenominators(t *testing.T) {
	g := reportGig()
	g.GigTotalHours = decimal.Zero
	g.GigTotalHoursRemaining = decimal.Zero
	g.GigTotalClientFee = decimal.Zero
	g.GigTotalTutorRemuneration = decimal.Zero

	r := BuildGigReport(g, day(2026, 3, 10))

	assert.True(t, r.CompletionPercent.IsZero())
	assert.True(t, r.TutorHourlyRate.IsZero())
	assert.True(t, r.ClientHourlyRate.IsZero())
	assert.True(t, r.ProfitPercent.IsZero())
}

func TestBuildGigReportOverdue(t *testing.T) {
	g := reportGig()
	r := BuildGigReport(g, day(2026, 4, 2))

	assert.True(t, r.IsOverdue)
	assert.Equal(t, 0, r.DaysRemaining, "past due never reports negative days")
}

func TestBuildGigReportOverdueOnlyWhenActive(t *testing.T) {
	g := reportGig()
	g.GigStatus = gigModel.GigStatusCompleted
	g.GigTotalHoursRemaining = decimal.Zero

	r := BuildGigReport(g, day(2026, 4, 2))
	assert.False(t, r.IsOverdue, "a closed gig is not overdue")
}

func TestBuildGigReportEndDateTodayNotOverdue(t *testing.T) {
	g := reportGig()
	r := BuildGigReport(g, day(2026, 3, 31))
	assert.False(t, r.IsOverdue)
	assert.Equal(t, 0, r.DaysRemaining)
}

func TestBuildGigReportRounding(t *testing.T) {
	g := reportGig()
	g.GigTotalHours = dec("3.00")
	g.GigTotalHoursRemaining = dec("2.00")
	g.GigTotalTutorRemuneration = dec("1000.00")
	g.GigTotalClientFee = dec("2000.00")

	r := BuildGigReport(g, day(2026, 3, 10))

	assert.True(t, r.CompletionPercent.Equal(dec("33.33")), "completion: %s", r.CompletionPercent)
	assert.True(t, r.TutorHourlyRate.Equal(dec("333.33")), "tutor rate: %s", r.TutorHourlyRate)
	assert.True(t, r.ClientHourlyRate.Equal(dec("666.67")), "half-up rounding: %s", r.ClientHourlyRate)
}
