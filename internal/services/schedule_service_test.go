package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentflow/internal/models"
)

func TestSplitWeekly(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		want  [4]int64
	}{
		{"even split", 120000, [4]int64{30000, 30000, 30000, 30000}},
		{"even thousand", 100000, [4]int64{25000, 25000, 25000, 25000}},
		{"remainder to last", 1001, [4]int64{250, 250, 250, 251}},
		{"three cent remainder", 999, [4]int64{249, 249, 249, 252}},
		{"zero", 0, [4]int64{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitWeekly(tt.total)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.total, got[0]+got[1]+got[2]+got[3])
		})
	}
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(120000), ToCents(1200.00))
	assert.Equal(t, int64(1001), ToCents(10.01))
	assert.Equal(t, int64(100), ToCents(0.999))
	assert.Equal(t, int64(0), ToCents(0))
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2024, time.July, 19, 15, 30, 45, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), MonthStart(in))
}

func TestDedupeSchedules_KeepsMostRecentlyUpdated(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	start := base

	older := &models.PaymentSchedule{
		ID: "ps_old", LeaseID: "lease_1", RentAmountCents: 90000, DueDay: 1,
		StartDate: &start, UpdatedAt: base,
	}
	newer := &models.PaymentSchedule{
		ID: "ps_new", LeaseID: "lease_1", RentAmountCents: 90000, DueDay: 1,
		StartDate: &start, UpdatedAt: base.Add(48 * time.Hour),
	}
	distinct := &models.PaymentSchedule{
		ID: "ps_other", LeaseID: "lease_1", RentAmountCents: 95000, DueDay: 1,
		StartDate: &start, UpdatedAt: base,
	}

	out := DedupeSchedules([]*models.PaymentSchedule{older, distinct, newer})

	assert.Len(t, out, 2)
	assert.Equal(t, "ps_old", out[0].ID)
	assert.Equal(t, "ps_other", out[1].ID)

	// Same input with the newer duplicate winning its group.
	out = DedupeSchedules([]*models.PaymentSchedule{newer, distinct, older})
	assert.Len(t, out, 2)
	assert.Equal(t, "ps_new", out[0].ID)
}

func TestDedupeSchedules_NilDatesGroupTogether(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	a := &models.PaymentSchedule{ID: "a", LeaseID: "lease_1", RentAmountCents: 50000, DueDay: 5, UpdatedAt: base}
	b := &models.PaymentSchedule{ID: "b", LeaseID: "lease_1", RentAmountCents: 50000, DueDay: 5, UpdatedAt: base.Add(time.Hour)}

	out := DedupeSchedules([]*models.PaymentSchedule{a, b})

	assert.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
}

func TestDedupeSchedules_DifferentLeasesStayApart(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	a := &models.PaymentSchedule{ID: "a", LeaseID: "lease_1", RentAmountCents: 50000, DueDay: 5, UpdatedAt: base}
	b := &models.PaymentSchedule{ID: "b", LeaseID: "lease_2", RentAmountCents: 50000, DueDay: 5, UpdatedAt: base}

	out := DedupeSchedules([]*models.PaymentSchedule{a, b})
	assert.Len(t, out, 2)
}
