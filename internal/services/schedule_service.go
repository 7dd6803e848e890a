package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

// WeeklyDueDays are the four in-month due days a weekly plan occupies.
var WeeklyDueDays = []int{1, 8, 15, 22}

type ScheduleService struct {
	repo   *repositories.ScheduleRepository
	logger *zap.Logger
}

func NewScheduleService(repo *repositories.ScheduleRepository, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{repo: repo, logger: logger}
}

// List fetches the organization's schedules (optionally one lease) and
// collapses duplicates.
func (s *ScheduleService) List(organizationID, leaseID string) ([]*models.PaymentSchedule, error) {
	rows, err := s.repo.List(organizationID, leaseID)
	if err != nil {
		s.logger.Error("list payment schedules failed", zap.Error(err))
		return nil, err
	}
	return DedupeSchedules(rows), nil
}

// DedupeSchedules groups rows by (lease, amount, due day, start, end) and
// keeps only the most recently updated row per group. Output preserves the
// order groups were first seen in.
func DedupeSchedules(rows []*models.PaymentSchedule) []*models.PaymentSchedule {
	type group struct {
		index int
		row   *models.PaymentSchedule
	}
	seen := make(map[string]*group, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		key := scheduleKey(row)
		if g, ok := seen[key]; ok {
			if row.UpdatedAt.After(g.row.UpdatedAt) {
				g.row = row
			}
			continue
		}
		seen[key] = &group{index: len(order), row: row}
		order = append(order, key)
	}

	out := make([]*models.PaymentSchedule, 0, len(order))
	for _, key := range order {
		out = append(out, seen[key].row)
	}
	return out
}

func scheduleKey(s *models.PaymentSchedule) string {
	start := "null"
	if s.StartDate != nil {
		start = s.StartDate.UTC().Format(time.RFC3339)
	}
	end := "null"
	if s.EndDate != nil {
		end = s.EndDate.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s|%d|%d|%s|%s", s.LeaseID, s.RentAmountCents, s.DueDay, start, end)
}

type CreateScheduleInput struct {
	LeaseID        string     `json:"leaseId"`
	RentAmount     *float64   `json:"rentAmount"`
	DueDay         *int       `json:"dueDay"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	IsActive       *bool      `json:"isActive"`
	OrganizationID string     `json:"organizationId"`
}

// CreatedSchedule echoes the caller's decimal rentAmount alongside the
// stored record. The stored amount is integer cents; the echo matches what
// API consumers historically received.
type CreatedSchedule struct {
	models.PaymentSchedule
	RentAmount float64 `json:"rentAmount"`
}

func (s *ScheduleService) Create(in CreateScheduleInput) (*CreatedSchedule, error) {
	if in.LeaseID == "" {
		return nil, apperr.Validation("leaseId")
	}
	if in.RentAmount == nil {
		return nil, apperr.Validation("rentAmount")
	}

	now := time.Now().UTC()
	dueDay := 1
	if in.DueDay != nil {
		dueDay = *in.DueDay
	}
	startDate := in.StartDate
	if startDate == nil {
		startDate = &now
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	sched := &models.PaymentSchedule{
		ID:              "ps_" + uuid.NewString(),
		LeaseID:         in.LeaseID,
		RentAmountCents: ToCents(*in.RentAmount),
		DueDay:          dueDay,
		StartDate:       startDate,
		EndDate:         in.EndDate,
		IsActive:        isActive,
		CreatedAt:       now,
		UpdatedAt:       now,
		OrganizationID:  in.OrganizationID,
	}
	if err := s.repo.Create(sched); err != nil {
		s.logger.Error("create payment schedule failed", zap.Error(err))
		return nil, err
	}
	return &CreatedSchedule{PaymentSchedule: *sched, RentAmount: *in.RentAmount}, nil
}

// ToCents converts a decimal currency amount to integer cents, rounding
// half away from zero.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type WeeklyPlanInput struct {
	LeaseID        string     `json:"leaseId"`
	MonthlyRent    *float64   `json:"monthlyRent"`
	StartDate      *time.Time `json:"startDate"`
	OrganizationID string     `json:"organizationId"`
}

type WeeklyInstallment struct {
	ID          string `json:"id"`
	LeaseID     string `json:"leaseId"`
	AmountCents int64  `json:"amount"`
	DueDay      int    `json:"dueDay"`
}

// GenerateWeeklyPlan replaces the lease's weekly installment rows with four
// new ones derived from the monthly rent. Rows at other due days survive.
func (s *ScheduleService) GenerateWeeklyPlan(in WeeklyPlanInput) ([]WeeklyInstallment, error) {
	if in.LeaseID == "" {
		return nil, apperr.Validation("leaseId")
	}
	if in.MonthlyRent == nil {
		return nil, apperr.Validation("monthlyRent")
	}

	now := time.Now().UTC()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	monthStart := MonthStart(start)

	amounts := SplitWeekly(ToCents(*in.MonthlyRent))

	rows := make([]*models.PaymentSchedule, 0, len(WeeklyDueDays))
	installments := make([]WeeklyInstallment, 0, len(WeeklyDueDays))
	for i, day := range WeeklyDueDays {
		sd := monthStart
		row := &models.PaymentSchedule{
			ID:              "ps_" + uuid.NewString(),
			LeaseID:         in.LeaseID,
			RentAmountCents: amounts[i],
			DueDay:          day,
			StartDate:       &sd,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
			OrganizationID:  in.OrganizationID,
		}
		rows = append(rows, row)
		installments = append(installments, WeeklyInstallment{
			ID:          row.ID,
			LeaseID:     row.LeaseID,
			AmountCents: row.RentAmountCents,
			DueDay:      row.DueDay,
		})
	}

	if err := s.repo.ReplaceWeekly(in.LeaseID, in.OrganizationID, WeeklyDueDays, rows); err != nil {
		s.logger.Error("weekly plan generation failed",
			zap.String("lease_id", in.LeaseID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("weekly plan generated",
		zap.String("lease_id", in.LeaseID),
		zap.Int64("total_cents", amounts[0]+amounts[1]+amounts[2]+amounts[3]),
	)
	return installments, nil
}

// SplitWeekly divides totalCents into four installments. The last one
// absorbs the rounding remainder so the four always sum to totalCents.
func SplitWeekly(totalCents int64) [4]int64 {
	base := totalCents / 4
	remainder := totalCents - base*4
	return [4]int64{base, base, base, base + remainder}
}

// MonthStart normalizes t to the first day of its month, midnight UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
