package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

const (
	ProrationDaily = "daily"
	ProrationExact = "exact"

	defaultDaysInMonth = 30
)

type ProrationService struct {
	rules  *repositories.ProrationRuleRepository
	logger *zap.Logger
}

func NewProrationService(rules *repositories.ProrationRuleRepository, logger *zap.Logger) *ProrationService {
	return &ProrationService{rules: rules, logger: logger}
}

type ProrationInput struct {
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	MonthlyRent     *float64   `json:"monthlyRent"`
	ProrationMethod string     `json:"prorationMethod"`
	LeaseID         string     `json:"leaseId"`
	OrganizationID  string     `json:"organizationId"`
}

type ProrationBreakdown struct {
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	DaysInMonth   int    `json:"daysInMonth"`
	DailyRateCents int64 `json:"dailyRateCents"`
}

type ProrationResult struct {
	ProratedAmountCents int64              `json:"proratedAmountCents"`
	MonthlyRentCents    int64              `json:"monthlyRentCents"`
	DaysInPeriod        int                `json:"daysInPeriod"`
	ProrationMethod     string             `json:"prorationMethod"`
	Breakdown           ProrationBreakdown `json:"breakdown"`
}

// Calculate computes the prorated rent for a partial period. A per-lease
// rule, when present, overrides the caller's method and days-in-month for
// the daily branch. Unknown methods yield a zero amount without failing.
func (s *ProrationService) Calculate(in ProrationInput) (*ProrationResult, error) {
	if in.StartDate == nil {
		return nil, apperr.Validation("startDate")
	}
	if in.EndDate == nil {
		return nil, apperr.Validation("endDate")
	}
	if in.MonthlyRent == nil {
		return nil, apperr.Validation("monthlyRent")
	}

	method := in.ProrationMethod
	if method == "" {
		method = ProrationDaily
	}
	daysInMonth := defaultDaysInMonth

	if in.LeaseID != "" {
		rule, err := s.rules.GetByLeaseID(in.LeaseID, in.OrganizationID)
		if err != nil {
			s.logger.Error("proration rule lookup failed",
				zap.String("lease_id", in.LeaseID),
				zap.Error(err),
			)
			return nil, err
		}
		if rule != nil {
			if rule.ProrationMethod != "" {
				method = rule.ProrationMethod
			}
			if rule.DaysInMonth > 0 {
				daysInMonth = rule.DaysInMonth
			}
		}
	}

	return Prorate(*in.StartDate, *in.EndDate, *in.MonthlyRent, method, daysInMonth), nil
}

type ProrationRuleInput struct {
	LeaseID         string `json:"leaseId"`
	ProrationMethod string `json:"prorationMethod"`
	DaysInMonth     int    `json:"daysInMonth"`
	OrganizationID  string `json:"organizationId"`
}

// SetRule stores a per-lease override for later Calculate calls.
func (s *ProrationService) SetRule(in ProrationRuleInput) (*models.ProrationRule, error) {
	if in.LeaseID == "" {
		return nil, apperr.Validation("leaseId")
	}
	if in.ProrationMethod != "" && in.ProrationMethod != ProrationDaily && in.ProrationMethod != ProrationExact {
		return nil, apperr.Validationf("prorationMethod", "must be %q or %q", ProrationDaily, ProrationExact)
	}
	rule := &models.ProrationRule{
		LeaseID:         in.LeaseID,
		ProrationMethod: in.ProrationMethod,
		DaysInMonth:     in.DaysInMonth,
		OrganizationID:  in.OrganizationID,
	}
	if rule.ProrationMethod == "" {
		rule.ProrationMethod = ProrationDaily
	}
	if rule.DaysInMonth <= 0 {
		rule.DaysInMonth = defaultDaysInMonth
	}
	if err := s.rules.Upsert(rule); err != nil {
		s.logger.Error("upsert proration rule failed", zap.Error(err))
		return nil, err
	}
	return rule, nil
}

// Prorate is the pure calculation behind Calculate.
func Prorate(start, end time.Time, monthlyRent float64, method string, daysInMonth int) *ProrationResult {
	daysInPeriod := DaysInPeriod(start, end)

	rent := decimal.NewFromFloat(monthlyRent)
	result := &ProrationResult{
		MonthlyRentCents: rent.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		DaysInPeriod:     daysInPeriod,
		ProrationMethod:  method,
		Breakdown: ProrationBreakdown{
			StartDate:   start.UTC().Format(time.RFC3339),
			EndDate:     end.UTC().Format(time.RFC3339),
			DaysInMonth: daysInMonth,
		},
	}

	var divisor int
	switch method {
	case ProrationDaily:
		divisor = daysInMonth
	case ProrationExact:
		divisor = CalendarDaysInMonth(start)
		result.Breakdown.DaysInMonth = divisor
	default:
		// Unknown methods are a silent no-op: the amount stays zero.
		return result
	}

	dailyRate := rent.Div(decimal.NewFromInt(int64(divisor)))
	result.Breakdown.DailyRateCents = dailyRate.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	result.ProratedAmountCents = dailyRate.
		Mul(decimal.NewFromInt(int64(daysInPeriod))).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	return result
}

// DaysInPeriod counts days between start and end, rounding partial days up.
func DaysInPeriod(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// CalendarDaysInMonth is the length of t's month (28-31).
func CalendarDaysInMonth(t time.Time) int {
	t = t.UTC()
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
