package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentflow/internal/apperr"
	"rentflow/internal/models"
	"rentflow/internal/repositories"
)

const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
)

// Allowed status transitions. Approved and denied are terminal; there is
// no support for re-opening a decided request.
var changeRequestTransitions = map[string]map[string]bool{
	models.ChangeRequestPending:  {models.ChangeRequestApproved: true, models.ChangeRequestDenied: true},
	models.ChangeRequestApproved: {},
	models.ChangeRequestDenied:   {},
}

func canTransition(current, to string) bool {
	nexts, ok := changeRequestTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}

type ChangeRequestService struct {
	requests   *repositories.ChangeRequestRepository
	schedules  *repositories.ScheduleRepository
	tenants    *repositories.TenantRepository
	email      EmailService
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewChangeRequestService(
	requests *repositories.ChangeRequestRepository,
	schedules *repositories.ScheduleRepository,
	tenants *repositories.TenantRepository,
	email EmailService,
	dispatcher *Dispatcher,
	logger *zap.Logger,
) *ChangeRequestService {
	return &ChangeRequestService{
		requests:   requests,
		schedules:  schedules,
		tenants:    tenants,
		email:      email,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type CreateChangeRequestInput struct {
	ScheduleID         string     `json:"scheduleId"`
	TenantID           *string    `json:"tenantId"`
	RequestedDueDay    *int       `json:"requestedDueDay"`
	RequestedStartDate *time.Time `json:"requestedStartDate"`
	Reason             string     `json:"reason"`
	OrganizationID     string     `json:"organizationId"`
}

func (s *ChangeRequestService) Create(in CreateChangeRequestInput) (*models.ScheduleChangeRequest, error) {
	if in.ScheduleID == "" {
		return nil, apperr.Validation("scheduleId")
	}
	now := time.Now().UTC()
	cr := &models.ScheduleChangeRequest{
		ID:                 "scr_" + uuid.NewString(),
		ScheduleID:         in.ScheduleID,
		TenantID:           in.TenantID,
		RequestedDueDay:    in.RequestedDueDay,
		RequestedStartDate: in.RequestedStartDate,
		Reason:             in.Reason,
		Status:             models.ChangeRequestPending,
		CreatedAt:          now,
		UpdatedAt:          now,
		OrganizationID:     in.OrganizationID,
	}
	if err := s.requests.Create(cr); err != nil {
		s.logger.Error("create change request failed", zap.Error(err))
		return nil, err
	}
	return cr, nil
}

func (s *ChangeRequestService) List(organizationID, status string) ([]*models.ScheduleChangeRequest, error) {
	requests, err := s.requests.ListWithTenant(organizationID, status)
	if err != nil {
		s.logger.Error("list change requests failed", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

// Decide applies a manager's approve/deny action to a pending request and
// returns the updated request.
func (s *ChangeRequestService) Decide(id, organizationID, action, managerNote string) (*models.ScheduleChangeRequest, error) {
	var target string
	switch action {
	case ActionApprove:
		target = models.ChangeRequestApproved
	case ActionDeny:
		target = models.ChangeRequestDenied
	default:
		return nil, apperr.Validationf("action", "must be %q or %q", ActionApprove, ActionDeny)
	}

	cr, err := s.requests.GetByID(id, organizationID)
	if err != nil {
		s.logger.Error("load change request failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if cr == nil {
		return nil, apperr.NotFound("change request", id)
	}
	if !canTransition(cr.Status, target) {
		return nil, apperr.Validationf("status", "cannot %s a %s request", action, cr.Status)
	}

	now := time.Now().UTC()
	if target == models.ChangeRequestDenied {
		return s.deny(cr, managerNote, now)
	}
	return s.approve(cr, managerNote, now)
}

func (s *ChangeRequestService) deny(cr *models.ScheduleChangeRequest, managerNote string, now time.Time) (*models.ScheduleChangeRequest, error) {
	ok, err := s.requests.Deny(cr.ID, cr.OrganizationID, managerNote, now)
	if err != nil {
		s.logger.Error("deny change request failed", zap.String("id", cr.ID), zap.Error(err))
		return nil, err
	}
	if !ok {
		// Lost a race with another decision.
		return nil, apperr.Validationf("status", "request %s is no longer pending", cr.ID)
	}

	cr.Status = models.ChangeRequestDenied
	cr.ManagerNote = managerNote
	cr.UpdatedAt = now
	s.notifyDecision(cr, 0)
	return cr, nil
}

func (s *ChangeRequestService) approve(cr *models.ScheduleChangeRequest, managerNote string, now time.Time) (*models.ScheduleChangeRequest, error) {
	sched, err := s.schedules.GetByID(cr.ScheduleID, cr.OrganizationID)
	if err != nil {
		s.logger.Error("load schedule for approval failed", zap.String("schedule_id", cr.ScheduleID), zap.Error(err))
		return nil, err
	}
	if sched == nil {
		return nil, apperr.NotFound("payment schedule", cr.ScheduleID)
	}

	// Unset request fields fall back to the schedule's current terms.
	newDueDay := sched.DueDay
	if cr.RequestedDueDay != nil {
		newDueDay = *cr.RequestedDueDay
	}
	newStart := sched.StartDate
	if cr.RequestedStartDate != nil {
		newStart = cr.RequestedStartDate
	}

	ok, err := s.requests.Approve(cr.ID, cr.OrganizationID, managerNote, sched.ID, newDueDay, newStart, now)
	if err != nil {
		s.logger.Error("approve change request failed", zap.String("id", cr.ID), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, apperr.Validationf("status", "request %s is no longer pending", cr.ID)
	}

	cr.Status = models.ChangeRequestApproved
	cr.ManagerNote = managerNote
	cr.EffectiveDate = &now
	cr.UpdatedAt = now
	s.notifyDecision(cr, newDueDay)

	s.logger.Info("change request approved",
		zap.String("id", cr.ID),
		zap.String("schedule_id", sched.ID),
		zap.Int("due_day", newDueDay),
	)
	return cr, nil
}

// notifyDecision emails the tenant best-effort: the outcome never affects
// the API response, but failures land in the log.
func (s *ChangeRequestService) notifyDecision(cr *models.ScheduleChangeRequest, dueDay int) {
	if cr.TenantID == nil || s.email == nil {
		return
	}
	tenantID := *cr.TenantID
	orgID := cr.OrganizationID
	approved := cr.Status == models.ChangeRequestApproved
	note := cr.ManagerNote

	s.dispatcher.Go("change-request-decision-email", func() error {
		tenant, err := s.tenants.GetByID(tenantID, orgID)
		if err != nil {
			return err
		}
		if tenant == nil || tenant.Email == "" {
			s.logger.Debug("no tenant email for change request notification",
				zap.String("tenant_id", tenantID))
			return nil
		}
		return s.email.SendScheduleChangeDecision(tenant.Email, tenant.FullName(), approved, dueDay, note)
	})
}
