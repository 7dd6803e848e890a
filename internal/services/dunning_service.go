package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"rentflow/internal/models"
	"rentflow/internal/pdf"
	"rentflow/internal/repositories"
)

type DunningService struct {
	settings *repositories.DunningRepository
	invoices *repositories.InvoiceRepository
	leases   *repositories.LeaseRepository
	tenants  *repositories.TenantRepository
	email    EmailService
	telegram *TelegramService
	pdfGen   pdf.Generator
	logger   *zap.Logger
}

func NewDunningService(
	settings *repositories.DunningRepository,
	invoices *repositories.InvoiceRepository,
	leases *repositories.LeaseRepository,
	tenants *repositories.TenantRepository,
	email EmailService,
	telegram *TelegramService,
	pdfGen pdf.Generator,
	logger *zap.Logger,
) *DunningService {
	return &DunningService{
		settings: settings,
		invoices: invoices,
		leases:   leases,
		tenants:  tenants,
		email:    email,
		telegram: telegram,
		pdfGen:   pdfGen,
		logger:   logger,
	}
}

// GetSettings returns the organization's thresholds, falling back to the
// defaults when no row exists. The fallback is read-only: nothing is
// persisted on this path.
func (s *DunningService) GetSettings(organizationID string) (*models.DunningSettings, error) {
	stored, err := s.settings.Get(organizationID)
	if err != nil {
		s.logger.Error("get dunning settings failed", zap.Error(err))
		return nil, err
	}
	if stored == nil {
		return models.DefaultDunningSettings(organizationID), nil
	}
	return stored, nil
}

type DunningSettingsInput struct {
	FirstNoticeDays  int    `json:"firstNoticeDays"`
	SecondNoticeDays int    `json:"secondNoticeDays"`
	ThirdNoticeDays  int    `json:"thirdNoticeDays"`
	FinalNoticeDays  int    `json:"finalNoticeDays"`
	OrganizationID   string `json:"organizationId"`
}

func (s *DunningService) UpdateSettings(in DunningSettingsInput) (*models.DunningSettings, error) {
	settings := &models.DunningSettings{
		OrganizationID:   in.OrganizationID,
		FirstNoticeDays:  in.FirstNoticeDays,
		SecondNoticeDays: in.SecondNoticeDays,
		ThirdNoticeDays:  in.ThirdNoticeDays,
		FinalNoticeDays:  in.FinalNoticeDays,
		IsActive:         true,
	}
	if err := s.settings.Upsert(settings); err != nil {
		s.logger.Error("upsert dunning settings failed", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

// NoticeStageFor returns the highest notice stage (1-4) whose threshold is
// reached at daysPastDue, or 0 when no notice is due yet.
func NoticeStageFor(settings *models.DunningSettings, daysPastDue int) int {
	stage := 0
	thresholds := []int{
		settings.FirstNoticeDays,
		settings.SecondNoticeDays,
		settings.ThirdNoticeDays,
		settings.FinalNoticeDays,
	}
	for i, threshold := range thresholds {
		if daysPastDue >= threshold {
			stage = i + 1
		}
	}
	return stage
}

// ProcessOverdueInvoices walks every open invoice past its due date and
// sends the next notice where one is due. Per-invoice failures are logged
// and skipped; the scan always finishes. Returns the number of notices sent.
func (s *DunningService) ProcessOverdueInvoices(now time.Time) int {
	overdue, err := s.invoices.ListOverdueOpen(now)
	if err != nil {
		s.logger.Error("dunning scan: list overdue invoices failed", zap.Error(err))
		return 0
	}

	settingsByOrg := make(map[string]*models.DunningSettings)
	sent := 0
	for _, inv := range overdue {
		settings, ok := settingsByOrg[inv.OrganizationID]
		if !ok {
			settings, err = s.GetSettings(inv.OrganizationID)
			if err != nil {
				continue
			}
			settingsByOrg[inv.OrganizationID] = settings
		}

		stage := NoticeStageFor(settings, inv.DaysPastDue(now))
		if stage <= inv.NoticeStage {
			continue
		}

		if err := s.sendNotice(inv, stage, now); err != nil {
			s.logger.Warn("dunning notice failed",
				zap.String("invoice_id", inv.ID),
				zap.Int("stage", stage),
				zap.Error(err),
			)
			continue
		}
		if err := s.invoices.SetNoticeStage(inv.ID, inv.OrganizationID, stage, now); err != nil {
			s.logger.Error("record notice stage failed",
				zap.String("invoice_id", inv.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	if sent > 0 || len(overdue) > 0 {
		s.logger.Info("dunning scan finished",
			zap.Int("overdue", len(overdue)),
			zap.Int("notices_sent", sent),
		)
	}
	return sent
}

func (s *DunningService) sendNotice(inv *models.Invoice, stage int, now time.Time) error {
	lease, err := s.leases.GetByID(inv.LeaseID, inv.OrganizationID)
	if err != nil {
		return err
	}
	if lease == nil {
		return fmt.Errorf("lease %s missing for invoice %s", inv.LeaseID, inv.ID)
	}
	tenant, err := s.tenants.GetByID(lease.TenantID, inv.OrganizationID)
	if err != nil {
		return err
	}
	if tenant == nil || tenant.Email == "" {
		return fmt.Errorf("no tenant email for invoice %s", inv.ID)
	}

	notice, err := s.pdfGen.GenerateDunningNotice(pdf.NoticeData{
		TenantName:  tenant.FullName(),
		UnitLabel:   lease.UnitLabel,
		Stage:       stage,
		AmountCents: inv.AmountCents,
		DueDate:     inv.DueDate,
		IssuedAt:    now,
	})
	if err != nil {
		return err
	}

	if err := s.email.SendDunningNotice(tenant.Email, tenant.FullName(), stage, inv.AmountCents, inv.DueDate, notice); err != nil {
		return err
	}

	// Managers get pinged only when the escalation is exhausted.
	if stage >= 4 {
		alert := fmt.Sprintf("Final notice sent: %s owes $%.2f (invoice %s, due %s)",
			tenant.FullName(), float64(inv.AmountCents)/100, inv.ID, inv.DueDate.Format("2006-01-02"))
		if err := s.telegram.SendManagerAlert(alert); err != nil {
			s.logger.Warn("manager alert failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		}
	}
	return nil
}
