package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"rentflow/internal/repositories"
)

const ledgerExportLimit = 10000

type ReportService struct {
	invoices *repositories.InvoiceRepository
	logger   *zap.Logger
}

func NewReportService(invoices *repositories.InvoiceRepository, logger *zap.Logger) *ReportService {
	return &ReportService{invoices: invoices, logger: logger}
}

type LedgerSummary struct {
	TotalInvoices    int   `json:"totalInvoices"`
	OpenInvoices     int   `json:"openInvoices"`
	PaidInvoices     int   `json:"paidInvoices"`
	CollectedCents   int64 `json:"collectedCents"`
	OutstandingCents int64 `json:"outstandingCents"`
}

func (s *ReportService) Summary(organizationID string) (*LedgerSummary, error) {
	agg, err := s.invoices.Summarize(organizationID)
	if err != nil {
		s.logger.Error("ledger summary failed", zap.Error(err))
		return nil, err
	}
	return &LedgerSummary{
		TotalInvoices:    agg.TotalCount,
		OpenInvoices:     agg.OpenCount,
		PaidInvoices:     agg.PaidCount,
		CollectedCents:   agg.CollectedCents,
		OutstandingCents: agg.OutstandingCents,
	}, nil
}

var ledgerExportHeader = []string{
	"Invoice ID",
	"Lease ID",
	"Amount",
	"Due Date",
	"Status",
	"Paid At",
	"Notice Stage",
}

// ExportLedgerXLSX renders the organization's rent ledger as a spreadsheet.
func (s *ReportService) ExportLedgerXLSX(organizationID string) ([]byte, error) {
	invoices, err := s.invoices.List(organizationID, "", "", ledgerExportLimit, 0)
	if err != nil {
		s.logger.Error("ledger export query failed", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Rent Ledger"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create ledger sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ledger header style: %w", err)
	}
	for i, h := range ledgerExportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(ledgerExportHeader), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for row, inv := range invoices {
		paidAt := ""
		if inv.PaidAt != nil {
			paidAt = inv.PaidAt.Format("2006-01-02")
		}
		values := []any{
			inv.ID,
			inv.LeaseID,
			float64(inv.AmountCents) / 100,
			inv.DueDate.Format("2006-01-02"),
			inv.Status,
			paidAt,
			inv.NoticeStage,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write ledger xlsx: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close ledger xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
