package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

const reportSheet = "Logins"

type Reports struct {
	ledger store.Ledger
}

func NewReports(l store.Ledger) *Reports {
	return &Reports{ledger: l}
}

// LoginReport lists every check-in, newest first.
func (r *Reports) LoginReport(ctx context.Context) ([]types.ReportRow, error) {
	recs, err := r.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	out := make([]types.ReportRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, types.ReportRow{
			Nome: rec.Name,
			Data: rec.Day,
			Hora: rec.Time.String(),
		})
	}
	return out, nil
}

// WriteXLSX renders the login report as a single-sheet workbook.
func (r *Reports) WriteXLSX(ctx context.Context, w io.Writer) error {
	rows, err := r.LoginReport(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "A", "A", 28); err != nil {
		return fmt.Errorf("xlsx col width: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "B", "C", 14); err != nil {
		return fmt.Errorf("xlsx col width: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	if err := f.SetSheetRow(reportSheet, "A1", &[]any{"Nome", "Data", "Hora"}); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	if err := f.SetCellStyle(reportSheet, "A1", "C1", header); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(reportSheet, cell, &[]any{row.Nome, row.Data, row.Hora}); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
