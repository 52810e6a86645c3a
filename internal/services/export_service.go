package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/validator"
)

const exportSheet = "Repair Orders"

var exportHeader = []string{
	"ID", "Room", "Category", "Description", "Status",
	"Student", "Repairman", "Appointment", "Created", "Completed",
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportOrders renders every order into an xlsx workbook for offline
// reporting.
func (s *exportService) ExportOrders(ctx context.Context, actor Actor) ([]byte, error) {
	if err := Decide(actor, ActionExportOrders, Perspective{}); err != nil {
		return nil, err
	}

	orders, err := s.repo.RepairOrder().List(ctx, repositories.RepairOrderFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list repair orders: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, order := range orders {
		row := []interface{}{
			order.ID,
			order.Room,
			categoryName(order),
			order.Description,
			string(order.Status),
			userName(order.Student),
			userName(order.Repairman),
			formatOptionalTime(order.AppointmentTime),
			order.CreatedAt.Format("2006-01-02 15:04:05"),
			formatOptionalTime(order.CompletedAt),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve row cell: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("repair orders exported", "count", len(orders), "actor_id", actor.ID)
	return buf.Bytes(), nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(validator.AppointmentTimeLayout)
}
