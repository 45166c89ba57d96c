package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
)

type exportService struct {
	students repositories.RecordRepository[models.Student]
	foods    repositories.RecordRepository[models.Food]
	logger   *slog.Logger
}

func NewExportService(
	students repositories.RecordRepository[models.Student],
	foods repositories.RecordRepository[models.Food],
	logger *slog.Logger,
) ExportService {
	return &exportService{students: students, foods: foods, logger: logger}
}

func (s *exportService) ExportStudents(ctx context.Context, w io.Writer) error {
	records, _, err := s.students.List(ctx, repositories.ListFilters{})
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}
	rows, err := toRows(records)
	if err != nil {
		return err
	}
	return s.export(ctx, "students", rows, w)
}

func (s *exportService) ExportFoods(ctx context.Context, w io.Writer) error {
	records, _, err := s.foods.List(ctx, repositories.ListFilters{})
	if err != nil {
		return fmt.Errorf("failed to list foods: %w", err)
	}
	rows, err := toRows(records)
	if err != nil {
		return err
	}
	return s.export(ctx, "foods", rows, w)
}

// export writes one sheet named after collection. The header row is _id
// followed by the union of all other keys, sorted.
func (s *exportService) export(ctx context.Context, collection string, rows []map[string]interface{}, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WarnContext(ctx, "Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), collection); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := headerFor(rows)
	headerRow := make([]interface{}, len(header))
	for i, key := range header {
		headerRow[i] = key
	}
	if err := f.SetSheetRow(collection, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(header))
		for j, key := range header {
			values[j] = cellValue(row[key])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(collection, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "Collection exported", "collection", collection, "rows", len(rows))
	return nil
}

// toRows flattens records through their JSON form so extra keys come along.
func toRows[T any](records []*T) ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		var row map[string]interface{}
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func headerFor(rows []map[string]interface{}) []string {
	seen := map[string]struct{}{}
	for _, row := range rows {
		for key := range row {
			if key != "_id" {
				seen[key] = struct{}{}
			}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return append([]string{"_id"}, keys...)
}

func cellValue(v interface{}) interface{} {
	switch v.(type) {
	case nil:
		return nil
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return v
	}
}
