package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories/memory"
)

func TestExportService_Students(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMemoryRepository()

	age := 19
	if _, err := repo.Students().Create(ctx, &models.Student{Name: strPtr("A"), Age: &age}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Students().Create(ctx, &models.Student{
		Name:  strPtr("B"),
		Extra: models.Fields{"guardian": map[string]interface{}{"phone": "123"}},
	}); err != nil {
		t.Fatal(err)
	}

	svc := NewExportService(repo.Students(), repo.Foods(), testLogger())

	var buf bytes.Buffer
	if err := svc.ExportStudents(ctx, &buf); err != nil {
		t.Fatalf("ExportStudents() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("students")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}

	wantHeader := []string{"_id", "age", "guardian", "name"}
	for i, want := range wantHeader {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
	if rows[1][1] != "19" || rows[1][3] != "A" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[2][2] != `{"phone":"123"}` {
		t.Errorf("guardian cell = %q", rows[2][2])
	}
}

func TestExportService_EmptyFoods(t *testing.T) {
	repo := memory.NewMemoryRepository()
	svc := NewExportService(repo.Students(), repo.Foods(), testLogger())

	var buf bytes.Buffer
	if err := svc.ExportFoods(context.Background(), &buf); err != nil {
		t.Fatalf("ExportFoods() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("foods")
	if len(rows) != 1 || len(rows[0]) != 1 || rows[0][0] != "_id" {
		t.Errorf("rows = %v, want only the _id header", rows)
	}
}
