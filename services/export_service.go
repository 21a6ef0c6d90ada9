package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"review-portal-api/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportService builds the grading report workbook for a cycle: one sheet
// per artifact kind, one row per recorded grade. Read-only consumer of
// finalized submission and grading data.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

var sheetNames = map[string]string{
	models.SubmissionTypeAbstract:  "Abstracts",
	models.SubmissionTypeBestPaper: "Best Papers",
	models.SubmissionTypeAward:     "Awards",
}

var reportHeader = []string{"Submission No.", "Owner", "Category", "Status", "Phase", "Criterion", "Verifier", "Score", "Comments"}

// BuildGradingReport returns the workbook bytes and a suggested filename.
func (s *ExportService) BuildGradingReport(cycleID int) (*bytes.Buffer, string, error) {
	var cycle models.Cycle
	if err := s.db.Where("cycle_id = ? AND delete_at IS NULL", cycleID).First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCycleNotFound
		}
		return nil, "", fmt.Errorf("failed to load cycle: %w", err)
	}

	var submissions []models.Submission
	if err := s.db.Preload("User").Preload("Category").
		Preload("Gradings.GradingType").Preload("Gradings.GradedBy").
		Where("cycle_id = ? AND deleted_at IS NULL", cycleID).
		Order("submission_id ASC").
		Find(&submissions).Error; err != nil {
		return nil, "", fmt.Errorf("failed to load submissions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	rowCursor := map[string]int{}
	for _, kind := range []string{models.SubmissionTypeAbstract, models.SubmissionTypeBestPaper, models.SubmissionTypeAward} {
		sheet := sheetNames[kind]
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, "", fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		for col, title := range reportHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sheet, cell, title); err != nil {
				return nil, "", fmt.Errorf("failed to write header: %w", err)
			}
		}
		rowCursor[sheet] = 2
	}
	// Drop the default sheet created by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i := range submissions {
		sub := &submissions[i]
		sheet, ok := sheetNames[sub.SubmissionType]
		if !ok {
			continue
		}
		for j := range sub.Gradings {
			g := &sub.Gradings[j]
			criterion := ""
			if g.GradingType != nil {
				criterion = g.GradingType.Criteria
			}
			verifier := ""
			if g.GradedBy != nil {
				verifier = g.GradedBy.FullName()
			}
			comments := ""
			if g.Comments != nil {
				comments = *g.Comments
			}
			values := []interface{}{
				sub.SubmissionNumber,
				sub.User.FullName(),
				sub.Category.CategoryName,
				sub.Status,
				g.ReviewPhase,
				criterion,
				verifier,
				g.Score,
				comments,
			}
			row := rowCursor[sheet]
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, "", fmt.Errorf("failed to write report row: %w", err)
				}
			}
			rowCursor[sheet] = row + 1
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate workbook: %w", err)
	}

	filename := fmt.Sprintf("grading-report-%s-%s.xlsx", cycle.CycleName, time.Now().Format("20060102"))
	return buf, filename, nil
}
