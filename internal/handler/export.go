package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

var exportHeaders = []string{"Rank", "Username", "Score", "Total Points", "Percent", "Submitted At"}

// exportRow — строка выгрузки таблицы результатов
type exportRow struct {
	Rank        int
	Username    string
	Score       int
	TotalPoints int
	Percent     float64
	SubmittedAt time.Time
}

// newExportRows нумерует результаты в порядке таблицы лидеров
func newExportRows(results []entity.QuizResult) []exportRow {
	rows := make([]exportRow, 0, len(results))
	for i := range results {
		r := &results[i]
		rows = append(rows, exportRow{
			Rank:        i + 1,
			Username:    sanitizeForExcel(r.Username),
			Score:       r.Score,
			TotalPoints: r.TotalPoints,
			Percent:     r.Percent(),
			SubmittedAt: r.SubmittedAt.UTC(),
		})
	}
	return rows
}

// writeResultsCSV пишет CSV с BOM, чтобы Excel распознал UTF-8
func writeResultsCSV(w io.Writer, rows []exportRow) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.Username,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.TotalPoints),
			strconv.FormatFloat(r.Percent, 'f', 1, 64),
			r.SubmittedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeResultsXLSX пишет книгу Excel с одним листом через StreamWriter
func writeResultsXLSX(w io.Writer, quizTitle string, rows []exportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: quizTitle}); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Rank, r.Username, r.Score, r.TotalPoints, r.Percent, r.SubmittedAt.Format(time.RFC3339)}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// sanitizeForExcel экранирует значение от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
