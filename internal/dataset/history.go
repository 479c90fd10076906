package dataset

import (
	"context"
	"log"
	"strconv"

	"youthmind-portal/internal/model"
	"youthmind-portal/internal/store"
)

// HistorySource provides date-ranged prediction history rows.
type HistorySource interface {
	HistoryBetween(ctx context.Context, start, end string) ([]store.PredictionRecord, error)
}

// HistoryExporter materializes a slice of prediction history as a CSV
// artifact shaped like an uploaded dataset, so it can be fed straight
// into training.
type HistoryExporter struct {
	Files  *Store
	Source HistorySource
}

func NewHistoryExporter(files *Store, source HistorySource) *HistoryExporter {
	return &HistoryExporter{Files: files, Source: source}
}

// ExportResult describes a written history artifact.
type ExportResult struct {
	Path     string     `json:"path"`
	RowCount int        `json:"row_count"`
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
}

// Export writes all history rows between start and end (inclusive,
// YYYY-MM-DD) as a history artifact. A nil result with nil error means no
// rows matched and nothing was written; the caller leaves any existing
// dataset binding alone. Query failures are logged and treated the same
// as an empty window so a flaky history store never breaks the page.
func (e *HistoryExporter) Export(ctx context.Context, start, end string) (*ExportResult, error) {
	rows, err := e.Source.HistoryBetween(ctx, start, end)
	if err != nil {
		log.Printf("history export query failed, treating as empty: %v", err)
		rows = nil
	}
	if len(rows) == 0 {
		return nil, nil
	}

	table := make([][]string, 0, len(rows)+1)
	table = append(table, model.HistoryHeader)
	for _, rec := range rows {
		table = append(table, []string{
			formatFloat(rec.Age),
			formatFloat(rec.ScreenTime),
			formatFloat(rec.SleepHours),
			formatFloat(rec.StudyHours),
			formatFloat(rec.PhysicalActivity),
			formatFloat(rec.MentalClarityScore),
			rec.Mood,
		})
	}

	path, err := e.Files.AllocatePath(KindHistory)
	if err != nil {
		return nil, err
	}
	if err := e.Files.WriteDataset(path, table); err != nil {
		return nil, err
	}

	return &ExportResult{
		Path:     path,
		RowCount: len(rows),
		Header:   table[0],
		Rows:     table[1:],
	}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
