// Package analysis runs the full workbook pipeline: open, detect business type,
// classify, extract.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invplanner/internal/classifier"
	"invplanner/internal/convert"
	"invplanner/internal/importer"
	"invplanner/internal/model"
	"invplanner/internal/observability"
	"invplanner/internal/parser"
	"invplanner/internal/service/excel"
)

// ExtractionWarning debug note for a positive verdict that produced no records
const ExtractionWarning = "File classified as inventory planning but no data extracted"

// Options pipeline tuning
type Options struct {
	Extract            importer.Options
	ClassifySampleRows int
}

// DebugInfo diagnostics returned alongside results
type DebugInfo struct {
	RequestID         string                     `json:"request_id"`
	FileType          string                     `json:"file_type"`
	Sheets            []string                   `json:"sheets"`
	BusinessType      model.BusinessType         `json:"business_type"`
	BusinessScores    map[model.BusinessType]int `json:"business_scores,omitempty"`
	SheetReports      []model.SheetReport        `json:"sheet_reports,omitempty"`
	Events            []observability.Event      `json:"events,omitempty"`
	ExtractionWarning string                     `json:"extraction_warning,omitempty"`
	DurationMs        int64                      `json:"duration_ms"`
}

// Result classification, extracted records and debug info for one workbook
type Result struct {
	Classification model.ClassificationVerdict `json:"classification"`
	ExtractedData  model.ExtractedData         `json:"extracted_data"`
	Debug          DebugInfo                   `json:"debug_logs"`
}

// Analyzer stateless pipeline; safe for concurrent use
type Analyzer struct {
	opts        Options
	log         *observability.Logger
	classifier  *classifier.Engine
	coordinator *importer.Coordinator
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(opts Options, log *observability.Logger) *Analyzer {
	if log == nil {
		log = observability.Nop()
	}
	return &Analyzer{
		opts:        opts,
		log:         log,
		classifier:  classifier.NewEngine(opts.ClassifySampleRows, log),
		coordinator: importer.NewCoordinator(opts.Extract, log),
	}
}

// WithDateParser replaces the extraction date parser, e.g. to pin the clock
func (a *Analyzer) WithDateParser(p *convert.DateParser) *Analyzer {
	a.coordinator.WithDateParser(p)
	return a
}

// Analyze processes one uploaded file.
//
// On a *model.WorkbookError the returned Result may still be non-nil: an unreadable
// workbook carries the read-error verdict, an extraction failure carries the
// classification computed before it.
func (a *Analyzer) Analyze(ctx context.Context, filename string, data []byte) (*Result, error) {
	start := time.Now()
	requestID := uuid.New().String()
	log := a.log.WithRequest(requestID)
	rec := observability.NewRecorder(log)

	wb, err := excel.Open(filename, data)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("open workbook failed")
		if model.KindOf(err) == model.KindFileRead {
			return &Result{
				Classification: classifier.Unreadable(err),
				ExtractedData:  model.NewExtractedData(),
				Debug:          DebugInfo{RequestID: requestID, BusinessType: model.BusinessUnknown},
			}, err
		}
		return nil, err
	}
	defer wb.Close()

	res := &Result{
		Debug: DebugInfo{
			RequestID: requestID,
			FileType:  wb.FileType(),
			Sheets:    wb.SheetNames(),
		},
	}

	bt := parser.DetectBusinessType(wb)
	res.Debug.BusinessType = bt.Type
	res.Debug.BusinessScores = bt.Scores
	rec.Info("business_type", "", fmt.Sprintf("detected business type %s", bt.Type))

	res.Classification = a.classifier.Classify(wb, bt.Type)

	report := a.coordinator.Extract(ctx, wb, bt.Type, rec)
	res.ExtractedData = report.Data
	res.Debug.SheetReports = report.Sheets
	res.Debug.Events = rec.Events()
	res.Debug.DurationMs = time.Since(start).Milliseconds()

	if err := ctx.Err(); err != nil {
		res.ExtractedData = model.NewExtractedData()
		return res, model.NewWorkbookError(model.KindExtraction, "extraction interrupted", err)
	}
	if n := report.Failed(); n > 0 && n == len(report.Sheets) {
		res.ExtractedData = model.NewExtractedData()
		return res, model.NewWorkbookError(model.KindExtraction,
			fmt.Sprintf("all %d sheets failed to process", n), nil)
	}
	if report.Data.Count() == 0 && res.Classification.IsInventoryPlanning {
		res.Debug.ExtractionWarning = ExtractionWarning
	}

	log.Info().
		Str("file", filename).
		Bool("inventory_planning", res.Classification.IsInventoryPlanning).
		Int("records", report.Data.Count()).
		Int64("duration_ms", res.Debug.DurationMs).
		Msg("analysis finished")
	return res, nil
}

// Stream opens the workbook, classifies it and streams extraction progress. The
// verdict is sent as a "classified" event before extraction starts.
func (a *Analyzer) Stream(ctx context.Context, filename string, data []byte) (<-chan importer.ProgressEvent, error) {
	wb, err := excel.Open(filename, data)
	if err != nil {
		return nil, err
	}
	requestID := uuid.New().String()
	log := a.log.WithRequest(requestID)
	bt := parser.DetectBusinessType(wb)
	verdict := a.classifier.Classify(wb, bt.Type)

	out := make(chan importer.ProgressEvent, 100)
	go func() {
		defer close(out)
		defer wb.Close()
		send := func(e importer.ProgressEvent) bool {
			select {
			case out <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !send(importer.ProgressEvent{
			Type:      "classified",
			Message:   verdict.Justification,
			Data:      verdict,
			Timestamp: time.Now(),
		}) {
			return
		}
		forwarding := true
		for e := range a.coordinator.Stream(ctx, wb, bt.Type, observability.NewRecorder(log)) {
			if forwarding {
				forwarding = send(e)
			}
		}
	}()
	return out, nil
}
