package importer

import (
	"context"
	"fmt"
	"time"

	"invplanner/internal/convert"
	"invplanner/internal/model"
	"invplanner/internal/observability"
	"invplanner/internal/parser"
)

// Options sampling limits used during extraction
type Options struct {
	SampleRows     int
	HeaderScanRows int
	TypeSampleRows int
}

// DefaultOptions 50 sample rows, 10 header rows, 100 type rows
func DefaultOptions() Options {
	return Options{
		SampleRows:     50,
		HeaderScanRows: parser.DefaultHeaderScanRows,
		TypeSampleRows: parser.DefaultTypeSampleRows,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SampleRows <= 0 {
		o.SampleRows = d.SampleRows
	}
	if o.HeaderScanRows <= 0 {
		o.HeaderScanRows = d.HeaderScanRows
	}
	if o.TypeSampleRows <= 0 {
		o.TypeSampleRows = d.TypeSampleRows
	}
	return o
}

// Coordinator runs per-sheet extraction over a workbook
type Coordinator struct {
	vocab     *parser.Vocabularies
	dates     *convert.DateParser
	validator *convert.Validator
	log       *observability.Logger
	opts      Options
}

// NewCoordinator creates a Coordinator; a nil logger discards output
func NewCoordinator(opts Options, log *observability.Logger) *Coordinator {
	if log == nil {
		log = observability.Nop()
	}
	dates := convert.NewDateParser()
	return &Coordinator{
		vocab:     parser.DefaultVocabularies(),
		dates:     dates,
		validator: convert.NewValidator(dates),
		log:       log.WithOperation("extract"),
		opts:      opts.withDefaults(),
	}
}

// WithDateParser replaces the date parser, e.g. to pin the clock
func (c *Coordinator) WithDateParser(p *convert.DateParser) *Coordinator {
	c.dates = p
	c.validator = convert.NewValidator(p)
	return c
}

// ProgressEvent extraction progress notification
type ProgressEvent struct {
	Type      string      `json:"type"` // start/sheet_done/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Report extraction outcome
type Report struct {
	Data     model.ExtractedData `json:"extracted_data"`
	Sheets   []model.SheetReport `json:"sheets"`
	Duration time.Duration       `json:"duration"`
}

// Failed number of sheets that errored out
func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Sheets {
		if s.Status == model.SheetFailed {
			n++
		}
	}
	return n
}

type extractContext struct {
	provider     model.TableProvider
	businessType model.BusinessType
	rec          *observability.Recorder
	progress     chan<- ProgressEvent
	recognizer   *parser.SheetRecognizer
	mapper       *parser.FieldMapper
	types        *parser.ColumnTypeDetector
	report       *Report
}

// Extract processes every sheet of the workbook. A failing sheet is recorded and
// skipped; cancellation stops before the next sheet.
func (c *Coordinator) Extract(ctx context.Context, p model.TableProvider, bt model.BusinessType, rec *observability.Recorder) *Report {
	return c.run(ctx, p, bt, rec, nil)
}

// Stream runs Extract in the background and reports progress; the final "done"
// event carries the *Report.
func (c *Coordinator) Stream(ctx context.Context, p model.TableProvider, bt model.BusinessType, rec *observability.Recorder) <-chan ProgressEvent {
	ch := make(chan ProgressEvent, 100)
	go func() {
		defer close(ch)
		report := c.run(ctx, p, bt, rec, ch)
		c.sendProgress(ctx, ch, ProgressEvent{Type: "done", Message: "extraction finished", Data: report})
	}()
	return ch
}

func (c *Coordinator) run(ctx context.Context, p model.TableProvider, bt model.BusinessType, rec *observability.Recorder, progress chan<- ProgressEvent) *Report {
	start := time.Now()
	ec := &extractContext{
		provider:     p,
		businessType: bt,
		rec:          rec,
		progress:     progress,
		recognizer:   parser.NewSheetRecognizer(c.vocab, bt),
		mapper:       parser.NewFieldMapper(c.vocab, bt),
		types:        parser.NewColumnTypeDetector(c.dates, c.opts.TypeSampleRows),
		report:       &Report{Data: model.NewExtractedData()},
	}

	sheets := p.SheetNames()
	c.sendProgress(ctx, progress, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("found %d sheets", len(sheets)),
		Data:    map[string]interface{}{"total_sheets": len(sheets), "business_type": bt},
	})

	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			rec.Warn("extract", sheet, "extraction cancelled", err)
			break
		}
		rep, records := c.processSheet(ec, sheet)
		if rep.Category != "" && len(records) > 0 {
			ec.report.Data.Add(rep.Category, records...)
		}
		ec.report.Sheets = append(ec.report.Sheets, rep)
		c.sendProgress(ctx, progress, ProgressEvent{
			Type:    "sheet_done",
			Message: fmt.Sprintf("sheet %q: %s", sheet, rep.Status),
			Data:    rep,
		})
	}

	ec.report.Duration = time.Since(start)
	c.log.Info().
		Str("business_type", string(bt)).
		Int("sheets", len(sheets)).
		Int("records", ec.report.Data.Count()).
		Dur("duration", ec.report.Duration).
		Msg("extraction finished")
	return ec.report
}

func (c *Coordinator) sendProgress(ctx context.Context, ch chan<- ProgressEvent, event ProgressEvent) {
	if ch == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case ch <- event:
	case <-ctx.Done():
	}
}
