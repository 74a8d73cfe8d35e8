package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"invplanner/internal/model"
	"invplanner/internal/service/analysis"
	"invplanner/internal/service/excel"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type uploadedFile struct {
	name string
	data []byte
}

// readUpload validates the multipart "file" field and reads it fully. On failure
// the error response has already been written.
func (h *Handler) readUpload(c *gin.Context) (*uploadedFile, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.fail(c, model.KindMissingFile, "No file provided")
		return nil, false
	}
	if fh.Filename == "" {
		h.fail(c, model.KindInvalidFile, "Empty file name")
		return nil, false
	}
	if !h.cfg.AllowsExtension(fh.Filename) {
		h.fail(c, model.KindInvalidFileType, "Invalid file type")
		return nil, false
	}
	if fh.Size > h.cfg.Upload.MaxBytes {
		h.fail(c, model.KindFileTooLarge, "File too large")
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, model.KindInvalidFileType, fmt.Sprintf("Could not read file: %v", err))
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.cfg.Upload.MaxBytes+1))
	if err != nil {
		h.fail(c, model.KindInvalidFileType, fmt.Sprintf("Could not read file: %v", err))
		return nil, false
	}
	if int64(len(data)) > h.cfg.Upload.MaxBytes {
		h.fail(c, model.KindFileTooLarge, "File too large")
		return nil, false
	}
	return &uploadedFile{name: fh.Filename, data: data}, true
}

// Upload classifies a workbook and extracts its records
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("upload failed")
			h.fail(c, model.KindUnexpected, fmt.Sprintf("An unexpected error occurred: %v", r))
		}
	}()

	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	res, err := h.analyzer.Analyze(c.Request.Context(), upload.name, upload.data)
	if err != nil {
		h.analysisFailed(c, res, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) analysisFailed(c *gin.Context, res *analysis.Result, err error) {
	kind := model.KindOf(err)
	body := ErrorResponse{
		Error:       err.Error(),
		ErrorType:   kind,
		Suggestions: suggestionsFor(kind, h.cfg.Upload.MaxBytes),
	}
	var we *model.WorkbookError
	if errors.As(err, &we) {
		body.Error = we.Message
		if we.Err != nil {
			body.Details = map[string]any{"cause": we.Err.Error()}
		}
	}
	if res != nil {
		body.Classification = &res.Classification
		if res.Debug.RequestID != "" {
			if body.Details == nil {
				body.Details = map[string]any{}
			}
			body.Details["request_id"] = res.Debug.RequestID
		}
	}
	if kind == model.KindExtraction {
		body.ExtractedData = gin.H{}
	}
	if kind == model.KindUnexpected {
		body.Error = fmt.Sprintf("An unexpected error occurred: %v", err)
	}
	h.log.Warn().Err(err).Str("error_type", string(kind)).Msg("analysis failed")
	c.JSON(statusFor(kind), body)
}

// UploadStream classifies a workbook and streams extraction progress (SSE)
// POST /api/upload/stream
func (h *Handler) UploadStream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.fail(c, model.KindUnexpected, "streaming not supported")
		return
	}

	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	events, err := h.analyzer.Stream(c.Request.Context(), upload.name, upload.data)
	if err != nil {
		h.analysisFailed(c, nil, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	for event := range events {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// Export analyzes a workbook and returns the extracted records as a normalized xlsx
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	res, err := h.analyzer.Analyze(c.Request.Context(), upload.name, upload.data)
	if err != nil {
		h.analysisFailed(c, res, err)
		return
	}

	f, err := excel.NewExporter().Export(res.ExtractedData, res.Classification)
	if err != nil {
		h.fail(c, model.KindUnexpected, fmt.Sprintf("An unexpected error occurred: %v", err))
		return
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		h.fail(c, model.KindUnexpected, fmt.Sprintf("An unexpected error occurred: %v", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="normalized_%s.xlsx"`, res.Debug.RequestID))
	c.Header("X-Request-Id", res.Debug.RequestID)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
