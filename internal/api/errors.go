package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"invplanner/internal/model"
)

// ErrorResponse error body returned by the upload endpoints
type ErrorResponse struct {
	Error          string                       `json:"error"`
	ErrorType      model.ErrorKind              `json:"error_type"`
	Details        map[string]any               `json:"details,omitempty"`
	Suggestions    []string                     `json:"suggestions"`
	Classification *model.ClassificationVerdict `json:"classification,omitempty"`
	ExtractedData  any                          `json:"extracted_data,omitempty"`
}

func suggestionsFor(kind model.ErrorKind, maxBytes int64) []string {
	switch kind {
	case model.KindMissingFile, model.KindInvalidFile:
		return []string{"Please select a file before uploading"}
	case model.KindInvalidFileType:
		return []string{
			"Please upload an Excel file (.xlsx, .xls) or CSV file",
			"Try resaving the file in a different Excel format",
		}
	case model.KindFileTooLarge:
		return []string{
			fmt.Sprintf("Please upload a file smaller than %dMB", maxBytes/(1024*1024)),
			"Consider splitting large workbooks into smaller ones",
		}
	case model.KindEmptyFile:
		return []string{"Please upload a file with data sheets"}
	case model.KindFileRead:
		return []string{"Check if the file is password protected", "Ensure the file is not corrupted"}
	case model.KindExtraction:
		return []string{"Try simplifying the workbook structure", "Ensure data is in a tabular format"}
	}
	return []string{"Try a different file", "Contact support if the problem persists"}
}

func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindExtraction:
		return http.StatusOK
	case model.KindUnexpected:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func (h *Handler) fail(c *gin.Context, kind model.ErrorKind, message string) {
	c.JSON(statusFor(kind), ErrorResponse{
		Error:       message,
		ErrorType:   kind,
		Suggestions: suggestionsFor(kind, h.cfg.Upload.MaxBytes),
	})
}
