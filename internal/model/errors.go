package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadable workbook bytes could not be decoded
	ErrUnreadable = errors.New("workbook could not be read")
	// ErrEmptyWorkbook workbook decoded but holds no sheets or rows
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
	// ErrSheetNotFound sheet name not present in the workbook
	ErrSheetNotFound = errors.New("sheet not found")
)

// ErrorKind machine readable error code surfaced to clients
type ErrorKind string

const (
	KindMissingFile     ErrorKind = "missing_file"
	KindInvalidFile     ErrorKind = "invalid_file"
	KindInvalidFileType ErrorKind = "invalid_file_type"
	KindFileTooLarge    ErrorKind = "file_too_large"
	KindEmptyFile       ErrorKind = "empty_file"
	KindFileRead        ErrorKind = "file_read_error"
	KindExtraction      ErrorKind = "extraction_error"
	KindUnexpected      ErrorKind = "unexpected_error"
)

// WorkbookError workbook level failure carrying a client facing kind
type WorkbookError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *WorkbookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *WorkbookError) Unwrap() error { return e.Err }

// NewWorkbookError creates a WorkbookError
func NewWorkbookError(kind ErrorKind, message string, err error) *WorkbookError {
	return &WorkbookError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of a WorkbookError, KindUnexpected otherwise
func KindOf(err error) ErrorKind {
	var we *WorkbookError
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindUnexpected
}

// SheetError failure confined to one worksheet
type SheetError struct {
	Sheet string
	Stage string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %s: %v", e.Sheet, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error { return e.Err }
