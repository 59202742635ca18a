// Package naxmlerr defines the stable, inspectable error codes this core
// raises across parsing, adaptation, and projection. Every failure mode
// named in the error handling design carries one of these codes so
// callers can branch on Code rather than matching message strings.
package naxmlerr

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error identifier.
type Code string

const (
	CodePathTraversal          Code = "PATH_TRAVERSAL"
	CodeDirectoryNotFound      Code = "DIRECTORY_NOT_FOUND"
	CodeInvalidXML             Code = "INVALID_XML"
	CodeUnsupportedVersion     Code = "NAXML_UNSUPPORTED_VERSION"
	CodeUnknownDocumentType    Code = "UNKNOWN_DOCUMENT_TYPE"
	CodeUnsupportedDocType     Code = "UNSUPPORTED_DOCUMENT_TYPE"
	CodeMissingRequiredField   Code = "MISSING_REQUIRED_FIELD"
	CodeInvalidFieldValue      Code = "INVALID_FIELD_VALUE"
	CodeFGMInvalidSalesVolume  Code = "FGM_INVALID_SALES_VOLUME"
	CodeFGMInvalidSalesAmount  Code = "FGM_INVALID_SALES_AMOUNT"
	CodeFGMInvalidTenderCode   Code = "FGM_INVALID_TENDER_CODE"
	CodeFGMInvalidPeriod       Code = "FGM_INVALID_PRIMARY_PERIOD"
	CodeFGMMissingGradeID      Code = "FGM_MISSING_GRADE_ID"
	CodeFPMMissingProductID    Code = "FPM_MISSING_PRODUCT_ID"
	CodeFPMMissingPositionID   Code = "FPM_MISSING_POSITION_ID"
	CodeFPMMissingVolume       Code = "FPM_MISSING_VOLUME"
	CodeFPMInvalidVolume       Code = "FPM_INVALID_VOLUME"
	CodeMSMMissingSummaryCode  Code = "MSM_MISSING_SUMMARY_CODE"
	CodeDuplicateContent       Code = "DUPLICATE_CONTENT"
	CodeAuditCreateFailed      Code = "AUDIT_CREATE_FAILED"
	CodeDatabaseFailure        Code = "DATABASE_FAILURE"
	CodeNoOpenShift            Code = "NO_OPEN_SHIFT"
	CodeNoImportUser           Code = "NO_IMPORT_USER"
	CodeIntegrationNotActive   Code = "INTEGRATION_NOT_ACTIVE"
	CodeInvalidPollInterval    Code = "INVALID_POLL_INTERVAL"
)

// Error wraps an underlying cause with a stable code. It satisfies both
// errors.Is (by Code) and errors.As (by type), so callers can test either
// "is this a path traversal" or "give me the naxmlerr.Error".
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports code equality so errors.Is(err, naxmlerr.New(CodeX, "")) works
// as a sentinel-style check without requiring an exported var per code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// New constructs an Error with no wrapped cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf constructs an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error that carries an underlying cause.
func Wrap(code Code, err error, msg string) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

// CodeOf extracts the Code from err if it is (or wraps) a *Error, and
// reports ok=false otherwise.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
