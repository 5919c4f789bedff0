package replay

import (
	"errors"
	"fmt"
)

// ApplyError represents a failure to replay a change record onto a document.
//
// Replay failures mean the history no longer lines up with the base
// document: a record names a section or anchor the document does not have.
type ApplyError struct {
	// Code identifies the error category.
	Code ApplyErrorCode

	// Message is a human-readable description.
	Message string

	// Title is the section or anchor title the record referred to.
	// Empty for the preamble.
	Title string

	// Seq is the sequence number of the failing record.
	Seq int64
}

// ApplyErrorCode categorizes replay errors.
type ApplyErrorCode string

const (
	// ErrCodeSectionNotFound indicates the record's target section is absent.
	ErrCodeSectionNotFound ApplyErrorCode = "SECTION_NOT_FOUND"

	// ErrCodeReferenceNotFound indicates an insert anchor is absent.
	ErrCodeReferenceNotFound ApplyErrorCode = "REFERENCE_NOT_FOUND"

	// ErrCodeUnknownChangeType indicates a record with an unrecognized type.
	ErrCodeUnknownChangeType ApplyErrorCode = "UNKNOWN_CHANGE_TYPE"
)

// Error implements the error interface.
func (e *ApplyError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("%s: %s (section=%q, seq=%d)", e.Code, e.Message, e.Title, e.Seq)
	}
	return fmt.Sprintf("%s: %s (seq=%d)", e.Code, e.Message, e.Seq)
}

// IsApplyError reports whether err is (or wraps) an ApplyError.
// Uses errors.As to handle wrapped errors.
func IsApplyError(err error) bool {
	var ae *ApplyError
	return errors.As(err, &ae)
}
