package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrMissingFrameData is returned when a frame has no feature table file
	ErrMissingFrameData = errors.New("missing frame data")

	// ErrMalformedRow is returned when a feature-table row cannot be decoded
	ErrMalformedRow = errors.New("malformed feature row")

	// ErrRmsdParse is returned when an RMSD series row cannot be decoded
	ErrRmsdParse = errors.New("rmsd parse error")

	// ErrEmptyResultSet is returned when no frame records survive aggregation
	ErrEmptyResultSet = errors.New("empty result set")

	// ErrResultsNotFound is returned when no persisted analysis results exist
	ErrResultsNotFound = errors.New("analysis results not found")
)

// MissingFrameDataError represents a frame whose feature table is absent
type MissingFrameDataError struct {
	FrameID int
	Path    string
}

func (e *MissingFrameDataError) Error() string {
	return fmt.Sprintf("no feature table for frame %d (expected %s)", e.FrameID, e.Path)
}

func (e *MissingFrameDataError) Is(target error) bool {
	return target == ErrMissingFrameData
}

// NewMissingFrameDataError creates a new MissingFrameDataError
func NewMissingFrameDataError(frameID int, path string) *MissingFrameDataError {
	return &MissingFrameDataError{FrameID: frameID, Path: path}
}

// MalformedRowError represents a feature-table row that could not be decoded
type MalformedRowError struct {
	File   string
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed feature row at %s:%d: %s", e.File, e.Line, e.Reason)
}

func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// NewMalformedRowError creates a new MalformedRowError
func NewMalformedRowError(file string, line int, reason string) *MalformedRowError {
	return &MalformedRowError{File: file, Line: line, Reason: reason}
}

// RmsdParseError represents an RMSD series row that could not be decoded
type RmsdParseError struct {
	Line   int
	Reason string
}

func (e *RmsdParseError) Error() string {
	return fmt.Sprintf("rmsd parse error at line %d: %s", e.Line, e.Reason)
}

func (e *RmsdParseError) Is(target error) bool {
	return target == ErrRmsdParse
}

// NewRmsdParseError creates a new RmsdParseError
func NewRmsdParseError(line int, reason string) *RmsdParseError {
	return &RmsdParseError{Line: line, Reason: reason}
}

// EmptyResultSetError represents an aggregation that produced no frame records
type EmptyResultSetError struct {
	TotalFrames int
}

func (e *EmptyResultSetError) Error() string {
	if e.TotalFrames > 0 {
		return fmt.Sprintf("no frame records survived aggregation (%d frames discovered, all dropped)", e.TotalFrames)
	}
	return "no frame records survived aggregation"
}

func (e *EmptyResultSetError) Is(target error) bool {
	return target == ErrEmptyResultSet
}

// NewEmptyResultSetError creates a new EmptyResultSetError
func NewEmptyResultSetError(totalFrames int) *EmptyResultSetError {
	return &EmptyResultSetError{TotalFrames: totalFrames}
}

// ResultsNotFoundError represents a missing persisted results snapshot
type ResultsNotFoundError struct {
	Path string
}

func (e *ResultsNotFoundError) Error() string {
	return fmt.Sprintf("no analysis results found at '%s' (run an analysis first)", e.Path)
}

func (e *ResultsNotFoundError) Is(target error) bool {
	return target == ErrResultsNotFound
}

// NewResultsNotFoundError creates a new ResultsNotFoundError
func NewResultsNotFoundError(path string) *ResultsNotFoundError {
	return &ResultsNotFoundError{Path: path}
}
