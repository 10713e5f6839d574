package optimize

import (
	"fmt"
)

// Outcome is what happened to a single candidate file.
type Outcome int

const (
	// Failed means the file could not be converted and was left untouched.
	Failed Outcome = iota
	// Converted means the original was replaced by a smaller .webp.
	Converted
	// Discarded means the .webp was not smaller and was removed.
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Converted:
		return "converted"
	case Discarded:
		return "discarded"
	default:
		return "failed"
	}
}

// FailureKind classifies a per-file failure.
type FailureKind int

const (
	// DecodeFailure means the source could not be parsed as an image.
	DecodeFailure FailureKind = iota
	// EncodeFailure means the .webp could not be produced.
	EncodeFailure
	// FilesystemFailure means a stat or delete failed.
	FilesystemFailure
)

func (k FailureKind) String() string {
	switch k {
	case DecodeFailure:
		return "decode"
	case EncodeFailure:
		return "encode"
	default:
		return "filesystem"
	}
}

// ConvertError is the failure of a single file.
type ConvertError struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

// Cause lets errors.Cause reach the underlying error.
func (e *ConvertError) Cause() error { return e.Err }

// Unwrap lets errors.Is and errors.As reach the underlying error.
func (e *ConvertError) Unwrap() error { return e.Err }

// Result is the outcome of converting one file.
type Result struct {
	// Path is the source file.
	Path string
	// Rel is Path relative to the run root, slash-separated.
	Rel string
	// WebpPath is the sibling .webp, whether or not it was kept.
	WebpPath string

	OriginalSize int64
	NewSize      int64

	Outcome Outcome
	// Err is set only when Outcome is Failed.
	Err *ConvertError
}

// Saved returns the bytes reclaimed by r, zero unless it was converted.
func (r Result) Saved() int64 {
	if r.Outcome != Converted {
		return 0
	}
	return r.OriginalSize - r.NewSize
}

// Summary accumulates the results of a run.
type Summary struct {
	Converted int
	Discarded int
	Failed    int
	// SavedBytes is the signed sum of bytes reclaimed. It is not clamped.
	SavedBytes int64
	// Results holds the converted files, in processing order.
	Results []Result
}

// Add returns s with r folded in.
func (s Summary) Add(r Result) Summary {
	switch r.Outcome {
	case Converted:
		s.Converted++
		s.SavedBytes += r.Saved()
		s.Results = append(s.Results, r)
	case Discarded:
		s.Discarded++
	default:
		s.Failed++
	}
	return s
}

// SavedMiB returns SavedBytes in mebibytes.
func (s Summary) SavedMiB() float64 {
	return float64(s.SavedBytes) / 1024 / 1024
}
