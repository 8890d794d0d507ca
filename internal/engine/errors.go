package engine

import (
	"errors"
	"fmt"
)

// Domain error kinds. Every error returned by the Retriever matches exactly
// one of these with errors.Is (ErrToolFailure additionally wraps the inner kind).
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingCredential = errors.New("missing credential")
	ErrVideoNotFound     = errors.New("video not found")
	ErrNoTranscript      = errors.New("no transcript available")
	ErrMetadataFetch     = errors.New("metadata fetch failed")
	ErrTranscriptFetch   = errors.New("transcript fetch failed")
	ErrToolFailure       = errors.New("youtube tool failed")
)

// kindError carries a domain kind plus a human-readable message.
// The message is what callers see; the kind and cause are for errors.Is/As.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func newKindError(kind, cause error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// toolFailure re-wraps err into the single top-level error shape.
func toolFailure(err error) error {
	return newKindError(ErrToolFailure, err, "YouTube tool failed: %s", err.Error())
}

var kindNames = []struct {
	err  error
	name string
}{
	{ErrInvalidInput, "InvalidInput"},
	{ErrMissingCredential, "MissingCredential"},
	{ErrVideoNotFound, "VideoNotFound"},
	{ErrNoTranscript, "NoTranscriptAvailable"},
	{ErrMetadataFetch, "MetadataFetchFailed"},
	{ErrTranscriptFetch, "TranscriptFetchFailed"},
	{ErrToolFailure, "ToolFailure"},
}

// KindOf returns the name of the most specific domain kind in err's chain,
// or "Internal" when err carries none.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Internal"
}
