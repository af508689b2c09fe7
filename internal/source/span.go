package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file. Spans arrive
// from the host snapshot already resolved; the linter never re-tokenizes text.
type Span struct {
	File  FileID
	Start uint32 // inclusive, in bytes
	End   uint32 // exclusive, in bytes
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// Zero reports whether the span carries no position at all. The host may emit
// such spans for partially-resolved declarations; span-dependent checks skip
// them silently.
func (s Span) Zero() bool {
	return s.File == 0 && s.Start == 0 && s.End == 0
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely inside s (same file).
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}
