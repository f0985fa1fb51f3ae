package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidRange is returned when a code-point range cannot be used for scanning.
var ErrInvalidRange = errors.New("invalid code-point range")

// ErrUnknownPolicy is returned when a match policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown match policy")

// CodepointRange is an inclusive interval of Unicode scalar values.
type CodepointRange struct {
	Low  rune
	High rune
}

// HanRange covers the CJK Unified Ideographs block.
var HanRange = CodepointRange{Low: 0x4e00, High: 0x9fff}

// Contains reports whether r lies within the range, bounds included.
func (c CodepointRange) Contains(r rune) bool {
	return r >= c.Low && r <= c.High
}

// Validate checks that the bounds are ordered and within the Unicode space.
func (c CodepointRange) Validate() error {
	if c.Low < 0 || c.High > unicode.MaxRune {
		return fmt.Errorf("%w: %s is outside U+0000..U+10FFFF", ErrInvalidRange, c)
	}

	if c.Low > c.High {
		return fmt.Errorf("%w: low bound is greater than high bound in %s", ErrInvalidRange, c)
	}

	return nil
}

func (c CodepointRange) String() string {
	return fmt.Sprintf("U+%04X..U+%04X", c.Low, c.High)
}

// MatchPolicy controls how file content is examined for in-range characters.
// Both policies produce the same result set; they differ only in when the
// examination stops.
type MatchPolicy int

const (
	// MatchWholeFile examines the whole content as one string.
	MatchWholeFile MatchPolicy = iota
	// MatchLineByLine examines the content one line at a time and stops at the
	// first matching line.
	MatchLineByLine
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchWholeFile:
		return "file"
	case MatchLineByLine:
		return "line"
	default:
		return "unknown"
	}
}

// ParseMatchPolicy converts a policy name ("file" or "line") into a MatchPolicy.
// An empty name selects MatchWholeFile.
func ParseMatchPolicy(name string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "file", "whole", "whole-file":
		return MatchWholeFile, nil
	case "line", "lines":
		return MatchLineByLine, nil
	}

	return MatchWholeFile, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// ScanTarget describes one scan job.
type ScanTarget struct {
	Root       Path
	Extensions []string
	Exclude    []string
	Range      CodepointRange
	Policy     MatchPolicy
}

// ScanResult holds the outcome of a scan. Files are kept in discovery order.
type ScanResult struct {
	Target      ScanTarget
	Files       []Path
	Errors      []FileError
	RootMissing bool
}
