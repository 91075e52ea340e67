/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package ai implements the GS1 Application Identifier syntax dictionary:
// the static table describing every known AI's value shape and semantic
// rules, plus the structural rule engine that validates a candidate value
// against its specification.
//
// The dictionary is loaded once at process start and never mutated, so all
// lookups are safe for concurrent use.
package ai

import (
	"fmt"

	"github.com/barcodeops/gs1syntax/lint"
	"github.com/pkg/errors"
)

// Cset identifies the character set that a component of an AI value is drawn
// from.
type Cset int

const (
	CsetNumeric Cset = iota // N: digits only
	Cset82                  // X: the GS1 AI encodable character set 82
	Cset39                  // Y: digits, upper case letters, "#", "-", "/"
	Cset64                  // Z: file-safe URI-safe base64
)

func (c Cset) String() string {
	switch c {
	case CsetNumeric:
		return "N"
	case Cset82:
		return "X"
	case Cset39:
		return "Y"
	case Cset64:
		return "Z"
	}
	return "?"
}

func (c Cset) lint() lint.Func {
	switch c {
	case CsetNumeric:
		return lint.CsetNumeric
	case Cset82:
		return lint.Cset82
	case Cset39:
		return lint.Cset39
	case Cset64:
		return lint.Cset64
	}
	return nil
}

// Part is one component of an AI's value specification. Fixed-width parts
// have Min == Max; the final part of a variable-length AI has Min < Max.
// Optional parts may be wholly absent.
type Part struct {
	Cset     Cset
	Min, Max int
	Opt      bool
	Linters  []string
}

// Entry is one syntax dictionary specification. Exactly one Entry exists
// per AI prefix; AIs resolved by family inference share a synthesized Entry
// with Inferred set.
type Entry struct {
	AI    string
	Title string

	// FNC1 marks AIs without a predefined length: their values extend to
	// the next field separator or the end of input.
	FNC1  bool
	Parts []Part

	// Cross-field attributes.
	Repeatable bool
	Excludes   []string   // AI prefixes that may not co-occur with this AI
	Requires   [][]string // each set: at least one member must co-occur

	// Digital Link disposition.
	DLKey        bool
	DLQualifiers []string // canonical path qualifier order after the key
	DLAttr       bool     // permitted as a query-string data attribute

	// Inferred marks entries synthesized from a prefix family rather than
	// matched exactly in the dictionary.
	Inferred bool
}

// MinLength and MaxLength bound the overall value length across all parts.
func (e *Entry) MinLength() int {
	n := 0
	for _, p := range e.Parts {
		if !p.Opt {
			n += p.Min
		}
	}
	return n
}

func (e *Entry) MaxLength() int {
	n := 0
	for _, p := range e.Parts {
		n += p.Max
	}
	return n
}

// Violation reports a structural or linter failure for one AI value. Pos and
// Len locate the offending bytes within the value that was validated.
type Violation struct {
	AI     string
	Linter string // dictionary linter name; empty for length/charset failures
	Code   lint.Code
	Pos    int
	Len    int
}

func (v *Violation) Error() string {
	if v.Linter != "" {
		return fmt.Sprintf("AI (%s): %s linter: %s", v.AI, v.Linter, v.Code)
	}
	return fmt.Sprintf("AI (%s): %s", v.AI, v.Code)
}

// Markup returns the validated value with the offending span bracketed by
// '*' markers.
func (v *Violation) Markup(value string) string {
	return lint.Markup(value, v.Pos, v.Len)
}

// Lookup returns the dictionary entry whose AI exactly matches, or nil.
func Lookup(ai string) *Entry {
	return table[ai]
}

// Resolve finds the dictionary entry for the AI at the start of data, using
// longest-prefix-first matching over the 2-4 digit AI space. It returns the
// entry and the number of bytes of data that form the AI, or an error if no
// entry matches.
func Resolve(data string) (*Entry, int, error) {
	for n := maxAILength; n >= 2; n-- {
		if n > len(data) {
			continue
		}
		if e := table[data[:n]]; e != nil {
			return e, n, nil
		}
	}
	if len(data) < 2 {
		return nil, 0, errors.Errorf("AI is too short: %q", data)
	}
	return nil, 0, errors.Errorf("no dictionary entry matches AI at %q", truncate(data, 8))
}

// Family describes the structurally inferable shape of unknown AIs sharing
// a documented prefix.
type family struct {
	prefix string
	aiLen  int
	fnc1   bool
	part   Part
}

// families covers the prefix ranges for which the GS1 General
// Specifications document a uniform AI shape, permitting structural
// inference of table-absent AIs when unknown AIs are admitted.
var families = []family{
	{prefix: "31", aiLen: 4, part: Part{Cset: CsetNumeric, Min: 6, Max: 6}},
	{prefix: "32", aiLen: 4, part: Part{Cset: CsetNumeric, Min: 6, Max: 6}},
	{prefix: "33", aiLen: 4, part: Part{Cset: CsetNumeric, Min: 6, Max: 6}},
	{prefix: "34", aiLen: 4, part: Part{Cset: CsetNumeric, Min: 6, Max: 6}},
	{prefix: "35", aiLen: 4, part: Part{Cset: CsetNumeric, Min: 6, Max: 6}},
	{prefix: "36", aiLen: 4, part: Part{Cset: CsetNumeric, Min: 6, Max: 6}},
	{prefix: "39", aiLen: 4, fnc1: true, part: Part{Cset: CsetNumeric, Min: 1, Max: 15}},
}

// Infer synthesizes an entry for an AI absent from the dictionary, provided
// its prefix belongs to a documented family. An AI outside every family is
// not structurally inferable and yields an error.
func Infer(aiStr string) (*Entry, error) {
	if _, ok := digitsOnly(aiStr); !ok {
		return nil, errors.Errorf("AI %q is not numeric", aiStr)
	}
	for _, f := range families {
		if len(aiStr) != f.aiLen || aiStr[:len(f.prefix)] != f.prefix {
			continue
		}
		return &Entry{
			AI:       aiStr,
			Title:    "",
			FNC1:     f.fnc1,
			Parts:    []Part{f.part},
			DLAttr:   true,
			Inferred: true,
		}, nil
	}
	return nil, errors.Errorf("AI (%s) does not belong to a documented prefix family", aiStr)
}

// LengthByPrefix returns the AI length implied by the first two digits of
// data, which is uniform across each two-digit prefix, or 0 if the prefix
// is unknown. Decoders use this to take the AI off the front of an
// unbracketed stream even when the full AI is absent from the table.
func LengthByPrefix(data string) int {
	if len(data) < 2 {
		return 0
	}
	return lengthByPrefix[data[:2]]
}

// Validate checks value against the entry's structural rules: overall
// length bounds, per-part character set, and each part's linters in
// declared order, stopping at the first failure.
func Validate(e *Entry, value string) *Violation {
	if len(value) < e.MinLength() {
		return &Violation{AI: e.AI, Code: lint.ValueTooShort, Pos: 0, Len: len(value)}
	}
	if len(value) > e.MaxLength() {
		return &Violation{AI: e.AI, Code: lint.ValueTooLong, Pos: 0, Len: len(value)}
	}

	offset := 0
	rest := value
	for i, p := range e.Parts {
		if len(rest) == 0 && p.Opt {
			break
		}

		// The final part absorbs whatever remains; earlier parts are
		// fixed-width by dictionary construction.
		width := p.Max
		if i < len(e.Parts)-1 {
			width = p.Min
		}
		if width > len(rest) {
			width = len(rest)
		}
		component := rest[:width]

		if lerr := p.Cset.lint()(component); lerr != nil {
			return &Violation{
				AI: e.AI, Code: lerr.Code,
				Pos: offset + lerr.Pos, Len: lerr.Len,
			}
		}
		for _, name := range p.Linters {
			fn := lint.Lookup(name)
			if fn == nil {
				// A dictionary naming an unregistered linter is a
				// programming error, caught by the table loader.
				continue
			}
			if lerr := fn(component); lerr != nil {
				return &Violation{
					AI: e.AI, Linter: name, Code: lerr.Code,
					Pos: offset + lerr.Pos, Len: lerr.Len,
				}
			}
		}

		offset += width
		rest = rest[width:]
	}
	return nil
}

func digitsOnly(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i, false
		}
	}
	return -1, true
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
