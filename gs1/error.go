/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"fmt"
	"strings"

	"github.com/barcodeops/gs1syntax/lint"
)

// Kind classifies a parse or validation failure.
type Kind int

const (
	EmptyInput Kind = iota
	UnrecognizedFormat
	Structural
	Linter
	CrossField
	Underlying
)

func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case UnrecognizedFormat:
		return "unrecognized format"
	case Structural:
		return "structural violation"
	case Linter:
		return "linter failure"
	case CrossField:
		return "cross-field violation"
	}
	return "underlying failure"
}

// CrossFieldKind identifies which whole-sequence rule was violated.
type CrossFieldKind int

const (
	MutexConflict CrossFieldKind = iota
	RepeatNotAllowed
	MissingRequisite
	DisallowedUnknownAttribute
)

func (k CrossFieldKind) String() string {
	switch k {
	case MutexConflict:
		return "mutually exclusive AIs"
	case RepeatNotAllowed:
		return "AI is not repeatable"
	case MissingRequisite:
		return "missing requisite AI"
	case DisallowedUnknownAttribute:
		return "unknown AI not permitted as Digital Link attribute"
	}
	return "cross-field violation"
}

// Error is the located failure record kept by the engine. Structural and
// linter failures carry an exact byte span within the input that produced
// them; cross-field failures carry the implicated AI set instead.
type Error struct {
	Kind   Kind
	Msg    string
	AI     string
	Linter string // dictionary linter name, for Kind == Linter
	Code   lint.Code

	Rule CrossFieldKind
	AIs  []string // implicated AIs, for Kind == CrossField

	Pos, Len int
	input    string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.AI != "" {
		fmt.Fprintf(&b, ": AI (%s)", e.AI)
	}
	if e.Kind == CrossField {
		fmt.Fprintf(&b, ": %s", e.Rule)
		if len(e.AIs) > 0 {
			fmt.Fprintf(&b, ": (%s)", strings.Join(e.AIs, ") ("))
		}
		return b.String()
	}
	if e.Linter != "" {
		fmt.Fprintf(&b, ": %s linter", e.Linter)
	}
	if e.Msg != "" {
		fmt.Fprintf(&b, ": %s", e.Msg)
	} else if e.Code != lint.OK {
		fmt.Fprintf(&b, ": %s", e.Code)
	}
	return b.String()
}

// Markup returns the original input with the offending span bracketed by '*'
// markers, or the empty string when the error carries no span.
func (e *Error) Markup() string {
	if e.input == "" || (e.Pos == 0 && e.Len == 0 && e.Kind != Structural && e.Kind != Linter) {
		return ""
	}
	return lint.Markup(e.input, e.Pos, e.Len)
}

func errKind(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
