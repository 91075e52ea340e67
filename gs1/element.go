/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"strings"

	"github.com/barcodeops/gs1syntax/ai"
)

// Element is one decoded (AI, value) component. Pos and Len locate the raw
// value within the input it was decoded from, for error highlighting.
type Element struct {
	AI    string
	Value string
	Entry *ai.Entry

	Pos, Len int

	// attr marks a component that arrived as a Digital Link query-string
	// attribute rather than a path component.
	attr bool
}

// record is one parsed input held by the engine: an ordered element
// sequence, optionally preceded by a non-AI primary (EAN/UPC digits) and
// optionally partitioned into linear and composite parts at split.
type record struct {
	primary  string // EAN/UPC primary digits; empty unless input carried them
	plain    string // non-GS1 scan payload, in escaped form; empty for AI data
	elements []Element
	split    int // element index where the composite part starts; -1 if none
	ignored  []string

	// src is the string that element spans refer to: the raw input for
	// element-string forms, or the reconstituted AI data for scan input.
	src string
}

func newRecord() *record {
	return &record{split: -1}
}

// linear and composite slice the element sequence at the split marker.
func (r *record) linear() []Element {
	if r.split < 0 {
		return r.elements
	}
	return r.elements[:r.split]
}

func (r *record) composite() []Element {
	if r.split < 0 {
		return nil
	}
	return r.elements[r.split:]
}

// resolveAI finds the specification for the AI at the front of data,
// falling back to prefix-family inference for table-absent AIs when those
// are permitted.
func resolveAI(data string, permitUnknown bool) (*ai.Entry, int, *Error) {
	entry, n, err := ai.Resolve(data)
	if err == nil {
		return entry, n, nil
	}

	aiLen := ai.LengthByPrefix(data)
	if aiLen == 0 || aiLen > len(data) {
		return nil, 0, errKind(Structural, "unrecognized AI at %q", head(data))
	}
	aiStr := data[:aiLen]
	if !permitUnknown {
		return nil, 0, errKind(Structural, "AI (%s) is not in the syntax dictionary", aiStr)
	}
	entry, ierr := ai.Infer(aiStr)
	if ierr != nil {
		return nil, 0, errKind(Structural, "%s", ierr)
	}
	return entry, aiLen, nil
}

func head(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// decodeBracketed parses human-oriented AI syntax such as
// "(01)09501101530003(10)ABC123". A literal "(" within a value must be
// escaped as "\(". A "|" separates the linear part from a composite part.
func decodeBracketed(input string, permitUnknown bool) (*record, *Error) {
	rec := newRecord()
	rec.src = input
	pos := 0

	for part := 0; pos < len(input); part++ {
		if part > 0 {
			rec.split = len(rec.elements)
		}

		// A part not opening with "(" can only be an all-digit EAN/UPC
		// primary ahead of a composite.
		if input[pos] != '(' {
			end := strings.IndexByte(input[pos:], '|')
			if end < 0 {
				end = len(input) - pos
			}
			primary := input[pos : pos+end]
			if part > 0 || !allDigits(primary) {
				e := errKind(Structural, "expected \"(\" at position %d", pos)
				e.Pos, e.Len, e.input = pos, 1, input
				return nil, e
			}
			rec.primary = primary
			rec.split = 0
			pos += end + 1 // consume "|"
			continue
		}

		for pos < len(input) && input[pos] != '|' {
			if input[pos] != '(' {
				e := errKind(Structural, "expected \"(\" at position %d", pos)
				e.Pos, e.Len, e.input = pos, 1, input
				return nil, e
			}
			close := strings.IndexByte(input[pos:], ')')
			if close < 0 {
				e := errKind(Structural, "AI is missing its closing \")\"")
				e.Pos, e.Len, e.input = pos, len(input)-pos, input
				return nil, e
			}
			aiStr := input[pos+1 : pos+close]
			if len(aiStr) < 2 || len(aiStr) > 4 || !allDigits(aiStr) {
				e := errKind(Structural, "malformed AI %q", aiStr)
				e.Pos, e.Len, e.input = pos+1, len(aiStr), input
				return nil, e
			}

			entry, _, rerr := resolveAI(aiStr, permitUnknown)
			if rerr != nil {
				rerr.AI = aiStr
				rerr.Pos, rerr.Len, rerr.input = pos+1, len(aiStr), input
				return nil, rerr
			}
			if entry.AI != aiStr {
				// Bracketed notation names the AI in full; a prefix-only
				// match means the digits after the prefix belong to the
				// value, which only the unbracketed form may elide.
				e := errKind(Structural, "AI (%s) is not in the syntax dictionary", aiStr)
				e.AI = aiStr
				e.Pos, e.Len, e.input = pos+1, len(aiStr), input
				return nil, e
			}

			vstart := pos + close + 1
			value, consumed, verr := scanBracketedValue(input[vstart:])
			if verr != nil {
				verr.AI = aiStr
				verr.Pos += vstart
				verr.input = input
				return nil, verr
			}

			rec.elements = append(rec.elements, Element{
				AI: aiStr, Value: value, Entry: entry,
				Pos: vstart, Len: consumed,
			})
			pos = vstart + consumed
		}
		pos++ // consume "|", or step past end
	}

	if len(rec.elements) == 0 && rec.primary == "" {
		return nil, errKind(Structural, "no AI data")
	}
	return rec, nil
}

// scanBracketedValue reads a value up to the next unescaped "(", "|" or end
// of input, unescaping "\(" along the way. It returns the decoded value and
// the number of input bytes consumed.
func scanBracketedValue(data string) (string, int, *Error) {
	var b strings.Builder
	i := 0
	for i < len(data) {
		c := data[i]
		if c == '(' || c == '|' {
			break
		}
		if c == '\\' && i+1 < len(data) && data[i+1] == '(' {
			b.WriteByte('(')
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	if b.Len() == 0 {
		e := errKind(Structural, "AI value is empty")
		e.Pos, e.Len = 0, 0
		return "", 0, e
	}
	return b.String(), i, nil
}

// decodeUnbracketed parses machine-oriented AI syntax such as
// "^011231231231233310ABC123^99TESTING", where "^" stands in for FNC1.
// Fixed-length AIs consume exactly their declared width; AIs without a
// predefined length run to the next separator or end of part.
func decodeUnbracketed(input string, permitUnknown bool) (*record, *Error) {
	rec := newRecord()
	rec.src = input
	pos := 0

	for part := 0; pos < len(input); part++ {
		end := strings.IndexByte(input[pos:], '|')
		if end < 0 {
			end = len(input) - pos
		}
		end += pos

		if part > 0 {
			rec.split = len(rec.elements)
		}

		if input[pos] != '^' {
			primary := input[pos:end]
			if part > 0 || !allDigits(primary) {
				e := errKind(Structural, "part does not begin with the FNC1 sentinel")
				e.Pos, e.Len, e.input = pos, 1, input
				return nil, e
			}
			rec.primary = primary
			rec.split = 0
			pos = end + 1
			continue
		}

		pos++ // the sentinel
		for pos < end {
			if input[pos] == '^' { // separator, or trailing FNC1
				pos++
				continue
			}

			entry, n, rerr := resolveAI(input[pos:end], permitUnknown)
			if rerr != nil {
				rerr.Pos, rerr.Len, rerr.input = pos, minInt(2, end-pos), input
				return nil, rerr
			}
			aiStr := input[pos : pos+n]
			vstart := pos + n

			var vend int
			if entry.FNC1 {
				vend = vstart
				for vend < end && input[vend] != '^' {
					vend++
				}
			} else {
				vend = vstart + entry.MaxLength()
				if vend > end {
					e := errKind(Structural, "AI (%s) value is shorter than its fixed length %d",
						aiStr, entry.MaxLength())
					e.AI = aiStr
					e.Pos, e.Len, e.input = vstart, end-vstart, input
					return nil, e
				}
			}

			rec.elements = append(rec.elements, Element{
				AI: aiStr, Value: input[vstart:vend], Entry: entry,
				Pos: vstart, Len: vend - vstart,
			})
			pos = vend
		}
		pos = end + 1
	}

	if len(rec.elements) == 0 && rec.primary == "" {
		return nil, errKind(Structural, "no AI data")
	}
	return rec, nil
}

// encodeBracketed renders the record in human-oriented AI syntax,
// re-escaping literal "(" within values.
func encodeBracketed(rec *record) string {
	if rec.plain != "" {
		return rec.plain
	}
	var b strings.Builder
	writePart := func(els []Element) {
		for _, el := range els {
			b.WriteByte('(')
			b.WriteString(el.AI)
			b.WriteByte(')')
			b.WriteString(strings.ReplaceAll(el.Value, "(", "\\("))
		}
	}
	if rec.primary != "" {
		b.WriteString(rec.primary)
	} else {
		writePart(rec.linear())
	}
	if comp := rec.composite(); len(comp) > 0 {
		b.WriteByte('|')
		writePart(comp)
	}
	return b.String()
}

// encodeUnbracketed renders the record in FNC1 syntax. A separator is only
// emitted after an AI without a predefined length, and never at the end of
// a part.
func encodeUnbracketed(rec *record) string {
	if rec.plain != "" {
		return rec.plain
	}
	var b strings.Builder
	writePart := func(els []Element) {
		b.WriteByte('^')
		for i, el := range els {
			b.WriteString(el.AI)
			b.WriteString(el.Value)
			if el.Entry.FNC1 && i < len(els)-1 {
				b.WriteByte('^')
			}
		}
	}
	if rec.primary != "" {
		b.WriteString(rec.primary)
	} else {
		writePart(rec.linear())
	}
	if comp := rec.composite(); len(comp) > 0 {
		b.WriteByte('|')
		writePart(comp)
	}
	return b.String()
}

// hriLines renders the human-readable interpretation, one line per element.
func hriLines(rec *record, withTitles bool) []string {
	var lines []string
	for _, el := range rec.elements {
		var b strings.Builder
		if withTitles && el.Entry.Title != "" {
			b.WriteString(el.Entry.Title)
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		b.WriteString(el.AI)
		b.WriteString(") ")
		b.WriteString(el.Value)
		lines = append(lines, b.String())
	}
	return lines
}

func allDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
