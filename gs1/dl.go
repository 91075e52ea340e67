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

// DefaultDLDomain is the canonical GS1 resolver used when no custom domain
// is configured for Digital Link generation.
const DefaultDLDomain = "https://id.gs1.org"

// hasDLScheme reports whether the data begins with an http or https scheme.
// Only the all-lowercase and all-uppercase spellings are recognized; a
// mixed-case scheme is not treated as a Digital Link URI.
func hasDLScheme(s string) bool {
	return strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "HTTPS://") ||
		strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "HTTP://")
}

// dlEscaper percent-encodes the characters that are reserved within a
// Digital Link URI but permitted within AI values.
var dlEscaper = strings.NewReplacer(
	"%", "%25", // must come first
	"\"", "%22",
	"#", "%23",
	"&", "%26",
	"+", "%2B",
	"/", "%2F",
	"<", "%3C",
	">", "%3E",
	"?", "%3F",
)

// percentDecode reverses URI percent-encoding. It reports the byte offset
// of a malformed escape.
func percentDecode(s string) (string, int, bool) {
	if !strings.ContainsRune(s, '%') {
		return s, 0, true
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+2 >= len(s) {
			return "", i, false
		}
		hi, ok1 := hexVal(s[i+1])
		lo, ok2 := hexVal(s[i+2])
		if !ok1 || !ok2 {
			return "", i, false
		}
		b.WriteByte(hi<<4 | lo)
		i += 3
	}
	return b.String(), 0, true
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// decodeDigitalLink parses a GS1 Digital Link URI into the canonical
// element sequence. Path components after the primary key must follow the
// key's fixed qualifier order; query parameters map to AI components when
// their key is a known (or permitted-unknown) AI and are otherwise retained
// verbatim as ignored parameters.
func decodeDigitalLink(uri string, cfg Config) (*record, *Error) {
	base := strings.Index(uri, "//") + 2
	rest := uri[base:]

	var query string
	queryOff := 0
	if i := strings.IndexByte(rest, '#'); i >= 0 { // fragment is not AI data
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest, query = rest[:i], rest[i+1:]
		queryOff = base + i + 1
	}
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return nil, errKind(Structural, "Digital Link URI has no path")
	}
	path := rest[slash+1:]

	// Byte offset of each path segment within the URI, for error spans.
	segs := strings.Split(path, "/")
	segOff := make([]int, len(segs))
	for i, off := 0, base+slash+1; i < len(segs); i++ {
		segOff[i] = off
		off += len(segs[i]) + 1
	}

	// The primary key is the first all-digit segment that the dictionary
	// marks as Digital Link key-capable and that leaves an even number of
	// segments for AI/value pairing. Anything before it is a custom stem.
	keyIdx := -1
	for i, seg := range segs {
		if !allDigits(seg) || (len(segs)-i)%2 != 0 {
			continue
		}
		if e := ai.Lookup(seg); e != nil && e.DLKey {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil, errKind(Structural, "no primary identification key in Digital Link path")
	}

	rec := newRecord()
	rec.src = uri
	keyEntry := ai.Lookup(segs[keyIdx])

	// Key pair first, then qualifier pairs in the key's canonical order.
	qualRank := -1
	for i := keyIdx; i < len(segs); i += 2 {
		aiStr, rawValue := segs[i], segs[i+1]
		value, off, ok := percentDecode(rawValue)
		if !ok {
			e := errKind(Structural, "invalid percent escape in Digital Link path")
			e.AI, e.Pos, e.Len, e.input = aiStr, segOff[i+1]+off, 1, uri
			return nil, e
		}

		var entry *ai.Entry
		if i == keyIdx {
			entry = keyEntry
			if aiStr == "01" {
				expanded, gerr := expandGTIN(value, cfg.PermitZeroSuppressedGTIN)
				if gerr != nil {
					gerr.AI = aiStr
					gerr.Pos, gerr.Len, gerr.input = segOff[i+1], len(rawValue), uri
					return nil, gerr
				}
				value = expanded
			}
		} else {
			rank := qualifierRank(keyEntry, aiStr)
			if rank < 0 {
				e := errKind(Structural, "AI (%s) is not a qualifier of Digital Link key (%s)",
					aiStr, keyEntry.AI)
				e.AI = aiStr
				e.Pos, e.Len, e.input = segOff[i], len(aiStr), uri
				return nil, e
			}
			if rank <= qualRank {
				e := errKind(Structural, "Digital Link qualifier (%s) is out of canonical order", aiStr)
				e.AI = aiStr
				e.Pos, e.Len, e.input = segOff[i], len(aiStr), uri
				return nil, e
			}
			qualRank = rank
			entry = ai.Lookup(aiStr)
		}

		rec.elements = append(rec.elements, Element{
			AI: aiStr, Value: value, Entry: entry,
			Pos: segOff[i+1], Len: len(rawValue),
		})
	}

	if query == "" {
		return rec, nil
	}
	paramOff := queryOff
	for _, param := range strings.Split(query, "&") {
		off := paramOff
		paramOff += len(param) + 1

		if param == "" {
			continue
		}
		eq := strings.IndexByte(param, '=')
		if eq <= 0 || !allDigits(param[:eq]) || len(param[:eq]) < 2 || len(param[:eq]) > 4 {
			rec.ignored = append(rec.ignored, param)
			continue
		}
		aiStr := param[:eq]

		entry := ai.Lookup(aiStr)
		if entry == nil {
			if !cfg.PermitUnknownAIs {
				rec.ignored = append(rec.ignored, param)
				continue
			}
			inferred, ierr := ai.Infer(aiStr)
			if ierr != nil {
				rec.ignored = append(rec.ignored, param)
				continue
			}
			entry = inferred
		}

		rawValue := param[eq+1:]
		value, poff, ok := percentDecode(rawValue)
		if !ok {
			e := errKind(Structural, "invalid percent escape in Digital Link query")
			e.AI, e.Pos, e.Len, e.input = aiStr, off+eq+1+poff, 1, uri
			return nil, e
		}
		rec.elements = append(rec.elements, Element{
			AI: aiStr, Value: value, Entry: entry, attr: true,
			Pos: off + eq + 1, Len: len(rawValue),
		})
	}
	return rec, nil
}

// expandGTIN normalises the Digital Link GTIN path component to 14 digits.
// Shortened forms are only admitted when zero-suppressed GTINs are
// explicitly permitted.
func expandGTIN(value string, permitZeroSuppressed bool) (string, *Error) {
	if !allDigits(value) {
		return "", errKind(Structural, "Digital Link GTIN must be all digits")
	}
	switch len(value) {
	case 14:
		return value, nil
	case 8, 12, 13:
		if !permitZeroSuppressed {
			return "", errKind(Structural, "Digital Link GTIN must be 14 digits")
		}
		return strings.Repeat("0", 14-len(value)) + value, nil
	}
	return "", errKind(Structural, "Digital Link GTIN must be 8, 12, 13 or 14 digits")
}

func qualifierRank(key *ai.Entry, aiStr string) int {
	for i, q := range key.DLQualifiers {
		if q == aiStr {
			return i
		}
	}
	return -1
}

// encodeDigitalLink renders the element sequence as a Digital Link URI:
// the primary key and its qualifiers in canonical path order, every other
// element as a query parameter, under the configured or default domain.
func encodeDigitalLink(rec *record, domain string) (string, *Error) {
	if rec.primary != "" {
		return "", errKind(Underlying, "record has a non-AI primary; no Digital Link form exists")
	}
	if len(rec.elements) == 0 {
		return "", errKind(Underlying, "no AI data to render")
	}

	var key *Element
	for i := range rec.elements {
		if rec.elements[i].Entry.DLKey {
			key = &rec.elements[i]
			break
		}
	}
	if key == nil {
		return "", errKind(Underlying, "no element is a Digital Link primary identification key")
	}

	if domain == "" {
		domain = DefaultDLDomain
	}
	domain = strings.TrimRight(domain, "/")

	var b strings.Builder
	b.WriteString(domain)
	b.WriteByte('/')
	b.WriteString(key.AI)
	b.WriteByte('/')
	b.WriteString(dlEscaper.Replace(key.Value))

	used := map[*Element]bool{key: true}
	for _, q := range key.Entry.DLQualifiers {
		for i := range rec.elements {
			el := &rec.elements[i]
			if el.AI != q || used[el] {
				continue
			}
			b.WriteByte('/')
			b.WriteString(el.AI)
			b.WriteByte('/')
			b.WriteString(dlEscaper.Replace(el.Value))
			used[el] = true
			break
		}
	}

	sep := byte('?')
	for i := range rec.elements {
		el := &rec.elements[i]
		if used[el] {
			continue
		}
		b.WriteByte(sep)
		sep = '&'
		b.WriteString(el.AI)
		b.WriteByte('=')
		b.WriteString(dlEscaper.Replace(el.Value))
	}
	return b.String(), nil
}
