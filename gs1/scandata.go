/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"strings"

	"github.com/barcodeops/gs1syntax/lint"
)

// Symbology selects the barcode carrier whose AIM symbology identifier and
// separator conventions govern scan data.
type Symbology int

const (
	SymNone Symbology = iota
	SymDataBarOmni
	SymDataBarTruncated
	SymDataBarStacked
	SymDataBarStackedOmni
	SymDataBarLimited
	SymDataBarExpanded
	SymUPCA
	SymUPCE
	SymEAN13
	SymEAN8
	SymGS1_128_CCA
	SymGS1_128_CCC
	SymQR
	SymDM
	SymDotCode
)

var symNames = map[Symbology]string{
	SymNone:               "none",
	SymDataBarOmni:        "GS1 DataBar Omnidirectional",
	SymDataBarTruncated:   "GS1 DataBar Truncated",
	SymDataBarStacked:     "GS1 DataBar Stacked",
	SymDataBarStackedOmni: "GS1 DataBar Stacked Omnidirectional",
	SymDataBarLimited:     "GS1 DataBar Limited",
	SymDataBarExpanded:    "GS1 DataBar Expanded",
	SymUPCA:               "UPC-A",
	SymUPCE:               "UPC-E",
	SymEAN13:              "EAN-13",
	SymEAN8:               "EAN-8",
	SymGS1_128_CCA:        "GS1-128 with CC-A",
	SymGS1_128_CCC:        "GS1-128 with CC-C",
	SymQR:                 "QR Code",
	SymDM:                 "Data Matrix",
	SymDotCode:            "DotCode",
}

func (s Symbology) String() string {
	if n, ok := symNames[s]; ok {
		return n
	}
	return "unknown symbology"
}

// gs is the ASCII Group Separator, the FNC1 stand-in within scan data.
const gs = "\x1D"

// ccSymID prefixes the composite component of an EAN/UPC scan, which
// arrives as a second message.
const ccSymID = "]e0"

// symIDEntry associates an AIM symbology identifier with a carrier and
// with whether the payload that follows is GS1 AI data or plain data. The
// first matching entry in a lookup is the default.
type symIDEntry struct {
	symID  string
	aiData bool
	sym    Symbology
}

var symIDTable = []symIDEntry{
	{"C1", true, SymGS1_128_CCA},
	{"C1", true, SymGS1_128_CCC},
	{"E0", false, SymEAN13},
	{"E0", true, SymEAN13},
	{"E0", false, SymUPCA},
	{"E0", true, SymUPCA},
	{"E0", false, SymUPCE},
	{"E0", true, SymUPCE},
	{"E4", false, SymEAN8},
	{"E4", true, SymEAN8},
	{"e0", true, SymDataBarExpanded},
	{"e0", true, SymDataBarOmni},
	{"e0", false, SymDataBarOmni},
	{"e0", true, SymDataBarTruncated},
	{"e0", false, SymDataBarTruncated},
	{"e0", true, SymDataBarStacked},
	{"e0", false, SymDataBarStacked},
	{"e0", true, SymDataBarStackedOmni},
	{"e0", false, SymDataBarStackedOmni},
	{"e0", true, SymDataBarLimited},
	{"e0", false, SymDataBarLimited},
	// e0 also covers GS1-128 with a composite component
	{"d1", false, SymDM},
	{"d2", true, SymDM},
	{"Q1", false, SymQR},
	{"Q3", true, SymQR},
	{"J0", false, SymDotCode},
	{"J1", true, SymDotCode},
}

func lookupSymID(sym Symbology, aiData bool) string {
	for _, e := range symIDTable {
		if e.sym == sym && e.aiData == aiData {
			return e.symID
		}
	}
	return ""
}

func lookupSymByID(symID string) (Symbology, bool, bool) {
	for _, e := range symIDTable {
		if e.symID == symID {
			return e.sym, e.aiData, true
		}
	}
	return SymNone, false, false
}

// scancat appends payload data to out. AI data loses its leading sentinel
// and has inner "^" converted to GS; plain data loses one backslash from a
// leading "\...^" escape run.
func scancat(b *strings.Builder, in string) {
	if strings.HasPrefix(in, "^") {
		b.WriteString(strings.ReplaceAll(in[1:], "^", gs))
		return
	}
	r := 0
	for r < len(in) && in[r] == '\\' {
		r++
	}
	if r < len(in) && in[r] == '^' {
		in = in[1:]
	}
	b.WriteString(in)
}

// validParity reports whether the final digit of a numeric string is the
// correct GS1 check digit for the preceding digits.
func validParity(digits string) bool {
	return lint.Csum(digits) == nil
}

// normalisePrimary checks primary data of the given total length. When
// addCheckDigit is set the caller supplies one digit fewer and the check
// digit is computed; otherwise the final digit must verify.
func normalisePrimary(data string, length int, addCheckDigit bool) (string, *Error) {
	want := length
	if addCheckDigit {
		want = length - 1
	}
	if len(data) != want {
		if addCheckDigit {
			return "", errKind(Underlying, "primary data must be %d digits without check digit", length-1)
		}
		return "", errKind(Underlying, "primary data must be %d digits", length)
	}
	if !allDigits(data) {
		return "", errKind(Underlying, "primary data may only contain digits")
	}
	if addCheckDigit {
		return data + string(lint.CheckDigit(data)), nil
	}
	if !validParity(data) {
		return "", errKind(Underlying, "primary data check digit is incorrect")
	}
	return data, nil
}

// primaryDigits extracts the EAN/UPC or DataBar primary from the record's
// linear part: either a bare digit run, or a lone AI (01) element whose
// value carries the required zero prefix.
func primaryDigits(rec *record, zeros int) (string, *Error) {
	if rec.primary != "" {
		return rec.primary, nil
	}
	lin := rec.linear()
	if len(lin) != 1 || lin[0].AI != "01" {
		return "", errKind(Underlying, "symbology requires a single AI (01) primary")
	}
	v := lin[0].Value
	if zeros > 0 {
		prefix := strings.Repeat("0", zeros)
		if !strings.HasPrefix(v, prefix) {
			return "", errKind(Underlying, "GTIN does not fit the symbology: requires %d leading zeros", zeros)
		}
		v = v[zeros:]
	}
	return v, nil
}

// encodeScanData renders the record as barcode scan data for the given
// symbology, prefixing the AIM symbology identifier and applying that
// carrier's separator and composite conventions.
func encodeScanData(rec *record, sym Symbology, addCheckDigit bool) (string, *Error) {
	var b strings.Builder
	cc := rec.composite()

	switch sym {

	case SymQR, SymDM, SymDotCode:
		if rec.plain != "" {
			b.WriteByte(']')
			b.WriteString(lookupSymID(sym, false))
			scancat(&b, rec.plain)
			return b.String(), nil
		}
		if len(cc) > 0 || rec.primary != "" {
			return "", errKind(Underlying, "%s does not carry a composite component", sym)
		}
		b.WriteByte(']')
		b.WriteString(lookupSymID(sym, true))
		scancat(&b, encodeUnbracketed(rec))
		return b.String(), nil

	case SymGS1_128_CCA, SymGS1_128_CCC:
		if len(cc) == 0 {
			if rec.plain != "" || rec.primary != "" {
				return "", errKind(Underlying, "%s carries GS1 AI data only", sym)
			}
			b.WriteByte(']')
			b.WriteString(lookupSymID(sym, true))
			scancat(&b, encodeUnbracketed(rec))
			return b.String(), nil
		}
		// A GS1-128 composite is reported under the shared ]e0 identifier.
		fallthrough

	case SymDataBarExpanded:
		lin := rec.linear()
		if rec.plain != "" || rec.primary != "" || len(lin) == 0 {
			return "", errKind(Underlying, "%s carries GS1 AI data only", sym)
		}
		b.WriteString(ccSymID)
		scancat(&b, encodeUnbracketedPart(lin))
		if len(cc) > 0 {
			// A separator is needed unless the linear part ended with a
			// fixed-length AI.
			if lin[len(lin)-1].Entry.FNC1 {
				b.WriteString(gs)
			}
			scancat(&b, encodeUnbracketedPart(cc))
		}
		return b.String(), nil

	case SymDataBarOmni, SymDataBarTruncated, SymDataBarStacked,
		SymDataBarStackedOmni, SymDataBarLimited:

		primary, err := primaryDigits(rec, 0)
		if err != nil {
			return "", err
		}
		primary, err = normalisePrimary(primary, 14, addCheckDigit)
		if err != nil {
			return "", err
		}
		// DataBar Limited is restricted to values below 2 * 10^13.
		if sym == SymDataBarLimited && primary[0] >= '2' {
			return "", errKind(Underlying, "primary data is too large for %s", sym)
		}
		b.WriteByte(']')
		b.WriteString(lookupSymID(sym, true))
		b.WriteString("01")
		b.WriteString(primary)
		if len(cc) > 0 {
			scancat(&b, encodeUnbracketedPart(cc))
		}
		return b.String(), nil

	case SymUPCA, SymUPCE, SymEAN13, SymEAN8:

		length := 12 // UPC, normalised to 12 digits with a zero pad
		pad := "0"
		if sym == SymEAN13 {
			length, pad = 13, ""
		} else if sym == SymEAN8 {
			length, pad = 8, ""
		}

		primary, err := primaryDigits(rec, 14-length)
		if err != nil {
			return "", err
		}
		primary, err = normalisePrimary(primary, length, addCheckDigit)
		if err != nil {
			return "", err
		}
		b.WriteByte(']')
		b.WriteString(lookupSymID(sym, false))
		b.WriteString(pad)
		b.WriteString(primary)
		if len(cc) > 0 {
			b.WriteByte('|')
			b.WriteString(ccSymID)
			scancat(&b, encodeUnbracketedPart(cc))
		}
		return b.String(), nil
	}

	return "", errKind(Underlying, "no symbology selected")
}

// encodeUnbracketedPart renders one part of the element sequence in FNC1
// syntax without the composite marker machinery.
func encodeUnbracketedPart(els []Element) string {
	var b strings.Builder
	b.WriteByte('^')
	for i, el := range els {
		b.WriteString(el.AI)
		b.WriteString(el.Value)
		if el.Entry.FNC1 && i < len(els)-1 {
			b.WriteByte('^')
		}
	}
	return b.String()
}

// decodeScanData parses raw scanner output: an AIM symbology identifier
// followed by the carrier's payload. GS1 payloads are converted to the
// canonical element sequence; plain payloads are retained with the leading
// "^" disambiguation escape applied, and a plain payload that is a GS1
// Digital Link URI additionally has its AI data extracted.
func decodeScanData(scanData string, cfg Config) (*record, Symbology, *Error) {
	if len(scanData) < 3 || scanData[0] != ']' {
		return nil, SymNone, errKind(UnrecognizedFormat, "missing symbology identifier")
	}
	sym, aiData, ok := lookupSymByID(scanData[1:3])
	if !ok {
		return nil, SymNone, errKind(UnrecognizedFormat, "unsupported symbology identifier %q", scanData[:3])
	}

	payload := scanData[3:]
	rec := newRecord()

	if sym == SymEAN13 || sym == SymEAN8 {
		primaryLen := 13
		if sym == SymEAN8 {
			primaryLen = 8
		}
		if len(payload) < primaryLen {
			return nil, SymNone, errKind(Underlying, "primary scan data is too short")
		}

		primary := payload[:primaryLen]
		if !allDigits(primary) {
			return nil, SymNone, errKind(Underlying, "primary message may only contain digits")
		}
		if !validParity(primary) {
			return nil, SymNone, errKind(Underlying, "primary message check digit is incorrect")
		}
		rec.primary = primary

		if len(payload) == primaryLen {
			return rec, sym, nil
		}
		if !strings.HasPrefix(payload[primaryLen:], "|"+ccSymID) {
			return nil, SymNone, errKind(Underlying, "primary message is too long")
		}
		comp, err := decodeAIPayload(payload[primaryLen+1+len(ccSymID):], cfg.PermitUnknownAIs)
		if err != nil {
			return nil, SymNone, err
		}
		rec.split = 0
		rec.elements = comp.elements
		rec.src = comp.src
		return rec, sym, nil
	}

	if aiData {
		parsed, err := decodeAIPayload(payload, cfg.PermitUnknownAIs)
		if err != nil {
			return nil, SymNone, err
		}
		return parsed, sym, nil
	}

	// Plain data. Escape a leading "^" so it cannot be conflated with the
	// AI data sentinel: "^..." -> "\^...", "\^..." -> "\\^...".
	r := 0
	for r < len(payload) && payload[r] == '\\' {
		r++
	}
	if r < len(payload) && payload[r] == '^' {
		rec.plain = "\\" + payload
	} else {
		rec.plain = payload
	}

	if hasDLScheme(payload) {
		dl, err := decodeDigitalLink(payload, cfg)
		if err != nil {
			return nil, SymNone, err
		}
		dl.plain = rec.plain
		return dl, sym, nil
	}
	if rec.plain == "" {
		return nil, SymNone, errKind(EmptyInput, "scan data payload is empty")
	}

	return rec, sym, nil
}

// decodeAIPayload converts a GS1 scan payload, with GS separators, to the
// canonical element sequence.
func decodeAIPayload(payload string, permitUnknown bool) (*record, *Error) {
	if payload == "" {
		return nil, errKind(Structural, "no AI data")
	}
	// A "^" in the raw payload would be conflated with FNC1.
	if i := strings.IndexByte(payload, '^'); i >= 0 {
		e := errKind(Structural, "scan data contains an illegal \"^\" character")
		e.Pos, e.Len, e.input = i, 1, payload
		return nil, e
	}
	return decodeUnbracketed("^"+strings.ReplaceAll(payload, gs, "^"), permitUnknown)
}
