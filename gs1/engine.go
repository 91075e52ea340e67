/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"strings"

	"github.com/barcodeops/gs1syntax/ai"
	"github.com/barcodeops/gs1syntax/lint"
)

// Config holds the togglable behaviours of an Engine. Changes take effect
// on the next SetInput or render call.
type Config struct {
	// Symbology selects the carrier for scan data generation. Processing
	// scan data input replaces it with the scanned carrier.
	Symbology Symbology

	// AddCheckDigit accepts primary data with the check digit omitted and
	// computes it, both for plain GTIN input and scan data generation.
	AddCheckDigit bool

	// IncludeHRITitles prefixes each human-readable line with the AI's
	// dictionary title.
	IncludeHRITitles bool

	// PermitUnknownAIs admits AIs absent from the syntax dictionary,
	// provided their shape is inferable from a documented prefix family.
	PermitUnknownAIs bool

	// PermitZeroSuppressedGTIN expands 8, 12 and 13 digit GTIN path
	// components of Digital Link URIs to 14 digits instead of rejecting
	// them.
	PermitZeroSuppressedGTIN bool

	// ValidateRequisites enforces requisite AI associations. Mutual
	// exclusivity and repetition control are always enforced.
	ValidateRequisites bool

	// RejectUnknownDLAttributes refuses family-inferred AIs appearing as
	// Digital Link query attributes.
	RejectUnknownDLAttributes bool

	// DLDomain overrides the domain used for Digital Link generation.
	DLDomain string
}

// DefaultConfig enables the togglable validations and leaves every
// permissive option off.
func DefaultConfig() Config {
	return Config{
		ValidateRequisites:        true,
		RejectUnknownDLAttributes: true,
	}
}

// Engine parses one GS1 data record at a time and renders it in any of the
// surface formats. An Engine is stateful and not safe for concurrent use;
// callers needing parallelism should use one Engine per goroutine. The
// syntax dictionary and linter registry behind it are read-only and shared
// safely.
type Engine struct {
	cfg     Config
	rec     *record
	lastErr *Error
}

// New returns an Engine with the default configuration and no parsed
// record.
func New() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

func (e *Engine) Config() Config       { return e.cfg }
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg }

func (e *Engine) Symbology() Symbology       { return e.cfg.Symbology }
func (e *Engine) SetSymbology(s Symbology)   { e.cfg.Symbology = s }
func (e *Engine) SetAddCheckDigit(v bool)    { e.cfg.AddCheckDigit = v }
func (e *Engine) SetIncludeHRITitles(v bool) { e.cfg.IncludeHRITitles = v }
func (e *Engine) SetPermitUnknownAIs(v bool) { e.cfg.PermitUnknownAIs = v }
func (e *Engine) SetDLDomain(domain string)  { e.cfg.DLDomain = domain }

// Err returns the error record from the most recent SetInput, or nil if it
// succeeded.
func (e *Engine) Err() *Error { return e.lastErr }

// SetInput decodes raw input, selecting the decoder from its shape:
// leading "(" for bracketed element strings, "^" for unbracketed element
// strings, "]" for scan data, an http or https scheme for Digital Link
// URIs, and an 8, 12, 13 or 14 digit number for a plain GTIN. On success
// the parsed record replaces the engine's state; on failure the prior
// record is left untouched and the failure is recorded.
func (e *Engine) SetInput(raw string) error {
	rec, sym, err := e.decode(raw)
	if err == nil {
		err = validateElements(rec, rec.src)
	}
	if err == nil {
		err = crossField(rec, e.cfg)
	}
	if err != nil {
		if err.input == "" {
			err.input = raw
		}
		e.lastErr = err
		return err
	}

	e.rec = rec
	e.lastErr = nil
	if sym != SymNone {
		e.cfg.Symbology = sym
	}
	return nil
}

func (e *Engine) decode(raw string) (*record, Symbology, *Error) {
	if raw == "" {
		return nil, SymNone, errKind(EmptyInput, "no input")
	}
	switch {
	case raw[0] == '(':
		rec, err := decodeBracketed(raw, e.cfg.PermitUnknownAIs)
		return rec, SymNone, err
	case raw[0] == '^':
		rec, err := decodeUnbracketed(raw, e.cfg.PermitUnknownAIs)
		return rec, SymNone, err
	case raw[0] == ']':
		return decodeScanData(raw, e.cfg)
	case hasDLScheme(raw):
		rec, err := decodeDigitalLink(raw, e.cfg)
		return rec, SymNone, err
	case allDigits(raw):
		rec, err := e.decodePlainGTIN(raw)
		return rec, SymNone, err
	}
	// Composite element strings may front a digit primary before "|"; the
	// byte after the marker tells the two element syntaxes apart.
	if i := strings.IndexByte(raw, '|'); i > 0 && allDigits(raw[:i]) {
		if i+1 < len(raw) && raw[i+1] == '(' {
			rec, err := decodeBracketed(raw, e.cfg.PermitUnknownAIs)
			return rec, SymNone, err
		}
		rec, err := decodeUnbracketed(raw, e.cfg.PermitUnknownAIs)
		return rec, SymNone, err
	}
	return nil, SymNone, errKind(UnrecognizedFormat, "input is not in any recognized GS1 format")
}

// decodePlainGTIN accepts a bare GTIN-8, GTIN-12, GTIN-13 or GTIN-14,
// verifies (or, when configured, computes) its check digit, zero-pads it to
// 14 digits and stores it as an AI (01) element. With AddCheckDigit set the
// input carries one digit fewer.
func (e *Engine) decodePlainGTIN(raw string) (*record, *Error) {
	length := len(raw)
	if e.cfg.AddCheckDigit {
		length++
	}
	switch length {
	case 8, 12, 13, 14:
	default:
		return nil, errKind(UnrecognizedFormat, "a plain GTIN must be 8, 12, 13 or 14 digits")
	}

	data := raw
	if e.cfg.AddCheckDigit {
		data += string(lint.CheckDigit(data))
	} else if !validParity(data) {
		err := errKind(Structural, "incorrect GTIN check digit")
		err.AI = "01"
		err.Code = lint.IncorrectCheckDigit
		err.Pos, err.Len, err.input = len(raw)-1, 1, raw
		return nil, err
	}

	gtin14 := strings.Repeat("0", 14-len(data)) + data
	rec := newRecord()
	rec.src = raw
	rec.elements = []Element{{
		AI: "01", Value: gtin14, Entry: ai.Lookup("01"),
		Pos: 0, Len: len(raw),
	}}
	return rec, nil
}

// Bracketed renders the current record in human-oriented AI syntax.
func (e *Engine) Bracketed() (string, error) {
	if e.rec == nil {
		return "", errKind(Underlying, "no record has been parsed")
	}
	return encodeBracketed(e.rec), nil
}

// Unbracketed renders the current record in FNC1 syntax.
func (e *Engine) Unbracketed() (string, error) {
	if e.rec == nil {
		return "", errKind(Underlying, "no record has been parsed")
	}
	return encodeUnbracketed(e.rec), nil
}

// ScanData renders the current record as barcode scan data for the
// configured symbology.
func (e *Engine) ScanData() (string, error) {
	if e.rec == nil {
		return "", errKind(Underlying, "no record has been parsed")
	}
	if e.cfg.Symbology == SymNone {
		return "", errKind(Underlying, "no symbology selected")
	}
	out, err := encodeScanData(e.rec, e.cfg.Symbology, e.cfg.AddCheckDigit)
	if err != nil {
		return "", err
	}
	return out, nil
}

// DigitalLink renders the current record as a GS1 Digital Link URI under
// the configured or default domain.
func (e *Engine) DigitalLink() (string, error) {
	if e.rec == nil {
		return "", errKind(Underlying, "no record has been parsed")
	}
	out, err := encodeDigitalLink(e.rec, e.cfg.DLDomain)
	if err != nil {
		return "", err
	}
	return out, nil
}

// HRI renders the human-readable interpretation, one line per element,
// optionally prefixed with dictionary titles.
func (e *Engine) HRI() ([]string, error) {
	if e.rec == nil {
		return nil, errKind(Underlying, "no record has been parsed")
	}
	return hriLines(e.rec, e.cfg.IncludeHRITitles), nil
}

// Elements returns a copy of the current record's element sequence.
func (e *Engine) Elements() []Element {
	if e.rec == nil {
		return nil
	}
	out := make([]Element, len(e.rec.elements))
	copy(out, e.rec.elements)
	return out
}

// IgnoredQueryParams returns, verbatim, the Digital Link query parameters
// of the current record that did not map to any AI.
func (e *Engine) IgnoredQueryParams() []string {
	if e.rec == nil {
		return nil
	}
	out := make([]string, len(e.rec.ignored))
	copy(out, e.rec.ignored)
	return out
}
