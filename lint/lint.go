/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package lint implements the GS1 Barcode Syntax Dictionary linters: small,
// single-purpose validators applied to the value of an Application Identifier
// after its basic length and character-set shape has been checked.
//
// Each linter receives the component value and either passes or reports a
// code together with the exact byte span of the offending data, so that
// callers can highlight the problem within the original input.
package lint

import "strconv"

// Code identifies the specific rule that a value violated.
type Code int

const (
	OK Code = iota
	NonDigitCharacter
	TooShortForCheckDigit
	IncorrectCheckDigit
	TooShortForCheckCharacterPair
	TooLongForCheckCharacterPair
	IncorrectCheckCharacterPair
	InvalidCset82Character
	InvalidCset39Character
	InvalidCset64Character
	InvalidCset64Padding
	DateTooShort
	DateTooLong
	IllegalMonth
	IllegalDay
	HourTooShort
	HourTooLong
	IllegalHour
	MinuteTooShort
	MinuteTooLong
	IllegalMinute
	SecondTooShort
	SecondTooLong
	IllegalSecond
	HourWithMinuteTooShort
	HourWithMinuteTooLong
	NotIso3166
	NotIso3166Or999
	NotIso3166Alpha2
	NotIso4217
	IbanTooShort
	IbanTooLong
	IllegalIbanCountryCode
	InvalidIbanCharacter
	IncorrectIbanChecksum
	LatitudeInvalidLength
	InvalidLatitude
	LongitudeInvalidLength
	InvalidLongitude
	InvalidWindingDirection
	InvalidBiologicalSexCode
	NotZeroOrOne
	NotZero
	NotHyphen
	RequiresNonDigitCharacter
	IllegalZeroValue
	IllegalZeroPrefix
	InvalidLengthForPieceOfTotal
	ZeroPieceNumber
	ZeroTotalPieces
	PieceNumberExceedsTotal
	PositionInSequenceMalformed
	PositionExceedsEnd
	ImporterIdxMustBeOneCharacter
	InvalidImportIdxCharacter
	CouponMissingFormatCode
	CouponInvalidFormatCode
	CouponMissingFunderVLI
	CouponInvalidFunderLength
	CouponTruncatedFunder
	CouponTruncatedOfferCode
	CouponMissingSerialNumberVLI
	CouponTruncatedSerialNumber
	CouponExcessData
	TooShortForGCP
	InvalidGCPPrefix
	InvalidPercentSequence
	ValueTooShort
	ValueTooLong
)

var codeNames = map[Code]string{
	OK:                            "ok",
	NonDigitCharacter:             "non-digit character",
	TooShortForCheckDigit:         "too short for check digit",
	IncorrectCheckDigit:           "incorrect check digit",
	TooShortForCheckCharacterPair: "too short for check character pair",
	TooLongForCheckCharacterPair:  "too long for check character pair",
	IncorrectCheckCharacterPair:   "incorrect check character pair",
	InvalidCset82Character:        "invalid CSET 82 character",
	InvalidCset39Character:        "invalid CSET 39 character",
	InvalidCset64Character:        "invalid CSET 64 character",
	InvalidCset64Padding:          "invalid CSET 64 padding",
	DateTooShort:                  "date too short",
	DateTooLong:                   "date too long",
	IllegalMonth:                  "illegal month",
	IllegalDay:                    "illegal day",
	HourTooShort:                  "hour too short",
	HourTooLong:                   "hour too long",
	IllegalHour:                   "illegal hour",
	MinuteTooShort:                "minute too short",
	MinuteTooLong:                 "minute too long",
	IllegalMinute:                 "illegal minute",
	SecondTooShort:                "second too short",
	SecondTooLong:                 "second too long",
	IllegalSecond:                 "illegal second",
	HourWithMinuteTooShort:        "hour with minute too short",
	HourWithMinuteTooLong:         "hour with minute too long",
	NotIso3166:                    "not an ISO 3166 country code",
	NotIso3166Or999:               "not an ISO 3166 country code or 999",
	NotIso3166Alpha2:              "not an ISO 3166 alpha-2 country code",
	NotIso4217:                    "not an ISO 4217 currency code",
	IbanTooShort:                  "IBAN too short",
	IbanTooLong:                   "IBAN too long",
	IllegalIbanCountryCode:        "illegal IBAN country code",
	InvalidIbanCharacter:          "invalid IBAN character",
	IncorrectIbanChecksum:         "incorrect IBAN checksum",
	LatitudeInvalidLength:         "invalid length for latitude",
	InvalidLatitude:               "invalid latitude",
	LongitudeInvalidLength:        "invalid length for longitude",
	InvalidLongitude:              "invalid longitude",
	InvalidWindingDirection:       "invalid winding direction",
	InvalidBiologicalSexCode:      "invalid biological sex code",
	NotZeroOrOne:                  "not zero or one",
	NotZero:                       "not zero",
	NotHyphen:                     "not hyphen",
	RequiresNonDigitCharacter:     "requires a non-digit character",
	IllegalZeroValue:              "illegal zero value",
	IllegalZeroPrefix:             "illegal zero prefix",
	InvalidLengthForPieceOfTotal:  "invalid length for piece of total",
	ZeroPieceNumber:               "piece number must not be zero",
	ZeroTotalPieces:               "total pieces must not be zero",
	PieceNumberExceedsTotal:       "piece number exceeds total pieces",
	PositionInSequenceMalformed:   "position in sequence is malformed",
	PositionExceedsEnd:            "position exceeds end of sequence",
	ImporterIdxMustBeOneCharacter: "importer index must be one character",
	InvalidImportIdxCharacter:     "invalid importer index character",
	CouponMissingFormatCode:       "coupon is missing its format code",
	CouponInvalidFormatCode:       "coupon format code is invalid",
	CouponMissingFunderVLI:        "coupon is missing its funder VLI",
	CouponInvalidFunderLength:     "coupon funder length is invalid",
	CouponTruncatedFunder:         "coupon funder ID is truncated",
	CouponTruncatedOfferCode:      "coupon offer code is truncated",
	CouponMissingSerialNumberVLI:  "coupon is missing its serial number VLI",
	CouponTruncatedSerialNumber:   "coupon serial number is truncated",
	CouponExcessData:              "coupon has excess data",
	TooShortForGCP:                "too short for a GS1 Company Prefix",
	InvalidGCPPrefix:              "invalid GS1 Company Prefix",
	InvalidPercentSequence:        "invalid percent escape sequence",
	ValueTooShort:                 "value too short",
	ValueTooLong:                  "value too long",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown linter code " + strconv.Itoa(int(c))
}

// Error reports a linter failure with the byte span of the offending data
// within the linted value. A zero-length span points at the position where
// missing data was expected.
type Error struct {
	Code Code
	Pos  int
	Len  int
}

func (e *Error) Error() string {
	return e.Code.String()
}

func errAt(code Code, pos, length int) *Error {
	return &Error{Code: code, Pos: pos, Len: length}
}

// Func is a single linter. It returns nil if the value passes.
type Func func(value string) *Error

// Lookup returns the linter registered under the given dictionary name, or
// nil if no such linter exists. The registry is fixed at process start and
// never mutated, so it is safe for concurrent use.
func Lookup(name string) Func {
	return registry[name]
}

var registry = map[string]Func{
	"csum":           Csum,
	"csumalpha":      CsumAlpha,
	"csetnumeric":    CsetNumeric,
	"cset82":         Cset82,
	"cset39":         Cset39,
	"cset64":         Cset64,
	"yymmdd":         YYMMDD,
	"yymmd0":         YYMMD0,
	"yyyymmdd":       YYYYMMDD,
	"yyyymmd0":       YYYYMMD0,
	"yymmddhh":       YYMMDDHH,
	"hh":             HH,
	"mi":             MI,
	"ss":             SS,
	"hhmi":           HHMI,
	"hhmm":           HHMI, // legacy dictionary spelling
	"mmoptss":        MMOptSS,
	"iso3166":        Iso3166,
	"iso3166999":     Iso3166Or999,
	"iso3166alpha2":  Iso3166Alpha2,
	"iso3166list":    Iso3166List,
	"iso4217":        Iso4217,
	"iso5218":        Iso5218,
	"iban":           Iban,
	"latitude":       Latitude,
	"longitude":      Longitude,
	"winding":        Winding,
	"yesno":          YesNo,
	"zero":           Zero,
	"nonzero":        NonZero,
	"hyphen":         Hyphen,
	"hasnondigit":    HasNonDigit,
	"pieceoftotal":   PieceOfTotal,
	"posinseqslash":  PosInSeqSlash,
	"importeridx":    ImporterIdx,
	"couponposoffer": CouponPosOffer,
	"key":            Key,
	"keyoff1":        KeyOff1,
	"nozeroprefix":   NoZeroPrefix,
	"pcenc":          PcEnc,
	"gcppos1":        Key,
	"gcppos2":        KeyOff1,
}

// Markup returns the value with the span [pos, pos+length) bracketed by '*'
// markers, the convention used for error highlighting:
//
//	Markup("200230", 4, 2) == "2002*30*"
//
// Out-of-range spans are clamped to the value.
func Markup(value string, pos, length int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(value) {
		pos = len(value)
	}
	end := pos + length
	if end > len(value) {
		end = len(value)
	}
	return value[:pos] + "*" + value[pos:end] + "*" + value[end:]
}

// digits reports whether every byte of s is '0'-'9', returning the index of
// the first byte that is not.
func digits(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i, false
		}
	}
	return -1, true
}
