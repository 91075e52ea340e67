/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

var (
	// CSET 82: the file-safe / URI-safe invoicing character set permitted
	// in most alphanumeric AI values.
	cset82 = [128]bool{
		'!': true, '"': true, '%': true, '&': true, '\'': true,
		'(': true, ')': true, '*': true, '+': true, ',': true,
		'-': true, '.': true, '/': true, ':': true, ';': true,
		'<': true, '=': true, '>': true, '?': true, '_': true,
		'0': true, '1': true, '2': true, '3': true, '4': true,
		'5': true, '6': true, '7': true, '8': true, '9': true,
		'A': true, 'B': true, 'C': true, 'D': true, 'E': true,
		'F': true, 'G': true, 'H': true, 'I': true, 'J': true,
		'K': true, 'L': true, 'M': true, 'N': true, 'O': true,
		'P': true, 'Q': true, 'R': true, 'S': true, 'T': true,
		'U': true, 'V': true, 'W': true, 'X': true, 'Y': true,
		'Z': true,
		'a': true, 'b': true, 'c': true, 'd': true, 'e': true,
		'f': true, 'g': true, 'h': true, 'i': true, 'j': true,
		'k': true, 'l': true, 'm': true, 'n': true, 'o': true,
		'p': true, 'q': true, 'r': true, 's': true, 't': true,
		'u': true, 'v': true, 'w': true, 'x': true, 'y': true,
		'z': true,
	}

	// CSET 39: digits, upper case letters, and "#-/".
	cset39 = [128]bool{
		'#': true, '-': true, '/': true,
		'0': true, '1': true, '2': true, '3': true, '4': true,
		'5': true, '6': true, '7': true, '8': true, '9': true,
		'A': true, 'B': true, 'C': true, 'D': true, 'E': true,
		'F': true, 'G': true, 'H': true, 'I': true, 'J': true,
		'K': true, 'L': true, 'M': true, 'N': true, 'O': true,
		'P': true, 'Q': true, 'R': true, 'S': true, 'T': true,
		'U': true, 'V': true, 'W': true, 'X': true, 'Y': true,
		'Z': true,
	}

	// CSET 64: URL-safe base64 alphabet with optional '=' padding.
	cset64 = [128]bool{
		'-': true, '_': true,
		'0': true, '1': true, '2': true, '3': true, '4': true,
		'5': true, '6': true, '7': true, '8': true, '9': true,
	}
)

func init() {
	for c := byte('A'); c <= 'Z'; c++ {
		cset64[c] = true
		cset64[c+'a'-'A'] = true
	}
}

func inCset(s string, i int, set *[128]bool) bool {
	return s[i] < 128 && set[s[i]]
}

// CsetNumeric ensures the value consists only of digits.
func CsetNumeric(value string) *Error {
	if i, ok := digits(value); !ok {
		return errAt(NonDigitCharacter, i, 1)
	}
	return nil
}

// Cset82 ensures the value consists only of CSET 82 characters.
func Cset82(value string) *Error {
	for i := 0; i < len(value); i++ {
		if !inCset(value, i, &cset82) {
			return errAt(InvalidCset82Character, i, 1)
		}
	}
	return nil
}

// Cset39 ensures the value consists only of CSET 39 characters.
func Cset39(value string) *Error {
	for i := 0; i < len(value); i++ {
		if !inCset(value, i, &cset39) {
			return errAt(InvalidCset39Character, i, 1)
		}
	}
	return nil
}

// Cset64 ensures the value is file-safe URI-safe base64: CSET 64 characters
// with at most two '=' padding characters, and padding only when the overall
// length is a multiple of three.
func Cset64(value string) *Error {
	pads := 0
	for pads < len(value) && value[len(value)-pads-1] == '=' {
		pads++
	}
	n := len(value) - pads
	if pads > 2 || (pads > 0 && len(value)%3 != 0) {
		return errAt(InvalidCset64Padding, n, pads)
	}
	for i := 0; i < n; i++ {
		if !inCset(value, i, &cset64) {
			return errAt(InvalidCset64Character, i, 1)
		}
	}
	return nil
}

// HasNonDigit ensures the value is not entirely numeric.
func HasNonDigit(value string) *Error {
	if _, ok := digits(value); ok {
		return errAt(RequiresNonDigitCharacter, 0, len(value))
	}
	return nil
}

// Hyphen ensures the value is a non-empty run of '-' characters.
func Hyphen(value string) *Error {
	if len(value) == 0 {
		return errAt(NotHyphen, 0, 0)
	}
	for i := 0; i < len(value); i++ {
		if value[i] != '-' {
			return errAt(NotHyphen, 0, len(value))
		}
	}
	return nil
}

// Zero ensures the value is a non-empty run of '0' characters.
func Zero(value string) *Error {
	if len(value) == 0 {
		return errAt(NotZero, 0, 0)
	}
	for i := 0; i < len(value); i++ {
		if value[i] != '0' {
			return errAt(NotZero, 0, len(value))
		}
	}
	return nil
}

// NonZero ensures the value is all digits with at least one non-zero digit.
func NonZero(value string) *Error {
	hasNonZero := false
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return errAt(NonDigitCharacter, i, 1)
		}
		if value[i] != '0' {
			hasNonZero = true
		}
	}
	if !hasNonZero {
		return errAt(IllegalZeroValue, 0, len(value))
	}
	return nil
}

// NoZeroPrefix ensures the value does not begin with '0', except for the
// single value "0".
func NoZeroPrefix(value string) *Error {
	if len(value) > 1 && value[0] == '0' {
		return errAt(IllegalZeroPrefix, 0, 1)
	}
	return nil
}

// YesNo ensures the value is "0" or "1".
func YesNo(value string) *Error {
	if len(value) != 1 {
		return errAt(NotZeroOrOne, 0, len(value))
	}
	if value[0] != '0' && value[0] != '1' {
		return errAt(NotZeroOrOne, 0, 1)
	}
	return nil
}

// Winding ensures the value is a valid winding direction: "0", "1" or "9".
func Winding(value string) *Error {
	if len(value) != 1 {
		return errAt(InvalidWindingDirection, 0, len(value))
	}
	if value[0] != '0' && value[0] != '1' && value[0] != '9' {
		return errAt(InvalidWindingDirection, 0, 1)
	}
	return nil
}

// Iso5218 ensures the value is an ISO/IEC 5218 biological sex code:
// "0", "1", "2" or "9".
func Iso5218(value string) *Error {
	if len(value) != 1 {
		return errAt(InvalidBiologicalSexCode, 0, len(value))
	}
	switch value[0] {
	case '0', '1', '2', '9':
		return nil
	}
	return errAt(InvalidBiologicalSexCode, 0, 1)
}

// ImporterIdx ensures the value is a single importer index character:
// a digit, letter, '-' or '_'.
func ImporterIdx(value string) *Error {
	if len(value) != 1 {
		return errAt(ImporterIdxMustBeOneCharacter, 0, len(value))
	}
	c := value[0]
	ok := c == '-' || c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z')
	if !ok {
		return errAt(InvalidImportIdxCharacter, 0, 1)
	}
	return nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

// PcEnc ensures that every '%' in the value begins a valid two-hex-digit
// percent escape sequence.
func PcEnc(value string) *Error {
	for i := 0; i < len(value); i++ {
		if value[i] != '%' {
			continue
		}
		if i+2 >= len(value) || !isHex(value[i+1]) || !isHex(value[i+2]) {
			return errAt(InvalidPercentSequence, i, len(value)-i)
		}
		i += 2
	}
	return nil
}
