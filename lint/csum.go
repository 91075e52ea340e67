/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

// gcpMinLength is the shortest GS1 Company Prefix that can be allocated.
const gcpMinLength = 4

// Csum ensures the value carries a valid GS1 numeric check digit: the final
// digit must make the 3:1:3-weighted sum of all digits a multiple of 10.
func Csum(value string) *Error {
	if len(value) < 2 {
		return errAt(TooShortForCheckDigit, 0, len(value))
	}

	// Weights alternate ...3:1:3 from right to left, excluding the check
	// digit itself.
	weight := 1
	if len(value)%2 == 0 {
		weight = 3
	}
	parity := 0
	for i := 0; i < len(value)-1; i++ {
		if value[i] < '0' || value[i] > '9' {
			return errAt(NonDigitCharacter, i, 1)
		}
		parity += weight * int(value[i]-'0')
		weight = 4 - weight
	}

	last := value[len(value)-1]
	if last < '0' || last > '9' {
		return errAt(NonDigitCharacter, len(value)-1, 1)
	}
	if byte((10-parity%10)%10)+'0' != last {
		return errAt(IncorrectCheckDigit, len(value)-1, 1)
	}
	return nil
}

// CheckDigit returns the GS1 check digit for the given run of digits. It is
// the caller's responsibility to pass digits only.
func CheckDigit(digitsOnly string) byte {
	weight := 3
	if len(digitsOnly)%2 == 0 {
		weight = 1
	}
	parity := 0
	for i := 0; i < len(digitsOnly); i++ {
		parity += weight * int(digitsOnly[i]-'0')
		weight = 4 - weight
	}
	return byte((10-parity%10)%10) + '0'
}

// cset32 is the alphabet from which GMN check character pairs are drawn.
const cset32 = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// cset82Value maps a CSET 82 character to its ordinal value, or -1.
var cset82Value [128]int

func init() {
	const ordered = `!"%&'()*+,-./0123456789:;<=>?ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz`
	for i := range cset82Value {
		cset82Value[i] = -1
	}
	for i := 0; i < len(ordered); i++ {
		cset82Value[ordered[i]] = i
	}
}

// csumAlphaPrimes are the position weights for the check character pair
// calculation, applied right to left over the data characters.
var csumAlphaPrimes = [...]int{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37,
	41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83,
}

// CsumAlpha ensures the value ends with a valid alphanumeric check character
// pair, as used by the Global Model Number. The data characters are weighted
// by ascending primes from right to left, summed modulo 1021, and the sum is
// transcribed as two characters from a 32-character alphabet.
func CsumAlpha(value string) *Error {
	if len(value) < 2 {
		return errAt(TooShortForCheckCharacterPair, 0, len(value))
	}
	data := value[:len(value)-2]
	if len(data) > len(csumAlphaPrimes) {
		return errAt(TooLongForCheckCharacterPair, 0, len(value))
	}

	sum := 0
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] >= 128 || cset82Value[data[i]] == -1 {
			return errAt(InvalidCset82Character, i, 1)
		}
		sum += cset82Value[data[i]] * csumAlphaPrimes[len(data)-1-i]
	}
	sum %= 1021

	if value[len(value)-2] != cset32[sum>>5] || value[len(value)-1] != cset32[sum&31] {
		return errAt(IncorrectCheckCharacterPair, len(value)-2, 2)
	}
	return nil
}

// Key ensures the value begins with a plausible GS1 Company Prefix: at least
// four characters, of which the first four are digits.
func Key(value string) *Error {
	if len(value) < gcpMinLength {
		return errAt(TooShortForGCP, 0, len(value))
	}
	for i := 0; i < gcpMinLength; i++ {
		if value[i] < '0' || value[i] > '9' {
			return errAt(InvalidGCPPrefix, i, 1)
		}
	}
	return nil
}

// KeyOff1 applies the Key linter from the second character, for keys whose
// first character precedes the GS1 Company Prefix (such as the SSCC
// extension digit or the GTIN indicator digit).
func KeyOff1(value string) *Error {
	if len(value) < 2 {
		return errAt(TooShortForGCP, 0, len(value))
	}
	if err := Key(value[1:]); err != nil {
		return errAt(err.Code, err.Pos+1, err.Len)
	}
	return nil
}
