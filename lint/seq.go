/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

// Latitude ensures the value is a ten-digit latitude: degrees times 10^7,
// offset so that 0000000000 is 90°S and 1800000000 is 90°N.
func Latitude(value string) *Error {
	if len(value) != 10 {
		return errAt(LatitudeInvalidLength, 0, len(value))
	}
	v := 0
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return errAt(NonDigitCharacter, i, 1)
		}
		v = v*10 + int(value[i]-'0')
	}
	if v > 1800000000 {
		return errAt(InvalidLatitude, 0, 10)
	}
	return nil
}

// Longitude ensures the value is a ten-digit longitude: degrees times 10^7,
// offset so that 0000000000 is 180°W and 3600000000 is 180°E.
func Longitude(value string) *Error {
	if len(value) != 10 {
		return errAt(LongitudeInvalidLength, 0, len(value))
	}
	v := 0
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return errAt(NonDigitCharacter, i, 1)
		}
		v = v*10 + int(value[i]-'0')
	}
	if v > 3600000000 {
		return errAt(InvalidLongitude, 0, 10)
	}
	return nil
}

// PieceOfTotal ensures the value is a piece number and a total piece count
// of equal width, neither zero, with the piece number not exceeding the
// total.
func PieceOfTotal(value string) *Error {
	if i, ok := digits(value); !ok {
		return errAt(NonDigitCharacter, i, 1)
	}
	if len(value) == 0 || len(value)%2 != 0 {
		return errAt(InvalidLengthForPieceOfTotal, 0, len(value))
	}

	half := len(value) / 2
	piece, total := value[:half], value[half:]

	if allZero(piece) {
		return errAt(ZeroPieceNumber, 0, half)
	}
	if allZero(total) {
		return errAt(ZeroTotalPieces, half, half)
	}
	if piece > total { // same width, so string order is numeric order
		return errAt(PieceNumberExceedsTotal, 0, len(value))
	}
	return nil
}

func allZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}

// PosInSeqSlash ensures the value has the form "<pos>/<end>", both parts
// non-empty digit runs without zero prefixes, with pos not exceeding end.
func PosInSeqSlash(value string) *Error {
	slash := 0
	for slash < len(value) && value[slash] >= '0' && value[slash] <= '9' {
		slash++
	}
	if slash == 0 || slash >= len(value) || value[slash] != '/' {
		return errAt(PositionInSequenceMalformed, 0, len(value))
	}

	pos, end := value[:slash], value[slash+1:]
	if len(end) == 0 {
		return errAt(PositionInSequenceMalformed, 0, len(value))
	}
	if _, ok := digits(end); !ok {
		return errAt(PositionInSequenceMalformed, 0, len(value))
	}

	if pos[0] == '0' {
		return errAt(IllegalZeroPrefix, 0, len(pos))
	}
	if end[0] == '0' {
		return errAt(IllegalZeroPrefix, slash+1, len(end))
	}

	// Zero prefixes are excluded, so width comparison is numeric.
	if len(pos) > len(end) || (len(pos) == len(end) && pos > end) {
		return errAt(PositionExceedsEnd, 0, len(value))
	}
	return nil
}

// CouponPosOffer ensures the value is a North American positive offer file
// coupon code: a format ID, a VLI-prefixed funder ID, a six-digit offer
// code, and a VLI-prefixed serial number.
func CouponPosOffer(value string) *Error {
	if i, ok := digits(value); !ok {
		return errAt(NonDigitCharacter, i, 1)
	}

	p, q := 0, len(value)

	// Format ID must be "0" or "1".
	if p == q {
		return errAt(CouponMissingFormatCode, 0, q)
	}
	if value[p] != '0' && value[p] != '1' {
		return errAt(CouponInvalidFormatCode, p, 1)
	}
	p++

	// Funder VLI 0-6; funder ID length is VLI plus six.
	if p == q {
		return errAt(CouponMissingFunderVLI, 0, q)
	}
	if value[p] > '6' {
		return errAt(CouponInvalidFunderLength, p, 1)
	}
	vli := int(value[p]-'0') + 6
	p++
	if q-p < vli {
		if p == q {
			return errAt(CouponTruncatedFunder, 0, q)
		}
		return errAt(CouponTruncatedFunder, p, q-p)
	}
	p += vli

	// Six-digit offer code.
	if q-p < 6 {
		if p == q {
			return errAt(CouponTruncatedOfferCode, 0, q)
		}
		return errAt(CouponTruncatedOfferCode, p, q-p)
	}
	p += 6

	// Serial number VLI; serial length is VLI plus six.
	if p == q {
		return errAt(CouponMissingSerialNumberVLI, 0, q)
	}
	vli = int(value[p]-'0') + 6
	p++
	if q-p < vli {
		if p == q {
			return errAt(CouponTruncatedSerialNumber, 0, q)
		}
		return errAt(CouponTruncatedSerialNumber, p, q-p)
	}
	p += vli

	if p != q {
		return errAt(CouponExcessData, p, q-p)
	}
	return nil
}
