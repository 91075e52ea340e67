/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package lint

import (
	"fmt"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestLinters(t *testing.T) {
	type lintTest struct {
		name, linter, value string
		code                Code
		markup              string
	}

	pass := func(linter, value string) lintTest {
		return lintTest{name: "pass", linter: linter, value: value, code: OK}
	}

	fail := func(linter, value string, code Code, markup string) lintTest {
		return lintTest{name: "fail", linter: linter, value: value, code: code, markup: markup}
	}

	for i, tt := range []lintTest{
		pass("csetnumeric", "0123456789"),
		fail("csetnumeric", "012A456", NonDigitCharacter, "012*A*456"),

		pass("cset82", "!\"%&'()*+,-./09:;<=>?AZ_az"),
		fail("cset82", "ABC DEF", InvalidCset82Character, "ABC* *DEF"),
		fail("cset82", "AB\\CD", InvalidCset82Character, "AB*\\*CD"),

		pass("cset39", "ABC#-/09"),
		fail("cset39", "ABc", InvalidCset39Character, "AB*c*"),

		pass("cset64", "AZaz09-_"),
		pass("cset64", "ABCD=="),
		fail("cset64", "A=", InvalidCset64Padding, "A*=*"),
		fail("cset64", "AB=D", InvalidCset64Character, "AB*=*D"),

		pass("csum", "09501101530003"),
		pass("csum", "12312312312333"),
		pass("csum", "2112345678900"),
		pass("csum", "416000336108"),
		pass("csum", "02345673"),
		fail("csum", "09501101530004", IncorrectCheckDigit, "0950110153000*4*"),
		fail("csum", "1", TooShortForCheckDigit, "*1*"),

		pass("csumalpha", "1987654Ad4X4bL5ttr2310c2K"),
		fail("csumalpha", "1987654Ad4X4bL5ttr2310cXK", IncorrectCheckCharacterPair,
			"1987654Ad4X4bL5ttr2310c*XK*"),
		fail("csumalpha", "K", TooShortForCheckCharacterPair, "*K*"),

		pass("yymmdd", "240229"), // 2024 is a leap year
		fail("yymmdd", "230229", IllegalDay, "2302*29*"),
		fail("yymmdd", "201300", IllegalMonth, "20*13*00"),
		fail("yymmdd", "200230", IllegalDay, "2002*30*"),
		fail("yymmdd", "2002", DateTooShort, "*2002*"),
		fail("yymmdd", "200200", IllegalDay, "2002*00*"),
		pass("yymmd0", "200200"), // day 00 means end of month
		pass("yyyymmdd", "20240229"),
		fail("yyyymmdd", "20230229", IllegalDay, "202302*29*"),

		pass("yymmddhh", "24022923"),
		fail("yymmddhh", "24022924", IllegalHour, "240229*24*"),
		pass("hhmi", "2359"),
		fail("hhmi", "2360", IllegalMinute, "23*60*"),
		pass("mmoptss", "5959"),
		fail("mmoptss", "60", IllegalMinute, "*60*"),

		pass("iso3166", "840"),
		fail("iso3166", "999", NotIso3166, "*999*"),
		pass("iso3166999", "999"),
		pass("iso3166list", "528276"),
		fail("iso3166list", "528999", NotIso3166, "528*999*"),
		pass("iso3166alpha2", "NL"),
		fail("iso3166alpha2", "XX", NotIso3166Alpha2, "*XX*"),
		pass("iso4217", "978"),
		fail("iso4217", "998", NotIso4217, "*998*"),

		pass("iban", "GB82WEST12345698765432"),
		pass("iban", "BE71096123456769"),
		fail("iban", "GB83WEST12345698765432", IncorrectIbanChecksum, "GB*83*WEST12345698765432"),
		fail("iban", "XX82WEST12345698765432", IllegalIbanCountryCode, "*XX*82WEST12345698765432"),
		fail("iban", "GB82WEST", IbanTooShort, "*GB82WEST*"),

		pass("latitude", "0279085848"),
		fail("latitude", "1800000001", InvalidLatitude, "*1800000001*"),
		pass("longitude", "3600000000"),
		fail("longitude", "3600000001", InvalidLongitude, "*3600000001*"),

		pass("pieceoftotal", "0102"),
		fail("pieceoftotal", "0201", PieceNumberExceedsTotal, "*0201*"),
		fail("pieceoftotal", "0100", ZeroTotalPieces, "01*00*"),
		fail("pieceoftotal", "0002", ZeroPieceNumber, "*00*02"),
		fail("pieceoftotal", "123", InvalidLengthForPieceOfTotal, "*123*"),

		pass("key", "9501101"),
		fail("key", "950", TooShortForGCP, "*950*"),
		fail("key", "95A1101", InvalidGCPPrefix, "95*A*1101"),

		pass("winding", "0"),
		pass("winding", "9"),
		fail("winding", "2", InvalidWindingDirection, "*2*"),

		pass("yesno", "1"),
		fail("yesno", "3", NotZeroOrOne, "*3*"),

		pass("nozeroprefix", "123"),
		fail("nozeroprefix", "0123", IllegalZeroPrefix, "*0*123"),

		pass("pcenc", "AB%2FCD"),
		fail("pcenc", "AB%GGCD", InvalidPercentSequence, "AB*%GGCD*"),

		pass("couponposoffer", "001234566543210123456"),
		fail("couponposoffer", "", CouponMissingFormatCode, "**"),
		fail("couponposoffer", "91234561234569221234", CouponInvalidFormatCode, "*9*1234561234569221234"),

		pass("importeridx", "-"),
		fail("importeridx", "!", InvalidImportIdxCharacter, "*!*"),
	} {
		t.Run(fmt.Sprintf("%02d_%s_%s", i, tt.linter, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)

			fn := Lookup(tt.linter)
			w.StopOnMismatch().As(tt.linter).ShouldBeTrue(fn != nil)

			err := fn(tt.value)
			if tt.code == OK {
				if err != nil {
					w.Logf("unexpected: %s at %d+%d", err, err.Pos, err.Len)
				}
				w.As(tt.value).ShouldBeTrue(err == nil)
				return
			}

			w.StopOnMismatch().As(tt.value).ShouldBeTrue(err != nil)
			w.As(tt.value).ShouldBeEqual(err.Code, tt.code)
			w.As(tt.value).ShouldBeEqual(Markup(tt.value, err.Pos, err.Len), tt.markup)
		})
	}
}

func TestLookupUnknownLinter(t *testing.T) {
	expect.WrapT(t).ShouldBeTrue(Lookup("nosuchlinter") == nil)
}

func TestCheckDigit(t *testing.T) {
	w := expect.WrapT(t)

	// The recomputed digit always verifies.
	for _, digits := range []string{
		"0950110153000", "1231231231233", "211234567890", "41600033610", "0234567",
	} {
		full := digits + string(CheckDigit(digits))
		w.As(full).ShouldBeTrue(Csum(full) == nil)
	}

	w.ShouldBeEqual(CheckDigit("0950110153000"), byte('3'))
	w.ShouldBeEqual(CheckDigit("2401234567890"), byte('5'))
}

func TestMarkupClamping(t *testing.T) {
	w := expect.WrapT(t)
	w.ShouldBeEqual(Markup("200230", 4, 2), "2002*30*")
	w.ShouldBeEqual(Markup("abc", 10, 2), "abc**")
	w.ShouldBeEqual(Markup("abc", -1, 99), "*abc*")
}
