/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ai

import (
	"fmt"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"

	"github.com/barcodeops/gs1syntax/lint"
)

func TestDictionaryShape(t *testing.T) {
	w := expect.WrapT(t)

	gtin := Lookup("01")
	w.StopOnMismatch().ShouldBeTrue(gtin != nil)
	w.ShouldBeEqual(gtin.Title, "GTIN")
	w.ShouldBeFalse(gtin.FNC1)
	w.ShouldBeEqual(gtin.MinLength(), 14)
	w.ShouldBeEqual(gtin.MaxLength(), 14)
	w.ShouldBeTrue(gtin.DLKey)
	w.ShouldBeEqual(len(gtin.DLQualifiers), 3)
	w.ShouldBeEqual(gtin.DLQualifiers[0], "22")
	w.ShouldBeEqual(gtin.DLQualifiers[1], "10")
	w.ShouldBeEqual(gtin.DLQualifiers[2], "21")

	// The made-to-order GTIN mirrors the GTIN's shape and qualifiers.
	mto := Lookup("03")
	w.StopOnMismatch().ShouldBeTrue(mto != nil)
	w.ShouldBeEqual(mto.MinLength(), 14)
	w.ShouldBeEqual(mto.MaxLength(), 14)
	w.ShouldBeTrue(mto.DLKey)
	w.ShouldBeEqual(len(mto.DLQualifiers), 3)
	w.ShouldContain(mto.Excludes, []string{"01"})
	w.ShouldContain(mto.Excludes, []string{"02"})
	w.ShouldContain(mto.Excludes, []string{"37"})

	batch := Lookup("10")
	w.StopOnMismatch().ShouldBeTrue(batch != nil)
	w.ShouldBeTrue(batch.FNC1)
	w.ShouldBeEqual(batch.MinLength(), 1)
	w.ShouldBeEqual(batch.MaxLength(), 20)

	// Ranged entries expand to individual AIs sharing one specification.
	for _, a := range []string{"3100", "3105", "3370", "3695"} {
		e := Lookup(a)
		w.StopOnMismatch().As(a).ShouldBeTrue(e != nil)
		w.As(a).ShouldBeEqual(e.AI, a)
		w.As(a).ShouldBeEqual(e.MaxLength(), 6)
		w.As(a).ShouldBeFalse(e.FNC1)
	}

	// The interior of a range is not a hole.
	w.ShouldBeTrue(Lookup("3106") == nil)

	grai := Lookup("8003")
	w.StopOnMismatch().ShouldBeTrue(grai != nil)
	w.ShouldBeEqual(len(grai.Parts), 3)
	w.ShouldBeTrue(grai.Parts[2].Opt)
	w.ShouldBeEqual(grai.MinLength(), 14)
	w.ShouldBeEqual(grai.MaxLength(), 30)
}

func TestResolve(t *testing.T) {
	type resolveTest struct {
		data, ai string
		bad      bool
	}

	pass := func(data, ai string) resolveTest { return resolveTest{data: data, ai: ai} }
	fail := func(data string) resolveTest { return resolveTest{data: data, bad: true} }

	for i, tt := range []resolveTest{
		pass("0109501101530003", "01"),
		pass("10ABC123", "10"),
		pass("8013XYZ", "8013"),
		pass("3103123456", "3103"),
		pass("99WHATEVER", "99"),
		pass("253950110153000312", "253"),
		fail("3249123456"), // family-inferable but not a table entry
		fail("0"),
		fail(""),
		fail("AB"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.data), func(t *testing.T) {
			w := expect.WrapT(t)
			entry, n, err := Resolve(tt.data)
			if tt.bad {
				w.As(tt.data).ShouldBeTrue(err != nil)
				return
			}
			w.StopOnMismatch().As(tt.data).ShouldBeTrue(err == nil)
			w.ShouldBeEqual(entry.AI, tt.ai)
			w.ShouldBeEqual(n, len(tt.ai))
		})
	}
}

func TestLengthByPrefix(t *testing.T) {
	w := expect.WrapT(t)
	w.ShouldBeEqual(LengthByPrefix("0109501101530003"), 2)
	w.ShouldBeEqual(LengthByPrefix("3249123456"), 4)
	w.ShouldBeEqual(LengthByPrefix("414"), 3)
	w.ShouldBeEqual(LengthByPrefix("ZZ"), 0)
	w.ShouldBeEqual(LengthByPrefix("0"), 0)
}

func TestInfer(t *testing.T) {
	w := expect.WrapT(t)

	e, err := Infer("3249")
	w.StopOnMismatch().ShouldSucceed(err)
	w.ShouldBeTrue(e.Inferred)
	w.ShouldBeFalse(e.FNC1)
	w.ShouldBeEqual(e.MinLength(), 6)
	w.ShouldBeEqual(e.MaxLength(), 6)

	e, err = Infer("3915")
	w.StopOnMismatch().ShouldSucceed(err)
	w.ShouldBeTrue(e.FNC1)
	w.ShouldBeEqual(e.MinLength(), 1)
	w.ShouldBeEqual(e.MaxLength(), 15)

	_, err = Infer("2000")
	w.ShouldFail(err)
	_, err = Infer("39X5")
	w.ShouldFail(err)
}

func TestValidate(t *testing.T) {
	type validateTest struct {
		name, ai, value string
		linter          string
		code            lint.Code
		markup          string
	}

	pass := func(ai, value string) validateTest {
		return validateTest{name: "pass", ai: ai, value: value, code: lint.OK}
	}

	fail := func(ai, value, linter string, code lint.Code, markup string) validateTest {
		return validateTest{name: "fail", ai: ai, value: value,
			linter: linter, code: code, markup: markup}
	}

	for i, tt := range []validateTest{
		pass("01", "09501101530003"),
		pass("10", "ABC123"),
		pass("8003", "09501101530003SER1"),
		pass("8003", "09501101530003"), // optional serial absent
		pass("253", "9501101530003"),
		pass("421", "528ABCD"),
		pass("8013", "1987654Ad4X4bL5ttr2310c2K"),
		pass("7007", "240229"),
		pass("7007", "240229240301"),
		pass("8001", "10005000300101"),

		fail("01", "0950110153000", "", lint.ValueTooShort, "*0950110153000*"),
		fail("01", "095011015300031", "", lint.ValueTooLong, "*095011015300031*"),
		fail("01", "09501101530004", "csum", lint.IncorrectCheckDigit, "0950110153000*4*"),
		fail("01", "0950110153000A", "", lint.NonDigitCharacter, "0950110153000*A*"),
		fail("10", "ABC 123", "", lint.InvalidCset82Character, "ABC* *123"),
		fail("17", "200230", "yymmd0", lint.IllegalDay, "2002*30*"),
		fail("421", "990ABCD", "iso3166", lint.NotIso3166, "*990*ABCD"),
		fail("8001", "00005000300101", "nonzero", lint.IllegalZeroValue, "*0000*5000300101"),
		fail("8013", "1987654Ad4X4bL5ttr2310cXX", "csumalpha",
			lint.IncorrectCheckCharacterPair, "1987654Ad4X4bL5ttr2310c*XX*"),
	} {
		t.Run(fmt.Sprintf("%02d_%s_(%s)%s", i, tt.name, tt.ai, tt.value), func(t *testing.T) {
			w := expect.WrapT(t)

			entry := Lookup(tt.ai)
			w.StopOnMismatch().As(tt.ai).ShouldBeTrue(entry != nil)

			v := Validate(entry, tt.value)
			if tt.code == lint.OK {
				if v != nil {
					w.Logf("unexpected: %s", v)
				}
				w.As(tt.value).ShouldBeTrue(v == nil)
				return
			}

			w.StopOnMismatch().As(tt.value).ShouldBeTrue(v != nil)
			w.ShouldBeEqual(v.Linter, tt.linter)
			w.ShouldBeEqual(v.Code, tt.code)
			w.ShouldBeEqual(v.Markup(tt.value), tt.markup)
			w.ShouldBeEqual(v.AI, tt.ai)
		})
	}
}

func TestValidateInferred(t *testing.T) {
	w := expect.WrapT(t)

	e, err := Infer("3249")
	w.StopOnMismatch().ShouldSucceed(err)

	w.ShouldBeTrue(Validate(e, "123456") == nil)

	v := Validate(e, "1234567")
	w.StopOnMismatch().ShouldBeTrue(v != nil)
	w.ShouldBeEqual(v.Code, lint.ValueTooLong)

	v = Validate(e, "12345")
	w.StopOnMismatch().ShouldBeTrue(v != nil)
	w.ShouldBeEqual(v.Code, lint.ValueTooShort)
}
