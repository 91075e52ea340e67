/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"fmt"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestEquivalenceAcrossFormats(t *testing.T) {
	// Every surface form of the same record decodes to the same canonical
	// sequence and renders identically.
	for i, input := range []string{
		"(01)09501101530003(10)ABC123",
		"^010950110153000310ABC123",
		"https://id.gs1.org/01/09501101530003/10/ABC123",
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, input), func(t *testing.T) {
			w := expect.WrapT(t)

			eng := New()
			w.StopOnMismatch().As(input).ShouldSucceed(eng.SetInput(input))

			els := eng.Elements()
			w.StopOnMismatch().ShouldHaveLength(els, 2)
			w.ShouldBeEqual(els[0].AI, "01")
			w.ShouldBeEqual(els[0].Value, "09501101530003")
			w.ShouldBeEqual(els[1].AI, "10")
			w.ShouldBeEqual(els[1].Value, "ABC123")

			br, err := eng.Bracketed()
			w.ShouldSucceed(err)
			w.ShouldBeEqual(br, "(01)09501101530003(10)ABC123")

			ub, err := eng.Unbracketed()
			w.ShouldSucceed(err)
			w.ShouldBeEqual(ub, "^010950110153000310ABC123")

			dl, err := eng.DigitalLink()
			w.ShouldSucceed(err)
			w.ShouldBeEqual(dl, "https://id.gs1.org/01/09501101530003/10/ABC123")
		})
	}
}

func TestPlainGTIN(t *testing.T) {
	type gtinTest struct {
		input, gtin14 string
		ok            bool
	}

	pass := func(in, gtin14 string) gtinTest { return gtinTest{input: in, gtin14: gtin14, ok: true} }
	fail := func(in string) gtinTest { return gtinTest{input: in} }

	for i, tt := range []gtinTest{
		pass("09501101530003", "09501101530003"),
		pass("9501101530003", "09501101530003"),
		pass("416000336108", "00416000336108"),
		pass("02345673", "00000002345673"),
		fail("09501101530004"), // bad check digit
		fail("02345674"),
		fail("095011015300"), // 12 digits but bad check digit
		fail("123456789"),    // 9 digits is not a GTIN length
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.input), func(t *testing.T) {
			w := expect.WrapT(t)

			eng := New()
			err := eng.SetInput(tt.input)
			if !tt.ok {
				w.As(tt.input).ShouldFail(err)
				return
			}
			w.StopOnMismatch().As(tt.input).ShouldSucceed(err)

			els := eng.Elements()
			w.StopOnMismatch().ShouldHaveLength(els, 1)
			w.ShouldBeEqual(els[0].AI, "01")
			w.ShouldBeEqual(els[0].Value, tt.gtin14)
		})
	}
}

func TestPlainGTINAddCheckDigit(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	eng.SetAddCheckDigit(true)
	w.StopOnMismatch().ShouldSucceed(eng.SetInput("0950110153000"))

	els := eng.Elements()
	w.StopOnMismatch().ShouldHaveLength(els, 1)
	w.ShouldBeEqual(els[0].Value, "09501101530003")
}

func TestPlainGTINErrorMarkup(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	err := eng.SetInput("09501101530004")
	w.StopOnMismatch().ShouldFail(err)

	gerr := eng.Err()
	w.StopOnMismatch().ShouldBeTrue(gerr != nil)
	w.ShouldBeEqual(gerr.Kind, Structural)
	w.ShouldBeEqual(gerr.Markup(), "0950110153000*4*")
}

func TestCrossFieldRules(t *testing.T) {
	type cfTest struct {
		name, input string
		rule        CrossFieldKind
		ok          bool
		relaxed     func(*Config) // config change that makes it pass
	}

	for i, tt := range []cfTest{
		{
			name:  "mutex",
			input: "(01)09501101530003(02)09501101530003",
			rule:  MutexConflict,
		},
		{
			name:  "repeat",
			input: "(01)09501101530003(10)A(10)B",
			rule:  RepeatNotAllowed,
		},
		{
			name:    "requisite",
			input:   "(10)ABC123",
			rule:    MissingRequisite,
			relaxed: func(c *Config) { c.ValidateRequisites = false },
		},
		{
			name:  "requisite satisfied",
			input: "(01)09501101530003(10)ABC123",
			ok:    true,
		},
		{
			name:  "repeat with equal values",
			input: "(01)09501101530003(10)ABC(10)ABC",
			rule:  RepeatNotAllowed,
		},
		{
			name:  "location key with qualifier",
			input: "(414)9501101530003(7040)1ABC",
			ok:    true,
		},
		{
			name:  "mto gtin mutex",
			input: "(01)09501101530003(03)09501101530003",
			rule:  MutexConflict,
		},
		{
			name:  "mto gtin with serial",
			input: "(03)09501101530003(21)SERIAL",
			ok:    true,
		},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)

			eng := New()
			err := eng.SetInput(tt.input)
			if tt.ok {
				w.As(tt.input).ShouldSucceed(err)
				return
			}

			w.StopOnMismatch().As(tt.input).ShouldFail(err)
			gerr := eng.Err()
			w.StopOnMismatch().ShouldBeTrue(gerr != nil)
			w.ShouldBeEqual(gerr.Kind, CrossField)
			w.ShouldBeEqual(gerr.Rule, tt.rule)

			if tt.relaxed == nil {
				return
			}
			cfg := DefaultConfig()
			tt.relaxed(&cfg)
			eng.SetConfig(cfg)
			w.As(tt.input + " relaxed").ShouldSucceed(eng.SetInput(tt.input))
		})
	}
}

func TestUnknownAIGating(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()

	// Rejected outright unless unknown AIs are permitted.
	w.ShouldFail(eng.SetInput("(3249)123456"))

	eng.SetPermitUnknownAIs(true)
	w.StopOnMismatch().ShouldSucceed(eng.SetInput("(3249)123456"))

	br, err := eng.Bracketed()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(br, "(3249)123456")

	ub, err := eng.Unbracketed()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(ub, "^3249123456")

	// Permission admits only values that fit the inferred family shape.
	w.ShouldFail(eng.SetInput("(3249)1234567"))

	// An unknown AI with no documented prefix family stays rejected.
	w.ShouldFail(eng.SetInput("(2000)123456"))

	// Same gating through the unbracketed decoder.
	w.ShouldSucceed(eng.SetInput("^3249123456"))
	eng.SetPermitUnknownAIs(false)
	w.ShouldFail(eng.SetInput("^3249123456"))
}

func TestBracketedEscaping(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	w.StopOnMismatch().ShouldSucceed(eng.SetInput("(01)09501101530003(10)AB\\(C"))

	els := eng.Elements()
	w.StopOnMismatch().ShouldHaveLength(els, 2)
	w.ShouldBeEqual(els[1].Value, "AB(C")

	br, err := eng.Bracketed()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(br, "(01)09501101530003(10)AB\\(C")

	ub, err := eng.Unbracketed()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(ub, "^010950110153000310AB(C")

	// An unescaped "(" inside a value does not open a valid AI.
	w.ShouldFail(eng.SetInput("(01)09501101530003(10)AB(C"))
}

func TestCompositeRenditionsReparse(t *testing.T) {
	// Both element-string renditions of an EAN primary plus composite must
	// themselves be accepted as input.
	w := expect.WrapT(t)

	const scan = "]E02112345678900|]e099COMPOSITE\x1D98XYZ"

	eng := New()
	w.StopOnMismatch().ShouldSucceed(eng.SetInput(scan))

	for _, render := range []func() (string, error){eng.Bracketed, eng.Unbracketed} {
		form, err := render()
		w.StopOnMismatch().ShouldSucceed(err)

		w.StopOnMismatch().As(form).ShouldSucceed(eng.SetInput(form))

		br, err := eng.Bracketed()
		w.ShouldSucceed(err)
		w.ShouldBeEqual(br, "2112345678900|(99)COMPOSITE(98)XYZ")

		out, err := eng.ScanData()
		w.ShouldSucceed(err)
		w.ShouldBeEqual(out, scan)
	}
}

func TestPriorStateSurvivesFailure(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	w.StopOnMismatch().ShouldSucceed(eng.SetInput("(01)09501101530003"))

	w.ShouldFail(eng.SetInput("ZZZ not GS1 data"))
	w.ShouldBeTrue(eng.Err() != nil)
	w.ShouldBeEqual(eng.Err().Kind, UnrecognizedFormat)

	br, err := eng.Bracketed()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(br, "(01)09501101530003")

	w.ShouldSucceed(eng.SetInput("(01)09501101530003(10)X"))
	w.ShouldBeTrue(eng.Err() == nil)
}

func TestEmptyAndUnrecognizedInput(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	err := eng.SetInput("")
	w.StopOnMismatch().ShouldFail(err)
	w.ShouldBeEqual(eng.Err().Kind, EmptyInput)

	w.ShouldFail(eng.SetInput("hello world"))
	w.ShouldBeEqual(eng.Err().Kind, UnrecognizedFormat)
}

func TestHRI(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	w.StopOnMismatch().ShouldSucceed(eng.SetInput("(01)09501101530003(10)ABC123"))

	lines, err := eng.HRI()
	w.StopOnMismatch().ShouldSucceed(err)
	w.ShouldHaveLength(lines, 2)
	w.ShouldBeEqual(lines[0], "(01) 09501101530003")
	w.ShouldBeEqual(lines[1], "(10) ABC123")

	eng.SetIncludeHRITitles(true)
	lines, err = eng.HRI()
	w.StopOnMismatch().ShouldSucceed(err)
	w.ShouldBeEqual(lines[0], "GTIN (01) 09501101530003")
	w.ShouldBeEqual(lines[1], "BATCH/LOT (10) ABC123")
}

func TestRenderWithoutRecord(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	_, err := eng.Bracketed()
	w.ShouldFail(err)
	_, err = eng.ScanData()
	w.ShouldFail(err)
	w.ShouldBeTrue(eng.Elements() == nil)
}

func TestLinterErrorSpanInOriginalInput(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	err := eng.SetInput("(01)09501101530003(17)200230")
	w.StopOnMismatch().ShouldFail(err)

	gerr := eng.Err()
	w.StopOnMismatch().ShouldBeTrue(gerr != nil)
	w.ShouldBeEqual(gerr.Kind, Linter)
	w.ShouldBeEqual(gerr.AI, "17")
	w.ShouldBeEqual(gerr.Linter, "yymmd0")
	w.ShouldBeEqual(gerr.Markup(), "(01)09501101530003(17)2002*30*")
}
