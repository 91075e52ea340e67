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

func TestDigitalLinkDecode(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	const uri = "https://example.com/stem/01/12312312312333/21/SERIAL?99=TEST&foo=bar"
	w.StopOnMismatch().As(uri).ShouldSucceed(eng.SetInput(uri))

	els := eng.Elements()
	w.StopOnMismatch().ShouldHaveLength(els, 3)
	w.ShouldBeEqual(els[0].AI, "01")
	w.ShouldBeEqual(els[0].Value, "12312312312333")
	w.ShouldBeEqual(els[1].AI, "21")
	w.ShouldBeEqual(els[1].Value, "SERIAL")
	w.ShouldBeEqual(els[2].AI, "99")
	w.ShouldBeEqual(els[2].Value, "TEST")

	// Parameters that map to no AI survive verbatim, off to the side.
	ignored := eng.IgnoredQueryParams()
	w.StopOnMismatch().ShouldHaveLength(ignored, 1)
	w.ShouldBeEqual(ignored[0], "foo=bar")

	// Generation is canonical: default resolver domain, no custom stem,
	// non-AI parameters dropped.
	dl, err := eng.DigitalLink()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(dl, "https://id.gs1.org/01/12312312312333/21/SERIAL?99=TEST")

	eng.SetDLDomain("https://example.org/r/")
	dl, err = eng.DigitalLink()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(dl, "https://example.org/r/01/12312312312333/21/SERIAL?99=TEST")
}

func TestDigitalLinkDecodeErrors(t *testing.T) {
	type errTest struct {
		name, uri string
	}

	for i, tt := range []errTest{
		{"no path", "https://id.gs1.org"},
		{"no key", "https://id.gs1.org/10/ABC123"},
		{"odd pairing", "https://id.gs1.org/01/12312312312333/21"},
		{"qualifier out of order", "https://id.gs1.org/01/12312312312333/21/SER/10/LOT"},
		{"non-qualifier in path", "https://id.gs1.org/01/12312312312333/99/TEST"},
		{"bad percent escape", "https://id.gs1.org/01/12312312312333/10/AB%GG"},
		{"short gtin", "https://id.gs1.org/01/02345673"},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)

			eng := New()
			w.StopOnMismatch().As(tt.uri).ShouldFail(eng.SetInput(tt.uri))
			w.StopOnMismatch().ShouldBeTrue(eng.Err() != nil)
			w.ShouldBeEqual(eng.Err().Kind, Structural)
		})
	}
}

func TestDigitalLinkErrorSpans(t *testing.T) {
	// Failures inside a URI value must be highlighted at the value's bytes
	// within the URI, not at an offset into the whole string.
	type spanTest struct {
		name, uri string
		kind      Kind
		ai        string
		markup    string
	}

	for i, tt := range []spanTest{
		{
			name:   "path check digit",
			uri:    "https://id.gs1.org/01/12312312312334",
			kind:   Linter,
			ai:     "01",
			markup: "https://id.gs1.org/01/1231231231233*4*",
		},
		{
			name:   "query value too long",
			uri:    "https://id.gs1.org/01/12312312312333?3940=12345",
			kind:   Structural,
			ai:     "3940",
			markup: "https://id.gs1.org/01/12312312312333?3940=*12345*",
		},
		{
			name:   "short gtin in path",
			uri:    "https://id.gs1.org/01/02345673",
			kind:   Structural,
			ai:     "01",
			markup: "https://id.gs1.org/01/*02345673*",
		},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)

			eng := New()
			w.StopOnMismatch().As(tt.uri).ShouldFail(eng.SetInput(tt.uri))

			gerr := eng.Err()
			w.StopOnMismatch().ShouldBeTrue(gerr != nil)
			w.ShouldBeEqual(gerr.Kind, tt.kind)
			w.ShouldBeEqual(gerr.AI, tt.ai)
			w.ShouldBeEqual(gerr.Markup(), tt.markup)
		})
	}
}

func TestDigitalLinkZeroSuppressedGTIN(t *testing.T) {
	w := expect.WrapT(t)

	const uri = "https://id.gs1.org/01/02345673"

	eng := New()
	w.ShouldFail(eng.SetInput(uri))

	cfg := DefaultConfig()
	cfg.PermitZeroSuppressedGTIN = true
	eng.SetConfig(cfg)
	w.StopOnMismatch().ShouldSucceed(eng.SetInput(uri))

	els := eng.Elements()
	w.StopOnMismatch().ShouldHaveLength(els, 1)
	w.ShouldBeEqual(els[0].Value, "00000002345673")

	dl, err := eng.DigitalLink()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(dl, "https://id.gs1.org/01/00000002345673")
}

func TestDigitalLinkPercentEncoding(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	const uri = "https://id.gs1.org/01/12312312312333/10/AB%2FCD"
	w.StopOnMismatch().ShouldSucceed(eng.SetInput(uri))

	els := eng.Elements()
	w.StopOnMismatch().ShouldHaveLength(els, 2)
	w.ShouldBeEqual(els[1].Value, "AB/CD")

	dl, err := eng.DigitalLink()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(dl, uri)
}

func TestDigitalLinkUnknownAttribute(t *testing.T) {
	w := expect.WrapT(t)

	const uri = "https://id.gs1.org/01/12312312312333?3249=123456"

	// Without permission the parameter maps to no AI and is ignored.
	eng := New()
	w.StopOnMismatch().ShouldSucceed(eng.SetInput(uri))
	w.ShouldHaveLength(eng.Elements(), 1)
	w.ShouldHaveLength(eng.IgnoredQueryParams(), 1)

	// Permitted but rejected as an attribute by the default cross-field
	// configuration.
	cfg := DefaultConfig()
	cfg.PermitUnknownAIs = true
	eng.SetConfig(cfg)
	err := eng.SetInput(uri)
	w.StopOnMismatch().ShouldFail(err)
	w.ShouldBeEqual(eng.Err().Kind, CrossField)
	w.ShouldBeEqual(eng.Err().Rule, DisallowedUnknownAttribute)

	cfg.RejectUnknownDLAttributes = false
	eng.SetConfig(cfg)
	w.StopOnMismatch().ShouldSucceed(eng.SetInput(uri))

	els := eng.Elements()
	w.StopOnMismatch().ShouldHaveLength(els, 2)
	w.ShouldBeEqual(els[1].AI, "3249")

	dl, err := eng.DigitalLink()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(dl, "https://id.gs1.org/01/12312312312333?3249=123456")
}

func TestDigitalLinkNonGTINKey(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	w.StopOnMismatch().ShouldSucceed(eng.SetInput("(8003)09501101530003SER1"))

	dl, err := eng.DigitalLink()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(dl, "https://id.gs1.org/8003/09501101530003SER1")

	w.StopOnMismatch().ShouldSucceed(eng.SetInput(dl))
	els := eng.Elements()
	w.StopOnMismatch().ShouldHaveLength(els, 1)
	w.ShouldBeEqual(els[0].AI, "8003")
	w.ShouldBeEqual(els[0].Value, "09501101530003SER1")
}

func TestDigitalLinkNoKeyToEncode(t *testing.T) {
	w := expect.WrapT(t)

	eng := New()
	w.StopOnMismatch().ShouldSucceed(eng.SetInput("(01)09501101530003(10)LOT1"))
	w.ShouldSucceed(eng.SetInput("]E402345673"))

	// An EAN/UPC primary has no element sequence to build a path from.
	_, err := eng.DigitalLink()
	w.ShouldFail(err)
}
