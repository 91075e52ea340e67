/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package gs1 parses, validates and losslessly inter-converts GS1
// Application Identifier data between its surface formats: bracketed and
// unbracketed element strings, barcode scan data with AIM symbology
// identifiers, and GS1 Digital Link URIs. It also accepts plain GTIN input
// and renders the human-readable interpretation.
//
// The Engine holds one parsed record at a time:
//
//	eng := gs1.New()
//	if err := eng.SetInput("(01)09501101530003(10)ABC123"); err != nil {
//		log.Fatal(err)
//	}
//	uri, _ := eng.DigitalLink()
//	// https://id.gs1.org/01/09501101530003/10/ABC123
//
// Validation is driven by the syntax dictionary in package ai and the
// linters in package lint.
package gs1
