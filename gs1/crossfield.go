/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"strings"

	"github.com/barcodeops/gs1syntax/ai"
)

// validateElements runs the structural rule engine over every element,
// translating each violation's span into the coordinates of the original
// input.
func validateElements(rec *record, input string) *Error {
	for _, el := range rec.elements {
		v := ai.Validate(el.Entry, el.Value)
		if v == nil {
			continue
		}
		kind := Structural
		if v.Linter != "" {
			kind = Linter
		}
		return &Error{
			Kind: kind, AI: el.AI, Linter: v.Linter, Code: v.Code,
			Pos: el.Pos + v.Pos, Len: v.Len, input: input,
		}
	}
	return nil
}

// crossField applies the whole-sequence rules. Mutual exclusivity and
// repetition control are always enforced; the requisite-association and
// unknown-attribute checks are enabled by configuration.
func crossField(rec *record, cfg Config) *Error {
	els := rec.elements

	// Repetition control: a non-repeatable AI appears at most once.
	// Repeated instances of a repeatable AI must carry the same value.
	seen := make(map[string]string, len(els))
	for _, el := range els {
		prev, dup := seen[el.AI]
		if dup && (!el.Entry.Repeatable || prev != el.Value) {
			return &Error{
				Kind: CrossField, Rule: RepeatNotAllowed,
				AIs: []string{el.AI},
			}
		}
		seen[el.AI] = el.Value
	}

	// Mutual exclusivity, by declared AI prefix.
	for i, el := range els {
		for _, ex := range el.Entry.Excludes {
			for j, other := range els {
				if i == j || !strings.HasPrefix(other.AI, ex) {
					continue
				}
				return &Error{
					Kind: CrossField, Rule: MutexConflict,
					AIs: []string{el.AI, other.AI},
				}
			}
		}
	}

	if cfg.ValidateRequisites {
		for _, el := range els {
			for _, set := range el.Entry.Requires {
				if !anyPrefixPresent(els, set, el.AI) {
					return &Error{
						Kind: CrossField, Rule: MissingRequisite,
						AIs: append([]string{el.AI}, set...),
					}
				}
			}
		}
	}

	if cfg.RejectUnknownDLAttributes {
		for _, el := range els {
			if el.attr && el.Entry.Inferred {
				return &Error{
					Kind: CrossField, Rule: DisallowedUnknownAttribute,
					AIs: []string{el.AI},
				}
			}
		}
	}

	return nil
}

func anyPrefixPresent(els []Element, prefixes []string, self string) bool {
	for _, p := range prefixes {
		for _, el := range els {
			if el.AI != self && strings.HasPrefix(el.AI, p) {
				return true
			}
		}
	}
	return false
}
