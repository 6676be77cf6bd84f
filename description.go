package stockledger

import (
	"regexp"
	"strconv"
	"strings"
)

// This file parses the free-text description of a pre-installed shipment
// line, e.g.
//
//	"SEMIL-2047GC-CRL, including i9-13900E, 2x SSD-1TB"
//
// into the parent product code and its component tokens.

var (
	includingRE = regexp.MustCompile(`(?i)\bincluding\b`)
	qtyTimesRE  = regexp.MustCompile(`(?i)^\s*(\d+)\s*x\s*(.+?)\s*$`) // "2x SSD-1TB"
)

// ParseDescription splits a shipment description into the parent item code
// and the raw component tokens listed after the word "including".
//
// The parent code is the text before the first comma of the segment that
// precedes "including". A description without an "including" segment yields
// the parent alone with no components.
func ParseDescription(desc string) (parent string, tokens []string) {
	s := cleanSpace(desc)
	parts := includingRE.Split(s, 2)

	// The parent segment may carry a trailing ", ..." — keep only the text
	// before the first comma.
	parent, _, _ = strings.Cut(parts[0], ",")
	parent = cleanSpace(parent)

	if len(parts) > 1 {
		for _, tok := range strings.Split(parts[1], ",") {
			if tok = cleanSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return parent, tokens
}

// ParseComponentToken parses a single component token into an item code and
// its per-parent quantity. A token of the form "<n> x <item>" yields that
// multiplier; any other token is a single unit of itself.
func ParseComponentToken(token string) (item string, perUnit Quantity) {
	if m := qtyTimesRE.FindStringSubmatch(token); m != nil {
		qty, err := strconv.Atoi(m[1])
		if err == nil {
			return cleanSpace(m[2]), Q(qty)
		}
	}
	return cleanSpace(token), Q(1)
}
