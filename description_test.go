package stockledger

import (
	"testing"
)

func TestParseDescription(t *testing.T) {
	tests := []struct {
		desc   string
		parent string
		tokens []string
	}{
		{
			desc:   "SEMIL-2047GC-CRL, including i9-13900E, 2x SSD-1TB",
			parent: "SEMIL-2047GC-CRL",
			tokens: []string{"i9-13900E", "2x SSD-1TB"},
		},
		{
			// "including" matching is case-insensitive.
			desc:   "BOX-100 Including PSU-500",
			parent: "BOX-100",
			tokens: []string{"PSU-500"},
		},
		{
			// No component list at all.
			desc:   "POC-400",
			parent: "POC-400",
			tokens: nil,
		},
		{
			// Trailing text after the parent code, before "including".
			desc:   "SEMIL-1748GC, fanless, including RAM-32G",
			parent: "SEMIL-1748GC",
			tokens: []string{"RAM-32G"},
		},
		{
			// Empty tokens between commas are dropped.
			desc:   "P-1 including A, , B",
			parent: "P-1",
			tokens: []string{"A", "B"},
		},
		{
			// NBSP from spreadsheet exports is normalized away.
			desc:   "P-2 , including C-9",
			parent: "P-2",
			tokens: []string{"C-9"},
		},
		{
			desc:   "",
			parent: "",
			tokens: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			parent, tokens := ParseDescription(tt.desc)
			if parent != tt.parent {
				t.Errorf("parent = %q, want %q", parent, tt.parent)
			}
			if len(tokens) != len(tt.tokens) {
				t.Fatalf("tokens = %q, want %q", tokens, tt.tokens)
			}
			for i := range tokens {
				if tokens[i] != tt.tokens[i] {
					t.Errorf("tokens[%d] = %q, want %q", i, tokens[i], tt.tokens[i])
				}
			}
		})
	}
}

func TestParseComponentToken(t *testing.T) {
	tests := []struct {
		token   string
		item    string
		perUnit Quantity
	}{
		{"SSD-1TB", "SSD-1TB", Q(1)},
		{"2x SSD-1TB", "SSD-1TB", Q(2)},
		{"2 x SSD-1TB", "SSD-1TB", Q(2)},
		{"10X RAM-8G", "RAM-8G", Q(10)},
		// An 'x' inside the code is not a multiplier.
		{"GTX-4080", "GTX-4080", Q(1)},
		{"  i9-13900E  ", "i9-13900E", Q(1)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			item, perUnit := ParseComponentToken(tt.token)
			if item != tt.item {
				t.Errorf("item = %q, want %q", item, tt.item)
			}
			if !perUnit.Equal(tt.perUnit) {
				t.Errorf("perUnit = %s, want %s", perUnit, tt.perUnit)
			}
		})
	}
}
