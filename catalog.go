package stockledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Catalog maps the item codes found in upstream spreadsheets to their
// canonical long form. Vendor exports truncate long part numbers, so the
// same physical part can appear under several spellings; every component
// that touches item identity resolves codes through a single Catalog so
// that aggregation keys stay consistent.
type Catalog struct {
	synonyms map[string]string // short or truncated code -> canonical code
}

// NewCatalog creates a catalog from a synonym table. A nil map is a valid,
// empty catalog that only normalizes spacing.
func NewCatalog(synonyms map[string]string) *Catalog {
	c := &Catalog{synonyms: make(map[string]string, len(synonyms))}
	for alias, canonical := range synonyms {
		c.synonyms[cleanSpace(alias)] = cleanSpace(canonical)
	}
	return c
}

// unicodeDashRE matches the dash look-alikes (figure dash, en dash, em dash,
// minus sign) that spreadsheet exports substitute for plain hyphens.
var unicodeDashRE = regexp.MustCompile("[‒–—−]")

// cleanSpace normalizes exotic whitespace (NBSP, ideographic space) to plain
// spaces and trims the result.
func cleanSpace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "　", " ")
	return strings.TrimSpace(s)
}

// Canonicalize returns the canonical code for a raw item identifier.
// Unknown codes pass through cleaned but otherwise unchanged.
func (c *Catalog) Canonicalize(raw string) string {
	code := unicodeDashRE.ReplaceAllString(cleanSpace(raw), "-")
	if c == nil || c.synonyms == nil {
		return code
	}
	if canonical, ok := c.synonyms[code]; ok {
		return canonical
	}
	return code
}

// Len returns the number of synonyms in the catalog.
func (c *Catalog) Len() int { return len(c.synonyms) }

// DecodeCatalog reads a synonym table in JSONL form: one object per line with
// an "alias" and an "item" property. Empty lines are skipped.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	type jsynonym struct {
		Alias string `json:"alias"`
		Item  string `json:"item"`
	}

	synonyms := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var js jsynonym
		if err := json.Unmarshal(line, &js); err != nil {
			return nil, fmt.Errorf("cannot parse line for catalog format: %q: %w", string(line), err)
		}
		if js.Alias == "" || js.Item == "" {
			return nil, fmt.Errorf("catalog line %q must have both alias and item", string(line))
		}
		synonyms[js.Alias] = js.Item
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}
	return NewCatalog(synonyms), nil
}

// EncodeCatalog writes the synonym table in the catalog JSONL form.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	for _, alias := range sortedKeys(c.synonyms) {
		var jw jsonObjectWriter
		jw.Append("alias", alias)
		jw.Append("item", c.synonyms[alias])
		data, err := jw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot marshal catalog entry %q: %w", alias, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write catalog entry: %w", err)
		}
	}
	return nil
}
