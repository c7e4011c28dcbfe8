package enterosig

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// LineageSeparator delimits ranks within a GTDB-style lineage string,
// e.g. "d__Bacteria;p__Bacteroidota;...;g__Prevotella".
const LineageSeparator = ";"

// NormalizeLabel performs Unicode NFKC normalization, trims whitespace and
// strips control characters so that cosmetically different spellings of the
// same lineage compare equal.
func NormalizeLabel(label string) string {
	normed := norm.NFKC.String(label)
	normed = strings.TrimSpace(normed)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	// Segments are compared without padding around the separator.
	if strings.Contains(normed, LineageSeparator) {
		parts := strings.Split(normed, LineageSeparator)
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		normed = strings.Join(parts, LineageSeparator)
	}
	return strings.TrimSuffix(normed, LineageSeparator)
}

// Lineage is a hierarchical taxon path from coarsest to finest rank.
type Lineage []string

// ParseLineage splits a normalized label into its rank segments. Empty
// trailing segments (from labels like "...;g__;s__") are dropped.
func ParseLineage(label string) Lineage {
	parts := strings.Split(NormalizeLabel(label), LineageSeparator)
	out := make(Lineage, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || isEmptyRank(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// isEmptyRank reports rank placeholders with no name, such as "g__".
func isEmptyRank(segment string) bool {
	if len(segment) == 3 && segment[1] == '_' && segment[2] == '_' {
		return true
	}
	return false
}

// String reassembles the lineage into a label.
func (l Lineage) String() string {
	return strings.Join(l, LineageSeparator)
}

// Ancestors returns successively coarser labels, nearest first: the lineage
// minus one rank, minus two ranks, and so on down to the root rank.
func (l Lineage) Ancestors() []string {
	if len(l) <= 1 {
		return nil
	}
	out := make([]string, 0, len(l)-1)
	for n := len(l) - 1; n >= 1; n-- {
		out = append(out, Lineage(l[:n]).String())
	}
	return out
}

// looksLikeTaxon reports whether a label resembles a hierarchical lineage.
// Used to detect table orientation on ingestion.
func looksLikeTaxon(label string) bool {
	if strings.Contains(label, LineageSeparator) {
		return true
	}
	if len(label) >= 3 && label[1] == '_' && label[2] == '_' {
		switch label[0] {
		case 'd', 'k', 'p', 'c', 'o', 'f', 'g', 's':
			return true
		}
	}
	return false
}
