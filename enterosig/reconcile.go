package enterosig

// Reconcile aligns the input table's taxa against the reference vocabulary.
// Resolution order per input taxon: hard mapping override, exact normalized
// match, then (if rollup is enabled) aggregation up to the nearest ancestor
// rank present in the vocabulary. Taxa that still fail to resolve are
// excluded from the returned table but recorded as unmapped in the mapping
// so data loss stays auditable.
//
// Counts of taxa that resolve to the same reference taxon are summed. The
// returned table's rows follow basis order, restricted to taxa that
// actually occur in the input.
func Reconcile(raw *Table, basis *ReferenceBasis, hard map[string]string, rollup bool, sink LogFunc) (*Table, *TaxonMapping, error) {
	overrides := make(map[string]string, len(hard))
	for from, to := range hard {
		overrides[NormalizeLabel(from)] = NormalizeLabel(to)
	}

	nr, nc := raw.Dims()
	entries := make([]TaxonMatch, 0, nr)
	// Accumulated counts per resolved reference taxon.
	resolved := make(map[string][]float64, nr)

	accumulate := func(ref string, row int) {
		acc, ok := resolved[ref]
		if !ok {
			acc = make([]float64, nc)
			resolved[ref] = acc
		}
		for j := 0; j < nc; j++ {
			acc[j] += raw.At(row, j)
		}
	}

	for i, label := range raw.rowNames {
		normed := NormalizeLabel(label)

		if target, ok := overrides[normed]; ok {
			if _, known := basis.taxonIndex(target); known {
				accumulate(target, i)
				entries = append(entries, TaxonMatch{Input: label, Reference: target, Method: MatchHard})
				continue
			}
			logf(sink, "Hard mapping for %q targets %q, which is not a reference taxon; treating as unmapped", label, target)
			entries = append(entries, TaxonMatch{Input: label, Method: MatchUnmapped})
			continue
		}

		if _, ok := basis.taxonIndex(normed); ok {
			accumulate(normed, i)
			entries = append(entries, TaxonMatch{Input: label, Reference: normed, Method: MatchExact})
			continue
		}

		if rollup {
			if ref, ranks, ok := rollupMatch(normed, basis); ok {
				accumulate(ref, i)
				entries = append(entries, TaxonMatch{Input: label, Reference: ref, Method: MatchRollup, RolledRanks: ranks})
				continue
			}
		}

		entries = append(entries, TaxonMatch{Input: label, Method: MatchUnmapped})
	}

	mapping := &TaxonMapping{entries: entries}
	counts := mapping.CountByMethod()
	logf(sink, "Matched %d of %d input taxa exactly against the reference taxa", counts[MatchExact], nr)
	if counts[MatchHard] > 0 {
		logf(sink, "Applied hard mapping overrides to %d taxa", counts[MatchHard])
	}
	if rollup {
		logf(sink, "Rolled up %d taxa to an ancestor rank present in the reference taxa", counts[MatchRollup])
	}
	if n := counts[MatchUnmapped]; n > 0 {
		logf(sink, "%d taxa could not be mapped and are excluded; see the taxon mapping for details", n)
	}

	if len(resolved) == 0 {
		return nil, mapping, dataErrorf(ErrNoTaxaResolved, "%d input taxa, 0 resolved", nr)
	}

	// Keep basis order for the rows that resolved.
	rows := make([]string, 0, len(resolved))
	for _, taxon := range basis.Taxa() {
		if _, ok := resolved[taxon]; ok {
			rows = append(rows, taxon)
		}
	}
	data := make([]float64, 0, len(rows)*nc)
	for _, taxon := range rows {
		data = append(data, resolved[taxon]...)
	}
	reconciled, err := NewTable(rows, raw.ColNames(), data)
	if err != nil {
		return nil, mapping, dataErrorf(ErrBadTable, "%v", err)
	}
	return reconciled, mapping, nil
}

// rollupMatch walks the lineage's ancestors, nearest first, and returns the
// first one present in the vocabulary along with the number of ranks
// discarded.
func rollupMatch(label string, basis *ReferenceBasis) (string, int, bool) {
	lineage := ParseLineage(label)
	for n, ancestor := range lineage.Ancestors() {
		if _, ok := basis.taxonIndex(ancestor); ok {
			return ancestor, n + 1, true
		}
	}
	return "", 0, false
}
