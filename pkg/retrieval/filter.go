package retrieval

import (
	"time"

	"docintel-be/internal/entity"
)

// applyStructuredFilters narrows results through the structured predicates in
// a fixed order: source type, county, court, judge/referee, issue tags,
// effective-date overlap. Each predicate intersects with the current set.
// These run BEFORE truncation to topK.
func applyStructuredFilters(results []entity.SearchResult, opts QueryOptions) []entity.SearchResult {
	if len(opts.SourceTypes) > 0 {
		results = keep(results, func(d *entity.VectorDocument) bool {
			return containsString(opts.SourceTypes, d.SourceType)
		})
	}
	if opts.County != "" {
		results = keep(results, func(d *entity.VectorDocument) bool {
			return d.Metadata.County == opts.County
		})
	}
	if opts.Court != "" {
		results = keep(results, func(d *entity.VectorDocument) bool {
			return d.Metadata.Court == opts.Court
		})
	}
	if opts.JudgeReferee != "" {
		results = keep(results, func(d *entity.VectorDocument) bool {
			return d.Metadata.JudgeReferee == opts.JudgeReferee
		})
	}
	if len(opts.IssueTags) > 0 {
		results = keep(results, func(d *entity.VectorDocument) bool {
			return anyTagMatch(d.Metadata.IssueTags, opts.IssueTags)
		})
	}
	if opts.EffectiveFrom != nil || opts.EffectiveTo != nil {
		results = keep(results, func(d *entity.VectorDocument) bool {
			return rangesOverlap(d.Metadata.EffectiveFrom, d.Metadata.EffectiveTo, opts.EffectiveFrom, opts.EffectiveTo)
		})
	}
	return results
}

// applyTypeFilter is the legacy document-type allow-list, applied AFTER
// truncation. Callers depend on this filter shrinking the final page rather
// than backfilling, so it must not move before the topK cut.
func applyTypeFilter(results []entity.SearchResult, types []string) []entity.SearchResult {
	if len(types) == 0 {
		return results
	}
	return keep(results, func(d *entity.VectorDocument) bool {
		return containsString(types, d.DocumentType)
	})
}

func keep(results []entity.SearchResult, pred func(*entity.VectorDocument) bool) []entity.SearchResult {
	filtered := results[:0:0]
	for _, r := range results {
		if pred(r.Document) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func anyTagMatch(docTags, wantTags []string) bool {
	for _, want := range wantTags {
		if containsString(docTags, want) {
			return true
		}
	}
	return false
}

// rangesOverlap checks whether the document's effective range intersects the
// requested range. Missing document bounds are treated as open-ended.
func rangesOverlap(docFrom, docTo, qFrom, qTo *time.Time) bool {
	if qFrom != nil && docTo != nil && docTo.Before(*qFrom) {
		return false
	}
	if qTo != nil && docFrom != nil && docFrom.After(*qTo) {
		return false
	}
	return true
}
