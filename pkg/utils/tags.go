package utils

import (
	"sort"
	"strings"
)

// SplitTags splits raw comma-separated tag text, trimming whitespace and
// dropping empty entries. Order is preserved; duplicates are kept (the raw
// text is the source of truth, dedup happens at facet level).
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// CollectTagFacet folds the raw tag text of many records into the distinct
// set of tags, case-sensitive, in alphabetical order.
func CollectTagFacet(rawValues []string) []string {
	set := map[string]struct{}{}
	for _, raw := range rawValues {
		for _, t := range SplitTags(raw) {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
