package recommend

import (
	"slices"

	"github.com/aidrax/promptrec/pkg/component"
	"github.com/aidrax/promptrec/pkg/detect"
	"github.com/aidrax/promptrec/pkg/profile"
)

// Bucket names one output list of a [Report].
type Bucket string

const (
	BucketRecommended       Bucket = "recommended"
	BucketSystemCritical    Bucket = "system_critical"
	BucketNotNeeded         Bucket = "not_needed"
	BucketOptionalUnmatched Bucket = "optional_unmatched"
	BucketInstallList       Bucket = "install_list"
	BucketInvalid           Bucket = "invalid_entries"
	BucketMissing           Bucket = "missing_files"
)

// AllBuckets lists every bucket in report order.
var AllBuckets = []Bucket{
	BucketRecommended,
	BucketSystemCritical,
	BucketNotNeeded,
	BucketOptionalUnmatched,
	BucketInstallList,
	BucketInvalid,
	BucketMissing,
}

// pathList is an insertion-ordered set of paths.
type pathList struct {
	seen  map[string]struct{}
	items []string
}

func (l *pathList) add(p string) {
	if l.seen == nil {
		l.seen = map[string]struct{}{}
	}
	if _, ok := l.seen[p]; ok {
		return
	}

	l.seen[p] = struct{}{}
	l.items = append(l.items, p)
}

// Report is the aggregate of all decisions of one run.
type Report struct {
	registry  *component.Registry
	buckets   map[Bucket]*pathList
	presence  detect.Presence
	decisions []Decision
	policy    profile.Policy
}

func newReport(reg *component.Registry, presence detect.Presence, policy profile.Policy) *Report {
	buckets := make(map[Bucket]*pathList, len(AllBuckets))
	for _, b := range AllBuckets {
		buckets[b] = &pathList{}
	}

	return &Report{
		registry: reg,
		buckets:  buckets,
		presence: presence,
		policy:   policy,
	}
}

func (r *Report) add(d Decision) {
	r.decisions = append(r.decisions, d)

	switch d.Disposition {
	case Invalid:
		r.buckets[BucketInvalid].add(d.Path)
	case Missing:
		r.buckets[BucketMissing].add(d.Path)
	case NotNeeded:
		r.buckets[BucketNotNeeded].add(d.Path)
	case SystemCritical:
		r.buckets[BucketSystemCritical].add(d.Path)
	case Recommended:
		r.buckets[BucketRecommended].add(d.Path)
	case OptionalUnmatched, Excluded:
	}

	if d.Unmatched {
		r.buckets[BucketOptionalUnmatched].add(d.Path)
	}
	if d.Install {
		r.buckets[BucketInstallList].add(d.Path)
	}
}

// List returns the deduplicated paths of b in first-seen order.
func (r *Report) List(b Bucket) []string {
	l, ok := r.buckets[b]
	if !ok {
		return nil
	}

	return slices.Clone(l.items)
}

// Decisions returns every decision in manifest order, including duplicates.
func (r *Report) Decisions() []Decision {
	return slices.Clone(r.decisions)
}

// Total returns the number of non-blank, non-comment manifest entries.
func (r *Report) Total() int {
	return len(r.decisions)
}

// Summary condenses the report into counts and component lists.
func (r *Report) Summary() Summary {
	return Summary{
		DetectedComponents:     names(r.presence.Detected(r.registry)),
		IncludeCritical:        r.policy.IncludeCritical,
		IncludeNotNeeded:       r.policy.IncludeNotNeeded,
		InstallCount:           len(r.buckets[BucketInstallList].items),
		InvalidEntryCount:      len(r.buckets[BucketInvalid].items),
		MissingComponents:      names(r.presence.Missing(r.registry)),
		MissingFileCount:       len(r.buckets[BucketMissing].items),
		NotNeededCount:         len(r.buckets[BucketNotNeeded].items),
		OptionalUnmatchedCount: len(r.buckets[BucketOptionalUnmatched].items),
		Profile:                r.policy.Profile.String(),
		RecommendedCount:       len(r.buckets[BucketRecommended].items),
		SystemCriticalCount:    len(r.buckets[BucketSystemCritical].items),
		TotalInManifest:        r.Total(),
	}
}

// Summary is the structured run summary. Fields are declared in key order so
// that JSON output has sorted keys.
type Summary struct {
	DetectedComponents     []string `json:"detected_components"`
	IncludeCritical        bool     `json:"include_critical"`
	IncludeNotNeeded       bool     `json:"include_not_needed"`
	InstallCount           int      `json:"install_count"`
	InvalidEntryCount      int      `json:"invalid_entry_count"`
	MissingComponents      []string `json:"missing_components"`
	MissingFileCount       int      `json:"missing_file_count"`
	NotNeededCount         int      `json:"not_needed_count"`
	OptionalUnmatchedCount int      `json:"optional_unmatched_count"`
	Profile                string   `json:"profile"`
	RecommendedCount       int      `json:"recommended_count"`
	SystemCriticalCount    int      `json:"system_critical_count"`
	TotalInManifest        int      `json:"total_in_manifest"`
}

func names(cs []component.Component) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, string(c))
	}

	return out
}
