package rfm

import "sort"

// SegmentTotalRow names the roll up row across all segments.
const SegmentTotalRow = "Total"

// SegmentStatistic is the churn risk roll up for one segment.
type SegmentStatistic struct {
	Segment            string  `json:"segment"`
	HighRiskCount      int64   `json:"high_risk_count"`
	MediumRiskCount    int64   `json:"medium_risk_count"`
	MedHighRatio       float64 `json:"med_high_ratio"`
	MedHighMonetarySum float64 `json:"med_high_monetary_sum"`
}

// SummarizeSegments rolls churn risk up per segment present in the
// profiles. Named segments come first in cluster index order, stray
// segment values after them, and the Total row across all customers is
// always last, even on empty input.
func SummarizeSegments(profiles []CustomerProfile) []SegmentStatistic {
	members := make(map[string]int64)
	for i := range profiles {
		members[profiles[i].Segment]++
	}

	names := make([]string, 0, len(members))
	for _, name := range SegmentNames() {
		if members[name] > 0 {
			names = append(names, name)
			delete(members, name)
		}
	}
	strays := make([]string, 0, len(members))
	for name := range members {
		strays = append(strays, name)
	}
	sort.Strings(strays)
	names = append(names, strays...)

	stats := make([]SegmentStatistic, 0, len(names)+1)
	for _, name := range names {
		stats = append(stats, summarizeSegment(name, profiles, false))
	}
	stats = append(stats, summarizeSegment(SegmentTotalRow, profiles, true))
	return stats
}

func summarizeSegment(name string, profiles []CustomerProfile, matchAll bool) SegmentStatistic {
	stat := SegmentStatistic{Segment: name}

	var members int64
	for i := range profiles {
		if !matchAll && profiles[i].Segment != name {
			continue
		}
		members++

		if profiles[i].ChurnLabel == nil {
			continue
		}
		switch *profiles[i].ChurnLabel {
		case ChurnLabelHighRisk:
			stat.HighRiskCount++
			stat.MedHighMonetarySum += profiles[i].Monetary
		case ChurnLabelMediumRisk:
			stat.MediumRiskCount++
			stat.MedHighMonetarySum += profiles[i].Monetary
		}
	}

	// Empty segments keep ratio 0 rather than dividing by zero.
	if members > 0 {
		stat.MedHighRatio = float64(stat.HighRiskCount+stat.MediumRiskCount) / float64(members)
	}

	return stat
}
