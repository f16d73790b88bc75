package rfm

import (
	"math"

	"retailpulse/kmeans"
)

// Behavioral segment names.
const (
	SegmentSeasonal         = "Seasonal Buyers"
	SegmentMonthlyHighValue = "Monthly, High-Value Buyers"
	SegmentExperimental     = "Experimental / Hesitant, Lower-Value Buyers"
)

const (
	numSegments     int   = 3
	clusteringSeed  int64 = 42
	clusteringInits int   = 10
)

// Cluster index to segment name. The clustering run is fully seeded, so
// indexes are stable for identical input and the fixed table holds.
var segmentByCluster = map[int]string{
	0: SegmentSeasonal,
	1: SegmentMonthlyHighValue,
	2: SegmentExperimental,
}

// SegmentNames returns the named segments in cluster index order.
func SegmentNames() []string {
	names := make([]string, 0, numSegments)
	for i := 0; i < numSegments; i++ {
		names = append(names, segmentByCluster[i])
	}
	return names
}

// AssignSegments clusters profiles on scaled recency, frequency and log
// monetary and writes cluster assignment and segment name in place.
// Profiles must already carry RFM features. With fewer profiles than
// segments the effective cluster count drops to the profile count.
func AssignSegments(profiles []CustomerProfile) {
	if len(profiles) == 0 {
		return
	}

	points := make([][]float64, 0, len(profiles))
	for i := range profiles {
		profiles[i].MonetaryLog = math.Log1p(profiles[i].Monetary)
		points = append(points, []float64{
			float64(profiles[i].Recency),
			float64(profiles[i].Frequency),
			profiles[i].MonetaryLog,
		})
	}

	scaler := kmeans.FitScaler(points)
	result := kmeans.Run(scaler.Transform(points), kmeans.Config{
		K:        numSegments,
		NumInits: clusteringInits,
		Seed:     clusteringSeed,
	})

	for i := range profiles {
		profiles[i].ClusterAssignment = result.Assignments[i]
		profiles[i].Segment = segmentByCluster[result.Assignments[i]]
	}
}
