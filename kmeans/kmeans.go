package kmeans

import (
	"math"
	"math/rand"
)

const (
	DEFAULT_NUM_INITS      int = 10
	DEFAULT_MAX_ITERATIONS int = 300
)

// Config for a clustering run. A fixed Seed makes the whole run
// reproducible for identical input, restarts included.
type Config struct {
	K             int
	NumInits      int
	MaxIterations int
	Seed          int64
}

// Result holds the best restart by inertia. Assignments is index aligned
// with the input points.
type Result struct {
	Assignments []int
	Centroids   [][]float64
	Inertia     float64
}

// Run clusters points with Lloyd iterations seeded by kmeans++.
// NumInits restarts draw from one seeded source and the lowest inertia
// solution wins. K is capped to the point count.
func Run(points [][]float64, config Config) Result {
	if config.NumInits <= 0 {
		config.NumInits = DEFAULT_NUM_INITS
	}
	if config.MaxIterations <= 0 {
		config.MaxIterations = DEFAULT_MAX_ITERATIONS
	}

	k := config.K
	if k > len(points) {
		k = len(points)
	}
	if k <= 0 {
		return Result{Assignments: make([]int, 0), Centroids: make([][]float64, 0)}
	}

	randSource := rand.New(rand.NewSource(config.Seed))

	best := Result{Inertia: math.Inf(1)}
	for init := 0; init < config.NumInits; init++ {
		centroids := seedCentroids(points, k, randSource)
		assignments, inertia := lloyd(points, centroids, config.MaxIterations)
		if inertia < best.Inertia {
			best = Result{Assignments: assignments, Centroids: centroids, Inertia: inertia}
		}
	}

	return best
}

// kmeans++ seeding. https://en.wikipedia.org/wiki/K-means%2B%2B
func seedCentroids(points [][]float64, k int, r *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, copyPoint(points[r.Intn(len(points))]))

	distances := make([]float64, len(points))
	for len(centroids) < k {
		var total float64
		for i, p := range points {
			nearest := math.Inf(1)
			for _, c := range centroids {
				if d := squaredDistance(p, c); d < nearest {
					nearest = d
				}
			}
			distances[i] = nearest
			total += nearest
		}

		if total == 0 {
			// Every point coincides with a chosen centroid.
			centroids = append(centroids, copyPoint(points[r.Intn(len(points))]))
			continue
		}

		target := r.Float64() * total
		var cumulative float64
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, copyPoint(points[chosen]))
	}

	return centroids
}

func lloyd(points, centroids [][]float64, maxIterations int) ([]int, float64) {
	assignments := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}
		// Zero valued assignments on iteration 0 are not real yet.
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(points, assignments, centroids)
	}

	// Final pass keeps assignments consistent with the returned centroids
	// when the loop exits on maxIterations.
	var inertia float64
	for i, p := range points {
		assignments[i] = nearestCentroid(p, centroids)
		inertia += squaredDistance(p, centroids[assignments[i]])
	}
	return assignments, inertia
}

func recomputeCentroids(points [][]float64, assignments []int, centroids [][]float64) {
	dimension := len(points[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for j := range centroids {
		sums[j] = make([]float64, dimension)
	}

	for i, p := range points {
		j := assignments[i]
		counts[j]++
		for d, v := range p {
			sums[j][d] += v
		}
	}

	for j := range centroids {
		if counts[j] == 0 {
			continue
		}
		for d := 0; d < dimension; d++ {
			centroids[j][d] = sums[j][d] / float64(counts[j])
		}
	}

	// Re-seat empty clusters on the worst fitting point. Assigning the
	// point first zeroes its distance, so stacked empties pick distinct
	// points and the repair stays deterministic.
	for j := range centroids {
		if counts[j] > 0 {
			continue
		}
		i := farthestPointIndex(points, assignments, centroids)
		centroids[j] = copyPoint(points[i])
		assignments[i] = j
		counts[j] = 1
	}
}

func farthestPointIndex(points [][]float64, assignments []int, centroids [][]float64) int {
	farthest := 0
	maxDist := -1.0
	for i, p := range points {
		if d := squaredDistance(p, centroids[assignments[i]]); d > maxDist {
			maxDist = d
			farthest = i
		}
	}
	return farthest
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	nearest := 0
	minDist := math.Inf(1)
	for j, c := range centroids {
		if d := squaredDistance(p, c); d < minDist {
			minDist = d
			nearest = j
		}
	}
	return nearest
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func copyPoint(p []float64) []float64 {
	cp := make([]float64, len(p))
	copy(cp, p)
	return cp
}
