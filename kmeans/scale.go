package kmeans

import "math"

// StandardScaler centers each feature to zero mean and unit variance.
// Variance is taken over the whole fit population. A constant feature
// keeps scale 1 so transformed values stay finite.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler computes per feature mean and standard deviation over points.
// All points must share the same dimension.
func FitScaler(points [][]float64) *StandardScaler {
	if len(points) == 0 {
		return &StandardScaler{Mean: []float64{}, Scale: []float64{}}
	}

	dimension := len(points[0])
	mean := make([]float64, dimension)
	scale := make([]float64, dimension)

	for _, p := range points {
		for i := 0; i < dimension; i++ {
			mean[i] += p[i]
		}
	}
	for i := 0; i < dimension; i++ {
		mean[i] = mean[i] / float64(len(points))
	}

	for _, p := range points {
		for i := 0; i < dimension; i++ {
			diff := p[i] - mean[i]
			scale[i] += diff * diff
		}
	}
	for i := 0; i < dimension; i++ {
		scale[i] = math.Sqrt(scale[i] / float64(len(points)))
		if scale[i] == 0 {
			scale[i] = 1
		}
	}

	return &StandardScaler{Mean: mean, Scale: scale}
}

func (s *StandardScaler) Transform(points [][]float64) [][]float64 {
	transformed := make([][]float64, 0, len(points))
	for _, p := range points {
		tp := make([]float64, len(p))
		for i := range p {
			tp[i] = (p[i] - s.Mean[i]) / s.Scale[i]
		}
		transformed = append(transformed, tp)
	}
	return transformed
}
