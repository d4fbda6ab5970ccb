package face

import "math"

// L2Norm returns the Euclidean length of the vector.
func L2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// L2Normalize scales the vector to unit Euclidean length. A zero vector is
// returned unchanged since it has no direction to preserve.
func L2Normalize(v []float32) []float32 {
	norm := L2Norm(v)
	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Dot returns the dot product of two vectors. Vectors of different lengths
// are compared over their common prefix.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// CosineDistance returns 1 - dot(a, b). For unit-length vectors this is the
// cosine distance, with 0 meaning identical direction.
func CosineDistance(a, b []float32) float64 {
	return 1 - Dot(a, b)
}
