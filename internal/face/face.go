package face

// ============================================================================
// Face Value Types
// ============================================================================
//
// A Face is the immutable result of running the detection and recognition
// pipeline on a single frame region. Once built it is never mutated; query
// operations always produce new slices of the same Face values, so faces can
// be shared freely across goroutines.
//
// ============================================================================

// Gender values attached to a Face by an external estimator.
const (
	GenderFemale = 0
	GenderMale   = 1
)

// Point is a 2D coordinate in frame pixel space.
type Point struct {
	X, Y float64
}

// BoundingBox is an axis-aligned face box in frame pixel coordinates.
type BoundingBox struct {
	X1, Y1 float64 // top-left
	X2, Y2 float64 // bottom-right
}

// Width returns the box width.
func (b BoundingBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the box height.
func (b BoundingBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Area returns the box area.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the box center point.
func (b BoundingBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// Landmarks are the 5 keypoints used to align a face crop before recognition:
// left eye, right eye, nose tip, left mouth corner, right mouth corner.
type Landmarks [5]Point

// Bounds returns the axis-aligned box enclosing all landmark points.
func (l Landmarks) Bounds() BoundingBox {
	box := BoundingBox{X1: l[0].X, Y1: l[0].Y, X2: l[0].X, Y2: l[0].Y}
	for _, p := range l[1:] {
		if p.X < box.X1 {
			box.X1 = p.X
		}
		if p.Y < box.Y1 {
			box.Y1 = p.Y
		}
		if p.X > box.X2 {
			box.X2 = p.X
		}
		if p.Y > box.Y2 {
			box.Y2 = p.Y
		}
	}
	return box
}

// Face is a single detected face with its identity embedding.
type Face struct {
	BBox            BoundingBox
	Landmarks       Landmarks
	Score           float64
	Embedding       []float32
	NormedEmbedding []float32
	Gender          int
	Age             int
}

// HasEmbedding reports whether the face carries a usable normed embedding.
func (f Face) HasEmbedding() bool {
	return len(f.NormedEmbedding) > 0
}
