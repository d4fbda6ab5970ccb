package analyser

import (
	"image"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/visagelab/faceanalysis/internal/face"
)

// GetManyFaces returns every face in the frame, cache-first. On a cache miss
// the frame is analysed and the result stored (even when empty) before the
// configured direction sort, age filter and gender filter are applied, in
// that fixed order.
func (a *Analyser) GetManyFaces(frame image.Image) ([]face.Face, error) {
	faces, ok := a.cache.Get(frame)
	if ok {
		log.Debugf("Frame cache hit: %d face(s)", len(faces))
	} else {
		extracted, err := a.ExtractFaces(frame)
		if err != nil {
			return nil, err
		}
		a.cache.Put(frame, extracted)
		log.Debugf("Frame cache miss: stored %d face(s)", len(extracted))
		faces = extracted
	}

	if a.cfg.Direction != "" {
		faces = SortByDirection(faces, a.cfg.Direction)
	}
	if a.cfg.Age != "" {
		faces = FilterByAge(faces, a.cfg.Age)
	}
	if a.cfg.Gender != "" {
		faces = FilterByGender(faces, a.cfg.Gender)
	}
	return faces, nil
}

// GetOneFace returns the face at position in the frame's face list. An
// out-of-range position falls back to the last face; nil means the frame has
// no faces after filtering.
func (a *Analyser) GetOneFace(frame image.Image, position int) (*face.Face, error) {
	faces, err := a.GetManyFaces(frame)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, nil
	}
	if position < 0 || position >= len(faces) {
		position = len(faces) - 1
	}
	picked := faces[position]
	return &picked, nil
}

// FindSimilarFaces returns the faces in the frame whose cosine distance to
// the reference face is strictly below maxDistance. Faces without an
// embedding, or a reference without one, are skipped rather than errored.
// Order is preserved from GetManyFaces.
func (a *Analyser) FindSimilarFaces(frame image.Image, reference face.Face, maxDistance float64) ([]face.Face, error) {
	faces, err := a.GetManyFaces(frame)
	if err != nil {
		return nil, err
	}

	similar := make([]face.Face, 0, len(faces))
	for _, f := range faces {
		if !f.HasEmbedding() || !reference.HasEmbedding() {
			continue
		}
		distance := face.CosineDistance(f.NormedEmbedding, reference.NormedEmbedding)
		if distance < maxDistance {
			similar = append(similar, f)
		}
	}
	return similar, nil
}

// SortByDirection stably sorts faces by a key derived from their bounding
// box. An unrecognized direction returns the input unchanged. The input
// slice is never modified.
func SortByDirection(faces []face.Face, direction Direction) []face.Face {
	var less func(a, b face.Face) bool
	switch direction {
	case DirectionLeftRight:
		less = func(a, b face.Face) bool { return a.BBox.X1 < b.BBox.X1 }
	case DirectionRightLeft:
		less = func(a, b face.Face) bool { return a.BBox.X1 > b.BBox.X1 }
	case DirectionTopBottom:
		less = func(a, b face.Face) bool { return a.BBox.Y1 < b.BBox.Y1 }
	case DirectionBottomTop:
		less = func(a, b face.Face) bool { return a.BBox.Y1 > b.BBox.Y1 }
	case DirectionSmallLarge:
		less = func(a, b face.Face) bool { return a.BBox.Area() < b.BBox.Area() }
	case DirectionLargeSmall:
		less = func(a, b face.Face) bool { return a.BBox.Area() > b.BBox.Area() }
	default:
		return faces
	}

	sorted := make([]face.Face, len(faces))
	copy(sorted, faces)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// FilterByAge keeps the faces whose age matches the requested class. The
// band predicates are upper bounds except for senior: child keeps age < 13,
// teen age < 19, adult age < 60, senior age > 59.
func FilterByAge(faces []face.Face, class AgeClass) []face.Face {
	filtered := make([]face.Face, 0, len(faces))
	for _, f := range faces {
		switch {
		case f.Age < 13 && class == AgeChild:
			filtered = append(filtered, f)
		case f.Age < 19 && class == AgeTeen:
			filtered = append(filtered, f)
		case f.Age < 60 && class == AgeAdult:
			filtered = append(filtered, f)
		case f.Age > 59 && class == AgeSenior:
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// FilterByGender keeps the faces whose gender matches the requested class.
// Values outside the known {female=0, male=1} pair match neither class and
// are excluded from both filters.
func FilterByGender(faces []face.Face, class GenderClass) []face.Face {
	filtered := make([]face.Face, 0, len(faces))
	for _, f := range faces {
		if f.Gender == face.GenderMale && class == GenderMale {
			filtered = append(filtered, f)
		}
		if f.Gender == face.GenderFemale && class == GenderFemale {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
