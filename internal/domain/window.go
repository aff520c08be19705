package domain

// FeatureWindow is an ordered, fixed-length sequence of flood-risk features,
// most recent last. Owned exclusively by the assessment that built it.
type FeatureWindow []float64

// AssembleWindow builds a window of exactly size features. Shorter input is
// an InsufficientDataError — padding with synthetic values would corrupt the
// forecaster's input distribution. Longer input keeps only the last size
// elements: intentional recency bias, not a bug.
func AssembleWindow(features []float64, size int) (FeatureWindow, error) {
	if len(features) < size {
		return nil, &InsufficientDataError{Got: len(features), Need: size}
	}
	if len(features) > size {
		features = features[len(features)-size:]
	}
	w := make(FeatureWindow, size)
	copy(w, features)
	return w, nil
}

// Last returns the most recent feature in the window.
func (w FeatureWindow) Last() float64 {
	return w[len(w)-1]
}

// WindowStats summarizes a window for observability. Derived and read-only;
// never feeds the classification decision.
type WindowStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Stats computes mean, min, and max over the window.
func (w FeatureWindow) Stats() WindowStats {
	s := WindowStats{Min: w[0], Max: w[0]}
	var sum float64
	for _, v := range w {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(w))
	return s
}
