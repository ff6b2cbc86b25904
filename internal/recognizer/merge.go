package recognizer

import "plate-service/internal/model"

// mergeCandidates retries fragments that failed the direct pass by
// concatenating each with its reading-order neighbours inside the window, in
// both orders. Only adjacent pairs are tried, so the pass stays linear.
// A plate OCR'd as two lines (series on one, number on the next) lands here.
func (r *Recognizer) mergeCandidates(fragments []model.TextFragment, failed []int) []PlateCandidate {
	var out []PlateCandidate
	for _, i := range failed {
		for d := 1; d <= r.cfg.MergeWindow; d++ {
			if j := i + d; j < len(fragments) {
				if cand, ok := r.tryPair(fragments[i], fragments[j]); ok {
					out = append(out, cand)
				}
			}
			if j := i - d; j >= 0 {
				if cand, ok := r.tryPair(fragments[j], fragments[i]); ok {
					out = append(out, cand)
				}
			}
		}
	}
	return out
}

func (r *Recognizer) tryPair(first, second model.TextFragment) (PlateCandidate, bool) {
	combined := first.Text + " " + second.Text
	res, ok := r.library.MatchWithCorrection(combined)
	if !ok {
		return PlateCandidate{}, false
	}
	order := first.Order
	if second.Order < order {
		order = second.Order
	}
	return PlateCandidate{
		RawText:    combined,
		Normalized: res.Normalized,
		Confidence: (first.Confidence + second.Confidence) / 2,
		Source:     model.PlateSourceMerged,
		Template:   res.Template,
		order:      order,
	}, true
}
