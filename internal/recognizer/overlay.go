package recognizer

import (
	"regexp"
	"strings"

	"plate-service/internal/model"
)

var overlayRe = regexp.MustCompile(`(?i)Plate:\s*([A-Z0-9 ]{6,15})`)

// extractOverlay pulls plate values out of burned-in "Plate: ..." text.
// Speed-camera overlays follow their own convention and never appear as a
// standalone line, so this pass runs independently of direct and merged
// matching.
func (r *Recognizer) extractOverlay(fragments []model.TextFragment) []PlateCandidate {
	var out []PlateCandidate
	for _, f := range fragments {
		m := overlayRe.FindStringSubmatch(f.Text)
		if m == nil {
			continue
		}
		res, ok := r.library.MatchWithCorrection(strings.TrimSpace(m[1]))
		if !ok {
			continue
		}
		out = append(out, PlateCandidate{
			RawText:    f.Text,
			Normalized: res.Normalized,
			Confidence: f.Confidence,
			Source:     model.PlateSourceOverlay,
			Template:   res.Template,
			order:      f.Order,
		})
	}
	return out
}
