package recognizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"plate-service/internal/model"
	"plate-service/internal/utils"
)

var ErrInvalidThreshold = errors.New("confidence threshold out of range")

const (
	DefaultConfidenceThreshold    = 60.0
	DefaultLowConfidenceThreshold = 30.0
	DefaultMergeWindow            = 1
)

type Config struct {
	// ConfidenceThreshold is the primary cut-off in percent. Candidates below
	// it are dropped unless IncludeLowConfidence is set, in which case those
	// in [LowConfidenceThreshold, ConfidenceThreshold) are kept and flagged.
	ConfidenceThreshold    float64
	LowConfidenceThreshold float64
	IncludeLowConfidence   bool
	// CustomPattern, when set, is parsed with ParsePattern and tried before
	// the built-in shapes.
	CustomPattern string
	// MergeWindow is how many reading-order positions away a neighbour may be
	// for the merge pass. Zero means the default of 1.
	MergeWindow int
	// JurisdictionCodes overrides the built-in prefix allow-list.
	JurisdictionCodes []string
}

func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold:    DefaultConfidenceThreshold,
		LowConfidenceThreshold: DefaultLowConfidenceThreshold,
		MergeWindow:            DefaultMergeWindow,
	}
}

// PlateCandidate is an intermediate match produced by the direct, merged and
// overlay passes. It does not outlive one Recognize call.
type PlateCandidate struct {
	RawText    string
	Normalized string
	Confidence float64
	Source     model.PlateSource
	Template   *PatternTemplate

	order     int
	validated bool
}

// Recognizer turns one image's OCR fragments into validated plates. It holds
// only read-only state and is safe for concurrent use.
type Recognizer struct {
	cfg     Config
	library *Library
	allowed map[string]struct{}
}

// New validates the configuration up front: an out-of-range threshold or a
// malformed custom pattern fails here, before any fragment is processed.
func New(cfg Config) (*Recognizer, error) {
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 100 {
		return nil, fmt.Errorf("%w: primary %.1f", ErrInvalidThreshold, cfg.ConfidenceThreshold)
	}
	if cfg.LowConfidenceThreshold < 0 || cfg.LowConfidenceThreshold > 100 {
		return nil, fmt.Errorf("%w: low %.1f", ErrInvalidThreshold, cfg.LowConfidenceThreshold)
	}
	if cfg.LowConfidenceThreshold > cfg.ConfidenceThreshold {
		return nil, fmt.Errorf("%w: low %.1f above primary %.1f",
			ErrInvalidThreshold, cfg.LowConfidenceThreshold, cfg.ConfidenceThreshold)
	}
	if cfg.MergeWindow < 1 {
		cfg.MergeWindow = DefaultMergeWindow
	}

	var custom []PatternTemplate
	if cfg.CustomPattern != "" {
		tpl, err := ParsePattern(cfg.CustomPattern)
		if err != nil {
			return nil, err
		}
		custom = append(custom, tpl)
	}

	codes := cfg.JurisdictionCodes
	if len(codes) == 0 {
		codes = defaultJurisdictionCodes
	}
	allowed := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		allowed[strings.ToUpper(code)] = struct{}{}
	}

	return &Recognizer{cfg: cfg, library: NewLibrary(custom...), allowed: allowed}, nil
}

// RecognizedPlate is a PlateResult plus the pass that produced it.
type RecognizedPlate struct {
	model.PlateResult
	Source model.PlateSource
}

// Recognize runs the full pipeline over one image's fragments and returns
// plates ordered by confidence descending, deduplicated by normalized text.
// "No plate found" is an empty slice, not an error.
func (r *Recognizer) Recognize(fragments []model.TextFragment) []model.PlateResult {
	detailed := r.RecognizeDetailed(fragments)
	results := make([]model.PlateResult, 0, len(detailed))
	for _, d := range detailed {
		results = append(results, d.PlateResult)
	}
	return results
}

// RecognizeDetailed is Recognize with the source pass retained per plate.
func (r *Recognizer) RecognizeDetailed(fragments []model.TextFragment) []RecognizedPlate {
	floor := r.cfg.ConfidenceThreshold
	if r.cfg.IncludeLowConfidence {
		floor = r.cfg.LowConfidenceThreshold
	}

	usable := make([]model.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		// Provider anomalies are discarded locally, without affecting
		// sibling fragments.
		if f.Confidence < 0 || f.Confidence > 100 {
			continue
		}
		if f.Confidence < floor {
			continue
		}
		usable = append(usable, f)
	}
	sort.SliceStable(usable, func(i, j int) bool { return usable[i].Order < usable[j].Order })

	filtered := FilterNoise(usable)

	var candidates []PlateCandidate
	var failed []int
	for i, f := range filtered {
		res, ok := r.library.MatchWithCorrection(f.Text)
		if !ok {
			failed = append(failed, i)
			continue
		}
		candidates = append(candidates, PlateCandidate{
			RawText:    f.Text,
			Normalized: res.Normalized,
			Confidence: f.Confidence,
			Source:     model.PlateSourceDirect,
			Template:   res.Template,
			order:      f.Order,
		})
	}
	candidates = append(candidates, r.mergeCandidates(filtered, failed)...)
	candidates = append(candidates, r.extractOverlay(filtered)...)

	for i := range candidates {
		candidates[i].validated = ValidatePrefix(candidates[i].Normalized, r.allowed)
	}

	// Dedup on the separator-free form, keeping the highest-confidence
	// instance; an unvalidated prefix routes the candidate to the
	// low-confidence bucket instead of dropping it.
	best := make(map[string]RecognizedPlate)
	bestOrder := make(map[string]int)
	for _, cand := range candidates {
		lowBucket := cand.Confidence < r.cfg.ConfidenceThreshold || !cand.validated
		if lowBucket && !r.cfg.IncludeLowConfidence {
			continue
		}
		result := RecognizedPlate{
			PlateResult: model.PlateResult{
				Text:            cand.Normalized,
				Confidence:      cand.Confidence,
				IsLowConfidence: lowBucket,
			},
			Source: cand.Source,
		}
		key := utils.NormalizePlate(cand.Normalized)
		cur, seen := best[key]
		switch {
		case !seen:
			best[key] = result
			bestOrder[key] = cand.order
		case result.Confidence > cur.Confidence:
			best[key] = result
			bestOrder[key] = cand.order
		case result.Confidence == cur.Confidence && cand.order < bestOrder[key]:
			best[key] = result
			bestOrder[key] = cand.order
		}
	}

	type ranked struct {
		res   RecognizedPlate
		order int
	}
	list := make([]ranked, 0, len(best))
	for key, res := range best {
		list = append(list, ranked{res: res, order: bestOrder[key]})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].res.Confidence != list[j].res.Confidence {
			return list[i].res.Confidence > list[j].res.Confidence
		}
		if list[i].order != list[j].order {
			return list[i].order < list[j].order
		}
		return list[i].res.Text < list[j].res.Text
	})

	results := make([]RecognizedPlate, 0, len(list))
	for _, item := range list {
		results = append(results, item.res)
	}
	return results
}

// IncludesLowConfidence reports whether low-confidence plates are retained.
func (r *Recognizer) IncludesLowConfidence() bool {
	return r.cfg.IncludeLowConfidence
}

// PlateCount reports how many distinct plates Recognize finds.
func (r *Recognizer) PlateCount(fragments []model.TextFragment) int {
	return len(r.Recognize(fragments))
}
