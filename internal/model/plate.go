package model

type PlateSource string

const (
	PlateSourceDirect  PlateSource = "DIRECT"
	PlateSourceMerged  PlateSource = "MERGED"
	PlateSourceOverlay PlateSource = "OVERLAY"
)

// PlateResult is one extracted plate. Text is the normalized form (uppercase
// letters, digits and single spaces only).
type PlateResult struct {
	Text            string  `json:"text"`
	Confidence      float64 `json:"confidence"`
	IsLowConfidence bool    `json:"is_low_confidence"`
}
