package model

// TextFragment is one line or word grouping returned by the text-detection
// service. Confidence is a percentage in [0,100], Order is the reading-order
// index assigned by the provider.
type TextFragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Order      int     `json:"order"`
}
