package recognizer

// The built-in plate shapes, tried in order. Order is load-bearing: earlier
// templates encode stricter shapes, and the first satisfied template wins.
func defaultTemplates() []PatternTemplate {
	return []PatternTemplate{
		// TS08FW3131
		newTemplate("compact", "",
			Segment{ClassAlpha, 2, 2}, Segment{ClassDigit, 2, 2}, Segment{ClassAlpha, 1, 3}, Segment{ClassDigit, 3, 4}),
		// TS 08 FW 3131, TS12 UD 3371, TS08 JX4468
		newTemplate("spaced", " ",
			Segment{ClassAlpha, 2, 2}, Segment{ClassDigit, 2, 2}, Segment{ClassAlpha, 1, 3}, Segment{ClassDigit, 3, 5}),
		// TG 08 D 8599
		newTemplate("single-letter-series", " ",
			Segment{ClassAlpha, 2, 2}, Segment{ClassDigit, 2, 2}, Segment{ClassAlpha, 1, 1}, Segment{ClassDigit, 4, 4}),
		// NL01A J0044, AP 16 F J6249
		newTemplate("mixed-spacing", " ",
			Segment{ClassAlpha, 2, 2}, Segment{ClassDigit, 2, 2}, Segment{ClassAlpha, 1, 1}, Segment{ClassAlpha, 1, 1}, Segment{ClassDigit, 3, 4}),
		// HR73B 9259
		newTemplate("series-attached", " ",
			Segment{ClassAlpha, 2, 2}, Segment{ClassDigit, 2, 2}, Segment{ClassAlpha, 1, 1}, Segment{ClassDigit, 4, 5}),
		// Anything still shaped like state + district + body.
		newTemplate("generic", " ",
			Segment{ClassAlpha, 2, 2}, Segment{ClassDigit, 2, 2}, Segment{ClassAny, 3, 7}),
	}
}
