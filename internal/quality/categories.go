package quality

// Categories maps each level to the category label pages at that level are filed under.
type Categories map[Level]string

// DefaultCategories are the English labels.
func DefaultCategories() Categories {
	return Categories{
		WithoutText:  "Without text",
		NotProofread: "Not proofread",
		Problematic:  "Problematic",
		Proofread:    "Proofread",
		Validated:    "Validated",
	}
}

// Label returns the category of l, falling back to the default English label.
func (c Categories) Label(l Level) string {
	if label, ok := c[l]; ok && label != "" {
		return label
	}
	return DefaultCategories()[l]
}
