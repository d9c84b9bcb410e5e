package compliance

// DisclaimerLevel selects the verbosity of the disclaimer attached to
// user-facing responses.
type DisclaimerLevel string

const (
	// DisclaimerShort is the shortest disclaimer.
	DisclaimerShort DisclaimerLevel = "short"
	// DisclaimerMedium is a moderate disclaimer.
	DisclaimerMedium DisclaimerLevel = "medium"
	// DisclaimerFull is the most comprehensive disclaimer.
	DisclaimerFull DisclaimerLevel = "full"
)

const (
	disclaimerShortText = "Automated assistant. Not medical advice."

	disclaimerMediumText = "This is an automated scheduling assistant. For medical advice, please consult your provider."

	disclaimerFullText = "This is an automated scheduling assistant. The information provided is clerical in nature and not a substitute for professional medical advice. Please consult a licensed healthcare provider for medical guidance."
)

// DisclaimerText returns the disclaimer for a level. Unknown levels fall
// back to the medium text.
func DisclaimerText(level DisclaimerLevel) string {
	switch level {
	case DisclaimerShort:
		return disclaimerShortText
	case DisclaimerFull:
		return disclaimerFullText
	default:
		return disclaimerMediumText
	}
}
