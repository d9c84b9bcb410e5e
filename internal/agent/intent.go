package agent

import (
	"regexp"
	"strings"
	"time"
)

// Intent is the structured reading of an instruction that drives the
// orchestration plan.
type Intent struct {
	// PatientName is the extracted patient name, empty when none found.
	PatientName string
	// Specialty is the canonical specialty name, empty when none mentioned.
	Specialty string
	// StartDate is the slot search start (YYYY-MM-DD); empty means today.
	StartDate string
	// DaysAhead is the slot search window length.
	DaysAhead int
	// WantsBooking is true only for explicit booking instructions.
	WantsBooking bool
	// Reason is the booking reason, empty means the capability default.
	Reason string
}

// knownPatients are matched before falling back to the generic name
// pattern.
var knownPatients = []string{"Ravi Kumar", "Priya Sharma", "Amit Patel"}

// namePattern matches a two-or-more-word name following "patient",
// "for", or "with".
var namePattern = regexp.MustCompile(`(?i:patient|for|with)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)

// specialtyVocabulary maps specialty mentions to canonical names; the
// first match in order wins.
var specialtyVocabulary = []struct {
	mention   string
	canonical string
}{
	{"cardiology", "Cardiology"},
	{"neurology", "Neurology"},
	{"general medicine", "General Medicine"},
}

// Booking verbs only classify as a booking when no search verb is
// present: "find an appointment" is a search, "book an appointment" is
// an action.
var (
	bookingKeywords = []string{"schedule", "book"}
	searchKeywords  = []string{"find", "search", "available", "show", "list", "look", "get"}
)

// ExtractIntent derives an Intent from instruction text. now anchors
// relative date phrases like "next week".
func ExtractIntent(text string, now time.Time) Intent {
	lower := strings.ToLower(text)
	intent := Intent{DaysAhead: 7}

	for _, name := range knownPatients {
		if strings.Contains(lower, strings.ToLower(name)) {
			intent.PatientName = name
			break
		}
	}
	if intent.PatientName == "" {
		if m := namePattern.FindStringSubmatch(text); m != nil {
			intent.PatientName = m[1]
		}
	}

	for _, s := range specialtyVocabulary {
		if strings.Contains(lower, s.mention) {
			intent.Specialty = s.canonical
			break
		}
	}

	if strings.Contains(lower, "next") {
		intent.StartDate = now.AddDate(0, 0, 7).Format("2006-01-02")
	}
	if strings.Contains(lower, "next week") {
		intent.DaysAhead = 14
	}

	intent.WantsBooking = containsAny(lower, bookingKeywords) && !containsAny(lower, searchKeywords)

	if strings.Contains(lower, "follow-up") || strings.Contains(lower, "followup") {
		intent.Reason = "Follow-up appointment"
	}

	return intent
}

// MentionsInsurance reports whether the instruction asks about
// insurance or eligibility.
func MentionsInsurance(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "insurance") || strings.Contains(lower, "eligibility")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
