package agent

import "strings"

// GateDecision is the safety gate verdict for an instruction.
type GateDecision struct {
	Allowed bool
	// Rule names the refusing rule, empty when allowed.
	Rule string
	// Message is the fixed explanation returned to the caller on refusal.
	Message string
}

// gateRule is a keyword rule with an optional exempting substring.
type gateRule struct {
	name     string
	keywords []string
	exempt   string
	message  string
}

const (
	medicalAdviceRefusal     = "I cannot provide medical advice, diagnosis, or treatment recommendations. I can only help with workflow tasks like scheduling appointments and checking eligibility."
	destructiveActionRefusal = "I cannot perform destructive actions. I can only schedule appointments and retrieve information."
)

// gateRules are evaluated in order; the first match refuses the
// instruction. "cancel" exempts the destructive rule, so cancellation
// phrasing on its own is never treated as destructive.
var gateRules = []gateRule{
	{
		name:     "medical_advice",
		keywords: []string{"diagnose", "diagnosis", "treatment", "medicine", "prescribe", "what disease", "what illness"},
		message:  medicalAdviceRefusal,
	},
	{
		name:     "destructive_action",
		keywords: []string{"delete", "remove", "cancel appointment", "modify patient"},
		exempt:   "cancel",
		message:  destructiveActionRefusal,
	},
}

// EvaluateGate classifies an instruction before any extraction or
// capability call runs. Stateless and pure: the same text always yields
// the same decision.
func EvaluateGate(text string) GateDecision {
	lower := strings.ToLower(text)
	for _, rule := range gateRules {
		if rule.matches(lower) {
			return GateDecision{Allowed: false, Rule: rule.name, Message: rule.message}
		}
	}
	return GateDecision{Allowed: true}
}

func (r gateRule) matches(lower string) bool {
	if r.exempt != "" && strings.Contains(lower, r.exempt) {
		return false
	}
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
