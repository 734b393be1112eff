package config

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to the ID when the rule name is unknown.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	case RuleFormatName:
		return ruleName
	default:
		return ruleName
	}
}
