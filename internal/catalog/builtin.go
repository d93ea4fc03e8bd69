package catalog

import "fmt"

// BuiltinVersion identifies the compiled-in rule set
const BuiltinVersion = "builtin-1"

// Builtin returns the compiled-in default catalog
func Builtin() *Catalog {
	c, err := build(BuiltinVersion, builtinRules, builtinMitigations)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

var builtinRules = []RuleSpec{
	// Financial scams
	{
		Name:     "money-offer",
		Category: "financial_scam",
		Pattern:  `\b(?:free|win|earn|make money|get rich|cash|dollars?|money)\b`,
		Weight:   0.8,
		Reason:   "Money-offer phrasing",
	},
	{
		Name:     "investment-pitch",
		Category: "financial_scam",
		Pattern:  `\b(?:investment|profit|return|guaranteed|risk-free)\b`,
		Weight:   0.8,
		Reason:   "Guaranteed-return investment pitch",
	},
	{
		Name:     "prize-notification",
		Category: "financial_scam",
		Pattern:  `\b(?:lottery|prize|winner|congratulations|claim)\b`,
		Weight:   0.8,
		Reason:   "Lottery or prize notification",
	},
	{
		Name:     "crypto-scheme",
		Category: "financial_scam",
		Pattern:  `\b(?:bitcoin|crypto|trading|forex|stocks?)\b`,
		Weight:   0.8,
		Reason:   "Cryptocurrency or trading scheme",
	},
	{
		Name:     "scam-greeting",
		Category: "financial_scam",
		Pattern:  `\b(?:dear friend|valued customer)\b`,
		Weight:   0.6,
		Reason:   "Generic scam greeting",
	},
	{
		Name:     "you-have-won",
		Category: "financial_scam",
		Pattern:  `\byou (?:have |'ve )?won\b|\byou are selected\b|\byou qualify\b`,
		Weight:   0.6,
		Reason:   "Winner-selection phrasing",
	},
	{
		Name:     "giveaway-bait",
		Category: "financial_scam",
		Pattern:  `\b(?:no obligation|no cost|free trial|free gift)\b`,
		Weight:   0.6,
		Reason:   "Free-giveaway bait",
	},

	// Urgency and pressure tactics
	{
		Name:     "pressure-words",
		Category: "urgency",
		Pattern:  `\b(?:urgent|asap|immediately|limited time|act now|hurry)\b`,
		Weight:   0.7,
		Reason:   "Urgency pressure phrasing",
	},
	{
		Name:     "deadline-pressure",
		Category: "urgency",
		Pattern:  `\b(?:expires|deadline|last chance|don't miss)\b`,
		Weight:   0.7,
		Reason:   "Artificial deadline pressure",
	},
	{
		Name:     "call-to-action",
		Category: "urgency",
		Pattern:  `\b(?:click here|call now|order now|buy now)\b`,
		Weight:   0.7,
		Reason:   "Aggressive call to action",
	},
	{
		Name:     "boilerplate-cta",
		Category: "urgency",
		Pattern:  `\b(?:limited offer|exclusive deal)\b`,
		Weight:   0.6,
		Reason:   "Promotional pressure boilerplate",
	},

	// Suspicious links
	{
		Name:     "shortened-url",
		Category: "suspicious_link",
		Pattern:  `https?://(?:bit\.ly|tinyurl|short\.link|t\.co)`,
		Weight:   0.9,
		Reason:   "Shortened-URL link",
	},
	{
		Name:     "disposable-domain",
		Category: "suspicious_link",
		Pattern:  `https?://[a-z0-9-]+\.(?:tk|ml|ga|cf)`,
		Weight:   0.9,
		Reason:   "Link to a throwaway domain",
	},
	{
		Name:     "ip-literal-link",
		Category: "suspicious_link",
		Pattern:  `https?://\d{1,3}(?:\.\d{1,3}){3}`,
		Weight:   0.9,
		Reason:   "Raw IP-address link",
	},
	{
		Name:     "link-bait",
		Category: "suspicious_link",
		Pattern:  `\b(?:click|link|url|website|site)\b.*https?://`,
		Weight:   0.9,
		Reason:   "Text urging a link visit",
	},
	{
		Name:     "link-flood",
		Category: "suspicious_link",
		Probe:    ProbeLinkFlood,
		Weight:   0.4,
		Reason:   "Multiple suspicious links",
	},

	// Personal information requests
	{
		Name:     "credential-request",
		Category: "personal_info_request",
		Pattern:  `\b(?:password|account|login|verify|confirm)\b`,
		Weight:   0.8,
		Reason:   "Asks to verify credentials",
	},
	{
		Name:     "identity-probe",
		Category: "personal_info_request",
		Pattern:  `\b(?:ssn|social security|credit card|bank account)\b`,
		Weight:   0.8,
		Reason:   "Requests sensitive identity data",
	},
	{
		Name:     "confidential-bait",
		Category: "personal_info_request",
		Pattern:  `\b(?:personal|private|confidential|sensitive)\b`,
		Weight:   0.8,
		Reason:   "Confidentiality bait",
	},

	// Email-only boilerplate
	{
		Name:     "unsubscribe-boilerplate",
		Category: "email_spam_pattern",
		Pattern:  `\b(?:unsubscribe|opt-out|remove|stop)\b`,
		Weight:   0.5,
		Reason:   "Unsubscribe boilerplate",
	},
	{
		Name:     "newsletter-promo",
		Category: "email_spam_pattern",
		Pattern:  `\b(?:newsletter|promotion|offer|deal)\b`,
		Weight:   0.5,
		Reason:   "Newsletter or promotional wording",
	},
	{
		Name:     "bulk-mailer",
		Category: "email_spam_pattern",
		Pattern:  `\b(?:spam|junk|bulk|mass)\b`,
		Weight:   0.5,
		Reason:   "Bulk-mailing vocabulary",
	},
	{
		Name:     "account-alert",
		Category: "email_spam_pattern",
		Pattern:  `\b(?:suspended|deactivated|account (?:alert|notice|update))\b`,
		Weight:   0.5,
		Reason:   "Account-suspension boilerplate",
	},

	// Structural heuristics
	{
		Name:     "all-caps",
		Category: "structural",
		Probe:    ProbeAllCaps,
		Weight:   0.3,
		Reason:   "Excessive uppercase letters",
	},
	{
		Name:     "exclamation-flood",
		Category: "structural",
		Probe:    ProbeExclamations,
		Weight:   0.2,
		Reason:   "Too many exclamation marks",
	},
	{
		Name:     "digit-flood",
		Category: "structural",
		Probe:    ProbeDigitFlood,
		Weight:   0.2,
		Reason:   "Excessive numbers",
	},
	{
		Name:     "short-text",
		Category: "structural",
		Probe:    ProbeShortText,
		Weight:   0.2,
		Reason:   "Very short keyword-heavy message",
	},
	{
		Name:     "long-text",
		Category: "structural",
		Probe:    ProbeLongText,
		Weight:   0.1,
		Reason:   "Very long message",
	},
}

var builtinMitigations = []MitigationSpec{
	{Name: "courtesy", Pattern: `\b(?:thank you|please|sorry|hello|hi|greetings)\b`, Damp: 0.3},
	{Name: "scheduling", Pattern: `\b(?:meeting|appointment|schedule|business)\b`, Damp: 0.3},
	{Name: "personal-circle", Pattern: `\b(?:family|friend|colleague|team)\b`, Damp: 0.3},
	{Name: "work-context", Pattern: `\b(?:work|project|task|assignment)\b`, Damp: 0.3},
}
