package rules

import (
	"regexp"

	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

// MinGuidanceScore is the message score at which archetype guidance is shown.
const MinGuidanceScore = 3

// ImpersonationReasonBonus is added when a detector reason already points
// at a spoofed sender.
const ImpersonationReasonBonus = 2

var ImpersonationReasonPattern = regexp.MustCompile(`(?i)mismatch|official address`)

// Archetype groups the lexical signals counted toward one scam type.
type Archetype struct {
	Type    valueobject.ScamType
	Signals []*regexp.Regexp
	Actions []string
}

// Archetypes are scored in this order; on a tie the earlier one wins.
var Archetypes = []Archetype{
	{
		Type: valueobject.ScamTypePhishing,
		Signals: []*regexp.Regexp{
			regexp.MustCompile(`verify (?:your )?(?:account|identity|details)`),
			regexp.MustCompile(`\blog ?in\b|\bsign ?in\b`),
			regexp.MustCompile(`password|credentials`),
			regexp.MustCompile(`click (?:here|the link|below)`),
			regexp.MustCompile(`https?://\S+`),
			regexp.MustCompile(`suspended|locked|unusual activity`),
		},
		Actions: []string{
			"Do not click the link; open the official site or app directly.",
			"Never enter passwords or one-time codes from a message link.",
			"Report the message as phishing to your email provider.",
		},
	},
	{
		Type: valueobject.ScamTypeAttachment,
		Signals: []*regexp.Regexp{
			regexp.MustCompile(`attach(?:ed|ment)`),
			regexp.MustCompile(`\S+\.(?:exe|scr|zip|docm|xlsm|js|iso|html?)\b`),
			regexp.MustCompile(`enable (?:macros?|content|editing)`),
			regexp.MustCompile(`open the (?:file|document)`),
			regexp.MustCompile(`download`),
		},
		Actions: []string{
			"Do not open the attachment or enable macros.",
			"Confirm with the sender through a separate channel.",
			"Scan the file with up-to-date antivirus before opening it.",
		},
	},
	{
		Type: valueobject.ScamTypePayment,
		Signals: []*regexp.Regexp{
			regexp.MustCompile(`invoice|amount due|overdue|payment`),
			regexp.MustCompile(`gift ?cards?|wire transfer|bitcoin|crypto|western union|moneygram`),
			regexp.MustCompile(`bank (?:details|account)|beneficiary|payee`),
			regexp.MustCompile(`refund|\bfee\b`),
		},
		Actions: []string{
			"Do not send money or change payment details based on this message.",
			"Call the company on a number you already trust.",
			"Treat gift card, wire, or crypto payment requests as a red flag.",
		},
	},
	{
		Type: valueobject.ScamTypeImpersonation,
		Signals: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:ceo|director|manager|it department|hr department|help ?desk)\b`),
			regexp.MustCompile(`on behalf of`),
			regexp.MustCompile(`\bofficial\b`),
			regexp.MustCompile(`paypal|amazon|apple|microsoft|netflix|google|facebook|wells fargo|bank of america|\birs\b`),
		},
		Actions: []string{
			"Verify the sender's identity through an official channel.",
			"Check the sender address carefully for lookalike domains.",
			"Do not share information until the identity is confirmed.",
		},
	},
}
