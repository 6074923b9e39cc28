package valueobject

import "fmt"

// ScamType is the dominant scam archetype of a message.
type ScamType struct {
	value  string
	label  string
	detail string
}

var (
	ScamTypePhishing = ScamType{
		value:  "phishing",
		label:  "Phishing / Credential Theft",
		detail: "Tries to lure you to a fake login page or collect passwords and account details.",
	}
	ScamTypeAttachment = ScamType{
		value:  "attachment",
		label:  "Malicious Attachment",
		detail: "Pushes you to open a file that may install malware or enable macros.",
	}
	ScamTypePayment = ScamType{
		value:  "payment",
		label:  "Payment / Invoice Fraud",
		detail: "Pressures you to pay, change bank details, or use hard-to-reverse payment methods.",
	}
	ScamTypeImpersonation = ScamType{
		value:  "impersonation",
		label:  "Impersonation",
		detail: "Pretends to be a trusted brand, executive, or authority to gain your trust.",
	}
	ScamTypeNeutral = ScamType{
		value:  "neutral",
		label:  "No Clear Scam Pattern",
		detail: "No single scam archetype stands out in this message.",
	}
)

// ScamTypeFromString reconstructs a ScamType from its identifier.
func ScamTypeFromString(s string) (ScamType, error) {
	switch s {
	case "phishing":
		return ScamTypePhishing, nil
	case "attachment":
		return ScamTypeAttachment, nil
	case "payment":
		return ScamTypePayment, nil
	case "impersonation":
		return ScamTypeImpersonation, nil
	case "neutral":
		return ScamTypeNeutral, nil
	default:
		return ScamType{}, fmt.Errorf("invalid scam type: %s", s)
	}
}

// String returns the machine identifier (e.g. "phishing").
func (t ScamType) String() string { return t.value }

// Label returns the human readable name.
func (t ScamType) Label() string { return t.label }

// Detail returns a one-sentence explanation of the archetype.
func (t ScamType) Detail() string { return t.detail }

// IsNeutral reports whether no archetype was selected.
func (t ScamType) IsNeutral() bool { return t.value == ScamTypeNeutral.value }

func (t ScamType) IsZero() bool { return t.value == "" }

func (t ScamType) Equal(other ScamType) bool { return t.value == other.value }
