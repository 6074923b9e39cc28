package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

// tally accumulates rule weights and reasons in evaluation order.
type tally struct {
	score   decimal.Decimal
	reasons []string
}

func newTally() *tally {
	return &tally{score: decimal.Zero, reasons: make([]string, 0)}
}

func (t *tally) add(weight decimal.Decimal, reason string) {
	t.score = t.score.Add(weight)
	t.reasons = append(t.reasons, reason)
}

// MessageScorer is a domain service that scores free text for scam signals.
// It holds no state and is safe for concurrent use.
type MessageScorer struct{}

// NewMessageScorer creates a new MessageScorer instance.
func NewMessageScorer() *MessageScorer {
	return &MessageScorer{}
}

// Analyze evaluates every rule group against text and sums the weights of
// all matches. The verdict is taken from the unclamped sum; the reported
// score is capped at rules.MessageScoreCeiling.
func (s *MessageScorer) Analyze(text string) model.ScoreResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ScoreResult{
			Score:   0,
			Verdict: valueobject.VerdictNoText.String(),
			Reasons: []string{"No message provided"},
		}
	}

	lower := strings.ToLower(text)
	t := newTally()

	// Rule: urgency wording.
	urgent := rules.UrgencyPhrases.Find(lower)
	for _, w := range urgent {
		t.add(rules.WeightUrgency, fmt.Sprintf("Uses urgent or pressuring language: %q", w))
	}

	// Rule: requests for sensitive data.
	for _, w := range rules.SensitivePhrases.Find(lower) {
		t.add(rules.WeightSensitive, fmt.Sprintf("Requests sensitive personal information: %q", w))
	}

	// Rule: external link, quoted as written.
	if link := rules.LinkPattern.FindString(text); link != "" {
		t.add(rules.WeightLink, "Contains an external link: "+link)
	}

	// Rule: shortened link.
	if rules.ShortenerPattern.MatchString(text) {
		t.add(rules.WeightShortener, "Uses a shortened or obfuscated link")
	}

	// Rule: sender header without an official-looking address.
	if rules.SenderHeaderPattern.MatchString(text) &&
		rules.SenderAddressPattern.MatchString(text) &&
		!rules.OfficialSenderPattern.MatchString(text) {
		t.add(rules.WeightSenderMismatch, "Sender may not match official address")
	}

	// Rule: emotional formatting.
	if strings.Count(text, "!") >= rules.MinExclamations {
		t.add(rules.WeightExclamation, "High-emotion formatting (multiple exclamation points)")
	}
	stripped := strings.Join(strings.Fields(text), "")
	if utf8.RuneCountInString(stripped) > rules.MinAllCapsLength && rules.AllCapsPattern.MatchString(stripped) {
		t.add(rules.WeightAllCaps, "Unusual ALL-CAPS formatting")
	}

	// Rule: common misspellings.
	if rules.MisspellingPattern.MatchString(text) {
		t.add(rules.WeightMisspelling, "Possible spelling/grammar oddities")
	}

	// Rule: phishing call to action.
	if rules.CallToActionPattern.MatchString(lower) {
		t.add(rules.WeightCallToAction, "Asks to click a link, verify, or download, common in phishing")
	}

	scoreAttachments(t, lower, len(urgent) > 0)
	scoreBrandMismatch(t, lower)
	scorePayment(t, lower, len(urgent) > 0)

	verdict := valueobject.VerdictFromScore(t.score)
	reported := decimal.Min(t.score, rules.MessageScoreCeiling)

	return model.ScoreResult{
		Score:   reported.InexactFloat64(),
		Verdict: verdict.String(),
		Reasons: t.reasons,
	}
}

func scoreAttachments(t *tally, lower string, urgent bool) {
	if m := rules.DangerousExtensionPattern.FindStringSubmatch(lower); m != nil {
		t.add(rules.WeightDangerousFile, fmt.Sprintf("Mentions a potentially dangerous file type: %q", "."+m[1]))
	}
	if rules.MacroPattern.MatchString(lower) {
		t.add(rules.WeightMacro, "Asks to enable macros or open a macro-enabled document")
	}
	if m := rules.DoubleExtensionPattern.FindString(lower); m != "" {
		t.add(rules.WeightDoubleExtension, fmt.Sprintf("File name hides its real type behind a double extension: %q", m))
	}
	if urgent && rules.AttachmentLurePattern.MatchString(lower) {
		t.add(rules.WeightAttachmentLure, "Pushes you to open an attachment under time pressure")
	}
}

// scoreBrandMismatch checks the first email-like token against the brands
// the text mentions. Only the first mismatching brand counts.
func scoreBrandMismatch(t *tally, lower string) {
	m := rules.EmailPattern.FindStringSubmatch(lower)
	if m == nil {
		return
	}
	domain := m[1]

	for _, b := range rules.MessageBrands {
		if !strings.Contains(lower, b.Name) {
			continue
		}
		if strings.Contains(domain, b.Domain) {
			continue
		}
		t.add(rules.WeightBrandMismatch,
			fmt.Sprintf("Sender identity mismatch: mentions %s but the address is from %q", b.Name, domain))
		return
	}
}

func scorePayment(t *tally, lower string, urgent bool) {
	invoice := rules.InvoiceVocabularyPattern.MatchString(lower)

	if invoice && rules.HighRiskPaymentPattern.MatchString(lower) {
		t.add(rules.WeightHighRiskPayment, "Requests payment by gift card, wire transfer, or cryptocurrency")
	}
	if rules.PaymentRedirectPattern.MatchString(lower) {
		t.add(rules.WeightPaymentRedirect, "Asks to send payment to new or changed bank details")
	}
	if invoice && (urgent || rules.PastDuePattern.MatchString(lower)) {
		t.add(rules.WeightInvoicePressure, "Pairs an invoice or payment demand with deadline pressure")
	}
	if rules.AntiVerificationPattern.MatchString(lower) {
		t.add(rules.WeightAntiVerification, "Discourages you from verifying the request with anyone else")
	}
}
