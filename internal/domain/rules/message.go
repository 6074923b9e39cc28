package rules

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// ExampleMessage is the canned phishing sample offered to new users.
const ExampleMessage = "Dear customer, your account has been suspended. Click here https://bit.ly/verify-now to verify immediately or your account will be closed."

// MessageScoreCeiling caps the reported message score.
var MessageScoreCeiling = decimal.NewFromInt(10)

// Message rule weights.
var (
	WeightUrgency          = decimal.NewFromInt(2)
	WeightSensitive        = decimal.NewFromInt(3)
	WeightLink             = decimal.NewFromInt(2)
	WeightShortener        = decimal.NewFromInt(2)
	WeightSenderMismatch   = decimal.NewFromInt(1)
	WeightExclamation      = decimal.NewFromInt(1)
	WeightAllCaps          = decimal.NewFromInt(1)
	WeightMisspelling      = decimal.NewFromInt(1)
	WeightCallToAction     = decimal.NewFromInt(2)
	WeightDangerousFile    = decimal.NewFromInt(3)
	WeightMacro            = decimal.NewFromInt(2)
	WeightDoubleExtension  = decimal.NewFromInt(3)
	WeightAttachmentLure   = decimal.NewFromInt(1)
	WeightBrandMismatch    = decimal.NewFromInt(2)
	WeightHighRiskPayment  = decimal.NewFromInt(3)
	WeightPaymentRedirect  = decimal.NewFromInt(2)
	WeightInvoicePressure  = decimal.NewFromInt(1)
	WeightAntiVerification = decimal.NewFromInt(2)
)

const (
	// MinExclamations is the count of "!" that reads as high-emotion formatting.
	MinExclamations = 2
	// MinAllCapsLength is the stripped length above which all-caps is flagged.
	MinAllCapsLength = 20
)

var UrgencyPhrases = NewPhraseSet(
	"urgent",
	"immediately",
	"act now",
	"final notice",
	"asap",
	"verify now",
	"last chance",
	"limited time",
	"account suspended",
	"within 24 hours",
	"expires today",
	"action required",
	"don't delay",
)

var SensitivePhrases = NewPhraseSet(
	"password",
	"ssn",
	"social security",
	"bank account",
	"verify your account",
	"card number",
	"cvv",
	"pin",
	"wallet seed",
	"seed phrase",
	"private key",
	"gift card",
	"routing number",
	"login credentials",
	"mother's maiden name",
)

var (
	LinkPattern           = regexp.MustCompile(`(?i)https?://[\w\-./?=&%#]+`)
	ShortenerPattern      = regexp.MustCompile(`(?i)\b(?:bit\.ly|tinyurl|t\.co|goo\.gl|owly|is\.gd)\b`)
	SenderHeaderPattern   = regexp.MustCompile(`(?i)from:\s*\w+`)
	SenderAddressPattern  = regexp.MustCompile(`@\w+\.`)
	OfficialSenderPattern = regexp.MustCompile(`(?i)\b(?:official|support|admin|service)\b`)
	AllCapsPattern        = regexp.MustCompile(`^[^a-z]*[A-Z\s0-9\W]+$`)
	MisspellingPattern    = regexp.MustCompile(`(?i)recieve|banking\s+information|congradulations`)
	CallToActionPattern   = regexp.MustCompile(`click (?:here|the link)|verify (?:your|account)|update (?:your|account)|download attached`)
)

// Attachment patterns run on lower-cased text.
var (
	DangerousExtensionPattern = regexp.MustCompile(`\.(exe|scr|bat|cmd|js|vbs|jar|msi|ps1|iso|hta|lnk)\b`)
	MacroPattern              = regexp.MustCompile(`enable (?:macros?|content|editing)|macro-enabled|\.(?:docm|xlsm|pptm)\b`)
	DoubleExtensionPattern    = regexp.MustCompile(`[\w-]+\.(?:pdf|docx?|xlsx?|jpe?g|png|txt|zip)\.(?:exe|scr|bat|cmd|js|vbs|jar|msi|com|hta)\b`)
	AttachmentLurePattern     = regexp.MustCompile(`(?:see|open|review|check) (?:the )?(?:attached|attachment|enclosed)|attached (?:file|document|invoice)`)
)

// EmailPattern captures the domain of an email-like token.
var EmailPattern = regexp.MustCompile(`[\w.+-]+@([\w-]+(?:\.[\w-]+)+)`)

// Brand pairs a brand mention with the domain its mail legitimately comes from.
type Brand struct {
	Name   string
	Domain string
}

// MessageBrands are checked in order; only the first mismatch counts.
var MessageBrands = []Brand{
	{Name: "paypal", Domain: "paypal.com"},
	{Name: "amazon", Domain: "amazon.com"},
	{Name: "apple", Domain: "apple.com"},
	{Name: "microsoft", Domain: "microsoft.com"},
	{Name: "netflix", Domain: "netflix.com"},
	{Name: "google", Domain: "google.com"},
	{Name: "facebook", Domain: "facebook.com"},
	{Name: "wells fargo", Domain: "wellsfargo.com"},
}

// Payment patterns run on lower-cased text.
var (
	InvoiceVocabularyPattern = regexp.MustCompile(`invoice|payment|amount due|outstanding balance|remittance|\bbill\b`)
	HighRiskPaymentPattern   = regexp.MustCompile(`gift ?cards?|wire transfer|western union|moneygram|bitcoin|\bcrypto|\busdt\b|itunes card|google play card|zelle|cash ?app`)
	PaymentRedirectPattern   = regexp.MustCompile(`(?:new|updated|changed) (?:bank|banking|account|payment) (?:details|information|info)|changed our bank|update (?:the )?(?:beneficiary|payee)|send (?:the )?payment to (?:this|a new|our new)`)
	PastDuePattern           = regexp.MustCompile(`overdue|past due`)
	AntiVerificationPattern  = regexp.MustCompile(`do not (?:call|contact|phone|tell|discuss)|don't (?:call|contact|tell)|keep this (?:confidential|between us)|no need to (?:verify|confirm)`)
)
