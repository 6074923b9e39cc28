package rules

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

// WebsiteScoreCeiling caps website scores to the 0-10 scale.
var WebsiteScoreCeiling = decimal.NewFromInt(10)

// URL rule weights.
var (
	WeightInsecureScheme      = decimal.NewFromInt(2)
	WeightSuspiciousTLD       = decimal.NewFromInt(2)
	WeightLookalikeDomain     = decimal.NewFromInt(3)
	WeightDigitSubstitution   = decimal.RequireFromString("2.5")
	WeightSuspiciousSubdomain = decimal.RequireFromString("1.5")
	WeightMalformedURL        = decimal.NewFromInt(1)
)

// MaxLookalikeDistance is the largest edit distance still read as a lookalike.
const MaxLookalikeDistance = 2

// MinLookalikeLabelLength guards short labels from matching every brand.
const MinLookalikeLabelLength = 3

// SchemePattern detects an explicit http(s) scheme.
var SchemePattern = regexp.MustCompile(`(?i)^https?://`)

var (
	// BareDomainPattern matches label.label...tld with an optional path.
	BareDomainPattern          = regexp.MustCompile(`^(?:[a-z0-9-]+\.)+[a-z]{2,}(?:[/:?#]\S*)?$`)
	SuspiciousSubdomainPattern = regexp.MustCompile(`^(?:login|signin|verify|secure|account|update|admin|auth|banking|webscr|support)`)
)

// SuspiciousTLDs are top-level domains over-represented in abuse feeds.
var SuspiciousTLDs = map[string]struct{}{
	"xyz": {}, "tk": {}, "shop": {}, "top": {}, "ml": {}, "ga": {},
	"cf": {}, "gq": {}, "buzz": {}, "click": {}, "loan": {}, "work": {},
	"zip": {}, "mov": {}, "country": {}, "rest": {},
}

// LookalikeBrands are compared against the first domain label.
var LookalikeBrands = []string{
	"google", "paypal", "amazon", "apple", "microsoft",
	"facebook", "netflix", "instagram", "twitter", "linkedin",
}

// Markup rule weights for the structural checks.
var (
	WeightNoContact          = decimal.RequireFromString("1.5")
	WeightNoPrivacyPolicy    = decimal.NewFromInt(1)
	WeightNoRefundTerms      = decimal.NewFromInt(1)
	WeightUnusualPayment     = decimal.NewFromInt(2)
	WeightDeepDiscount       = decimal.RequireFromString("1.5")
	WeightMissingAbout       = decimal.NewFromInt(1)
	WeightVagueAbout         = decimal.RequireFromString("0.5")
	WeightNoBusinessDetails  = decimal.NewFromInt(1)
	WeightPopupScripts       = decimal.NewFromInt(1)
	WeightExecutableDownload = decimal.NewFromInt(2)
	WeightManyExternalLinks  = decimal.NewFromInt(1)
	WeightAdultContent       = decimal.RequireFromString("1.5")
	WeightInsecurePassword   = decimal.NewFromInt(2)
)

const (
	// DeepDiscountPercent is the smallest "% off" read as unrealistic.
	DeepDiscountPercent = 75
	// MaxExternalLinks is the external link count above which a page is flagged.
	MaxExternalLinks = 20
)

var (
	ContactPattern         = regexp.MustCompile(`contact|mailto:|tel:|\+?\d[\d\s().-]{7,}\d`)
	PrivacyPolicyPattern   = regexp.MustCompile(`privacy policy|privacy notice`)
	RefundTermsPattern     = regexp.MustCompile(`refund|return policy|terms of service|terms and conditions|terms of use`)
	DiscountPattern        = regexp.MustCompile(`(\d{1,3})\s*%\s*off`)
	AboutPattern           = regexp.MustCompile(`about\s*us`)
	AboutDetailsPattern    = regexp.MustCompile(`founded|established|our team|our mission|since (?:19|20)\d{2}|headquartered`)
	BusinessDetailsPattern = regexp.MustCompile(`\b\d{1,5}\s+\w+\s+(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln)\b|suite \d+|registered (?:office|company)|company (?:no|number|registration)|vat (?:no|number)`)
	PopupScriptPattern     = regexp.MustCompile(`alert\(|window\.open\(|onbeforeunload|pop-?up`)
	ExecutablePattern      = regexp.MustCompile(`\.(exe|scr|msi|bat|apk|jar|vbs|ps1|dmg)\b`)
	ExternalLinkPattern    = regexp.MustCompile(`href\s*=\s*["']?https?://`)
	PasswordFieldPattern   = regexp.MustCompile(`type\s*=\s*["']?password`)
)

var UnusualPaymentPhrases = NewPhraseSet(
	"bitcoin only",
	"crypto only",
	"pay with gift card",
	"gift cards accepted",
	"wire transfer only",
	"western union",
	"moneygram",
)

var SpellingErrorPhrases = NewPhraseSet(
	"recieve",
	"garantee",
	"gaurantee",
	"congradulations",
	"definately",
	"seperate",
	"occured",
	"untill",
	"buisness",
	"acount",
)

// PhraseRule raises one flag per phrase found, or a single flag when Flat is set.
type PhraseRule struct {
	Category valueobject.Category
	Weight   decimal.Decimal
	Phrases  *PhraseSet
	// Reason is a format string taking the matched phrase.
	Reason string
	Flat   bool
}

var (
	ContentQualityRule = PhraseRule{
		Category: valueobject.CategoryContentQuality,
		Weight:   decimal.RequireFromString("0.5"),
		Phrases:  SpellingErrorPhrases,
		Reason:   "Spelling error suggests a hastily built site: %q",
	}
	UrgencyContentRule = PhraseRule{
		Category: valueobject.CategoryContent,
		Weight:   decimal.NewFromInt(1),
		Phrases: NewPhraseSet(
			"limited time offer",
			"only a few left",
			"hurry",
			"act now",
			"offer ends today",
			"today only",
			"while supplies last",
		),
		Reason: "High-pressure sales language: %q",
	}
)

// ThreatRules run after the structural checks, in this order.
var ThreatRules = []PhraseRule{
	{
		Category: valueobject.CategoryMalwareRisk,
		Weight:   decimal.NewFromInt(3),
		Phrases: NewPhraseSet(
			"your computer is infected",
			"virus detected",
			"download this codec",
			"update your flash player",
			"your pc is at risk",
			"call microsoft support",
			"your device has been compromised",
		),
		Reason: "Fake malware warning or scareware lure: %q",
	},
	{
		Category: valueobject.CategoryPhishingRisk,
		Weight:   decimal.RequireFromString("1.5"),
		Phrases: NewPhraseSet(
			"verify your account",
			"confirm your identity",
			"login to continue",
			"log in to continue",
			"enter your password",
			"update your payment information",
			"your account will be suspended",
			"unusual activity",
		),
		Reason: "Credential-harvesting phrasing: %q",
	},
	{
		Category: valueobject.CategoryHarmfulContent,
		Weight:   decimal.RequireFromString("2.5"),
		Phrases: NewPhraseSet(
			"inferior race",
			"ethnic cleansing",
			"white power",
			"kill all",
			"subhuman",
			"death to",
		),
		Reason: "Hateful or violent language: %q",
	},
	{
		Category: valueobject.CategoryHarmfulContent,
		Weight:   WeightAdultContent,
		Phrases: NewPhraseSet(
			"xxx",
			"porn",
			"adult content",
			"nsfw",
			"escort",
			"18+ only",
			"explicit content",
		),
		Reason: "Adult content indicators (first match: %q)",
		Flat:   true,
	},
	{
		Category: valueobject.CategoryMentalHealthRisk,
		Weight:   decimal.RequireFromString("2.5"),
		Phrases: NewPhraseSet(
			"self-harm tips",
			"suicide method",
			"how to kill yourself",
			"pro-ana",
			"thinspiration",
			"cutting tips",
		),
		Reason: "Content that may encourage self-harm: %q",
	},
	{
		Category: valueobject.CategoryMisinformation,
		Weight:   decimal.NewFromInt(1),
		Phrases: NewPhraseSet(
			"miracle cure",
			"doctors hate",
			"cure cancer",
			"the government is hiding",
			"100% guaranteed results",
			"vaccines cause autism",
			"one weird trick",
		),
		Reason: "Misleading or unfounded health or news claim: %q",
	},
	{
		Category: valueobject.CategoryPrivacyRisk,
		Weight:   decimal.RequireFromString("1.5"),
		Phrases: NewPhraseSet(
			"we sell your data",
			"share your information with third parties",
			"enter your social security",
			"upload your id",
			"access to your contacts",
			"mother's maiden name",
		),
		Reason: "Aggressive personal data collection: %q",
	},
	{
		Category: valueobject.CategoryLegalRisk,
		Weight:   decimal.NewFromInt(2),
		Phrases: NewPhraseSet(
			"free movies",
			"watch free",
			"crack download",
			"keygen",
			"torrent",
			"warez",
			"serial key",
			"nulled",
		),
		Reason: "Likely piracy or copyright infringement: %q",
	},
	{
		Category: valueobject.CategoryPredatoryRisk,
		Weight:   decimal.NewFromInt(3),
		Phrases: NewPhraseSet(
			"payday loan",
			"no credit check",
			"guaranteed approval",
			"get rich quick",
			"double your money",
			"guaranteed returns",
			"send money to receive",
		),
		Reason: "Predatory financial offer: %q",
	},
	{
		Category: valueobject.CategorySecurityMalpractice,
		Weight:   decimal.RequireFromString("1.5"),
		Phrases: NewPhraseSet(
			"disable your antivirus",
			"turn off your firewall",
			"allow notifications to continue",
			"disable security",
			"run as administrator",
			"ignore the browser warning",
		),
		Reason: "Asks visitors to weaken their own security: %q",
	},
}
