package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

// flagSet accumulates website red flags in evaluation order.
type flagSet struct {
	score decimal.Decimal
	flags []model.RedFlag
}

func newFlagSet() *flagSet {
	return &flagSet{score: decimal.Zero, flags: make([]model.RedFlag, 0)}
}

func (f *flagSet) add(category valueobject.Category, weight decimal.Decimal, message string) {
	f.score = f.score.Add(weight)
	f.flags = append(f.flags, model.RedFlag{
		Category: category,
		Message:  message,
		Weight:   weight.InexactFloat64(),
	})
}

func (f *flagSet) result(mode valueobject.InputMode) model.WebsiteResult {
	score := decimal.Min(decimal.Max(f.score, decimal.Zero), rules.WebsiteScoreCeiling)
	return model.WebsiteResult{
		Score:    score.InexactFloat64(),
		Band:     valueobject.RiskBandFromScore(score),
		Mode:     mode,
		RedFlags: f.flags,
	}
}

// WebsiteScorer rates a URL or a page's markup for scam and safety risks.
// Only the literal input is inspected; nothing is fetched.
type WebsiteScorer struct{}

// NewWebsiteScorer creates a new WebsiteScorer instance.
func NewWebsiteScorer() *WebsiteScorer {
	return &WebsiteScorer{}
}

// LooksLikeURL reports whether input should take the URL path.
func LooksLikeURL(input string) bool {
	input = strings.TrimSpace(input)
	return rules.SchemePattern.MatchString(input) ||
		rules.BareDomainPattern.MatchString(strings.ToLower(input))
}

// Analyze dispatches on input shape. Blank input scores zero with no flags.
func (s *WebsiteScorer) Analyze(input string) model.WebsiteResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return newFlagSet().result(valueobject.InputModeMarkup)
	}
	if LooksLikeURL(input) {
		return s.AnalyzeURL(input)
	}
	return s.AnalyzeMarkup(input)
}

// AnalyzeURL inspects the scheme and host of raw. A missing scheme defaults
// to https. An unparseable URL yields a single URL Format flag.
func (s *WebsiteScorer) AnalyzeURL(raw string) model.WebsiteResult {
	f := newFlagSet()

	candidate := strings.TrimSpace(raw)
	if !rules.SchemePattern.MatchString(candidate) {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		f.add(valueobject.CategoryURLFormat, rules.WeightMalformedURL, "The address could not be parsed as a valid URL")
		return f.result(valueobject.InputModeURL)
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	labels := strings.Split(strings.TrimPrefix(host, "www."), ".")
	first := labels[0]
	tld := labels[len(labels)-1]

	// Rule: plain HTTP.
	if strings.EqualFold(u.Scheme, "http") {
		f.add(valueobject.CategorySecurity, rules.WeightInsecureScheme, "Uses HTTP instead of HTTPS, so traffic is not encrypted")
	}

	// Rule: abused top-level domain.
	if _, ok := rules.SuspiciousTLDs[tld]; ok && len(labels) > 1 {
		f.add(valueobject.CategoryDomain, rules.WeightSuspiciousTLD,
			fmt.Sprintf("Uses the .%s top-level domain, common on throwaway scam sites", tld))
	}

	// Rule: lookalike brand names. Every brand is checked independently.
	for _, brand := range rules.LookalikeBrands {
		d := Levenshtein(first, brand)
		if d > 0 && d <= rules.MaxLookalikeDistance && len(first) > rules.MinLookalikeLabelLength {
			f.add(valueobject.CategoryDomain, rules.WeightLookalikeDomain,
				fmt.Sprintf("Domain %q closely resembles %q", first, brand))
		}
		if strings.Contains(first, "0") && strings.Contains(strings.ReplaceAll(first, "0", "o"), brand) {
			f.add(valueobject.CategoryDomain, rules.WeightDigitSubstitution,
				fmt.Sprintf("Domain %q swaps letters for digits to imitate %q", first, brand))
		}
	}

	// Rule: login-style subdomain on a deeper host.
	if len(labels) > 2 && rules.SuspiciousSubdomainPattern.MatchString(first) {
		f.add(valueobject.CategoryDomain, rules.WeightSuspiciousSubdomain,
			fmt.Sprintf("Subdomain %q imitates a login or security page", first))
	}

	return f.result(valueobject.InputModeURL)
}

// AnalyzeMarkup runs the content checks over lower-cased page markup or text.
func (s *WebsiteScorer) AnalyzeMarkup(markup string) model.WebsiteResult {
	f := newFlagSet()
	lower := strings.ToLower(markup)

	if !rules.ContactPattern.MatchString(lower) {
		f.add(valueobject.CategoryContactInfo, rules.WeightNoContact, "No contact information such as an email, phone number, or contact page")
	}
	if !rules.PrivacyPolicyPattern.MatchString(lower) {
		f.add(valueobject.CategoryPolicies, rules.WeightNoPrivacyPolicy, "No privacy policy found")
	}
	if !rules.RefundTermsPattern.MatchString(lower) {
		f.add(valueobject.CategoryPolicies, rules.WeightNoRefundTerms, "No refund policy or terms of service found")
	}
	if hits := rules.UnusualPaymentPhrases.Find(lower); len(hits) > 0 {
		f.add(valueobject.CategoryPayment, rules.WeightUnusualPayment,
			fmt.Sprintf("Pushes hard-to-reverse payment methods: %q", hits[0]))
	}

	for _, m := range rules.DiscountPattern.FindAllStringSubmatch(lower, -1) {
		pct, err := strconv.Atoi(m[1])
		if err != nil || pct < rules.DeepDiscountPercent {
			continue
		}
		f.add(valueobject.CategoryPricing, rules.WeightDeepDiscount, fmt.Sprintf("Unrealistic discount of %d%% off", pct))
	}

	applyPhraseRule(f, rules.ContentQualityRule, lower)
	applyPhraseRule(f, rules.UrgencyContentRule, lower)

	switch {
	case !rules.AboutPattern.MatchString(lower):
		f.add(valueobject.CategoryContent, rules.WeightMissingAbout, "No About Us information")
	case !rules.AboutDetailsPattern.MatchString(lower):
		f.add(valueobject.CategoryContent, rules.WeightVagueAbout, "About Us section gives no company history or team")
	}
	if !rules.BusinessDetailsPattern.MatchString(lower) {
		f.add(valueobject.CategoryContent, rules.WeightNoBusinessDetails, "No street address or company registration details")
	}
	if rules.PopupScriptPattern.MatchString(lower) {
		f.add(valueobject.CategoryScripts, rules.WeightPopupScripts, "Uses pop-ups or alert scripts")
	}

	for _, rule := range rules.ThreatRules {
		applyPhraseRule(f, rule, lower)

		switch rule.Category {
		case valueobject.CategoryMalwareRisk:
			if m := rules.ExecutablePattern.FindStringSubmatch(lower); m != nil {
				f.add(valueobject.CategoryMalwareRisk, rules.WeightExecutableDownload,
					fmt.Sprintf("Offers an executable download: %q", "."+m[1]))
			}
			if n := len(rules.ExternalLinkPattern.FindAllStringIndex(lower, -1)); n > rules.MaxExternalLinks {
				f.add(valueobject.CategoryMalwareRisk, rules.WeightManyExternalLinks,
					fmt.Sprintf("Links out to %d external pages", n))
			}
		case valueobject.CategoryPrivacyRisk:
			if rules.PasswordFieldPattern.MatchString(lower) &&
				!(strings.Contains(lower, "https") && strings.Contains(lower, "secure")) {
				f.add(valueobject.CategoryPrivacyRisk, rules.WeightInsecurePassword,
					"Password form without any sign of a secure connection")
			}
		}
	}

	return f.result(valueobject.InputModeMarkup)
}

func applyPhraseRule(f *flagSet, rule rules.PhraseRule, lower string) {
	hits := rule.Phrases.Find(lower)
	if len(hits) == 0 {
		return
	}
	if rule.Flat {
		f.add(rule.Category, rule.Weight, fmt.Sprintf(rule.Reason, hits[0]))
		return
	}
	for _, h := range hits {
		f.add(rule.Category, rule.Weight, fmt.Sprintf(rule.Reason, h))
	}
}
