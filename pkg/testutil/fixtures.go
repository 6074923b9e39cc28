// Package testutil holds fixtures and helpers shared by scamalyst tests.
package testutil

import (
	"github.com/google/uuid"
)

// Fixed IDs for deterministic testing
var (
	TestAnalysisID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestAnalysisID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// Sample inputs exercising each analyzer.
const (
	PhishingMessage = "URGENT: Your account has been suspended. Click here to verify your password " +
		"immediately at https://bit.ly/verify-now or it will be closed."
	BenignMessage = "Hi Sam, are we still on for coffee tomorrow at 10? Let me know."

	AIParagraph = "In conclusion, the implementation of the system demonstrates several important " +
		"considerations. Furthermore, it is important to note that the results are consistent across " +
		"all of the evaluated scenarios. Additionally, the analysis indicates that the approach is " +
		"robust and reliable in practice."
	HumanParagraph = "ok so i missed the bus again lol. can't believe it!! you coming later?"

	LookalikeURL = "http://gooogle.com"
	CleanURL     = "https://www.example.com/about"

	ScamMarkup = "Limited time offer! 90% off everything. Bitcoin only. " +
		"<script>alert('hi')</script> Download setup.exe"
	LegitimateMarkup = `<html>
<a href="/contact">Contact</a> <a href="/privacy">Privacy Policy</a> <a href="/terms">Terms of Service</a>
<h2>About Us</h2><p>Founded in 1998, our team serves customers from 123 Main Street.</p>
</html>`
)
