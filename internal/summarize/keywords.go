package summarize

// Domain keyword sets for the keyword_density feature. Process-lifetime
// configuration, keyed by the domain name passed at construction. Unknown
// domains fall back to "general".
var domainKeywords = map[string]map[string]bool{
	"general": toSet([]string{
		"company", "business", "market", "growth", "revenue", "profit",
		"launch", "product", "service", "customer", "investor", "deal",
		"acquisition", "partnership", "expansion", "strategy", "industry",
		"announced", "report", "quarter",
	}),
	"technology": toSet([]string{
		"software", "platform", "cloud", "data", "ai", "security",
		"infrastructure", "startup", "app", "api", "users", "developer",
		"hardware", "chip", "network", "digital", "innovation", "patent",
	}),
	"finance": toSet([]string{
		"bank", "payment", "lending", "credit", "funding", "valuation",
		"ipo", "shares", "stock", "earnings", "margin", "capital",
		"investment", "interest", "regulatory", "fintech", "wallet",
	}),
	"healthcare": toSet([]string{
		"patient", "clinical", "trial", "drug", "treatment", "fda",
		"hospital", "medical", "device", "therapy", "diagnosis", "health",
		"pharma", "biotech", "approval",
	}),
}

// boilerplatePhrases reject sentences that are site chrome rather than
// article prose.
var boilerplatePhrases = []string{
	"click here",
	"subscribe",
	"sign up",
	"read more",
	"advertisement",
	"sponsored content",
	"all rights reserved",
	"terms of service",
	"privacy policy",
	"follow us",
	"cookie",
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// keywordsForDomain returns the keyword set for a domain, defaulting to
// "general" for unknown or empty domains.
func keywordsForDomain(domain string) map[string]bool {
	if set, ok := domainKeywords[domain]; ok {
		return set
	}
	return domainKeywords["general"]
}
