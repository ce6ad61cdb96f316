package batch

import "strings"

// categoryKeywords drives the human-readable grouping in the daily
// nudge email. First match wins; it is a display heuristic, not a
// taxonomy.
var categoryKeywords = []struct {
	label    string
	keywords []string
}{
	{"Software Companies", []string{"software", "saas", "platform", "app"}},
	{"Retail & E-commerce", []string{"shop", "store", "commerce", "retail"}},
	{"Finance Companies", []string{"finance", "financial", "bank", "invest"}},
	{"Healthcare Companies", []string{"health", "medical", "clinic", "pharma"}},
	{"Agencies & Media", []string{"agency", "marketing", "media", "advertis"}},
}

// Categorize buckets a company by keywords in its description.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, cat := range categoryKeywords {
		for _, kw := range cat.keywords {
			if strings.Contains(desc, kw) {
				return cat.label
			}
		}
	}
	return "Other Companies"
}
