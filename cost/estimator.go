package cost

import (
	"fmt"
	"sort"
	"strings"
)

// Estimate is the cost summary for one plan document.
type Estimate struct {
	Services     []Service
	TotalMonthly float64
}

// Detect scans plan text for mentions of known services. A React or
// Next.js frontend with no detected hosting implies Vercel, since that
// is where such projects usually land.
func Detect(text string) []Service {
	lower := strings.ToLower(text)

	var found []Service
	seen := make(map[string]bool)
	for _, svc := range services {
		for _, kw := range svc.Keywords {
			if strings.Contains(lower, kw) {
				if !seen[svc.ID] {
					seen[svc.ID] = true
					found = append(found, svc)
				}
				break
			}
		}
	}

	hasHosting := false
	for _, svc := range found {
		if svc.Category == CategoryHosting {
			hasHosting = true
			break
		}
	}
	if !hasHosting && (strings.Contains(lower, "react") || strings.Contains(lower, "next.js") || strings.Contains(lower, "nextjs")) {
		for _, svc := range services {
			if svc.ID == "vercel" {
				found = append(found, svc)
				break
			}
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found
}

// EstimateCosts detects services in the text and totals their monthly
// prices.
func EstimateCosts(text string) *Estimate {
	detected := Detect(text)
	est := &Estimate{Services: detected}
	for _, svc := range detected {
		est.TotalMonthly += svc.MonthlyUSD
	}
	return est
}

// Markdown renders the estimate as a document section.
func (e *Estimate) Markdown() string {
	var b strings.Builder
	b.WriteString("## Estimated Monthly Costs\n\n")
	if len(e.Services) == 0 {
		b.WriteString("No paid services detected.\n")
		return b.String()
	}

	b.WriteString("| Service | Category | Monthly | Free Tier |\n")
	b.WriteString("|---------|----------|---------|-----------|\n")
	for _, svc := range e.Services {
		b.WriteString(fmt.Sprintf("| %s | %s | $%.2f | %s |\n",
			svc.Name, svc.Category, svc.MonthlyUSD, svc.FreeTier))
	}
	b.WriteString(fmt.Sprintf("\n**Estimated total: $%.2f/month**\n", e.TotalMonthly))

	wrote := false
	for _, svc := range e.Services {
		alts := Alternatives(svc.ID)
		if len(alts) == 0 {
			continue
		}
		if !wrote {
			b.WriteString("\n### Cheaper Alternatives\n\n")
			wrote = true
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", svc.Name, strings.Join(alts, ", ")))
	}
	return b.String()
}
