package disease

import "strings"

const (
	treatmentMarker  = "TREATMENT:"
	preventionMarker = "PREVENTION:"
)

// ParseInsight splits model output into description, treatment and
// prevention. A missing marker leaves the remaining text in the earlier
// section.
func ParseInsight(content string) Insight {
	content = strings.TrimSpace(content)

	description := content
	var treatment, prevention string
	if idx := findMarker(description, treatmentMarker); idx != -1 {
		treatment = description[idx+len(treatmentMarker):]
		description = description[:idx]
	}

	if treatment != "" {
		if idx := findMarker(treatment, preventionMarker); idx != -1 {
			prevention = treatment[idx+len(preventionMarker):]
			treatment = treatment[:idx]
		}
	} else if idx := findMarker(description, preventionMarker); idx != -1 {
		prevention = description[idx+len(preventionMarker):]
		description = description[:idx]
	}

	return Insight{
		Description: cleanSection(description),
		Treatment:   cleanSection(treatment),
		Prevention:  cleanSection(prevention),
	}
}

// findMarker matches the marker in upper, title or lower case.
func findMarker(content, marker string) int {
	best := -1
	title := marker[:1] + strings.ToLower(marker[1:])
	for _, variant := range []string{marker, title, strings.ToLower(marker)} {
		if idx := strings.Index(content, variant); idx != -1 && (best == -1 || idx < best) {
			best = idx
		}
	}
	return best
}

func cleanSection(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "DESCRIPTION:")
	s = strings.TrimPrefix(s, "Description:")
	return strings.TrimSpace(s)
}
