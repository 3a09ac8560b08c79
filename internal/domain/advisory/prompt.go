package advisory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

// Prompt limits. They bound prompt size and are applied in characters.
const (
	promptActivities          = 8
	promptRecommendations     = 5
	promptRecommendationChars = 100
	promptSchemes             = 6
	promptSchemeChars         = 80
	promptOfficers            = 3
	promptHistoryTurns        = 6
	promptHistoryChars        = 150
)

var languageNames = map[string]string{
	"en": "English",
	"ml": "Malayalam",
	"hi": "Hindi",
	"ta": "Tamil",
	"kn": "Kannada",
	"te": "Telugu",
	"mr": "Marathi",
	"bn": "Bengali",
}

// LanguageName maps a language code to the name used in prompts. Unknown
// codes fall back to English.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return "English"
}

// BuildPrompt renders the chat prompt. It is a pure function of its inputs.
func BuildPrompt(message string, fc FarmerContext, language string, history []agri.ConversationTurn) string {
	var b strings.Builder
	b.WriteString("You are Krishi Sakhi, an agricultural advisor for smallholder farmers in India. ")
	b.WriteString("Give practical, locally relevant advice grounded in the farmer's own records below.\n\n")
	fmt.Fprintf(&b, "Respond in %s.\n\n", LanguageName(language))

	writeProfile(&b, fc.Farmer)
	writeFarms(&b, fc.Farms)

	if acts := head(fc.Activities, promptActivities); len(acts) > 0 {
		b.WriteString("RECENT ACTIVITIES (newest first):\n")
		for _, act := range acts {
			fmt.Fprintf(&b, "- %s %s", act.Date.Format("2006-01-02"), act.Type)
			if act.Crop != "" {
				fmt.Fprintf(&b, " (%s)", act.Crop)
			}
			if act.Description != "" {
				fmt.Fprintf(&b, ": %s", act.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if recs := head(fc.Recommendations, promptRecommendations); len(recs) > 0 {
		b.WriteString("PREVIOUS RECOMMENDATIONS:\n")
		for _, rec := range recs {
			fmt.Fprintf(&b, "- %s: %s\n", rec.Title, truncate(rec.Description, promptRecommendationChars))
		}
		b.WriteString("\n")
	}

	if schemes := head(fc.Schemes, promptSchemes); len(schemes) > 0 {
		b.WriteString("RELEVANT GOVERNMENT SCHEMES:\n")
		for _, scheme := range schemes {
			fmt.Fprintf(&b, "- %s: %s\n", scheme.Name, truncate(scheme.Description, promptSchemeChars))
		}
		b.WriteString("\n")
	}

	if officers := head(fc.Officers, promptOfficers); len(officers) > 0 {
		b.WriteString("NEARBY EXTENSION OFFICERS:\n")
		for _, off := range officers {
			fmt.Fprintf(&b, "- %s, %s (%s), %s, %s\n", off.Name, off.Designation, off.Specialization, off.District, off.Phone)
		}
		b.WriteString("\n")
	}

	if turns := tail(history, promptHistoryTurns); len(turns) > 0 {
		b.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range turns {
			fmt.Fprintf(&b, "%s: %s\n", roleLabel(turn.Role), truncate(turn.Content, promptHistoryChars))
		}
		b.WriteString("\n")
	}

	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("- Use the farmer's crops, farms and recent activities when they are relevant.\n")
	b.WriteString("- Mention a scheme or officer above only when it helps with the question.\n")
	b.WriteString("- Keep the answer short, with concrete steps a farmer can follow.\n")
	b.WriteString("- If you are unsure, advise contacting the local Krishi Bhavan.\n\n")

	fmt.Fprintf(&b, "QUESTION: %s", strings.TrimSpace(message))
	return b.String()
}

// BuildSchemePrompt renders the scheme-lookup prompt.
func BuildSchemePrompt(fc FarmerContext, language string) string {
	var b strings.Builder
	b.WriteString("You are an expert on Indian government agricultural schemes. ")
	b.WriteString("Pick the schemes below that best fit this farmer and explain how to apply.\n\n")
	fmt.Fprintf(&b, "Respond in %s.\n\n", LanguageName(language))
	writeProfile(&b, fc.Farmer)
	writeFarms(&b, fc.Farms)

	b.WriteString("AVAILABLE SCHEMES:\n")
	if len(fc.Schemes) == 0 {
		b.WriteString("- none on record; suggest well known national schemes\n")
	}
	for _, scheme := range fc.Schemes {
		fmt.Fprintf(&b, "- %s (%s): %s", scheme.Name, scheme.State, truncate(scheme.Description, promptSchemeChars))
		if scheme.Eligibility != "" {
			fmt.Fprintf(&b, " Eligibility: %s", truncate(scheme.Eligibility, promptSchemeChars))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nList at most three schemes, each with its benefit and the first step to apply.")
	return b.String()
}

func writeProfile(b *strings.Builder, farmer *agri.FarmerProfile) {
	b.WriteString("FARMER PROFILE:\n")
	if farmer == nil {
		b.WriteString("- not available\n\n")
		return
	}
	fmt.Fprintf(b, "- Name: %s\n", farmer.Name)
	if loc := joinNonEmpty(", ", farmer.Village, farmer.District, farmer.State); loc != "" {
		fmt.Fprintf(b, "- Location: %s\n", loc)
	}
	if farmer.LandSizeAcres > 0 {
		fmt.Fprintf(b, "- Land: %s acres\n", formatAcres(farmer.LandSizeAcres))
	}
	if len(farmer.Crops) > 0 {
		fmt.Fprintf(b, "- Crops: %s\n", strings.Join(farmer.Crops, ", "))
	}
	b.WriteString("\n")
}

func writeFarms(b *strings.Builder, farms []agri.Farm) {
	if len(farms) == 0 {
		return
	}
	b.WriteString("FARMS:\n")
	for _, farm := range farms {
		fmt.Fprintf(b, "- %s: %s acres", farm.Name, formatAcres(farm.AreaAcres))
		if details := joinNonEmpty(", ", prefixed("soil ", farm.SoilType), prefixed("irrigation ", farm.IrrigationType), prefixed("growing ", farm.CurrentCrop), farm.Season); details != "" {
			fmt.Fprintf(b, " (%s)", details)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func roleLabel(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "assistant", "model", "bot":
		return "Advisor"
	default:
		return "Farmer"
	}
}

func formatAcres(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func prefixed(prefix, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return prefix + value
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// truncate cuts text to limit characters.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func tail[T any](items []T, n int) []T {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
