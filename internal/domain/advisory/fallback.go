package advisory

import (
	"fmt"
	"strings"
)

type replyKind int

const (
	replyScheme replyKind = iota
	replyMarket
	replyOfficer
	replyWeather
	replyCrop
	replyGeneric
)

var (
	schemeTerms  = []string{"scheme", "subsidy", "government", "yojana", "pm-kisan", "pm kisan", "benefit", "loan", "insurance", "പദ്ധതി", "സബ്സിഡി", "സർക്കാർ", "ഇൻഷുറൻസ്"}
	marketTerms  = []string{"price", "market", "mandi", "rates", "sell", "വില", "വിപണി", "ചന്ത"}
	officerTerms = []string{"officer", "expert", "consult", "contact", "krishi bhavan", "extension", "ഓഫീസർ", "കൃഷിഭവൻ", "വിദഗ്ധ"}
	weatherTerms = []string{"weather", "rain", "monsoon", "temperature", "forecast", "climate", "കാലാവസ്ഥ", "മഴ", "താപനില"}
)

// FallbackReply builds a network-free answer from keyword rules. Identical
// inputs always produce an identical reply.
func FallbackReply(message string, fc FarmerContext, language string) string {
	tpl := templatesFor(language)
	kind, crop := classify(message, fc.Crops())

	var body string
	switch kind {
	case replyScheme:
		body = schemeBody(tpl, fc)
	case replyMarket:
		body = marketBody(tpl, fc)
	case replyOfficer:
		body = officerBody(tpl, fc)
	case replyWeather:
		body = weatherBody(tpl, fc)
	case replyCrop:
		body = fmt.Sprintf(tpl.crop, crop)
	default:
		body = genericBody(tpl, fc)
	}

	parts := []string{body}
	if summary := contextSummary(tpl, fc); summary != "" {
		parts = append(parts, summary)
	}
	parts = append(parts, tpl.note)
	return strings.Join(parts, "\n\n")
}

func classify(message string, crops []string) (replyKind, string) {
	text := normalizeTerm(message)
	switch {
	case containsAny(text, schemeTerms):
		return replyScheme, ""
	case containsAny(text, marketTerms):
		return replyMarket, ""
	case containsAny(text, officerTerms):
		return replyOfficer, ""
	case containsAny(text, weatherTerms):
		return replyWeather, ""
	}
	for _, crop := range crops {
		if key := normalizeTerm(crop); key != "" && containsTerm(text, key) {
			return replyCrop, crop
		}
	}
	return replyGeneric, ""
}

func schemeBody(tpl replyTemplates, fc FarmerContext) string {
	if len(fc.Schemes) == 0 {
		return tpl.schemeNone
	}
	names := make([]string, 0, 3)
	for _, s := range head(fc.Schemes, 3) {
		names = append(names, s.Name)
	}
	return fmt.Sprintf(tpl.schemeSome, strings.Join(names, ", "))
}

func marketBody(tpl replyTemplates, fc FarmerContext) string {
	crops := fc.Crops()
	if len(crops) == 0 {
		return tpl.marketNone
	}
	return fmt.Sprintf(tpl.marketSome, strings.Join(crops, ", "))
}

func officerBody(tpl replyTemplates, fc FarmerContext) string {
	if len(fc.Officers) == 0 {
		return tpl.officerNone
	}
	lines := make([]string, 0, 3)
	for _, off := range head(fc.Officers, 3) {
		lines = append(lines, fmt.Sprintf("- %s, %s (%s)", off.Name, off.Designation, off.Phone))
	}
	return tpl.officerSome + "\n" + strings.Join(lines, "\n")
}

func weatherBody(tpl replyTemplates, fc FarmerContext) string {
	if fc.Farmer != nil && fc.Farmer.District != "" {
		return fmt.Sprintf(tpl.weatherSome, fc.Farmer.District)
	}
	return tpl.weatherNone
}

func genericBody(tpl replyTemplates, fc FarmerContext) string {
	if fc.Farmer != nil && fc.Farmer.Name != "" {
		return fmt.Sprintf(tpl.greetingNamed, fc.Farmer.Name)
	}
	return tpl.greeting
}

func contextSummary(tpl replyTemplates, fc FarmerContext) string {
	var parts []string
	if len(fc.Farms) > 0 {
		names := make([]string, 0, len(fc.Farms))
		for _, farm := range fc.Farms {
			names = append(names, farm.Name)
		}
		parts = append(parts, fmt.Sprintf(tpl.farms, len(fc.Farms), strings.Join(names, ", ")))
	}
	if len(fc.Activities) > 0 {
		latest := fc.Activities[0]
		parts = append(parts, fmt.Sprintf(tpl.activity, latest.Type, latest.Date.Format("2006-01-02")))
	}
	return strings.Join(parts, " ")
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if containsTerm(text, term) {
			return true
		}
	}
	return false
}

// wordSuffixes are the inflections accepted after an ASCII term, so "rains"
// and "prices" match while "grain" and "training" do not.
var wordSuffixes = []string{"", "s", "es", "ed", "ing", "y"}

// containsTerm matches ASCII terms at word boundaries. Terms in other
// scripts match as substrings since they attach suffixes without a break.
func containsTerm(text, term string) bool {
	if !isASCII(term) {
		return strings.Contains(text, term)
	}
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx == -1 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if !wordByteBefore(text, start) && suffixBoundary(text[end:]) {
			return true
		}
		offset = start + 1
	}
	return false
}

func suffixBoundary(rest string) bool {
	for _, suffix := range wordSuffixes {
		if strings.HasPrefix(rest, suffix) && !wordByteAt(rest, len(suffix)) {
			return true
		}
	}
	return false
}

func wordByteBefore(text string, i int) bool {
	return i > 0 && isWordByte(text[i-1])
}

func wordByteAt(text string, i int) bool {
	return i < len(text) && isWordByte(text[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b >= 0x80
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type replyTemplates struct {
	schemeSome    string
	schemeNone    string
	marketSome    string
	marketNone    string
	officerSome   string
	officerNone   string
	weatherSome   string
	weatherNone   string
	crop          string
	greeting      string
	greetingNamed string
	farms         string
	activity      string
	note          string
}

var englishTemplates = replyTemplates{
	schemeSome:    "These government schemes match your location: %s. Visit your nearest Krishi Bhavan with your land records and Aadhaar to apply.",
	schemeNone:    "National schemes such as PM-KISAN, PM Fasal Bima Yojana and the Kisan Credit Card are open to most farmers. Your Krishi Bhavan can confirm eligibility.",
	marketSome:    "Mandi prices change daily. Check the market prices section for today's rates for %s before you sell, and compare nearby markets.",
	marketNone:    "Mandi prices change daily. Check the market prices section for today's rates and compare nearby markets before you sell.",
	officerSome:   "You can reach these extension officers near you:",
	officerNone:   "Your local Krishi Bhavan can put you in touch with an agricultural extension officer.",
	weatherSome:   "Check the weather forecast section for %s before irrigating, spraying or harvesting.",
	weatherNone:   "Check the weather forecast section for your district before irrigating, spraying or harvesting.",
	crop:          "For your %s crop, follow the recommended fertilizer schedule, watch for pests every week and keep records of every spray and irrigation.",
	greeting:      "Namaste! I am your farming assistant. Ask me about crops, pests, market prices, weather or government schemes.",
	greetingNamed: "Namaste %s! I am your farming assistant. Ask me about crops, pests, market prices, weather or government schemes.",
	farms:         "You have %d farm(s) registered: %s.",
	activity:      "Your latest recorded activity was %s on %s.",
	note:          "Note: this is a simplified automatic reply because the AI advisor is unavailable right now.",
}

var malayalamTemplates = replyTemplates{
	schemeSome:    "നിങ്ങളുടെ പ്രദേശത്തിന് അനുയോജ്യമായ സർക്കാർ പദ്ധതികൾ: %s. അപേക്ഷിക്കാൻ ഭൂരേഖകളും ആധാറുമായി അടുത്തുള്ള കൃഷിഭവൻ സന്ദർശിക്കുക.",
	schemeNone:    "PM-KISAN, പ്രധാനമന്ത്രി ഫസൽ ബീമാ യോജന, കിസാൻ ക്രെഡിറ്റ് കാർഡ് തുടങ്ങിയ ദേശീയ പദ്ധതികൾ മിക്ക കർഷകർക്കും ലഭ്യമാണ്. യോഗ്യത കൃഷിഭവനിൽ ഉറപ്പാക്കുക.",
	marketSome:    "ചന്ത വിലകൾ ദിവസേന മാറും. %s വിൽക്കുന്നതിന് മുമ്പ് വിപണി വില വിഭാഗത്തിൽ ഇന്നത്തെ നിരക്ക് പരിശോധിക്കുക.",
	marketNone:    "ചന്ത വിലകൾ ദിവസേന മാറും. വിൽക്കുന്നതിന് മുമ്പ് വിപണി വില വിഭാഗത്തിൽ ഇന്നത്തെ നിരക്ക് പരിശോധിക്കുക.",
	officerSome:   "നിങ്ങളുടെ അടുത്തുള്ള കൃഷി ഓഫീസർമാർ:",
	officerNone:   "കൃഷി ഓഫീസറെ ബന്ധപ്പെടാൻ അടുത്തുള്ള കൃഷിഭവൻ സന്ദർശിക്കുക.",
	weatherSome:   "ജലസേചനം, തളിക്കൽ, വിളവെടുപ്പ് എന്നിവയ്ക്ക് മുമ്പ് %s ജില്ലയുടെ കാലാവസ്ഥാ പ്രവചനം പരിശോധിക്കുക.",
	weatherNone:   "ജലസേചനം, തളിക്കൽ, വിളവെടുപ്പ് എന്നിവയ്ക്ക് മുമ്പ് നിങ്ങളുടെ ജില്ലയുടെ കാലാവസ്ഥാ പ്രവചനം പരിശോധിക്കുക.",
	crop:          "നിങ്ങളുടെ %s കൃഷിക്ക് ശുപാർശ ചെയ്ത വളപ്രയോഗം പാലിക്കുക, ആഴ്ചതോറും കീടങ്ങളെ നിരീക്ഷിക്കുക.",
	greeting:      "നമസ്കാരം! ഞാൻ നിങ്ങളുടെ കൃഷി സഹായിയാണ്. വിളകൾ, കീടങ്ങൾ, വിപണി വില, കാലാവസ്ഥ, സർക്കാർ പദ്ധതികൾ എന്നിവയെക്കുറിച്ച് ചോദിക്കാം.",
	greetingNamed: "നമസ്കാരം %s! ഞാൻ നിങ്ങളുടെ കൃഷി സഹായിയാണ്. വിളകൾ, കീടങ്ങൾ, വിപണി വില, കാലാവസ്ഥ, സർക്കാർ പദ്ധതികൾ എന്നിവയെക്കുറിച്ച് ചോദിക്കാം.",
	farms:         "നിങ്ങൾക്ക് %d കൃഷിയിടങ്ങൾ രജിസ്റ്റർ ചെയ്തിട്ടുണ്ട്: %s.",
	activity:      "അവസാനം രേഖപ്പെടുത്തിയ പ്രവർത്തനം: %s (%s).",
	note:          "ശ്രദ്ധിക്കുക: AI ഉപദേശകൻ ഇപ്പോൾ ലഭ്യമല്ലാത്തതിനാൽ ഇത് ലളിതമായ സ്വയംപ്രവർത്തിത മറുപടിയാണ്.",
}

func templatesFor(language string) replyTemplates {
	if normalizeTerm(language) == "ml" {
		return malayalamTemplates
	}
	return englishTemplates
}
