package video

import "strings"

// keywordRule maps a lowercase prompt substring to a result. Rules are
// evaluated in order; the first match wins.
type keywordRule struct {
	Keyword string
	Result  string
}

// narrativeRules maps prompt keywords to narrative elements used for subtitle
// selection. Character keywords come before scene keywords so a prompt like
// "wake up as a pirate" resolves to the maritime element, not the awakening one.
var narrativeRules = []keywordRule{
	{Keyword: "pirate", Result: "maritime adventure"},
	{Keyword: "knight", Result: "medieval valor"},
	{Keyword: "castle", Result: "fortress stronghold"},
	{Keyword: "pharaoh", Result: "ancient majesty"},
	{Keyword: "viking", Result: "nordic expedition"},
	{Keyword: "gunslinger", Result: "frontier tension"},
	{Keyword: "storm", Result: "tempestuous weather"},
	{Keyword: "wake up", Result: "awakening"},
}

const defaultNarrativeElement = "historical immersion"

// subtitleSentences maps each narrative element to its fixed subtitle line.
var subtitleSentences = map[string]string{
	"awakening":           "You slowly open your eyes...",
	"maritime adventure":  "The ship creaks beneath you...",
	"tempestuous weather": "Thunder roars in the distance...",
	"medieval valor":      "Honor calls to you...",
	"fortress stronghold": "Stone walls echo with history...",
	"ancient majesty":     "The gods watch over you...",
	"nordic expedition":   "The sea beckons your journey...",
	"frontier tension":    "Danger lurks in every shadow...",
	"historical immersion": "You are transported through time...",
}

const defaultSubtitle = "Your journey begins..."

// NarrativeElement extracts the dominant narrative element from a prompt.
func NarrativeElement(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, rule := range narrativeRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Result
		}
	}
	return defaultNarrativeElement
}

// SubtitleFor derives the subtitle sentence for a prompt.
func SubtitleFor(prompt string) string {
	if s, ok := subtitleSentences[NarrativeElement(prompt)]; ok {
		return s
	}
	return defaultSubtitle
}

// periodRules maps prompt keywords to historical period labels.
var periodRules = []keywordRule{
	{Keyword: "pirate", Result: "Golden Age of Piracy (1650-1730)"},
	{Keyword: "knight", Result: "Medieval Period (500-1500)"},
	{Keyword: "viking", Result: "Viking Age (793-1066)"},
	{Keyword: "pharaoh", Result: "Ancient Egypt (3100-30 BC)"},
	{Keyword: "gladiator", Result: "Roman Empire (27 BC-476 AD)"},
	{Keyword: "gunslinger", Result: "American Old West (1800s)"},
	{Keyword: "samurai", Result: "Feudal Japan (1185-1868)"},
	{Keyword: "crusader", Result: "Crusades Era (1095-1291)"},
}

const defaultPeriod = "Historical Period"

// HistoricalPeriod extracts the historical period label from a prompt.
func HistoricalPeriod(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, rule := range periodRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Result
		}
	}
	return defaultPeriod
}

// Theme is a gradient color scheme applied to placeholder thumbnails.
type Theme struct {
	Name   string
	Colors [3]string
}

type themeRule struct {
	Keywords []string
	Theme    Theme
}

// themeRules maps prompt keywords to thumbnail gradient themes, first match wins.
var themeRules = []themeRule{
	{Keywords: []string{"pirate", "ship"}, Theme: Theme{Name: "ocean", Colors: [3]string{"1e3a8a", "1e40af", "1f2937"}}},
	{Keywords: []string{"medieval", "castle"}, Theme: Theme{Name: "stone", Colors: [3]string{"374151", "4b5563", "1f2937"}}},
	{Keywords: []string{"egypt", "pharaoh"}, Theme: Theme{Name: "desert", Colors: [3]string{"f59e0b", "d97706", "92400e"}}},
	{Keywords: []string{"viking", "longship"}, Theme: Theme{Name: "fjord", Colors: [3]string{"6b7280", "4b5563", "374151"}}},
}

var defaultTheme = Theme{Name: "twilight", Colors: [3]string{"4c1d95", "5b21b6", "1f2937"}}

// ThemeFor picks the gradient theme for a prompt.
func ThemeFor(prompt string) Theme {
	lower := strings.ToLower(prompt)
	for _, rule := range themeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Theme
			}
		}
	}
	return defaultTheme
}
