package video

import "testing"

func TestSubtitlePirateWinsOverSceneKeywords(t *testing.T) {
	// character keyword precedes the wake-up and storm rules
	prompt := "You wake up as a pirate in 1700, stormy night"
	if el := NarrativeElement(prompt); el != "maritime adventure" {
		t.Fatalf("narrative element = %q, want maritime adventure", el)
	}
	if sub := SubtitleFor(prompt); sub != "The ship creaks beneath you..." {
		t.Fatalf("subtitle = %q, want the maritime sentence", sub)
	}
}

func TestSubtitleDefault(t *testing.T) {
	prompt := "A quiet afternoon"
	if el := NarrativeElement(prompt); el != "historical immersion" {
		t.Fatalf("narrative element = %q, want historical immersion", el)
	}
	if sub := SubtitleFor(prompt); sub != "You are transported through time..." {
		t.Fatalf("subtitle = %q, want the default sentence", sub)
	}
}

func TestSubtitleCaseInsensitive(t *testing.T) {
	if el := NarrativeElement("A KNIGHT rides at dawn"); el != "medieval valor" {
		t.Fatalf("narrative element = %q, want medieval valor", el)
	}
}

func TestHistoricalPeriod(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"You wake up as a pirate in 1700, stormy night", "Golden Age of Piracy (1650-1730)"},
		{"a knight guarding the keep", "Medieval Period (500-1500)"},
		{"VIKING raid at dawn", "Viking Age (793-1066)"},
		{"gladiator in the arena", "Roman Empire (27 BC-476 AD)"},
		{"A quiet afternoon", "Historical Period"},
	}
	for _, tc := range cases {
		if got := HistoricalPeriod(tc.prompt); got != tc.want {
			t.Fatalf("HistoricalPeriod(%q) = %q, want %q", tc.prompt, got, tc.want)
		}
	}
}

func TestThemeFor(t *testing.T) {
	if th := ThemeFor("a pirate ship at sea"); th.Name != "ocean" {
		t.Fatalf("theme = %q, want ocean", th.Name)
	}
	if th := ThemeFor("pharaoh of egypt"); th.Name != "desert" {
		t.Fatalf("theme = %q, want desert", th.Name)
	}
	if th := ThemeFor("a quiet afternoon"); th.Name != "twilight" {
		t.Fatalf("theme = %q, want the default theme", th.Name)
	}
}
