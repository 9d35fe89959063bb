package video

import (
	"strings"
	"testing"
)

func TestStageForCoversAllPercentages(t *testing.T) {
	for p := 0; p <= 100; p++ {
		if _, ok := StageFor(p); !ok {
			t.Fatalf("no stage for percentage %d", p)
		}
	}
	if _, ok := StageFor(-1); ok {
		t.Fatalf("expected no stage below 0")
	}
	if _, ok := StageFor(101); ok {
		t.Fatalf("expected no stage above 100")
	}
}

func TestStageForBoundaryPicksEarlierStage(t *testing.T) {
	// shared boundaries resolve to the stage scanned first
	cases := []struct {
		p    int
		want string
	}{
		{0, "Prompt Analysis"},
		{25, "Prompt Analysis"},
		{26, "Image Generation"},
		{50, "Image Generation"},
		{85, "Video Creation"},
		{95, "Subtitle Addition"},
		{100, "Finalization"},
	}
	for _, tc := range cases {
		st, ok := StageFor(tc.p)
		if !ok {
			t.Fatalf("no stage for %d", tc.p)
		}
		if st.Name != tc.want {
			t.Fatalf("StageFor(%d) = %q, want %q", tc.p, st.Name, tc.want)
		}
	}
}

func TestStagesAreContiguous(t *testing.T) {
	if Stages[0].Low != 0 {
		t.Fatalf("first stage starts at %d, want 0", Stages[0].Low)
	}
	if Stages[len(Stages)-1].High != 100 {
		t.Fatalf("last stage ends at %d, want 100", Stages[len(Stages)-1].High)
	}
	for i := 1; i < len(Stages); i++ {
		if Stages[i].Low != Stages[i-1].High {
			t.Fatalf("gap between %q and %q: %d != %d",
				Stages[i-1].Name, Stages[i].Name, Stages[i-1].High, Stages[i].Low)
		}
	}
}

func TestRemainingTime(t *testing.T) {
	cases := []struct {
		total, pct, want int
	}{
		{30, 0, 30},
		{30, 50, 15},
		{30, 100, 0},
		{60, 90, 6},
		{0, 50, 0},
	}
	for _, tc := range cases {
		if got := RemainingTime(tc.total, tc.pct); got != tc.want {
			t.Fatalf("RemainingTime(%d, %d) = %d, want %d", tc.total, tc.pct, got, tc.want)
		}
	}
}

func TestEstimateGenerationTime(t *testing.T) {
	if got := EstimateGenerationTime("a quiet afternoon"); got != 25 {
		t.Fatalf("plain prompt estimate = %d, want 25", got)
	}
	if got := EstimateGenerationTime("a STORM at sea"); got != 30 {
		t.Fatalf("one keyword estimate = %d, want 30", got)
	}
	// all keywords would be 25+35 = 60, right at the cap
	all := "storm battle crowd fire magic dragon army"
	if got := EstimateGenerationTime(all); got != 60 {
		t.Fatalf("all keywords estimate = %d, want 60", got)
	}
}

func TestEstimateGenerationTimeMonotonic(t *testing.T) {
	prompt := "a walk"
	prev := EstimateGenerationTime(prompt)
	for _, kw := range []string{"storm", "battle", "crowd", "fire", "magic", "dragon", "army"} {
		prompt += " " + kw
		got := EstimateGenerationTime(prompt)
		if got < prev {
			t.Fatalf("estimate decreased after adding %q: %d -> %d", kw, prev, got)
		}
		if got > 60 {
			t.Fatalf("estimate exceeds cap: %d", got)
		}
		prev = got
	}
}

func TestStageDescriptionsNonEmpty(t *testing.T) {
	for _, st := range Stages {
		if strings.TrimSpace(st.Description) == "" {
			t.Fatalf("stage %q has empty description", st.Name)
		}
	}
}
