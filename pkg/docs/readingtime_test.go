package docs

import (
	"fmt"
	"strings"
	"testing"
)

func TestEstimateReadingTime(t *testing.T) {
	t.Run("Empty Content", func(t *testing.T) {
		if got := EstimateReadingTime(""); got != "1 min" {
			t.Errorf("got %q, want \"1 min\"", got)
		}
	})

	t.Run("Exactly 200 Words of Prose", func(t *testing.T) {
		text := strings.TrimSpace(strings.Repeat("word ", 200))
		if got := EstimateReadingTime(text); got != "1 min" {
			t.Errorf("got %q, want \"1 min\"", got)
		}
	})

	t.Run("Prose Uses Plural Form", func(t *testing.T) {
		text := strings.Repeat("word ", 500)
		if got := EstimateReadingTime(text); got != "3 mins" {
			t.Errorf("got %q, want \"3 mins\"", got)
		}
	})

	t.Run("Doubling Prose Roughly Doubles Minutes", func(t *testing.T) {
		single := minutesOf(t, strings.Repeat("word ", 1000))
		double := minutesOf(t, strings.Repeat("word ", 2000))
		if double < single {
			t.Errorf("monotonicity violated: %d then %d", single, double)
		}
		if double < 2*single-1 || double > 2*single+1 {
			t.Errorf("expected roughly double of %d, got %d", single, double)
		}
	})

	t.Run("Code Is Weighted Heavier Than Prose", func(t *testing.T) {
		prose := strings.Repeat("word ", 300)
		code := "```\n" + strings.Repeat("word ", 300) + "\n```"
		if minutesOf(t, code) <= minutesOf(t, prose) {
			t.Error("expected code to take longer than equal-length prose")
		}
	})
}

func minutesOf(t *testing.T, content string) int {
	t.Helper()
	got := EstimateReadingTime(content)
	var minutes int
	var unit string
	if _, err := fmt.Sscanf(got, "%d %s", &minutes, &unit); err != nil {
		t.Fatalf("unparseable estimate %q: %v", got, err)
	}
	return minutes
}
