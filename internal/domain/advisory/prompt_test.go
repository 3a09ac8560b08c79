package advisory

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

func TestBuildPromptSectionOrder(t *testing.T) {
	store := sampleStore()
	fc := FarmerContext{
		Farmer:     store.farmer,
		Farms:      store.farms,
		Activities: store.activities,
		Recommendations: []agri.Recommendation{
			{Title: "Apply potash", Description: "Split dose"},
		},
		Schemes:  store.schemes,
		Officers: store.officers,
	}
	history := []agri.ConversationTurn{{Role: "user", Content: "hello"}, {Role: "assistant", Content: "hi"}}

	prompt := BuildPrompt("When should I harvest?", fc, "ml", history)

	markers := []string{
		"You are Krishi Sakhi",
		"Respond in Malayalam.",
		"FARMER PROFILE:",
		"FARMS:",
		"RECENT ACTIVITIES",
		"PREVIOUS RECOMMENDATIONS:",
		"RELEVANT GOVERNMENT SCHEMES:",
		"NEARBY EXTENSION OFFICERS:",
		"CONVERSATION SO FAR:",
		"INSTRUCTIONS:",
		"QUESTION: When should I harvest?",
	}
	last := -1
	for _, marker := range markers {
		idx := strings.Index(prompt, marker)
		require.Greater(t, idx, last, "marker %q out of order", marker)
		last = idx
	}
	require.True(t, strings.HasSuffix(prompt, "QUESTION: When should I harvest?"))
}

func TestBuildPromptLimits(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var fc FarmerContext
	for i := 0; i < 15; i++ {
		fc.Activities = append(fc.Activities, agri.Activity{Type: fmt.Sprintf("activity-%02d", i), Date: day})
	}
	for i := 0; i < 10; i++ {
		fc.Recommendations = append(fc.Recommendations, agri.Recommendation{Title: fmt.Sprintf("rec-%02d", i), Description: strings.Repeat("r", 150)})
		fc.Schemes = append(fc.Schemes, agri.Scheme{Name: fmt.Sprintf("scheme-%02d", i), Description: strings.Repeat("s", 120)})
	}
	for i := 0; i < 5; i++ {
		fc.Officers = append(fc.Officers, agri.Officer{Name: fmt.Sprintf("officer-%02d", i)})
	}
	var history []agri.ConversationTurn
	for i := 0; i < 10; i++ {
		history = append(history, agri.ConversationTurn{Role: "user", Content: fmt.Sprintf("turn-%02d %s", i, strings.Repeat("h", 200))})
	}

	prompt := BuildPrompt("q", fc, "en", history)

	require.Contains(t, prompt, "activity-07")
	require.NotContains(t, prompt, "activity-08")
	require.Contains(t, prompt, "rec-04")
	require.NotContains(t, prompt, "rec-05")
	require.Contains(t, prompt, "rec-00: "+strings.Repeat("r", 100)+"\n")
	require.Contains(t, prompt, "scheme-05")
	require.NotContains(t, prompt, "scheme-06")
	require.Contains(t, prompt, "scheme-00: "+strings.Repeat("s", 80)+"\n")
	require.Contains(t, prompt, "officer-02")
	require.NotContains(t, prompt, "officer-03")
	require.NotContains(t, prompt, "turn-03")
	require.Contains(t, prompt, "turn-04")
	require.Contains(t, prompt, "turn-09")

	want := []rune("turn-09 " + strings.Repeat("h", 200))[:150]
	require.Contains(t, prompt, "Farmer: "+string(want)+"\n")
}

func TestTruncateCountsCharacters(t *testing.T) {
	text := strings.Repeat("ക", 120)
	require.Equal(t, strings.Repeat("ക", 100), truncate(text, 100))
	require.Equal(t, "short", truncate("short", 100))
}

func TestBuildPromptIsPure(t *testing.T) {
	fc := FarmerContext{Farmer: sampleStore().farmer}
	require.Equal(t, BuildPrompt("q", fc, "en", nil), BuildPrompt("q", fc, "en", nil))
}

func TestBuildPromptWithoutProfile(t *testing.T) {
	prompt := BuildPrompt("q", FarmerContext{}, "", nil)
	require.Contains(t, prompt, "Respond in English.")
	require.Contains(t, prompt, "FARMER PROFILE:\n- not available")
	require.NotContains(t, prompt, "FARMS:")
}

func TestBuildSchemePrompt(t *testing.T) {
	store := sampleStore()
	prompt := BuildSchemePrompt(FarmerContext{Farmer: store.farmer, Schemes: store.schemes}, "en")
	require.Contains(t, prompt, "Kerala Paddy Support (Kerala)")
	require.Contains(t, prompt, "PM-KISAN (All India)")
}
