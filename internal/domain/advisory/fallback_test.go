package advisory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackReplyPrecedence(t *testing.T) {
	store := sampleStore()
	fc := FarmerContext{
		Farmer:   store.farmer,
		Farms:    store.farms,
		Schemes:  store.schemes,
		Officers: store.officers,
	}

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "scheme beats market", message: "Any subsidy on rice price?", want: "Kerala Paddy Support, PM-KISAN"},
		{name: "market", message: "What is the mandi price today?", want: "today's rates for Rice, Banana, Pepper"},
		{name: "officer", message: "I want to contact an officer", want: "Anil Nair, Agricultural Officer (+91 7076984056)"},
		{name: "weather", message: "Will it rain this week?", want: "forecast section for Ernakulam"},
		{name: "crop from farm", message: "My pepper leaves are yellow", want: "For your Pepper crop"},
		{name: "generic", message: "hello", want: "Namaste Ravi!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply := FallbackReply(tc.message, fc, "en")
			require.Contains(t, reply, tc.want)
			require.True(t, strings.HasSuffix(reply, englishTemplates.note))
		})
	}
}

func TestFallbackReplyMalayalam(t *testing.T) {
	reply := FallbackReply("മഴ എപ്പോൾ?", FarmerContext{}, "ml")
	require.Contains(t, reply, "കാലാവസ്ഥാ പ്രവചനം")
	require.True(t, strings.HasSuffix(reply, malayalamTemplates.note))
}

func TestFallbackReplyDeterministic(t *testing.T) {
	store := sampleStore()
	fc := FarmerContext{Farmer: store.farmer, Farms: store.farms, Activities: store.activities}
	first := FallbackReply("how do I improve yield?", fc, "en")
	require.Equal(t, first, FallbackReply("how do I improve yield?", fc, "en"))
	require.Contains(t, first, "You have 2 farm(s) registered: Paddy Field, River Plot.")
	require.Contains(t, first, "latest recorded activity was fertilizing on 2026-06-10")
}

func TestFallbackReplyWithoutContext(t *testing.T) {
	reply := FallbackReply("government scheme", FarmerContext{}, "")
	require.Contains(t, reply, "PM-KISAN")
	require.NotContains(t, reply, "farm(s) registered")
}

func TestFallbackReplyMatchesWholeWords(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		notWant string
	}{
		{name: "grain is not rain", message: "how should I dry and store my grain?", notWant: "forecast section"},
		{name: "drain is not rain", message: "my field does not drain well", notWant: "forecast section"},
		{name: "training is not rain", message: "is there any training nearby?", notWant: "forecast section"},
		{name: "plural still matches", message: "what are the prices today", want: "today's rates"},
		{name: "progressive still matches", message: "it keeps raining", want: "forecast section"},
	}
	store := sampleStore()
	fc := FarmerContext{Farmer: store.farmer, Farms: store.farms}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply := FallbackReply(tc.message, fc, "en")
			if tc.want != "" {
				require.Contains(t, reply, tc.want)
			}
			if tc.notWant != "" {
				require.NotContains(t, reply, tc.notWant)
			}
		})
	}
}

func TestContainsTerm(t *testing.T) {
	require.True(t, containsTerm("pm-kisan installment", "pm-kisan"))
	require.True(t, containsTerm("near krishi bhavan", "krishi bhavan"))
	require.False(t, containsTerm("terrain", "rain"))
	require.True(t, containsTerm("rain, then sun", "rain"))
	require.True(t, containsTerm("മഴയുണ്ടോ", "മഴ"))
}
