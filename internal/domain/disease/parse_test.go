package disease

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInsight(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Insight
	}{
		{
			name:    "both markers",
			content: "Blast is a fungal disease.\nTREATMENT: Spray tricyclazole.\nPREVENTION: Use resistant varieties.",
			want:    Insight{Description: "Blast is a fungal disease.", Treatment: "Spray tricyclazole.", Prevention: "Use resistant varieties."},
		},
		{
			name:    "no markers",
			content: "  Leaf spot seen on older leaves.  ",
			want:    Insight{Description: "Leaf spot seen on older leaves."},
		},
		{
			name:    "treatment only",
			content: "Wilt.\nTreatment: Drench with copper oxychloride.",
			want:    Insight{Description: "Wilt.", Treatment: "Drench with copper oxychloride."},
		},
		{
			name:    "prevention only",
			content: "Rust.\nprevention: Avoid late sowing.",
			want:    Insight{Description: "Rust.", Prevention: "Avoid late sowing."},
		},
		{
			name:    "description label stripped",
			content: "DESCRIPTION: Sheath blight.\nTREATMENT: Hexaconazole.\nPREVENTION: Wider spacing.",
			want:    Insight{Description: "Sheath blight.", Treatment: "Hexaconazole.", Prevention: "Wider spacing."},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseInsight(tc.content))
		})
	}
}
