package advice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_BandsFromPrompt(t *testing.T) {
	tests := []struct {
		current, goal int
		want          string
	}{
		{0, 2000, StaticTip(0)},
		{200, 2000, StaticTip(10)},
		{1000, 2000, StaticTip(50)},
		{1700, 2000, StaticTip(85)},
		{2600, 2000, StaticTip(130)},
	}

	for _, tt := range tests {
		got, err := Static{}.Generate(context.Background(), BuildPrompt(tt.current, tt.goal, "English"))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "current=%d goal=%d", tt.current, tt.goal)
	}
}

func TestStaticTip_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, pct := range []int{0, 10, 50, 80, 100} {
		seen[StaticTip(pct)] = true
	}
	assert.Len(t, seen, 5)
}
