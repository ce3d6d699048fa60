package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountValue_Set(t *testing.T) {
	tests := []struct {
		in    string
		ml    int
		label string
	}{
		{"small", 200, "Small cup"},
		{"Medium", 350, "Medium cup"},
		{"large", 500, "Large"},
		{" bottle ", 750, "Bottle"},
		{"300", 300, "Custom"},
		{"250ml", 250, "Custom"},
		{"500", 500, "Large"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v amountValue
			require.NoError(t, v.Set(tt.in))
			assert.Equal(t, tt.ml, v.ml)
			assert.Equal(t, tt.label, v.label)
		})
	}
}

func TestAmountValue_Rejects(t *testing.T) {
	for _, in := range []string{"", "cup", "0", "-5", "1.5"} {
		var v amountValue
		assert.Error(t, v.Set(in), "input %q", in)
	}
}

func TestAmountValue_Type(t *testing.T) {
	var v amountValue
	assert.Equal(t, "size", v.Type())
	assert.Equal(t, "", v.String())
	require.NoError(t, v.Set("medium"))
	assert.Equal(t, "350", v.String())
}
