package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordFilter(t *testing.T) {
	f := NewWordFilter()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"positive caption", "Great day at the beach!", true},
		{"banned word", "feeling negative today", false},
		{"banned word uppercase", "NEGATIVE vibes", false},
		{"banned word inside markup", "so <b>negative</b> right now", false},
		{"empty text", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsPositive(tt.text))
		})
	}
}

func TestWordFilterCustomWords(t *testing.T) {
	f := NewWordFilter("gloomy", "rain")
	assert.False(t, f.IsPositive("such a gloomy morning"))
	assert.False(t, f.IsPositive("Rain again"))
	assert.True(t, f.IsPositive("feeling negative")) // default list replaced
}

func TestFuncAdapter(t *testing.T) {
	always := Func(func(string) bool { return true })
	assert.True(t, always.IsPositive("anything"))
}
