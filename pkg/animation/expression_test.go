package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectExpression_Exclusive(t *testing.T) {
	tests := []struct {
		label string
		want  Channel
	}{
		{"happy", ChannelFun},
		{"angry", ChannelAngry},
		{"sad", ChannelSorrow},
		{"neutral", ChannelNeutral},
		{"surprise", ChannelNeutral},
		{"", ChannelNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			w := SelectExpression(tc.label, 0.7)
			require.Len(t, w, len(Channels))

			for _, ch := range Channels {
				if ch == tc.want {
					assert.Equal(t, 0.7, w[ch], ch)
				} else {
					assert.Zero(t, w[ch], ch)
				}
			}

			active, ok := w.Active()
			assert.True(t, ok)
			assert.Equal(t, tc.want, active)
		})
	}
}

func TestSelectExpression_ReplacesPrevious(t *testing.T) {
	first := SelectExpression("happy", 0.7)
	second := SelectExpression("sad", 0.7)

	assert.Equal(t, 0.7, first[ChannelFun], "first selection changed")
	assert.Zero(t, second[ChannelFun])
	assert.Equal(t, 0.7, second[ChannelSorrow])
}

func TestChannelFor(t *testing.T) {
	assert.Equal(t, ChannelFun, ChannelFor("happy"))
	// Labels are case sensitive.
	assert.Equal(t, ChannelNeutral, ChannelFor("HAPPY"))
}
