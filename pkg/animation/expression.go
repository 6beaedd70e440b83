package animation

// Channel names a facial expression blend shape (VRM preset names).
type Channel string

const (
	ChannelFun     Channel = "Fun"
	ChannelAngry   Channel = "Angry"
	ChannelSorrow  Channel = "Sorrow"
	ChannelNeutral Channel = "Neutral"
)

// Channels lists every expression channel in a stable order.
var Channels = []Channel{ChannelFun, ChannelAngry, ChannelSorrow, ChannelNeutral}

var expressionTable = map[string]Channel{
	EmotionHappy:   ChannelFun,
	EmotionAngry:   ChannelAngry,
	EmotionSad:     ChannelSorrow,
	EmotionNeutral: ChannelNeutral,
}

// Weights maps each expression channel to its weight.
type Weights map[Channel]float64

// Active returns the non-zero channel, if any.
func (w Weights) Active() (Channel, bool) {
	for _, ch := range Channels {
		if w[ch] != 0 {
			return ch, true
		}
	}
	return "", false
}

// ChannelFor returns the channel for an emotion label. Unknown labels map to
// Neutral.
func ChannelFor(label string) Channel {
	if ch, ok := expressionTable[label]; ok {
		return ch
	}
	return ChannelNeutral
}

// SelectExpression zeroes every channel and sets the one for label to weight.
func SelectExpression(label string, weight float64) Weights {
	w := make(Weights, len(Channels))
	for _, ch := range Channels {
		w[ch] = 0
	}
	w[ChannelFor(label)] = weight
	return w
}
