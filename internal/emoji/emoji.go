// Package emoji extracts emotion signals from Unicode emoji. Emoji are a
// confirming signal layered on top of the classifier output: boosting never
// introduces labels the classifier did not already score.
package emoji

import "strings"

// emotionMap maps an emoji grapheme to its ordered candidate emotions,
// most specific first. Ambiguous emoji list every plausible emotion;
// Distribution splits their contribution with halving weights so the
// first-listed candidate dominates without silencing the rest.
var emotionMap = map[string][]string{
	// joy / happiness
	"😀": {"joy"}, "😁": {"joy"}, "😂": {"joy"}, "🤣": {"joy"},
	"😄": {"joy"}, "😆": {"joy"}, "😊": {"joy"}, "☺": {"joy"}, "🙂": {"joy"},
	"⭐": {"joy"}, "🌟": {"joy"}, "💫": {"joy"},
	"😃": {"joy", "excitement"},
	"🤗": {"joy", "caring"},
	"🥳": {"joy", "excitement"},
	"🎉": {"joy", "excitement"},
	"🎊": {"joy", "excitement"},
	"🎈": {"joy", "excitement"},
	"✨": {"joy"},

	// love / affection
	"🥰": {"love"}, "😘": {"love"}, "😗": {"love"}, "😙": {"love"},
	"😚": {"love"}, "❤": {"love"}, "🧡": {"love"}, "💛": {"love"},
	"💚": {"love"}, "💙": {"love"}, "💜": {"love"}, "🤎": {"love"},
	"🤍": {"love"}, "💕": {"love"}, "💞": {"love"}, "💓": {"love"},
	"💗": {"love"}, "💖": {"love"}, "💘": {"love"}, "💌": {"love"},
	"💋": {"love"}, "👄": {"love"}, "🫶": {"love"}, "❣": {"love"},
	"💑": {"love"}, "💏": {"love"},
	"😍": {"love", "desire"},
	"🖤": {"love", "grief"},
	"💝": {"love", "caring"},

	// gratitude / appreciation
	"🤲": {"gratitude"}, "🙌": {"gratitude"},
	"🙏": {"gratitude", "relief", "remorse"},
	"👏": {"gratitude", "approval"},

	// admiration / impressed
	"🌈": {"admiration"},
	"😮": {"admiration", "surprise"},
	"😯": {"admiration", "surprise"},
	"😲": {"admiration", "surprise"},
	"🤩": {"admiration", "excitement", "desire"},
	"🔥": {"admiration", "excitement", "anger"},
	"💯": {"admiration", "approval"},
	"👌": {"admiration", "approval"},
	"👍": {"admiration", "approval"},
	"🏆": {"admiration", "pride"},
	"🥇": {"admiration", "pride"},
	"🎖": {"admiration", "pride"},

	// excitement / enthusiasm
	"🚀": {"excitement"},
	"💥": {"excitement", "anger", "surprise"},
	"⚡": {"excitement", "anger", "surprise"},

	// optimism / hope
	"🤞": {"optimism"}, "🌅": {"optimism"}, "🌄": {"optimism"},
	"☀": {"optimism"}, "🌻": {"optimism"}, "🌺": {"optimism"},
	"🌸": {"optimism"}, "✊": {"optimism"}, "🎯": {"optimism"},
	"💪": {"optimism", "pride"},

	// pride / achievement
	"😎": {"pride"}, "🥈": {"pride"}, "🥉": {"pride"},
	"🏅": {"pride"}, "👑": {"pride"},

	// relief / relaxed
	"😌": {"relief"}, "😇": {"relief"}, "😮‍💨": {"relief"},

	// anger / rage
	"😠": {"anger"}, "😡": {"anger"}, "🤬": {"anger"}, "👿": {"anger"},
	"😾": {"anger"},
	"💢": {"anger", "annoyance"},

	// sadness / depression
	"😿": {"sadness"}, "😟": {"sadness"}, "😥": {"sadness"},
	"🥺": {"sadness"}, "🌧": {"sadness"},
	"😢": {"sadness", "grief"},
	"😭": {"sadness", "grief"},
	"😞": {"sadness", "disappointment", "remorse"},
	"😔": {"sadness", "disappointment", "remorse"},
	"😰": {"sadness", "fear", "nervousness"},
	"😓": {"sadness", "nervousness"},
	"💔": {"sadness", "disappointment"},

	// fear / anxiety
	"😨": {"fear"}, "😧": {"fear"}, "😦": {"fear"}, "🙀": {"fear"},
	"💀": {"fear"}, "☠": {"fear"},
	"😱": {"fear", "surprise"},
	"😵": {"fear", "confusion"},

	// disappointment / letdown
	"🙁": {"disappointment"}, "☹": {"disappointment"},
	"😣": {"disappointment"}, "😫": {"disappointment"},
	"😕": {"disappointment", "confusion"},
	"😖": {"disappointment", "disgust"},

	// disgust / revulsion
	"🤢": {"disgust"}, "🤮": {"disgust"}, "😷": {"disgust"},
	"🤧": {"disgust"}, "🤒": {"disgust"},

	// annoyance / irritation
	"😒": {"annoyance"}, "🙄": {"annoyance"}, "😤": {"annoyance"},
	"😑": {"annoyance"},
	"😐": {"annoyance", "neutral"},

	// disapproval / dislike
	"👎": {"disapproval"}, "❌": {"disapproval"}, "🚫": {"disapproval"},
	"⛔": {"disapproval"}, "🙅": {"disapproval"}, "🙅‍♂️": {"disapproval"},
	"🙅‍♀️": {"disapproval"}, "❎": {"disapproval"},

	// embarrassment / shame
	"😳": {"embarrassment"}, "🙈": {"embarrassment"},
	"🤦": {"embarrassment"}, "🤦‍♂️": {"embarrassment"}, "🤦‍♀️": {"embarrassment"},
	"😬": {"disgust", "embarrassment", "nervousness"},

	// confusion / puzzled
	"😵‍💫": {"confusion"},
	"🤔": {"confusion", "curiosity"},
	"🤷": {"confusion", "neutral"},
	"🤷‍♂️": {"confusion"}, "🤷‍♀️": {"confusion"},
	"❓": {"confusion", "curiosity"},

	// surprise / shock
	"🤯": {"surprise"},

	// curiosity / interest
	"🧐": {"curiosity"}, "👀": {"curiosity"}, "🔍": {"curiosity"},
	"🔎": {"curiosity"}, "❔": {"curiosity"},

	// nervousness / worry
	"😅": {"nervousness"}, "🥵": {"nervousness"},

	// approval / agreement
	"✅": {"approval"}, "☑": {"approval"}, "✔": {"approval"},
	"🙆": {"approval"}, "🙆‍♂️": {"approval"}, "🙆‍♀️": {"approval"},

	// caring / supportive
	"🫂": {"caring"}, "🌹": {"caring"}, "🌷": {"caring"}, "🎁": {"caring"},
	"💐": {"caring", "grief"},

	// desire / want
	"🤤": {"desire"}, "😋": {"desire"},

	// realization / understanding
	"💡": {"realization"}, "🤓": {"realization"}, "🧠": {"realization"},

	// grief / mourning
	"🕊": {"grief"}, "⚰": {"grief"},

	// neutral / ambiguous
	"😶": {"neutral"}, "➖": {"neutral"},
}

const (
	zwj               = '‍'
	variationSelector = '️'
)

// isEmojiRune reports whether r falls in the Unicode emoji blocks the
// extractor recognizes (emoticons, pictographs, transport, dingbats,
// supplemental and extended-A symbols).
func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols & pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport & map symbols
		return true
	case r >= 0x1F1E0 && r <= 0x1F1FF: // regional indicators
		return true
	case r >= 0x2702 && r <= 0x27B0: // dingbats
		return true
	case r >= 0x24C2 && r <= 0x2653: // enclosed characters, misc symbols
		return true
	case r >= 0x2600 && r <= 0x26FF: // misc symbols
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended-A
		return true
	case r == 0x2b50 || r == 0x2b55: // star, circle
		return true
	case r >= 0x2640 && r <= 0x2642: // gender symbols
		return true
	}
	return false
}

// Extract returns every emoji grapheme in text, in order of appearance.
// A grapheme is one emoji base rune plus any variation selectors and
// ZWJ-joined continuation runes (e.g. facepalm with gender sign).
func Extract(text string) []string {
	runes := []rune(text)
	var out []string

	for i := 0; i < len(runes); {
		if !isEmojiRune(runes[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) {
			switch {
			case runes[j] == variationSelector:
				j++
			case runes[j] == zwj && j+1 < len(runes) && isEmojiRune(runes[j+1]):
				j += 2
			default:
				goto done
			}
		}
	done:
		out = append(out, string(runes[i:j]))
		i = j
	}
	return out
}

// lookup resolves a grapheme to its candidate emotions, retrying without
// the variation selector since table keys store the bare form.
func lookup(grapheme string) []string {
	if c, ok := emotionMap[grapheme]; ok {
		return c
	}
	bare := strings.ReplaceAll(grapheme, string(variationSelector), "")
	if c, ok := emotionMap[bare]; ok {
		return c
	}
	return nil
}

// candidateWeights returns halving weights normalized to sum to 1:
// one candidate gets 1; two get 2/3, 1/3; three get 4/7, 2/7, 1/7.
func candidateWeights(n int) []float64 {
	weights := make([]float64, n)
	total := 0.0
	w := 1.0
	for i := n - 1; i >= 0; i-- {
		weights[i] = w
		total += w
		w *= 2
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// Analyze returns a normalized emotion distribution derived from the emoji
// in text. Each recognized emoji contributes total weight 1, split across
// its candidate emotions; the result is divided by the recognized count so
// the distribution sums to 1. No recognized emoji yields an empty map.
func Analyze(text string) map[string]float64 {
	found := Extract(text)
	if len(found) == 0 {
		return map[string]float64{}
	}

	sums := make(map[string]float64)
	matched := 0
	for _, g := range found {
		candidates := lookup(g)
		if len(candidates) == 0 {
			continue
		}
		matched++
		weights := candidateWeights(len(candidates))
		for i, emotion := range candidates {
			sums[emotion] += weights[i]
		}
	}
	if matched == 0 {
		return map[string]float64{}
	}

	out := make(map[string]float64, len(sums))
	for emotion, s := range sums {
		out[emotion] = s / float64(matched)
	}
	return out
}
