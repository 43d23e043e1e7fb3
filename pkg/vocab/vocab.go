// Package vocab holds the fixed candidate vocabulary used for zero-shot
// tagging. Insertion order is significant: it defines the index
// correspondence between labels and their precomputed prompt embeddings,
// and breaks ties during tag selection.
package vocab

import "fmt"

// promptTemplate turns a label into the text prompt that gets embedded.
const promptTemplate = "a photo of %s"

// candidateTags is a broad but lightweight vocabulary for zero-shot tagging.
var candidateTags = []string{
	"person", "people", "man", "woman", "child", "baby", "family", "couple", "friends", "group",
	"portrait", "selfie", "wedding", "engagement", "kiss", "hug", "smiling", "laughing", "dancing", "walking",
	"running", "jumping", "sitting", "standing", "eating", "drinking", "cooking", "playing", "working", "travel",
	"city", "street", "building", "architecture", "bridge", "road", "car", "bus", "train", "bicycle",
	"boat", "ship", "airplane", "beach", "ocean", "sea", "lake", "river", "water", "wave",
	"mountain", "forest", "tree", "flower", "garden", "park", "nature", "landscape", "sky", "cloud",
	"sun", "sunset", "sunrise", "night", "day", "golden hour", "rain", "snow", "fog", "storm",
	"indoors", "outdoors", "restaurant", "cafe", "kitchen", "bedroom", "living room", "office", "school", "store",
	"food", "drink", "coffee", "tea", "dessert", "fruit", "dog", "cat", "bird", "horse",
	"sports", "soccer", "basketball", "tennis", "swimming", "hiking", "camping", "festival", "concert", "party",
	"documentary", "film", "vintage", "black and white", "color", "fashion", "close-up", "wide shot", "crowd", "market",
}

// Labels returns the candidate vocabulary in its defining order.
// Callers receive a copy; the vocabulary itself is immutable for the
// process lifetime.
func Labels() []string {
	out := make([]string, len(candidateTags))
	copy(out, candidateTags)
	return out
}

// Size returns the number of labels in the vocabulary.
func Size() int {
	return len(candidateTags)
}

// Prompt returns the text prompt embedded for a label.
func Prompt(label string) string {
	return fmt.Sprintf(promptTemplate, label)
}
