package words

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Placeholder is the rune shown for a hidden letter
const Placeholder = '_'

// CandidateCount is how many words a drawer chooses from
const CandidateCount = 3

var defaultCorpus = []string{
	"cat", "dog", "elephant", "giraffe", "penguin", "dolphin", "tiger", "rabbit", "monkey", "shark",
	"butterfly", "octopus", "kangaroo", "crocodile", "peacock", "flamingo", "hedgehog", "cheetah",
	"umbrella", "guitar", "telescope", "bicycle", "toothbrush", "backpack", "scissors", "lantern",
	"compass", "suitcase", "keyboard", "microphone", "trophy", "hourglass", "anchor", "binoculars",
	"pizza", "sushi", "burger", "watermelon", "popcorn", "sandwich", "spaghetti", "donut", "taco",
	"cupcake", "strawberry", "pineapple", "chocolate", "broccoli", "avocado", "pancakes", "pretzel",
	"volcano", "lighthouse", "castle", "pyramid", "igloo", "windmill", "treehouse", "skyscraper",
	"waterfall", "cave", "airport", "library", "stadium", "greenhouse", "submarine", "spaceship",
	"swimming", "dancing", "climbing", "fishing", "painting", "cooking", "sleeping", "laughing",
	"jumping", "reading", "singing", "skating", "surfing", "gardening", "hiking", "juggling",
	"rainbow", "thunder", "snowflake", "tornado", "eclipse", "meteor", "glacier", "canyon",
	"coral", "mushroom", "cactus", "bamboo", "sunflower", "seashell", "starfish", "avalanche",
	"dragon", "unicorn", "robot", "wizard", "ninja", "pirate", "astronaut", "mermaid",
	"saxophone", "accordion", "harmonica", "xylophone", "bagpipes", "ukulele", "trombone",
}

// Bank hands out candidate words and reveals hints
type Bank struct {
	mu     sync.Mutex
	random *rand.Rand
	corpus []string
}

// Config for the word bank
type Config struct {
	// Optional seed for testing
	Seed int64

	// Optional corpus override, defaults to the built-in word list
	Words []string
}

// New creates a new word bank
func New(cfg *Config) *Bank {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	corpus := defaultCorpus
	if cfg != nil && len(cfg.Words) > 0 {
		corpus = cfg.Words
	}

	return &Bank{
		random: rand.New(rand.NewSource(seed)),
		corpus: corpus,
	}
}

// Size returns the number of words in the corpus
func (b *Bank) Size() int {
	return len(b.corpus)
}

// Pick3 draws three distinct words without replacement. Distinctness only
// holds within a single call.
func (b *Bank) Pick3() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := CandidateCount
	if len(b.corpus) < n {
		n = len(b.corpus)
	}

	picked := make([]string, 0, n)
	for _, i := range b.random.Perm(len(b.corpus))[:n] {
		picked = append(picked, b.corpus[i])
	}
	return picked
}

// RevealLetter uncovers one random still-hidden, non-space letter of word.
// It returns masked unchanged when nothing is left to reveal.
func (b *Bank) RevealLetter(word, masked string) string {
	w := []rune(word)
	m := []rune(masked)
	if len(w) != len(m) {
		return masked
	}

	hidden := make([]int, 0, len(w))
	for i, r := range w {
		if r != ' ' && m[i] == Placeholder {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) == 0 {
		return masked
	}

	b.mu.Lock()
	i := hidden[b.random.Intn(len(hidden))]
	b.mu.Unlock()

	m[i] = w[i]
	return string(m)
}

// Mask hides every non-space rune of word, keeping spaces as-is
func Mask(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if r == ' ' {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(Placeholder)
	}
	return sb.String()
}
