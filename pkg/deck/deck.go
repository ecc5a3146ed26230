package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"

	"tourneypoker-server/internal/rng"
)

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a playing deck
// A deck never runs dry: drawing from an empty deck rebuilds and reshuffles all 52 cards
type Deck struct {
	Cards []Card `json:"-"`
	rng   rng.Generator
	// refills counts how many times the deck was rebuilt because it ran out
	refills int
}

// New returns a new shuffled deck of cards
// If generator is nil, a cryptographically secure generator is used
func New(generator rng.Generator) *Deck {
	if generator == nil {
		generator = rng.Crypto{}
	}

	d := &Deck{
		rng: generator,
	}

	d.Shuffle()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle rebuilds the full deck and shuffles it
func (d *Deck) Shuffle() {
	d.buildDeck()

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, the deck is silently rebuilt and reshuffled first
func (d *Deck) Draw() Card {
	if len(d.Cards) == 0 {
		d.refills++
		d.Shuffle()
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card
}

// Burn discards the top card
func (d *Deck) Burn() {
	_ = d.Draw()
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// Refills returns how many times the deck ran out and was rebuilt
func (d *Deck) Refills() int {
	return d.refills
}
