package game

import (
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Interactable is something in the world that the player can refer to by one
// of its keywords. Every Interactable can be examined.
type Interactable interface {
	// GetID returns the unique identifier of the thing.
	GetID() string

	// GetName returns the display name of the thing.
	GetName() string

	// GetKeywords returns all phrases the player may use to refer to the
	// thing.
	GetKeywords() []string

	// Examine returns the text shown when the player examines the thing.
	Examine() string
}

// IsFixed returns whether the Interactable is fixed in place. StorageUnits are
// fixed.
func IsFixed(t Interactable) bool {
	switch t.(type) {
	case *FixedObject, *StorageUnit:
		return true
	default:
		return false
	}
}

var leadingArticles = []string{"the ", "a ", "an ", "some "}

func normalizePhrase(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	for _, art := range leadingArticles {
		if strings.HasPrefix(s, art) {
			return strings.TrimSpace(s[len(art):])
		}
	}
	return s
}

// MatchObject finds the candidate that phrase refers to. The same rule is used
// for every lookup in the game:
//
//  1. A candidate with a keyword, name, or ID exactly equal to the phrase wins.
//     If several do, the first in candidate order wins.
//  2. Otherwise, a candidate with a keyword that appears in the phrase as a
//     whole-word sequence wins, preferring the longest such keyword. Ties go to
//     the first in candidate order.
//
// A leading article in the phrase is ignored and matching is case-insensitive.
func MatchObject[T Interactable](phrase string, candidates []T) (T, bool) {
	var zero T

	phrase = normalizePhrase(phrase)
	if phrase == "" {
		return zero, false
	}

	for _, c := range candidates {
		names := mapset.New[string]()
		names.Put(strings.ToLower(c.GetID()))
		names.Put(strings.ToLower(c.GetName()))
		for _, kw := range c.GetKeywords() {
			names.Put(strings.ToLower(kw))
		}
		if names.Has(phrase) {
			return c, true
		}
	}

	padded := " " + phrase + " "
	bestLen := 0
	best := -1
	for i, c := range candidates {
		for _, kw := range c.GetKeywords() {
			kw = normalizePhrase(kw)
			if kw == "" || len(kw) <= bestLen {
				continue
			}
			if strings.Contains(padded, " "+kw+" ") {
				bestLen = len(kw)
				best = i
			}
		}
	}
	if best >= 0 {
		return candidates[best], true
	}

	return zero, false
}
