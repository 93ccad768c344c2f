package engine

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/pokedeck/internal/pokeapi"
)

// Batch and id-space defaults.
const (
	// DefaultBatchSize is how many creatures one batch holds.
	DefaultBatchSize = 7

	// DefaultMaxID is the upper bound of the random id range [1, DefaultMaxID].
	// It is the size of the national dex covered by the API at the time and is
	// a policy constant, not queried.
	DefaultMaxID = 898
)

// DefaultExcludedCategories are type names PokéAPI lists that no Pokémon carries.
func DefaultExcludedCategories() []string {
	return []string{"unknown", "shadow"}
}

// Category is a type label such as "fire".
type Category struct {
	Name string `json:"name"`
}

// Label returns the capitalized name.
func (c Category) Label() string {
	return Capitalize(c.Name)
}

// Creature is a normalized Pokémon detail record.
type Creature struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Categories []string `json:"categories"`
}

// NewCreature normalizes an API record. A null sprite becomes an empty ImageURL.
func NewCreature(p *pokeapi.Pokemon) Creature {
	c := Creature{
		ID:         p.ID,
		Name:       strings.ToLower(p.Name),
		Categories: make([]string, 0, len(p.Types)),
	}
	if p.Sprites.FrontDefault != nil {
		c.ImageURL = *p.Sprites.FrontDefault
	}
	for _, t := range p.Types {
		c.Categories = append(c.Categories, t.Type.Name)
	}
	return c
}

// DisplayName returns the capitalized name, e.g. "Pikachu".
func (c Creature) DisplayName() string {
	return Capitalize(c.Name)
}

// CategoryLabel returns the capitalized types joined with ", ".
func (c Creature) CategoryLabel() string {
	return strings.Join(CapitalizeAll(c.Categories), ", ")
}

// HasCategory reports whether the creature carries the named type.
func (c Creature) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first character only: "mr-mime" -> "Mr-mime".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	// Casers are stateful; one per call.
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// CapitalizeAll applies Capitalize to every element.
func CapitalizeAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = Capitalize(s)
	}
	return out
}
