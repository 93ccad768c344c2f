package pokeapi

// NamedAPIResource is PokéAPI's {name, url} reference.
type NamedAPIResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NamedAPIResourceList is the body of GET /type.
type NamedAPIResourceList struct {
	Count   int                `json:"count"`
	Results []NamedAPIResource `json:"results"`
}

// Type is the body of GET /type/{name}.
type Type struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Pokemon []TypePokemon `json:"pokemon"`
}

// TypePokemon is one member entry of a type.
type TypePokemon struct {
	Slot    int              `json:"slot"`
	Pokemon NamedAPIResource `json:"pokemon"`
}

// Pokemon is the body of GET /pokemon/{id}/, reduced to the fields pokedeck renders.
type Pokemon struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Sprites Sprites       `json:"sprites"`
	Types   []PokemonType `json:"types"`
}

// Sprites holds sprite URLs. FrontDefault is null for some forms.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// PokemonType is one slot of a Pokémon's typing.
type PokemonType struct {
	Slot int              `json:"slot"`
	Type NamedAPIResource `json:"type"`
}
