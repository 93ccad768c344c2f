// Package pokeapi is a small HTTP client for the three PokéAPI endpoints
// pokedeck reads: the type index, a single type's members, and a single
// Pokémon's detail record.
package pokeapi
