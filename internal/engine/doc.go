// Package engine loads batches of Pokémon from PokéAPI and normalizes them
// into Creature records.
//
// Two fetch modes produce a batch: RandomMode draws distinct random ids and
// fetches them one after another, FilteredMode lists a type's members and
// fetches the first few concurrently. Both return at most BatchSize records
// and share the same normalization. The package also renders a batch as a
// plain table or JSON for non-interactive output.
package engine
