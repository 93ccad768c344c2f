// Package cli defines the pokedeck cobra commands: the interactive deck at
// the root, the one-shot show and types commands, and config management.
package cli
