package engine

// FetchMode selects which loader produces a batch. It is either RandomMode
// or FilteredMode.
type FetchMode interface {
	isFetchMode()
	// String names the mode for logs and JSON output.
	String() string
}

// RandomMode loads distinct random ids.
type RandomMode struct{}

// FilteredMode loads the first members of a type.
type FilteredMode struct {
	Category string
}

func (RandomMode) isFetchMode()   {}
func (FilteredMode) isFetchMode() {}

func (RandomMode) String() string { return "random" }

func (m FilteredMode) String() string { return "type:" + m.Category }

// ModeFor maps a dropdown selection to its fetch mode. The empty selection
// means no filter.
func ModeFor(selection string) FetchMode {
	if selection == "" {
		return RandomMode{}
	}
	return FilteredMode{Category: selection}
}

// Heading returns the title shown above a batch.
func Heading(mode FetchMode) string {
	if m, ok := mode.(FilteredMode); ok {
		return "Pokémon of type: " + Capitalize(m.Category)
	}
	return "Your Random Pokémon"
}
