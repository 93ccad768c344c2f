package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/pokedeck/internal/engine"
	"github.com/rshade/pokedeck/internal/logging"
	"github.com/rshade/pokedeck/internal/tui/list"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// pickerChrome is the number of rows around the picker list.
	pickerChrome  = 6
	minPickerRows = 3
)

// placeholderLabel is the first dropdown option; it selects no filter.
const placeholderLabel = "Select a type"

// BatchLoader loads categories and batches. *engine.Engine implements it.
type BatchLoader interface {
	LoadCategories(ctx context.Context) ([]engine.Category, error)
	Load(ctx context.Context, mode engine.FetchMode) ([]engine.Creature, error)
}

type categoriesLoadedMsg struct {
	categories []engine.Category
	err        error
}

// batchLoadedMsg carries the generation that requested it; only the latest
// generation is applied.
type batchLoadedMsg struct {
	generation uint64
	mode       engine.FetchMode
	creatures  []engine.Creature
	err        error
}

// pickerOption is one dropdown entry. An empty value means no filter.
type pickerOption struct {
	value string
	label string
}

// DeckModel is the Bubble Tea model for the interactive deck.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DeckModel struct {
	ctx    context.Context
	loader BatchLoader

	state      ViewState
	selection  string
	categories []engine.Category
	creatures  []engine.Creature
	err        error

	// generation is bumped on every load; older batch results are dropped.
	generation uint64

	picker     *list.Model[pickerOption]
	pickerOpen bool

	loadingState *LoadingState

	width  int
	height int
}

// NewDeckModel creates a deck that loads a random batch on start.
func NewDeckModel(ctx context.Context, loader BatchLoader) DeckModel {
	m := DeckModel{
		ctx:          ctx,
		loader:       loader,
		state:        ViewStateLoading,
		generation:   1,
		loadingState: NewLoadingState(),
		width:        defaultWidth,
		height:       defaultHeight,
	}
	m.picker = list.New(m.pickerOptions(), m.pickerRows(), renderPickerOption)
	return m
}

// Init starts the spinner, the category load and the first random batch.
func (m DeckModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadingState.Init(),
		m.loadCategoriesCmd(),
		m.loadBatchCmd(m.generation, engine.RandomMode{}),
	)
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DeckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetHeight(m.pickerRows())
		return m, nil
	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		return m, m.loadingState.Update(msg)
	case categoriesLoadedMsg:
		return m.handleCategoriesLoaded(msg), nil
	case batchLoadedMsg:
		return m.handleBatchLoaded(msg), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DeckModel) handleCategoriesLoaded(msg categoriesLoadedMsg) DeckModel {
	if msg.err != nil {
		log := m.logger()
		log.Warn().Ctx(m.ctx).
			Err(msg.err).
			Msg("failed to load types")
		return m
	}
	m.categories = msg.categories
	m.picker.SetItems(m.pickerOptions())
	return m
}

func (m DeckModel) handleBatchLoaded(msg batchLoadedMsg) DeckModel {
	if msg.generation != m.generation {
		log := m.logger()
		log.Debug().Ctx(m.ctx).
			Uint64("generation", msg.generation).
			Uint64("current_generation", m.generation).
			Str("mode", msg.mode.String()).
			Msg("discarding stale batch")
		return m
	}

	if msg.err != nil {
		m.state = ViewStateError
		m.err = msg.err
		m.creatures = nil
		return m
	}

	m.state = ViewStateList
	m.creatures = msg.creatures
	return m
}

func (m DeckModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	if msg.String() == "t" {
		m.openPicker()
	}
	return m, nil
}

func (m DeckModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pickerOpen = false
		return m, nil
	case "enter":
		opt, ok := m.picker.Current()
		if !ok {
			m.pickerOpen = false
			return m, nil
		}
		return m.selectCategory(opt.value)
	default:
		_, cmd := m.picker.Update(msg)
		return m, cmd
	}
}

// openPicker shows the dropdown with the cursor on the current selection.
func (m *DeckModel) openPicker() {
	m.pickerOpen = true
	if !m.picker.IndexFunc(func(o pickerOption) bool { return o.value == m.selection }) {
		m.picker.SetCursor(0)
	}
}

// selectCategory applies a dropdown choice. Choosing no filter while no
// filter is active changes nothing; any other choice, including the current
// type again, starts a new load.
func (m DeckModel) selectCategory(name string) (tea.Model, tea.Cmd) {
	m.pickerOpen = false
	if name == "" && m.selection == "" {
		return m, nil
	}
	m.selection = name
	return m.startLoad(engine.ModeFor(name))
}

func (m DeckModel) startLoad(mode engine.FetchMode) (tea.Model, tea.Cmd) {
	m.generation++
	m.state = ViewStateLoading
	m.err = nil

	log := m.logger()
	log.Debug().Ctx(m.ctx).
		Uint64("generation", m.generation).
		Str("mode", mode.String()).
		Msg("loading batch")

	return m, tea.Batch(m.loadBatchCmd(m.generation, mode), m.loadingState.Init())
}

func (m DeckModel) loadCategoriesCmd() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		categories, err := loader.LoadCategories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m DeckModel) loadBatchCmd(generation uint64, mode engine.FetchMode) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		creatures, err := loader.Load(ctx, mode)
		return batchLoadedMsg{generation: generation, mode: mode, creatures: creatures, err: err}
	}
}

func (m DeckModel) logger() zerolog.Logger {
	return logging.ComponentLogger(*logging.FromContext(m.ctx), "tui")
}

func (m DeckModel) pickerOptions() []pickerOption {
	opts := make([]pickerOption, 0, len(m.categories)+1)
	opts = append(opts, pickerOption{label: placeholderLabel})
	for _, c := range m.categories {
		opts = append(opts, pickerOption{value: c.Name, label: c.Label()})
	}
	return opts
}

func (m DeckModel) pickerRows() int {
	return max(m.height-pickerChrome, minPickerRows)
}

// State returns the current view state.
func (m DeckModel) State() ViewState { return m.state }

// Selection returns the selected type, or "" for no filter.
func (m DeckModel) Selection() string { return m.selection }

// Creatures returns the displayed batch.
func (m DeckModel) Creatures() []engine.Creature { return m.creatures }

// Categories returns the loaded dropdown categories.
func (m DeckModel) Categories() []engine.Category { return m.categories }

// Err returns the batch error shown in the error view.
func (m DeckModel) Err() error { return m.err }

// Generation returns the latest issued load generation.
func (m DeckModel) Generation() uint64 { return m.generation }

// PickerOpen reports whether the type dropdown is showing.
func (m DeckModel) PickerOpen() bool { return m.pickerOpen }
