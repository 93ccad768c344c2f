package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedeck/internal/engine"
)

type fakeLoader struct {
	mu            sync.Mutex
	categories    []engine.Category
	categoriesErr error
	batches       map[string][]engine.Creature
	errs          map[string]error
	loads         []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		categories: []engine.Category{{Name: "fire"}, {Name: "water"}, {Name: "electric"}},
		batches: map[string][]engine.Creature{
			"random": {
				{ID: 25, Name: "pikachu", Categories: []string{"electric"}},
				{ID: 1, Name: "bulbasaur", ImageURL: "https://img/1.png", Categories: []string{"grass", "poison"}},
			},
			"type:fire": {
				{ID: 4, Name: "charmander", Categories: []string{"fire"}},
			},
		},
		errs: map[string]error{},
	}
}

func (f *fakeLoader) LoadCategories(context.Context) ([]engine.Category, error) {
	return f.categories, f.categoriesErr
}

func (f *fakeLoader) Load(_ context.Context, mode engine.FetchMode) ([]engine.Creature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, mode.String())
	if err := f.errs[mode.String()]; err != nil {
		return nil, err
	}
	return f.batches[mode.String()], nil
}

func (f *fakeLoader) Loads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loads...)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// run executes cmd and returns every message it produces, flattening batches.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds every non-spinner message produced by cmd back into m.
func settle(t *testing.T, m DeckModel, cmd tea.Cmd) DeckModel {
	t.Helper()
	for _, msg := range run(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		updated, _ := m.Update(msg)
		m = updated.(DeckModel)
	}
	return m
}

func update(t *testing.T, m DeckModel, msg tea.Msg) (DeckModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(DeckModel)
	require.True(t, ok)
	return next, cmd
}

func TestNewDeckModel(t *testing.T) {
	m := NewDeckModel(context.Background(), newFakeLoader())

	assert.Equal(t, ViewStateLoading, m.State())
	assert.Equal(t, uint64(1), m.Generation())
	assert.Empty(t, m.Selection())
	assert.False(t, m.PickerOpen())
	assert.NotNil(t, m.Init())
}

func TestDeckModel_InitLoadsCategoriesAndRandomBatch(t *testing.T) {
	loader := newFakeLoader()
	m := NewDeckModel(context.Background(), loader)

	m = settle(t, m, m.Init())

	assert.Equal(t, ViewStateList, m.State())
	assert.Len(t, m.Creatures(), 2)
	assert.Len(t, m.Categories(), 3)
	assert.Equal(t, []string{"random"}, loader.Loads())
}

func TestDeckModel_BatchErrorShowsErrorState(t *testing.T) {
	loader := newFakeLoader()
	loader.errs["random"] = &engine.CreatureLoadError{ID: 132, StatusText: "Not Found"}
	m := NewDeckModel(context.Background(), loader)

	m = settle(t, m, m.Init())

	assert.Equal(t, ViewStateError, m.State())
	assert.Nil(t, m.Creatures())
	require.Error(t, m.Err())
	assert.Contains(t, m.Err().Error(), "132")
	assert.Contains(t, m.Err().Error(), "Not Found")
}

func TestDeckModel_CategoryFailureIsSilent(t *testing.T) {
	loader := newFakeLoader()
	loader.categoriesErr = errors.New("boom")
	m := NewDeckModel(context.Background(), loader)

	m = settle(t, m, m.Init())

	assert.Equal(t, ViewStateList, m.State())
	assert.Empty(t, m.Categories())
	assert.NoError(t, m.Err())
}

func TestDeckModel_SelectType(t *testing.T) {
	loader := newFakeLoader()
	m := NewDeckModel(context.Background(), loader)
	m = settle(t, m, m.Init())

	m, cmd := update(t, m, key("t"))
	assert.Nil(t, cmd)
	assert.True(t, m.PickerOpen())

	// Options: "Select a type", Fire, Water, Electric.
	m, _ = update(t, m, key("down"))
	m, cmd = update(t, m, key("enter"))

	assert.False(t, m.PickerOpen())
	assert.Equal(t, "fire", m.Selection())
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Equal(t, uint64(2), m.Generation())
	require.NotNil(t, cmd)

	m = settle(t, m, cmd)
	assert.Equal(t, ViewStateList, m.State())
	require.Len(t, m.Creatures(), 1)
	assert.Equal(t, "charmander", m.Creatures()[0].Name)
	assert.Equal(t, []string{"random", "type:fire"}, loader.Loads())
}

func TestDeckModel_SelectionTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		to         string
		expectLoad bool
		expectMode string
	}{
		{name: "empty to empty does nothing", from: "", to: "", expectLoad: false},
		{name: "type to empty loads random", from: "fire", to: "", expectLoad: true, expectMode: "random"},
		{name: "empty to type loads filtered", from: "", to: "water", expectLoad: true, expectMode: "type:water"},
		{name: "same type reloads", from: "fire", to: "fire", expectLoad: true, expectMode: "type:fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newFakeLoader()
			m := NewDeckModel(context.Background(), loader)
			m = settle(t, m, m.Init())
			m.selection = tt.from
			before := m.Generation()

			updated, cmd := m.selectCategory(tt.to)
			m = updated.(DeckModel)

			assert.Equal(t, tt.to, m.Selection())
			if !tt.expectLoad {
				assert.Nil(t, cmd)
				assert.Equal(t, before, m.Generation())
				assert.Equal(t, ViewStateList, m.State())
				return
			}

			require.NotNil(t, cmd)
			assert.Equal(t, before+1, m.Generation())
			assert.Equal(t, ViewStateLoading, m.State())
			_ = settle(t, m, cmd)
			loads := loader.Loads()
			assert.Equal(t, tt.expectMode, loads[len(loads)-1])
		})
	}
}

func TestDeckModel_StaleBatchDropped(t *testing.T) {
	m := NewDeckModel(context.Background(), newFakeLoader())
	m = settle(t, m, m.Init())

	m, _ = update(t, m, key("t"))
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("enter"))
	require.Equal(t, uint64(2), m.Generation())

	stale := batchLoadedMsg{
		generation: 1,
		mode:       engine.RandomMode{},
		creatures:  []engine.Creature{{ID: 7, Name: "squirtle"}},
	}
	m, _ = update(t, m, stale)
	assert.Equal(t, ViewStateLoading, m.State())

	staleErr := batchLoadedMsg{generation: 1, mode: engine.RandomMode{}, err: errors.New("late failure")}
	m, _ = update(t, m, staleErr)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.NoError(t, m.Err())

	current := batchLoadedMsg{
		generation: 2,
		mode:       engine.FilteredMode{Category: "fire"},
		creatures:  []engine.Creature{{ID: 4, Name: "charmander", Categories: []string{"fire"}}},
	}
	m, _ = update(t, m, current)
	assert.Equal(t, ViewStateList, m.State())
	require.Len(t, m.Creatures(), 1)
	assert.Equal(t, 4, m.Creatures()[0].ID)
}

func TestDeckModel_NewLoadClearsError(t *testing.T) {
	loader := newFakeLoader()
	loader.errs["random"] = errors.New("failed to load Pokémon with ID 3: Not Found")
	m := NewDeckModel(context.Background(), loader)
	m = settle(t, m, m.Init())
	require.Equal(t, ViewStateError, m.State())

	// The picker stays reachable from the error view.
	m, _ = update(t, m, key("t"))
	require.True(t, m.PickerOpen())
	m, _ = update(t, m, key("down"))
	m, cmd := update(t, m, key("enter"))

	assert.NoError(t, m.Err())
	assert.Equal(t, ViewStateLoading, m.State())

	m = settle(t, m, cmd)
	assert.Equal(t, ViewStateList, m.State())
}

func TestDeckModel_PickerEscCloses(t *testing.T) {
	m := NewDeckModel(context.Background(), newFakeLoader())
	m = settle(t, m, m.Init())

	m, _ = update(t, m, key("t"))
	m, _ = update(t, m, key("down"))
	m, cmd := update(t, m, key("esc"))

	assert.Nil(t, cmd)
	assert.False(t, m.PickerOpen())
	assert.Empty(t, m.Selection())
	assert.Equal(t, uint64(1), m.Generation())
}

func TestDeckModel_PickerOpensOnCurrentSelection(t *testing.T) {
	m := NewDeckModel(context.Background(), newFakeLoader())
	m = settle(t, m, m.Init())
	m.selection = "water"

	m, _ = update(t, m, key("t"))

	opt, ok := m.picker.Current()
	require.True(t, ok)
	assert.Equal(t, "water", opt.value)
}

func TestDeckModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := NewDeckModel(context.Background(), newFakeLoader())

			m, cmd := update(t, m, key(k))

			assert.Equal(t, ViewStateQuitting, m.State())
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestDeckModel_SpinnerStopsOutsideLoading(t *testing.T) {
	m := NewDeckModel(context.Background(), newFakeLoader())
	m = settle(t, m, m.Init())
	require.Equal(t, ViewStateList, m.State())

	_, cmd := update(t, m, m.loadingState.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestDeckModel_WindowResize(t *testing.T) {
	m := NewDeckModel(context.Background(), newFakeLoader())

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestViewState_String(t *testing.T) {
	assert.Equal(t, "loading", ViewStateLoading.String())
	assert.Equal(t, "list", ViewStateList.String())
	assert.Equal(t, "error", ViewStateError.String())
	assert.Equal(t, "quitting", ViewStateQuitting.String())
	assert.Equal(t, "unknown", ViewState(42).String())
}
