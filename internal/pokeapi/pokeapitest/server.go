// Package pokeapitest provides an in-memory PokéAPI for tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rshade/pokedeck/internal/pokeapi"
)

// Fixture is one Pokémon served by the fake API.
type Fixture struct {
	Name   string
	Types  []string
	Sprite string
}

// Server is an httptest server speaking the subset of PokéAPI pokedeck uses.
// Ids without a fixture are synthesized as "pokemon-<id>" of type normal.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	typeIndex []string
	members   map[string][]int
	fixtures  map[int]Fixture
	failIDs   map[int]int
	failTypes map[string]int
	requests  []string
}

// NewServer starts a fake API seeded with DefaultFixtures and closes it when t ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		typeIndex: []string{"normal", "fighting", "flying", "fire", "water", "electric", "unknown", "shadow"},
		members:   map[string][]int{},
		fixtures:  map[int]Fixture{},
		failIDs:   map[int]int{},
		failTypes: map[string]int{},
	}
	for id, f := range DefaultFixtures() {
		s.fixtures[id] = f
	}
	s.members["fire"] = []int{4, 5, 6, 37, 38, 58, 59, 77, 78, 126}
	s.members["electric"] = []int{25, 26}
	s.members["flying"] = []int{6}
	s.members["normal"] = []int{}

	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// DefaultFixtures returns the named Pokémon every Server knows about.
func DefaultFixtures() map[int]Fixture {
	const spriteBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"
	named := map[int]Fixture{
		4:   {Name: "charmander", Types: []string{"fire"}},
		5:   {Name: "charmeleon", Types: []string{"fire"}},
		6:   {Name: "charizard", Types: []string{"fire", "flying"}},
		25:  {Name: "pikachu", Types: []string{"electric"}},
		26:  {Name: "raichu", Types: []string{"electric"}},
		37:  {Name: "vulpix", Types: []string{"fire"}},
		38:  {Name: "ninetales", Types: []string{"fire"}},
		58:  {Name: "growlithe", Types: []string{"fire"}},
		59:  {Name: "arcanine", Types: []string{"fire"}},
		77:  {Name: "ponyta", Types: []string{"fire"}},
		78:  {Name: "rapidash", Types: []string{"fire"}},
		126: {Name: "magmar", Types: []string{"fire"}},
	}
	for id, f := range named {
		f.Sprite = spriteBase + strconv.Itoa(id) + ".png"
		named[id] = f
	}
	return named
}

// SetTypeIndex replaces the names returned by GET /type.
func (s *Server) SetTypeIndex(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typeIndex = names
}

// SetMembers replaces the member ids of a type.
func (s *Server) SetMembers(typeName string, ids ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[typeName] = ids
}

// SetFixture registers or replaces a Pokémon.
func (s *Server) SetFixture(id int, f Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[id] = f
}

// FailPokemon makes GET /pokemon/{id}/ answer with status.
func (s *Server) FailPokemon(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failIDs[id] = status
}

// FailType makes GET /type/{name} (or GET /type when name is "") answer with status.
func (s *Server) FailType(name string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failTypes[name] = status
}

// Requests returns the request paths served so far, in arrival order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// PokemonRequests counts detail requests served so far.
func (s *Server) PokemonRequests() int {
	n := 0
	for _, p := range s.Requests() {
		if strings.HasPrefix(p, "/pokemon/") {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.Path)
	s.mu.Unlock()

	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 1 && parts[0] == "type":
		s.serveTypeIndex(w)
	case len(parts) == 2 && parts[0] == "type":
		s.serveType(w, parts[1])
	case len(parts) == 2 && parts[0] == "pokemon":
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			http.NotFound(w, r)
			return
		}
		s.servePokemon(w, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveTypeIndex(w http.ResponseWriter) {
	s.mu.Lock()
	status, fail := s.failTypes[""]
	names := append([]string(nil), s.typeIndex...)
	s.mu.Unlock()

	if fail {
		w.WriteHeader(status)
		return
	}

	list := pokeapi.NamedAPIResourceList{Count: len(names)}
	for _, n := range names {
		list.Results = append(list.Results, pokeapi.NamedAPIResource{Name: n, URL: s.URL + "/type/" + n + "/"})
	}
	writeJSON(w, list)
}

func (s *Server) serveType(w http.ResponseWriter, name string) {
	s.mu.Lock()
	status, fail := s.failTypes[name]
	ids, known := s.members[name]
	ids = append([]int(nil), ids...)
	s.mu.Unlock()

	if fail {
		w.WriteHeader(status)
		return
	}
	if !known {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	out := pokeapi.Type{Name: name}
	for i, id := range ids {
		out.Pokemon = append(out.Pokemon, pokeapi.TypePokemon{
			Slot: i + 1,
			Pokemon: pokeapi.NamedAPIResource{
				Name: s.fixture(id).Name,
				URL:  fmt.Sprintf("%s/pokemon/%d/", s.URL, id),
			},
		})
	}
	writeJSON(w, out)
}

func (s *Server) servePokemon(w http.ResponseWriter, id int) {
	s.mu.Lock()
	status, fail := s.failIDs[id]
	s.mu.Unlock()

	if fail {
		w.WriteHeader(status)
		return
	}

	f := s.fixture(id)
	out := pokeapi.Pokemon{ID: id, Name: f.Name}
	if f.Sprite != "" {
		sprite := f.Sprite
		out.Sprites.FrontDefault = &sprite
	}
	for i, t := range f.Types {
		out.Types = append(out.Types, pokeapi.PokemonType{
			Slot: i + 1,
			Type: pokeapi.NamedAPIResource{Name: t, URL: s.URL + "/type/" + t + "/"},
		})
	}
	writeJSON(w, out)
}

func (s *Server) fixture(id int) Fixture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fixtures[id]; ok {
		return f
	}
	return Fixture{Name: "pokemon-" + strconv.Itoa(id), Types: []string{"normal"}}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
