package pokeapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedeck/internal/pokeapi"
	"github.com/rshade/pokedeck/internal/pokeapi/pokeapitest"
)

func TestClient_ListTypes(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	client := pokeapi.NewClient(srv.URL)

	list, err := client.ListTypes(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(list.Results))
	for _, r := range list.Results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"normal", "fighting", "flying", "fire", "water", "electric", "unknown", "shadow"}, names)
	assert.Equal(t, []string{"/type"}, srv.Requests())
}

func TestClient_GetType(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	client := pokeapi.NewClient(srv.URL + "/")

	typ, err := client.GetType(context.Background(), "electric")
	require.NoError(t, err)
	require.Len(t, typ.Pokemon, 2)
	assert.Equal(t, "pikachu", typ.Pokemon[0].Pokemon.Name)
	assert.Equal(t, srv.URL+"/pokemon/25/", typ.Pokemon[0].Pokemon.URL)
}

func TestClient_GetPokemon(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	client := pokeapi.NewClient(srv.URL)

	p, err := client.GetPokemon(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, p.ID)
	assert.Equal(t, "pikachu", p.Name)
	require.NotNil(t, p.Sprites.FrontDefault)
	assert.Contains(t, *p.Sprites.FrontDefault, "25.png")
	require.Len(t, p.Types, 1)
	assert.Equal(t, "electric", p.Types[0].Type.Name)
	assert.Equal(t, []string{"/pokemon/25/"}, srv.Requests())
}

func TestClient_NullSprite(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	srv.SetFixture(10, pokeapitest.Fixture{Name: "caterpie", Types: []string{"bug"}})
	client := pokeapi.NewClient(srv.URL)

	p, err := client.GetPokemon(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, p.Sprites.FrontDefault)
}

func TestClient_StatusError(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	srv.FailPokemon(132, http.StatusNotFound)
	client := pokeapi.NewClient(srv.URL)

	_, err := client.GetPokemon(context.Background(), 132)
	require.Error(t, err)

	var statusErr *pokeapi.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "Not Found", statusErr.StatusText())
	assert.Contains(t, err.Error(), "404 Not Found")
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := pokeapi.NewClient(srv.URL).ListTypes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestClient_Options(t *testing.T) {
	var (
		mu    sync.Mutex
		gotUA string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotUA = r.Header.Get("User-Agent")
		mu.Unlock()
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	t.Run("user agent", func(t *testing.T) {
		client := pokeapi.NewClient(srv.URL, pokeapi.WithUserAgent("pokedeck/test"))
		_, err := client.ListTypes(context.Background())
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "pokedeck/test", gotUA)
	})

	t.Run("timeout", func(t *testing.T) {
		client := pokeapi.NewClient(srv.URL,
			pokeapi.WithHTTPClient(srv.Client()),
			pokeapi.WithTimeout(5*time.Millisecond),
		)
		_, err := client.ListTypes(context.Background())
		require.Error(t, err)
	})

	t.Run("default base url", func(t *testing.T) {
		assert.Equal(t, pokeapi.DefaultBaseURL, pokeapi.NewClient("").BaseURL())
	})
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pokeapi.NewClient(srv.URL).GetPokemon(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}
