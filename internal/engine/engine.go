package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/pokedeck/internal/logging"
	"github.com/rshade/pokedeck/internal/pokeapi"
)

// Fetcher is the subset of the PokéAPI client the engine needs.
type Fetcher interface {
	ListTypes(ctx context.Context) (*pokeapi.NamedAPIResourceList, error)
	GetType(ctx context.Context, name string) (*pokeapi.Type, error)
	GetPokemon(ctx context.Context, id int) (*pokeapi.Pokemon, error)
	GetPokemonByURL(ctx context.Context, rawURL string) (*pokeapi.Pokemon, error)
}

// Options tunes an Engine. Zero values take the package defaults.
type Options struct {
	BatchSize          int
	MaxID              int
	ExcludedCategories []string
	Source             IDSource
}

// Engine runs the category, random, and filtered loaders.
type Engine struct {
	fetcher   Fetcher
	batchSize int
	maxID     int
	excluded  []string
	source    IDSource
}

// New validates opts and returns an Engine.
func New(fetcher Fetcher, opts Options) (*Engine, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxID == 0 {
		opts.MaxID = DefaultMaxID
	}
	if opts.ExcludedCategories == nil {
		opts.ExcludedCategories = DefaultExcludedCategories()
	}
	if opts.Source == nil {
		opts.Source = globalSource{}
	}
	if opts.BatchSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, opts.BatchSize)
	}
	if opts.MaxID < opts.BatchSize {
		return nil, fmt.Errorf("%w: max id %d, batch size %d", ErrInvalidMaxID, opts.MaxID, opts.BatchSize)
	}

	return &Engine{
		fetcher:   fetcher,
		batchSize: opts.BatchSize,
		maxID:     opts.MaxID,
		excluded:  slices.Clone(opts.ExcludedCategories),
		source:    opts.Source,
	}, nil
}

// BatchSize returns the maximum number of creatures in a batch.
func (e *Engine) BatchSize() int {
	return e.batchSize
}

// LoadCategories lists every type except the excluded ones, in API order.
func (e *Engine) LoadCategories(ctx context.Context) ([]Category, error) {
	list, err := e.fetcher.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing types: %w", err)
	}

	categories := make([]Category, 0, len(list.Results))
	for _, r := range list.Results {
		if slices.Contains(e.excluded, r.Name) {
			continue
		}
		categories = append(categories, Category{Name: r.Name})
	}
	return categories, nil
}

// Load runs the loader for mode.
func (e *Engine) Load(ctx context.Context, mode FetchMode) ([]Creature, error) {
	switch m := mode.(type) {
	case FilteredMode:
		return e.LoadFilteredBatch(ctx, m.Category)
	case RandomMode, nil:
		return e.LoadRandomBatch(ctx)
	default:
		return nil, fmt.Errorf("unsupported fetch mode %T", mode)
	}
}

// LoadRandomBatch draws BatchSize distinct ids and fetches them one at a
// time. The first failure aborts the batch with a *CreatureLoadError.
func (e *Engine) LoadRandomBatch(ctx context.Context) ([]Creature, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "engine")

	ids, err := DrawDistinctIDs(e.source, e.batchSize, e.maxID)
	if err != nil {
		return nil, err
	}
	log.Debug().Ctx(ctx).Ints("ids", ids).Msg("loading random batch")

	creatures := make([]Creature, 0, len(ids))
	for _, id := range ids {
		p, fetchErr := e.fetcher.GetPokemon(ctx, id)
		if fetchErr != nil {
			loadErr := &CreatureLoadError{ID: id, Err: fetchErr}
			var statusErr *pokeapi.StatusError
			if errors.As(fetchErr, &statusErr) {
				loadErr.StatusText = statusErr.StatusText()
			}
			log.Warn().Ctx(ctx).Err(fetchErr).Int("id", id).Msg("random batch aborted")
			return nil, loadErr
		}
		creatures = append(creatures, NewCreature(p))
	}
	return creatures, nil
}

// LoadFilteredBatch lists the members of category, keeps the first
// BatchSize in API order, and fetches their details concurrently. Any
// failure returns a *FilterError.
func (e *Engine) LoadFilteredBatch(ctx context.Context, category string) ([]Creature, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "engine")

	if category == "" {
		return nil, &FilterError{Category: category, Err: ErrEmptyCategory}
	}

	typ, err := e.fetcher.GetType(ctx, category)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("category", category).Msg("type listing failed")
		return nil, &FilterError{Category: category, Err: err}
	}

	members := typ.Pokemon
	if len(members) > e.batchSize {
		members = members[:e.batchSize]
	}
	log.Debug().Ctx(ctx).Str("category", category).Int("members", len(members)).Msg("loading filtered batch")

	creatures := make([]Creature, len(members))
	g, gCtx := errgroup.WithContext(ctx)
	for i, member := range members {
		g.Go(func() error {
			p, fetchErr := e.fetcher.GetPokemonByURL(gCtx, member.Pokemon.URL)
			if fetchErr != nil {
				return fmt.Errorf("fetching %s: %w", member.Pokemon.Name, fetchErr)
			}
			creatures[i] = NewCreature(p)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("category", category).Msg("filtered batch aborted")
		return nil, &FilterError{Category: category, Err: err}
	}
	return creatures, nil
}
