package directory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dosewise/medsafe/internal/interaction"

	"github.com/rs/zerolog"
)

const maxSpellingSuggestions = 5

// Client is the drug directory: search, label and interaction lookups over
// the configured sources, memoized through the cache and throttled by the
// sources' shared rate limiter. It is constructed once and shared; there are
// no package-level singletons.
//
// Transport and parse failures never escape Search/Label lookups: they are
// logged and degrade to empty results. Interaction lookups are the exception:
// their tri-state Report keeps "could not check" distinguishable from "no
// interactions found", because collapsing the two would turn an outage into
// an implied safety guarantee.
type Client struct {
	labels       LabelSource
	interactions InteractionSource
	cache        Cache
	log          zerolog.Logger
}

func NewClient(labels LabelSource, interactions InteractionSource, cache Cache, log zerolog.Logger) *Client {
	if interactions == nil {
		interactions = NewLabelScanSource(labels, log)
	}
	return &Client{
		labels:       labels,
		interactions: interactions,
		cache:        cache,
		log:          log,
	}
}

// SearchDrugs queries the directory by brand/generic/ingredient text. Hits
// are deduplicated by display name, ranked (exact match, then prefix match,
// then alphabetical) and truncated to limit. Results are cached by
// case-folded query; an upstream miss or failure yields an empty slice.
func (c *Client) SearchDrugs(ctx context.Context, query string, limit int) []DrugInfo {
	key := cacheKey(query)
	if key == "" {
		return []DrugInfo{}
	}

	if cached, ok := c.cache.Get(ctx, key); ok {
		return truncate(cached, limit)
	}

	raw, err := c.labels.Search(ctx, query, searchFetchSize(limit))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.Warn().Err(err).Str("query", query).Msg("drug search failed")
			return []DrugInfo{}
		}
		raw = nil
	}

	ranked := rankResults(dedupeByName(raw), key)
	c.cache.Set(ctx, key, ranked)

	return truncate(ranked, limit)
}

// GetDrugLabel fetches the single best label match, or nil when the upstream
// has no match or could not be reached.
func (c *Client) GetDrugLabel(ctx context.Context, name string) *DrugLabel {
	label, err := c.labels.Label(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.Warn().Err(err).Str("drug", name).Msg("label fetch failed")
		}
		return nil
	}
	return label
}

// GetDrugInteractions checks every pair among the supplied names. Fewer than
// two names short-circuits to a none-found report without any network call.
// An empty interaction list must be read as "no known interactions", never
// as "safe".
func (c *Client) GetDrugInteractions(ctx context.Context, names []string) interaction.Report {
	if len(names) < 2 {
		return interaction.Report{Status: interaction.StatusNoneFound, Interactions: []interaction.Interaction{}}
	}

	found, err := c.interactions.Interactions(ctx, names)
	if err != nil {
		c.log.Warn().Err(err).Strs("drugs", names).Msg("interaction lookup unavailable")
		return interaction.Report{Status: interaction.StatusUnavailable, Interactions: []interaction.Interaction{}}
	}
	if len(found) == 0 {
		return interaction.Report{Status: interaction.StatusNoneFound, Interactions: []interaction.Interaction{}}
	}
	return interaction.Report{Status: interaction.StatusFound, Interactions: found}
}

// GetSpellingSuggestions returns up to 5 distinct display names as "did you
// mean" candidates, for use when a direct search comes back empty.
func (c *Client) GetSpellingSuggestions(ctx context.Context, query string) []string {
	results := c.SearchDrugs(ctx, query, maxSpellingSuggestions*5)

	seen := make(map[string]struct{})
	var suggestions []string
	for _, r := range results {
		name := r.DisplayName()
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, name)
		if len(suggestions) == maxSpellingSuggestions {
			break
		}
	}
	return suggestions
}

// searchFetchSize over-fetches so deduplication still leaves enough rows to
// fill the caller's limit.
func searchFetchSize(limit int) int {
	if limit <= 0 {
		limit = 10
	}
	size := limit * 3
	if size > 100 {
		size = 100
	}
	return size
}

func dedupeByName(results []DrugInfo) []DrugInfo {
	seen := make(map[string]struct{}, len(results))
	out := make([]DrugInfo, 0, len(results))
	for _, r := range results {
		name := strings.ToLower(r.DisplayName())
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, r)
	}
	return out
}

func rankResults(results []DrugInfo, foldedQuery string) []DrugInfo {
	rank := func(d DrugInfo) int {
		name := strings.ToLower(d.DisplayName())
		switch {
		case name == foldedQuery:
			return 0
		case strings.HasPrefix(name, foldedQuery):
			return 1
		default:
			return 2
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := rank(results[i]), rank(results[j])
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(results[i].DisplayName()) < strings.ToLower(results[j].DisplayName())
	})

	return results
}

func truncate(results []DrugInfo, limit int) []DrugInfo {
	if limit <= 0 || limit >= len(results) {
		out := make([]DrugInfo, len(results))
		copy(out, results)
		return out
	}
	out := make([]DrugInfo, limit)
	copy(out, results[:limit])
	return out
}
