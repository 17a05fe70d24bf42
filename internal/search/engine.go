package search

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/mitsuke/internal/analytics"
	"github.com/hyperjump/mitsuke/internal/index"
	"github.com/hyperjump/mitsuke/internal/match"
	"github.com/hyperjump/mitsuke/internal/models"
	"github.com/hyperjump/mitsuke/internal/ranking"
)

// popularLimit caps the popular-items list in analytics summaries.
const popularLimit = 10

// Engine is a fully owned search instance: it holds the index, the query
// cache, and the analytics recorder. Construction never fails; a malformed
// corpus degrades to an empty index with a diagnostic.
type Engine struct {
	opts    Options
	logger  *zap.Logger
	matcher *match.Matcher
	scorer  *ranking.Scorer
	rec     *analytics.Recorder
	deb     *debouncer
	now     func() time.Time

	mu    sync.RWMutex
	idx   *index.Index
	cache *lru.Cache[string, []models.SearchResult]

	// matcherCalls counts per-item match evaluations; cache hits must not
	// increase it.
	matcherCalls atomic.Uint64
}

// New builds an engine over corpus. opts should come from DefaultOptions;
// invalid numeric fields are replaced with defaults. A nil logger is allowed.
func New(corpus []models.SearchableItem, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.normalized()

	cache, err := lru.New[string, []models.SearchResult](opts.CacheSize)
	if err != nil {
		// Only reachable with a non-positive size, which normalized() rules out.
		cache, _ = lru.New[string, []models.SearchResult](DefaultCacheSize)
	}

	e := &Engine{
		opts:    opts,
		logger:  logger,
		matcher: match.NewMatcher(opts.FuzzyThreshold),
		scorer:  ranking.NewScorer(nil),
		deb:     newDebouncer(opts.Debounce),
		now:     time.Now,
		idx:     index.Build(corpus, logger),
		cache:   cache,
	}
	if opts.EnableAnalytics {
		e.rec = analytics.NewRecorder(opts.AnalyticsStore, logger)
	}
	logger.Info("search engine ready",
		zap.Int("items", e.idx.Len()),
		zap.Bool("analytics", opts.EnableAnalytics),
	)
	return e
}

// Search debounces and then executes the query. Within a burst only the most
// recent call runs; displaced calls return ErrSuperseded. A search already
// executing is never cancelled by a newer call.
func (e *Engine) Search(ctx context.Context, query string, filters models.Filters) ([]models.SearchResult, error) {
	if err := e.deb.wait(ctx); err != nil {
		return nil, err
	}
	return e.SearchNow(query, filters), nil
}

// SearchNow executes the query synchronously, bypassing the debounce window.
func (e *Engine) SearchNow(query string, filters models.Filters) []models.SearchResult {
	queryNorm := index.Normalize(query)
	if queryNorm == "" {
		return nil
	}

	key := queryNorm + "\x00" + filters.Key()
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}

	if e.rec != nil {
		e.rec.RecordQuery(queryNorm)
	}

	e.mu.RLock()
	idx := e.idx
	e.mu.RUnlock()

	candidates := idx.FuzzyCandidates(queryNorm)
	results := make([]models.SearchResult, 0)
	for i := range idx.Items {
		item := &idx.Items[i]
		res, ok := e.evaluate(item, queryNorm, idx.FullText[item.ID], candidates)
		if ok {
			results = append(results, res)
		}
	}

	// Stable sort keeps corpus scan order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if !filters.IsZero() {
		now := e.now()
		filtered := results[:0]
		for _, r := range results {
			if filters.Match(r.Item, now) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if len(results) > e.opts.MaxResults {
		results = results[:e.opts.MaxResults]
	}

	e.cache.Add(key, results)
	return results
}

// evaluate runs the match stages and the scorer for one item. A panic in
// either is treated as "no match for this item", never as a fatal error.
func (e *Engine) evaluate(item *models.SearchableItem, queryNorm, text string, candidates map[string]struct{}) (res models.SearchResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("match evaluation failed, item skipped",
				zap.String("item_id", item.ID), zap.Any("cause", r))
			ok = false
		}
	}()

	e.matcherCalls.Add(1)

	var (
		score     float64
		matchType models.MatchType
	)
	switch {
	case e.matcher.Exact(queryNorm, text):
		score, matchType = 1.0, models.MatchExact
	default:
		// The n-gram index prunes the fuzzy stage; items sharing no gram
		// with the query fall through to the partial stage.
		if _, candidate := candidates[item.ID]; candidate {
			score = e.matcher.Fuzzy(queryNorm, text)
			matchType = models.MatchFuzzy
		}
		if score == 0 {
			score = e.matcher.Partial(queryNorm, text)
			matchType = models.MatchPartial
		}
	}
	if score == 0 {
		return models.SearchResult{}, false
	}

	var pop ranking.Popularity
	if e.rec != nil {
		pop = e.rec
	}
	return models.SearchResult{
		Item:           item,
		MatchScore:     score,
		RelevanceScore: e.scorer.Score(item, queryNorm, matchType, pop),
		MatchType:      matchType,
		Query:          queryNorm,
	}, true
}

// ItemCount returns the number of indexed items.
func (e *Engine) ItemCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.idx.Len()
}

// UpdateCorpus replaces the index wholesale and invalidates the query cache.
// Atomic from the caller's perspective: queries observe either the old or
// the new corpus, never a mix.
func (e *Engine) UpdateCorpus(corpus []models.SearchableItem) {
	newIdx := index.Build(corpus, e.logger)
	e.mu.Lock()
	e.idx = newIdx
	e.cache.Purge()
	e.mu.Unlock()
	e.logger.Info("corpus updated", zap.Int("items", newIdx.Len()))
}

// RecordClick registers a result selection. No-op when analytics is disabled.
func (e *Engine) RecordClick(itemID, query string) {
	if e.rec == nil {
		return
	}
	e.rec.RecordClick(itemID, index.Normalize(query))
}

// Analytics returns the recent query log and popular items.
func (e *Engine) Analytics() analytics.Summary {
	if e.rec == nil {
		return analytics.Summary{}
	}
	return e.rec.Summary(popularLimit)
}

// Close releases the analytics recorder and its store.
func (e *Engine) Close() error {
	if e.rec == nil {
		return nil
	}
	return e.rec.Close()
}
