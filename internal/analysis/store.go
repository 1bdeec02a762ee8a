package analysis

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"ic10lsp/internal/config"
)

// Document is the state of one open document. Text and Version always track
// the latest edit; Result is the last revision that parsed.
type Document struct {
	URI     string
	Version int32
	Text    string
	Result  *Result
}

// Store keeps the open documents of a session behind one coarse lock.
// Documents are replaced wholesale, never mutated, so a *Document returned
// by Get stays valid after later edits.
type Store struct {
	analyzer *Analyzer

	mu   sync.RWMutex
	cfg  config.Configuration
	docs map[string]*Document
}

// NewStore returns an empty store analysing with a under cfg.
func NewStore(a *Analyzer, cfg config.Configuration) *Store {
	return &Store{
		analyzer: a,
		cfg:      cfg,
		docs:     make(map[string]*Document),
	}
}

// Open analyses a newly opened document.
func (s *Store) Open(ctx context.Context, uri string, version int32, text string) (*Document, error) {
	return s.update(ctx, uri, version, text)
}

// Change analyses a new revision of uri. A revision older than the stored
// one is ignored and the stored document returned.
func (s *Store) Change(ctx context.Context, uri string, version int32, text string) (*Document, error) {
	return s.update(ctx, uri, version, text)
}

func (s *Store) update(ctx context.Context, uri string, version int32, text string) (*Document, error) {
	cfg := s.Config()
	res, err := s.analyzer.Analyze(ctx, uri, text, cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.docs[uri]
	if prev != nil && prev.Version > version {
		return prev, nil
	}
	doc := &Document{URI: uri, Version: version, Text: text, Result: res}
	if err != nil {
		if prev != nil {
			doc.Result = prev.Result
		}
		s.docs[uri] = doc
		return doc, err
	}
	s.docs[uri] = doc
	return doc, nil
}

// Close forgets uri.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns the current document for uri.
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// URIs returns the open documents in lexical order.
func (s *Store) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		out = append(out, uri)
	}
	sort.Strings(out)
	return out
}

func (s *Store) Config() config.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetConfig replaces the configuration used by later analyses.
func (s *Store) SetConfig(cfg config.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// ReanalyzeAll re-runs every open document under the current configuration,
// concurrently, and returns the documents in URI order. Documents edited
// while the batch ran keep their newer state.
func (s *Store) ReanalyzeAll(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	cfg := s.cfg
	snapshot := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		snapshot = append(snapshot, doc)
	}
	s.mu.RUnlock()
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].URI < snapshot[j].URI })

	results := make([]*Result, len(snapshot))
	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range snapshot {
		g.Go(func() error {
			res, err := s.analyzer.Analyze(gctx, doc.URI, doc.Text, cfg)
			if err != nil {
				// Unparseable documents keep their last good result.
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Document, 0, len(snapshot))
	for i, doc := range snapshot {
		cur, ok := s.docs[doc.URI]
		if !ok {
			continue
		}
		if cur == doc && results[i] != nil {
			cur = &Document{URI: doc.URI, Version: doc.Version, Text: doc.Text, Result: results[i]}
			s.docs[doc.URI] = cur
		}
		out = append(out, cur)
	}
	return out, nil
}
