package search

import (
	"slices"
	"sync"
)

// Reader é a visão somente-leitura do estado de busca.
type Reader[T any] interface {
	Facets() Facets
	Page() int
	PageCount() int
	Results() []T
	PageItems() []T
}

// Writer altera facetas, fonte e página. Qualquer mudança de fonte ou
// faceta recalcula o resultado e volta para a página 1.
type Writer[T any] interface {
	SetSource(items []T)
	SetFacets(f Facets)
	SetTitle(q string)
	SetLocation(q string)
	ToggleCategory(c string)
	ToggleLocation(l string)
	ClearSearch()
	SetPage(p int)
}

// State substitui o contexto global compartilhado do front: um objeto
// explícito passado a quem precisa, com Reader ou Writer conforme o papel.
type State[T any] struct {
	mu      sync.RWMutex
	fields  func(T) Fields
	source  []T
	facets  Facets
	results []T
	page    int
}

func NewState[T any](fields func(T) Fields) *State[T] {
	return &State[T]{fields: fields, results: []T{}, page: 1}
}

var (
	_ Reader[int] = (*State[int])(nil)
	_ Writer[int] = (*State[int])(nil)
)

// recompute deve ser chamado com mu travado para escrita.
func (s *State[T]) recompute() {
	s.results = Filter(s.source, s.facets, s.fields)
	s.page = 1
}

func (s *State[T]) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.recompute()
}

func (s *State[T]) SetSource(items []T) {
	s.update(func() { s.source = slices.Clone(items) })
}

// SetFacets troca todas as facetas de uma vez; seleções repetidas contam uma vez só.
func (s *State[T]) SetFacets(f Facets) {
	s.update(func() {
		s.facets = Facets{
			Title:      f.Title,
			Location:   f.Location,
			Categories: dedupe(f.Categories),
			Locations:  dedupe(f.Locations),
		}
	})
}

func dedupe(set []string) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *State[T]) SetTitle(q string)    { s.update(func() { s.facets.Title = q }) }
func (s *State[T]) SetLocation(q string) { s.update(func() { s.facets.Location = q }) }

func (s *State[T]) ClearSearch() {
	s.update(func() { s.facets.Title, s.facets.Location = "", "" })
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}

func (s *State[T]) ToggleCategory(c string) {
	s.update(func() { s.facets.Categories = toggle(s.facets.Categories, c) })
}

func (s *State[T]) ToggleLocation(l string) {
	s.update(func() { s.facets.Locations = toggle(s.facets.Locations, l) })
}

// SetPage limita p ao intervalo [1, PageCount].
func (s *State[T]) SetPage(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := max(PageCount(len(s.results)), 1)
	s.page = min(max(p, 1), last)
}

func (s *State[T]) Facets() Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.facets
	f.Categories = slices.Clone(f.Categories)
	f.Locations = slices.Clone(f.Locations)
	return f
}

func (s *State[T]) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

func (s *State[T]) PageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PageCount(len(s.results))
}

func (s *State[T]) Results() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results)
}

func (s *State[T]) PageItems() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(Paginate(s.results, s.page))
}
