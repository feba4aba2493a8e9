// Package selector implementa o fluxo de busca de produto e revisão de estoque
// usado pelo front-end: digitar, escolher um produto, conferir estoque e preço, confirmar.
package selector

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/sankhya-leads/internal/entity"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultMinChars = 2
	DefaultLimit    = 20
)

var (
	ErrInvalidState   = errors.New("operação não permitida no estado atual")
	ErrUnknownProduct = errors.New("produto não está nos resultados")
	ErrReviewLoading  = errors.New("estoque e preço ainda carregando")
)

type State int

const (
	StateClosed State = iota
	StateSearching
	StateResults
	StateStockReview
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateSearching:
		return "searching"
	case StateResults:
		return "results"
	case StateStockReview:
		return "stock-review"
	}
	return "unknown"
}

// Selection é o que o seletor entrega ao confirmar.
type Selection struct {
	Product entity.Product
	Price   float64
}

type StockReview struct {
	Product     entity.Product
	Stock       *entity.StockSummary
	Price       float64
	SearchLocal string
	Loading     bool
	Err         error
}

type Snapshot struct {
	State   State
	Query   string
	Results []entity.Product
	Loading bool
	Err     error
	Review  *StockReview
}

type Options struct {
	Debounce  time.Duration
	MinChars  int
	Limit     int
	OnConfirm func(Selection)
	OnChange  func(Snapshot)
}

type Selector struct {
	catalog entity.ProductCatalog
	opts    Options

	mu      sync.Mutex
	state   State
	query   string
	results []entity.Product
	loading bool
	err     error

	// Registro de busca pendente: só a geração atual pode gravar resultados.
	searchGen    uint64
	timer        *time.Timer
	searchCancel context.CancelFunc

	review       *StockReview
	reviewGen    uint64
	reviewCancel context.CancelFunc
}

func New(catalog entity.ProductCatalog, opts Options) *Selector {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinChars <= 0 {
		opts.MinChars = DefaultMinChars
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return &Selector{catalog: catalog, opts: opts}
}

func (s *Selector) Open() {
	s.mu.Lock()
	if s.state != StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateSearching
	s.mu.Unlock()
	s.notify()
}

// Type registra o texto digitado. A busca só sai depois do debounce e
// qualquer busca anterior ainda pendente é descartada.
func (s *Selector) Type(text string) error {
	s.mu.Lock()
	if s.state != StateSearching && s.state != StateResults {
		s.mu.Unlock()
		return ErrInvalidState
	}

	s.searchGen++
	gen := s.searchGen
	s.stopSearchLocked()
	s.query = text

	if len([]rune(strings.TrimSpace(text))) < s.opts.MinChars {
		s.results = nil
		s.err = nil
		s.loading = false
		s.state = StateSearching
		s.mu.Unlock()
		s.notify()
		return nil
	}

	s.timer = time.AfterFunc(s.opts.Debounce, func() { s.search(gen, text) })
	s.mu.Unlock()
	return nil
}

func (s *Selector) search(gen uint64, text string) {
	s.mu.Lock()
	if gen != s.searchGen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.searchCancel = cancel
	s.loading = true
	s.mu.Unlock()
	s.notify()

	products, err := s.catalog.Search(ctx, strings.TrimSpace(text), s.opts.Limit)
	cancel()

	s.mu.Lock()
	if gen != s.searchGen {
		s.mu.Unlock()
		log.Printf("🔍 Resultado descartado para %q (busca substituída)", text)
		return
	}
	s.searchCancel = nil
	s.loading = false
	s.err = err
	s.results = products
	if err != nil {
		s.results = nil
	}
	if s.state == StateSearching {
		s.state = StateResults
	}
	s.mu.Unlock()
	s.notify()
}

// Select abre a revisão de estoque do produto e busca estoque e preço em paralelo.
func (s *Selector) Select(codProd string) error {
	s.mu.Lock()
	if s.state != StateResults {
		s.mu.Unlock()
		return ErrInvalidState
	}

	var (
		product entity.Product
		found   bool
	)
	for _, p := range s.results {
		if p.CodProd == codProd {
			product, found = p, true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrUnknownProduct
	}

	s.state = StateStockReview
	s.review = &StockReview{Product: product}
	s.startReviewLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

// FilterStock refaz a consulta de estoque só com os locais que contêm term.
func (s *Selector) FilterStock(term string) error {
	s.mu.Lock()
	if s.state != StateStockReview {
		s.mu.Unlock()
		return ErrInvalidState
	}
	s.review.SearchLocal = strings.TrimSpace(term)
	s.startReviewLocked()
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Selector) startReviewLocked() {
	if s.reviewCancel != nil {
		s.reviewCancel()
	}
	s.reviewGen++
	gen := s.reviewGen
	ctx, cancel := context.WithCancel(context.Background())
	s.reviewCancel = cancel

	s.review.Loading = true
	s.review.Err = nil
	product := s.review.Product
	searchLocal := s.review.SearchLocal

	go s.loadReview(ctx, gen, product, searchLocal)
}

func (s *Selector) loadReview(ctx context.Context, gen uint64, product entity.Product, searchLocal string) {
	var (
		stock *entity.StockSummary
		price float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.catalog.Stock(gctx, product.CodProd, searchLocal)
		stock = summary
		return err
	})
	g.Go(func() error {
		p, err := s.catalog.Price(gctx, product.CodProd)
		if err != nil || p == 0 {
			p = product.ListPrice()
		}
		price = p
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	if gen != s.reviewGen || s.review == nil {
		s.mu.Unlock()
		return
	}
	s.review.Loading = false
	s.review.Price = price
	s.review.Stock = stock
	s.review.Err = err
	if err != nil {
		log.Printf("❌ Erro ao carregar estoque do produto %s: %v", product.CodProd, err)
	}
	s.mu.Unlock()
	s.notify()
}

// Confirm entrega (produto, preço) ao OnConfirm e fecha o seletor.
func (s *Selector) Confirm() (Selection, error) {
	s.mu.Lock()
	if s.state != StateStockReview {
		s.mu.Unlock()
		return Selection{}, ErrInvalidState
	}
	if s.review.Loading {
		s.mu.Unlock()
		return Selection{}, ErrReviewLoading
	}
	selection := Selection{Product: s.review.Product, Price: s.review.Price}
	s.resetLocked()
	s.mu.Unlock()

	if s.opts.OnConfirm != nil {
		s.opts.OnConfirm(selection)
	}
	s.notify()
	return selection, nil
}

// Cancel volta da revisão de estoque para a lista de resultados.
func (s *Selector) Cancel() error {
	s.mu.Lock()
	if s.state != StateStockReview {
		s.mu.Unlock()
		return ErrInvalidState
	}
	s.stopReviewLocked()
	s.state = StateResults
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Selector) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Selector) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Selector) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   s.state,
		Query:   s.query,
		Results: append([]entity.Product(nil), s.results...),
		Loading: s.loading,
		Err:     s.err,
	}
	if s.review != nil {
		review := *s.review
		snap.Review = &review
	}
	return snap
}

func (s *Selector) resetLocked() {
	s.searchGen++
	s.stopSearchLocked()
	s.stopReviewLocked()
	s.state = StateClosed
	s.query = ""
	s.results = nil
	s.loading = false
	s.err = nil
}

func (s *Selector) stopSearchLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.searchCancel != nil {
		s.searchCancel()
		s.searchCancel = nil
	}
	s.loading = false
}

func (s *Selector) stopReviewLocked() {
	s.reviewGen++
	if s.reviewCancel != nil {
		s.reviewCancel()
		s.reviewCancel = nil
	}
	s.review = nil
}

func (s *Selector) notify() {
	if s.opts.OnChange == nil {
		return
	}
	s.opts.OnChange(s.Snapshot())
}
