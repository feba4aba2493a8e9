package usecase

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/xavierca1/sankhya-leads/internal/entity"
	"golang.org/x/sync/errgroup"
)

// MaxBatchSize é quantos códigos o batch-info processa; o excedente é ignorado.
const MaxBatchSize = 20

type BatchInfoUseCase struct {
	Prices PriceLookup
	Stock  StockLookup
}

func NewBatchInfoUseCase(prices PriceLookup, stock StockLookup) *BatchInfoUseCase {
	return &BatchInfoUseCase{Prices: prices, Stock: stock}
}

// Execute busca preço e estoque de cada código em paralelo. A falha de um código
// vira {preco: 0, estoque: 0, error: true} só para ele.
func (uc *BatchInfoUseCase) Execute(ctx context.Context, codigos []string) map[string]ProductInfo {
	if len(codigos) > MaxBatchSize {
		codigos = codigos[:MaxBatchSize]
	}

	var (
		mu      sync.Mutex
		results = make(map[string]ProductInfo, len(codigos))
		g       errgroup.Group
	)

	for _, codProd := range codigos {
		codProd := codProd
		g.Go(func() error {
			info := uc.lookup(ctx, codProd)
			mu.Lock()
			results[codProd] = info
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (uc *BatchInfoUseCase) lookup(ctx context.Context, codProd string) ProductInfo {
	if strings.TrimSpace(codProd) == "" {
		return ProductInfo{Error: true}
	}

	var (
		preco float64
		stock *entity.StockSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := uc.Prices.Price(gctx, codProd)
		preco = p
		return err
	})
	g.Go(func() error {
		s, err := uc.Stock.Stock(gctx, codProd, "")
		stock = s
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("⚠️ batch-info: produto %s sem preço/estoque: %v", codProd, err)
		return ProductInfo{Error: true}
	}

	info := ProductInfo{Preco: preco}
	if stock != nil {
		info.Estoque = stock.Total
	}
	return info
}
