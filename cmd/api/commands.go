package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/session"
	"github.com/xavierca1/sankhya-leads/internal/selector"
)

func recalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recalc <CODLEAD>",
		Short: "Recalcula o valor total de um lead a partir dos produtos ativos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			total, err := a.recalc.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Lead %s: novo valor total %s\n", args[0], entity.FormatAmount(total))
			return nil
		},
	}
}

func buscarCmd() *cobra.Command {
	var (
		limit   int
		estoque bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "buscar <texto>",
		Short: "Busca produtos no Sankhya como o seletor do front-end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runBuscar(ctx, cmd.OutOrStdout(), a.products, args[0], limit, estoque)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", selector.DefaultLimit, "Máximo de produtos")
	cmd.Flags().BoolVar(&estoque, "estoque", false, "Mostra estoque e preço do primeiro resultado")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Tempo máximo de espera")
	return cmd
}

func runBuscar(ctx context.Context, out io.Writer, catalog entity.ProductCatalog, text string, limit int, estoque bool) error {
	changes := make(chan selector.Snapshot, 16)
	sel := selector.New(catalog, selector.Options{
		Debounce: time.Millisecond,
		Limit:    limit,
		OnChange: func(snap selector.Snapshot) {
			select {
			case changes <- snap:
			default:
			}
		},
	})
	defer sel.Close()

	if len([]rune(strings.TrimSpace(text))) < selector.DefaultMinChars {
		return fmt.Errorf("digite pelo menos %d caracteres", selector.DefaultMinChars)
	}

	sel.Open()
	if err := sel.Type(text); err != nil {
		return err
	}

	snap, err := waitFor(ctx, changes, func(s selector.Snapshot) bool {
		return s.State == selector.StateResults && !s.Loading
	})
	if err != nil {
		return err
	}
	if snap.Err != nil {
		return snap.Err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODPROD\tDESCRPROD\tMARCA\tUNIDADE\tPREÇO")
	for _, p := range snap.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.CodProd, p.DescrProd, p.Marca, p.Unidade, selector.FormatCurrency(p.ListPrice()))
	}
	w.Flush()
	fmt.Fprintf(out, "%d produtos encontrados\n", len(snap.Results))

	if !estoque || len(snap.Results) == 0 {
		return nil
	}

	first := snap.Results[0]
	if err := sel.Select(first.CodProd); err != nil {
		return err
	}
	snap, err = waitFor(ctx, changes, func(s selector.Snapshot) bool {
		return s.Review != nil && !s.Review.Loading
	})
	if err != nil {
		return err
	}

	review := snap.Review
	fmt.Fprintf(out, "\n%s - %s | preço %s\n", first.CodProd, first.DescrProd, selector.FormatCurrency(review.Price))
	if review.Err != nil {
		fmt.Fprintf(out, "Falha ao carregar estoque: %v\n", review.Err)
		return nil
	}

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOCAL\tCONTROLE\tESTOQUE")
	for _, loc := range review.Stock.Locations {
		fmt.Fprintf(w, "%s\t%s\t%s\n", loc.CodLocal, loc.Controle, selector.FormatQuantity(loc.Estoque))
	}
	w.Flush()
	fmt.Fprintf(out, "Estoque total: %s\n", selector.FormatQuantity(entity.FormatNumber(review.Stock.Total)))
	return nil
}

func waitFor(ctx context.Context, changes <-chan selector.Snapshot, done func(selector.Snapshot) bool) (selector.Snapshot, error) {
	for {
		select {
		case snap := <-changes:
			if done(snap) {
				return snap, nil
			}
		case <-ctx.Done():
			return selector.Snapshot{}, errors.New("tempo esgotado aguardando o Sankhya")
		}
	}
}

func sessaoCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "sessao <id> <nome> <role>",
		Short: "Emite um token de sessão assinado para o cookie \"user\"",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			token, err := a.signer.Issue(entity.SessionUser{ID: args[0], Name: args[1], Role: args[2]}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", session.DefaultTTL, "Validade do token")
	return cmd
}
