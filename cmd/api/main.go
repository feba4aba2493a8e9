package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
	appName = "sankhya-leads"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Integração de leads e produtos com o ERP Sankhya",
		Long: `sankhya-leads expõe a API usada pelo front-end de vendas para
buscar produtos, consultar estoque e preço, e incluir produtos nos leads
mantendo o valor total do lead atualizado no Sankhya.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		serveCmd(),
		recalcCmd(),
		buscarCmd(),
		sessaoCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Mostra a versão",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s versão %s\n", appName, Version)
			},
		},
	)

	return cmd
}
