package main

import (
	"os"

	"github.com/spf13/cobra"

	historycmder "github.com/parleylabs/parley/cmd/parleyctl/history"
	saycmder "github.com/parleylabs/parley/cmd/parleyctl/say"
)

func main() {
	root := &cobra.Command{
		Use:   "parleyctl",
		Short: "Interact with a parley voice endpoint from the terminal",
	}

	root.AddCommand(saycmder.NewSayCmd())
	root.AddCommand(historycmder.NewHistoryCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
