package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ogrenci-destek/destekai/internal/cli"
	"github.com/ogrenci-destek/destekai/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "destekd",
		Short: "Student support daemon and CLI",
		Long:  "Student support daemon for running the chat API server and managing the knowledge index",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.KnowledgeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
