package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gkze/multilint/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, cmd.ErrToolsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
