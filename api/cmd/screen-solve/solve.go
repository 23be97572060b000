package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"screen-solve/api/internal/util"
)

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve <image-file>",
		Short: "Solve a local screenshot and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
			defer cancel()

			solver, closeJournal, err := a.newSolver(ctx)
			if err != nil {
				return err
			}
			defer closeJournal()

			res, err := solver.Solve(ctx, util.MakeDataURL(util.SniffMimeHTTP(img), img))
			if err != nil {
				fmt.Fprintf(a.stderr, "screen-solve: %v\n", err)
				return errExit
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
