package main

import (
	"fmt"

	"github.com/AlexanderThaller/tack/pkg/repo"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "add [files...]",
		Short: "Stage files for the next commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if all {
				staged, err := r.StageAll()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "staged %d file(s)\n", len(staged))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("nothing specified; use paths or -A to stage everything")
			}
			return r.Add(args)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "A", false, "stage every tracked-eligible file in the repository")

	return cmd
}
