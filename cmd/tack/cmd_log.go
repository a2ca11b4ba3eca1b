package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlexanderThaller/tack/pkg/object"
	"github.com/AlexanderThaller/tack/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log [ref]",
		Short: "Show commit history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			ref := "HEAD"
			if len(args) == 1 {
				ref = args[0]
			}

			startHash, err := r.ResolveRef(ref)
			if err != nil {
				return fmt.Errorf("cannot resolve %s: %w", ref, err)
			}

			entries, err := r.History(startHash).Collect(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no commits yet")
				return nil
			}

			// Determine the current branch name for decoration.
			branchName := ""
			head, err := r.Head()
			if err == nil && strings.HasPrefix(head, "refs/heads/") {
				branchName = strings.TrimPrefix(head, "refs/heads/")
			}
			headHash, err := r.ResolveRef("HEAD")
			if err != nil {
				headHash = ""
			}

			out := cmd.OutOrStdout()
			for _, entry := range entries {
				h := entry.Hash
				c := entry.Commit
				decoration := buildDecoration(h, headHash, branchName)

				if oneline {
					short := string(h)
					if len(short) > 8 {
						short = short[:8]
					}
					if decoration != "" {
						fmt.Fprintf(out, "%s %s %s\n", short, decoration, c.Message)
					} else {
						fmt.Fprintf(out, "%s %s\n", short, c.Message)
					}
				} else {
					if decoration != "" {
						fmt.Fprintf(out, "commit %s %s\n", h, decoration)
					} else {
						fmt.Fprintf(out, "commit %s\n", h)
					}
					fmt.Fprintf(out, "Author: %s\n", c.Author)
					fmt.Fprintf(out, "Date:   %s\n", time.Unix(c.Timestamp, 0).Format("2006-01-02 15:04:05"))
					fmt.Fprintln(out)
					fmt.Fprintf(out, "    %s\n", c.Message)
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "one line per commit")
	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "limit number of commits shown (0 = all)")

	return cmd
}

// buildDecoration formats the "(HEAD -> branch)" style annotation for a commit.
func buildDecoration(h, headHash object.Hash, branchName string) string {
	if headHash == "" || h != headHash {
		return ""
	}
	if branchName != "" {
		return fmt.Sprintf("(HEAD -> %s)", branchName)
	}
	return "(HEAD)"
}
