package main

import (
	"fmt"
	"strings"

	"github.com/AlexanderThaller/tack/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string
	var author string
	var sign bool
	var keyPath string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record staged changes to the repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if author == "" {
				author = r.Author()
			}

			var signer repo.CommitSigner
			if sign {
				s, resolvedKey, err := newSSHCommitSigner(keyPath)
				if err != nil {
					return err
				}
				signer = s
				fmt.Fprintf(cmd.OutOrStdout(), "signing with %s\n", resolvedKey)
			}

			h, err := r.CommitWithSigner(message, author, signer)
			if err != nil {
				return err
			}

			// Determine current branch name for output.
			branch := "HEAD"
			head, err := r.Head()
			if err == nil && strings.HasPrefix(head, "refs/heads/") {
				branch = strings.TrimPrefix(head, "refs/heads/")
			}

			// Short hash: first 8 characters.
			short := string(h)
			if len(short) > 8 {
				short = short[:8]
			}

			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", branch, short, message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&author, "author", "", "override author (default: repository config)")
	cmd.Flags().BoolVarP(&sign, "sign", "S", false, "sign the commit with an SSH private key")
	cmd.Flags().StringVar(&keyPath, "key", "", "SSH private key to sign with (default: ~/.ssh/id_*)")

	return cmd
}
