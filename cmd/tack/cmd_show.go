package main

import (
	"fmt"
	"time"

	"github.com/AlexanderThaller/tack/pkg/object"
	"github.com/AlexanderThaller/tack/pkg/repo"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <object>",
		Short: "Print an object from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			// Accept either a raw hash or a ref name.
			var h object.Hash
			if object.ValidHash(args[0]) {
				h = object.Hash(args[0])
			} else {
				h, err = r.ResolveRef(args[0])
				if err != nil {
					return fmt.Errorf("cannot resolve %s: %w", args[0], err)
				}
			}

			objType, data, err := r.Store.Read(h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch objType {
			case object.TypeBlob:
				blob, err := object.UnmarshalBlob(data)
				if err != nil {
					return err
				}
				out.Write(blob.Data)

			case object.TypeTree:
				tree, err := object.UnmarshalTree(data)
				if err != nil {
					return err
				}
				for _, e := range tree.Entries {
					if e.IsDir {
						fmt.Fprintf(out, "%s tree %s\t%s/\n", e.Mode, e.SubtreeHash, e.Name)
					} else {
						fmt.Fprintf(out, "%s blob %s\t%s\n", e.Mode, e.BlobHash, e.Name)
					}
				}

			case object.TypeCommit:
				c, err := object.UnmarshalCommit(data)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "commit %s\n", h)
				fmt.Fprintf(out, "tree %s\n", c.TreeHash)
				for _, p := range c.Parents {
					fmt.Fprintf(out, "parent %s\n", p)
				}
				fmt.Fprintf(out, "Author: %s\n", c.Author)
				fmt.Fprintf(out, "Date:   %s\n", time.Unix(c.Timestamp, 0).Format("2006-01-02 15:04:05"))
				if c.Signature != "" {
					fmt.Fprintf(out, "Signature: %s\n", c.Signature)
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "    %s\n", c.Message)

			default:
				return fmt.Errorf("unknown object type %q", objType)
			}
			return nil
		},
	}
}
