package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lexdrill/internal/model"
	"github.com/verte-zerg/lexdrill/internal/store"
	"github.com/verte-zerg/lexdrill/internal/wordlist"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage dictionaries",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list GROUP",
		Short: "List dictionaries of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				dicts, err := st.ListDictionaries(ctx, args[0])
				if err != nil {
					return err
				}
				if len(dicts) == 0 {
					return writeLines(cmd.OutOrStdout(), "No dictionaries in "+args[0])
				}
				for _, d := range dicts {
					words, err := st.LoadWords(ctx, d.ID)
					if err != nil {
						return err
					}
					if err := writeLines(cmd.OutOrStdout(), fmt.Sprintf("%s (%d words)", d.Name, len(words))); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add GROUP NAME",
		Short: "Create a dictionary",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				_, err := st.CreateDictionary(ctx, args[0], args[1])
				return err
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename GROUP OLD NEW",
		Short: "Rename a dictionary",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				return st.RenameDictionary(ctx, args[0], args[1], args[2])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm GROUP NAME",
		Short: "Delete a dictionary with its words",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				return st.DeleteDictionary(ctx, args[0], args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show GROUP NAME",
		Short: "Print the words of a dictionary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				d, err := st.GetDictionary(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				words, err := st.LoadWords(ctx, d.ID)
				if err != nil {
					return err
				}
				return writeLines(cmd.OutOrStdout(), formatWords(words)...)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import GROUP NAME FILE",
		Short: "Append word pairs from a text file, creating the dictionary if needed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := wordlist.LoadPairs(args[2])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[2], err)
			}
			return withStore(func(ctx context.Context, st *store.Store) error {
				d, err := getOrCreateDictionary(ctx, st, args[0], args[1])
				if err != nil {
					return err
				}
				added, err := st.ImportWords(ctx, d.ID, pairs)
				if err != nil {
					return err
				}
				return writeLines(cmd.OutOrStdout(), fmt.Sprintf("Imported %d words into %s / %s", len(added), d.Group, d.Name))
			})
		},
	})
	return cmd
}

func getOrCreateDictionary(ctx context.Context, st *store.Store, group, name string) (model.Dictionary, error) {
	d, err := st.GetDictionary(ctx, group, name)
	if errors.Is(err, store.ErrNotFound) {
		return st.CreateDictionary(ctx, group, name)
	}
	return d, err
}

func formatWords(words []model.WordPair) []string {
	if len(words) == 0 {
		return []string{"No words yet."}
	}
	lines := make([]string, 0, len(words))
	for _, w := range words {
		mark := " "
		if w.Learned {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%5d %s %s\t%s", w.ID, mark, w.Native, w.Foreign))
	}
	return lines
}
