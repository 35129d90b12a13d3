package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lexdrill/internal/store"
)

func newWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Manage words",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add GROUP DICT NATIVE FOREIGN",
		Short: "Add a word pair",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				d, err := st.GetDictionary(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				w, err := st.AddWord(ctx, d.ID, args[2], args[3])
				if err != nil {
					return err
				}
				return writeLines(cmd.OutOrStdout(), fmt.Sprintf("Added word %d", w.ID))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm ID",
		Short: "Delete a word pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseWordID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *store.Store) error {
				return st.DeleteWord(ctx, id)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit ID NATIVE FOREIGN",
		Short: "Replace both sides of a word pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseWordID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *store.Store) error {
				return st.UpdateWord(ctx, id, args[1], args[2])
			})
		},
	})
	return cmd
}

func parseWordID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid word id %q", raw)
	}
	return id, nil
}
