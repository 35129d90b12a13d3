package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lexdrill/internal/flags"
	"github.com/verte-zerg/lexdrill/internal/store"
)

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage groups (languages)",
		Args:  cobra.NoArgs,
		RunE:  runGroupsList,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE:  runGroupsList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				g, err := st.CreateGroup(ctx, args[0])
				if err != nil {
					return err
				}
				return writeLines(cmd.OutOrStdout(), "Created group "+flags.Label(g.Name))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				return st.RenameGroup(ctx, args[0], args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a group with its dictionaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *store.Store) error {
				return st.DeleteGroup(ctx, args[0])
			})
		},
	})
	return cmd
}

func runGroupsList(cmd *cobra.Command, _ []string) error {
	return withStore(func(ctx context.Context, st *store.Store) error {
		groups, err := st.ListGroups(ctx)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			return writeLines(cmd.OutOrStdout(), "No groups yet. Create one with: lexdrill groups add NAME")
		}
		for _, g := range groups {
			dicts, err := st.ListDictionaries(ctx, g.Name)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s (%d dictionaries)", flags.Label(g.Name), len(dicts))
			if err := writeLines(cmd.OutOrStdout(), line); err != nil {
				return err
			}
		}
		return nil
	})
}
