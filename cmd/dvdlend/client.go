package main

import (
	"dvdlend/internal/catalog"
	"dvdlend/internal/circulation"
	"dvdlend/internal/clients"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFriendCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "friend", Short: "Register and list friends"}

	var name, phone, email string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a friend",
		RunE: func(cmd *cobra.Command, args []string) error {
			person, err := clients.NewClient(opts.addr, nil).RegisterFriend(cmd.Context(), name, phone, email)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), person)
		},
	}
	add.Flags().StringVar(&name, "name", "", "friend's name")
	add.Flags().StringVar(&phone, "phone", "", "phone number")
	add.Flags().StringVar(&email, "email", "", "email address")
	add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := clients.NewClient(opts.addr, nil).ListFriends(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), people)
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newDVDCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "dvd", Short: "Register and list DVDs"}

	var in catalog.MediaItemInput
	var genre string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a DVD",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := catalog.ParseGenre(genre)
			if err != nil {
				return err
			}
			in.Genre = g
			item, err := clients.NewClient(opts.addr, nil).RegisterDVD(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	add.Flags().StringVar(&in.Title, "title", "", "title")
	add.Flags().StringVar(&in.Synopsis, "synopsis", "", "short synopsis")
	add.Flags().StringVar(&in.Director, "director", "", "director")
	add.Flags().StringVar(&in.LeadActor, "lead-actor", "", "lead actor")
	add.Flags().StringVar(&genre, "genre", "", fmt.Sprintf("one of %v", catalog.Genres()))
	add.Flags().IntVar(&in.MinimumAge, "minimum-age", 0, "minimum age rating")
	add.MarkFlagRequired("title")
	add.MarkFlagRequired("genre")

	list := &cobra.Command{
		Use:   "list",
		Short: "List DVDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := clients.NewClient(opts.addr, nil).ListDVDs(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newLoanCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "loan", Short: "Borrow and return DVDs"}

	borrow := &cobra.Command{
		Use:   "borrow <friend-id> <dvd-id>",
		Short: "Lend a DVD to a friend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			loan, err := clients.NewClient(opts.addr, nil).Borrow(cmd.Context(), ids[0], ids[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), loan)
		},
	}

	ret := &cobra.Command{
		Use:   "return <loan-id>",
		Short: "Mark a loan returned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			loan, err := clients.NewClient(opts.addr, nil).Return(cmd.Context(), ids[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), loan)
		},
	}

	active := &cobra.Command{
		Use:   "active",
		Short: "List loans not yet returned",
		RunE: func(cmd *cobra.Command, args []string) error {
			loans, err := clients.NewClient(opts.addr, nil).ActiveLoans(cmd.Context())
			if err != nil {
				return err
			}
			if loans == nil {
				loans = []circulation.Loan{}
			}
			return printJSON(cmd.OutOrStdout(), loans)
		},
	}

	cmd.AddCommand(borrow, ret, active)
	return cmd
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", arg, err)
		}
		ids[i] = id
	}
	return ids, nil
}
