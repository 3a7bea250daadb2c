package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/catalog-browser/internal/api/client"
)

func sessionsCmd() *cobra.Command {
	sessionsRoot := &cobra.Command{
		Use:   "sessions",
		Short: "Drive browsing sessions on a running server",
		Long: "Create and page through browsing sessions held by a running\n" +
			"catalog-browser server, using its JSON API.",
	}

	sessionsRoot.AddCommand(
		sessionCreateCmd(),
		sessionGetCmd(),
		sessionInitCmd(),
		sessionNextCmd(),
		sessionDeleteCmd(),
	)

	return sessionsRoot
}

func sessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Start a session and load its first page",
		Example: `  catalog-browser sessions create
  catalog-browser sessions create --server http://shop.internal:8080 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newAPIClient().CreateSession(cmd.Context())
			if err != nil {
				return err
			}
			return printSession(cmd.OutOrStdout(), s)
		},
	}
}

func sessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show a session's loaded products",
		Example: `  catalog-browser sessions get 6f1c0d1e-8d4b-4a8e-9a51-3c7d9e0b2f10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAPIClient().GetSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSession(cmd.OutOrStdout(), s)
		},
	}
}

func sessionInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <id>",
		Short: "Reload a session from the first page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAPIClient().InitSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSession(cmd.OutOrStdout(), s)
		},
	}
}

func sessionNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <id>",
		Short: "Load the next page of a session",
		Long: "Load the next page of a session and print only the products it\n" +
			"appended. Nothing is fetched once the catalog is exhausted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newAPIClient().NextPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(w, r)
			}
			if len(r.Appended) == 0 {
				_, err := fmt.Fprintln(w, "No new products.")
				if err != nil {
					return err
				}
			} else if err := printProductsTable(w, r.Appended, true); err != nil {
				return err
			}
			return printSessionSummary(w, &r.Session)
		},
	}
}

func sessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Discard a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient().DeleteSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Session %s deleted.\n", args[0])
			return err
		},
	}
}

func printSession(w io.Writer, s *apiclient.Session) error {
	if jsonOutput() {
		return outputJSON(w, s)
	}
	if len(s.Products) > 0 {
		if err := printProductsTable(w, s.Products, true); err != nil {
			return err
		}
	}
	return printSessionSummary(w, s)
}

func printSessionSummary(w io.Writer, s *apiclient.Session) error {
	tw := newTabWriter(w)
	tw.writef("\nSession:\t%s\n", s.ID)
	tw.writef("Loaded:\t%d of %d\n", s.Loaded, s.Total)
	tw.writef("Pages:\t%d (page size %d)\n", s.Pages, s.PageSize)
	tw.writef("Has more:\t%t\n", s.HasMore)
	if s.LastError != "" {
		tw.writef("Last error:\t%s\n", s.LastError)
	}
	return tw.finish()
}
