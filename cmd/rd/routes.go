package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/relaydesk/internal/models"
	"github.com/zulandar/relaydesk/internal/views"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Channel routes between workspaces",
	}

	cmd.AddCommand(newRoutesListCmd())
	cmd.AddCommand(newRoutesCreateCmd())
	cmd.AddCommand(newRoutesDeleteCmd())
	return cmd
}

func newRoutesListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routes grouped by source workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			routes, err := client.ListRoutes(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(routes) == 0 {
				fmt.Fprintln(out, "No routes configured.")
				return nil
			}

			// Names are cosmetic; a failed lookup falls back to team ids.
			var names map[string]string
			if ws, err := client.ListWorkspaces(ctx); err == nil {
				names = models.WorkspaceNames(ws)
			}

			for i, g := range views.GroupRoutesBySource(routes, names) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%s)\n", g.SourceTeamName, g.SourceTeamID)
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "  ID\tNAME\tFROM\tDIRECTION\tTO\tENABLED\tCREATED")
				for _, r := range g.Routes {
					dest := r.DestTeamName
					if dest == "" {
						dest = names[r.DestTeamID]
					}
					fmt.Fprintf(w, "  %s\t%s\t#%s\t%s\t%s\t%s\t%s\n",
						r.RouteID, orDash(r.Name), r.SourceChannelID,
						directionLabel(r.Direction),
						endpoint(dest, r.DestTeamID, r.DestChannelID),
						yesNo(r.InitiallyEnabled()), r.CreatedAt)
				}
				w.Flush()
			}
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newRoutesCreateCmd() *cobra.Command {
	var (
		configPath string
		draft      models.RouteDraft
		direction  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a route",
		Long:  "Creates a route from a source channel to a destination channel in another workspace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := models.ParseDirection(direction)
			if !ok {
				return fmt.Errorf("invalid direction %q (want inbound, outbound or bidirectional)", direction)
			}
			draft.Direction = d
			if missing := draft.Missing(); len(missing) > 0 {
				return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
			}

			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			if _, err := client.CreateRoute(cmd.Context(), draft); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created route %s #%s %s %s #%s\n",
				draft.SourceTeamID, draft.SourceChannelID, d.Icon(), draft.DestTeamID, draft.DestChannelID)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&draft.Name, "name", "", "route name")
	cmd.Flags().StringVar(&draft.SourceTeamID, "source-team", "", "source workspace team ID (required)")
	cmd.Flags().StringVar(&draft.SourceChannelID, "source-channel", "", "source channel ID (required)")
	cmd.Flags().StringVar(&draft.DestTeamID, "dest-team", "", "destination workspace team ID (required)")
	cmd.Flags().StringVar(&draft.DestChannelID, "dest-channel", "", "destination channel ID (required)")
	cmd.Flags().StringVar(&direction, "direction", string(models.DirectionInbound), "inbound, outbound or bidirectional")
	cmd.MarkFlagRequired("source-team")
	cmd.MarkFlagRequired("source-channel")
	cmd.MarkFlagRequired("dest-team")
	cmd.MarkFlagRequired("dest-channel")
	return cmd
}

func newRoutesDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <route-id>",
		Short: "Delete a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			if _, err := client.DeleteRoute(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted route %s\n", args[0])
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
