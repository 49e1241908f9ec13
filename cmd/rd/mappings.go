package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/relaydesk/internal/models"
)

func newMappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Identity mappings between internal and client users",
	}

	cmd.AddCommand(newMappingsListCmd())
	cmd.AddCommand(newMappingsCreateCmd())
	cmd.AddCommand(newMappingsDeleteCmd())
	return cmd
}

func newMappingsListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List identity mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			mappings, err := client.ListIdentityMappings(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(mappings) == 0 {
				fmt.Fprintln(out, "No identity mappings.")
				return nil
			}

			var names map[string]string
			if ws, err := client.ListWorkspaces(ctx); err == nil {
				names = models.WorkspaceNames(ws)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tINTERNAL USER\tCLIENT WORKSPACE\tCLIENT USER")
			for _, m := range mappings {
				team := names[m.ClientTeamID]
				if team == "" {
					team = orDash(m.ClientTeamName)
				}
				fmt.Fprintf(w, "%s\t%s (%s)\t%s (%s)\t%s (%s)\n",
					m.ID(),
					m.InternalUsername, m.InternalUserID,
					team, m.ClientTeamID,
					m.ClientUsername, m.ClientUserID)
			}
			w.Flush()
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newMappingsCreateCmd() *cobra.Command {
	var (
		configPath string
		draft      models.MappingDraft
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create or replace an identity mapping",
		Long:  "Maps an internal user to a user in a client workspace. The mapping key is <internal-user-id>:<client-team-id>.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if missing := draft.Missing(); len(missing) > 0 {
				return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
			}
			draft = draft.WithKey()

			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			if _, err := client.CreateIdentityMapping(cmd.Context(), draft); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved mapping %s\n", draft.Key)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&draft.InternalUserID, "internal-user-id", "", "internal Slack user ID (required)")
	cmd.Flags().StringVar(&draft.InternalUsername, "internal-username", "", "internal username (required)")
	cmd.Flags().StringVar(&draft.ClientTeamID, "client-team", "", "client workspace team ID (required)")
	cmd.Flags().StringVar(&draft.ClientUserID, "client-user-id", "", "client Slack user ID (required)")
	cmd.Flags().StringVar(&draft.ClientUsername, "client-username", "", "client username (required)")
	return cmd
}

func newMappingsDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete an identity mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to delete this mapping?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			if _, err := client.DeleteIdentityMapping(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted mapping %s\n", args[0])
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
