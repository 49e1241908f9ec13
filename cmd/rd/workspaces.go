package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/relaydesk/internal/models"
)

func newWorkspacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "Connected Slack workspaces",
	}

	cmd.AddCommand(newWorkspacesListCmd())
	cmd.AddCommand(newWorkspacesMarkInternalCmd())
	cmd.AddCommand(newWorkspacesChannelsCmd())
	return cmd
}

func newWorkspacesListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List connected workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			workspaces, err := client.ListWorkspaces(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(workspaces) == 0 {
				fmt.Fprintln(out, "No workspaces connected.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TEAM ID\tNAME\tINTERNAL\tCONNECTED")
			for _, ws := range workspaces {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					ws.TeamID, ws.DisplayName(), yesNo(ws.IsInternal), ws.ConnectedAt)
			}
			w.Flush()
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newWorkspacesMarkInternalCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "mark-internal <team-id>",
		Short: "Designate the internal workspace",
		Long:  "Marks a workspace as the internal one. Only one workspace may be internal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			workspaces, err := client.ListWorkspaces(ctx)
			if err != nil {
				return err
			}
			if _, ok := models.FindWorkspace(workspaces, args[0]); !ok {
				return fmt.Errorf("workspace %s is not connected", args[0])
			}
			if models.HasInternal(workspaces) {
				return fmt.Errorf("an internal workspace is already set")
			}

			if _, err := client.MarkInternal(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as internal\n", args[0])
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newWorkspacesChannelsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "channels <team-id>",
		Short: "List a workspace's channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFromConfig(configPath)
			if err != nil {
				return err
			}
			channels, err := client.ListChannels(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(channels) == 0 {
				fmt.Fprintln(out, "No channels found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRIVATE\tMEMBERS")
			for _, ch := range channels {
				members := "-"
				if n, ok := ch.Members(); ok {
					members = fmt.Sprint(n)
				}
				fmt.Fprintf(w, "%s\t#%s\t%s\t%s\n", ch.ID, ch.DisplayName(), yesNo(ch.IsPrivate), members)
			}
			w.Flush()
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}
