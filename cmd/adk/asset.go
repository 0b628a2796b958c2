package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Hardware asset commands",
	}

	cmd.AddCommand(newAssetListCmd())
	return cmd
}

func newAssetListCmd() *cobra.Command {
	var (
		status      string
		sessionPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hardware assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetList(cmd, status, sessionPath)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (available, assigned, repair, retired)")
	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	return cmd
}

func runAssetList(cmd *cobra.Command, status, sessionPath string) error {
	c, _, err := requireSession(sessionPath)
	if err != nil {
		return err
	}

	assets, err := c.ListAssets(cmd.Context(), status)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(assets) == 0 {
		fmt.Fprintln(out, "No assets found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTAG\tCATEGORY\tSTATUS\tHOLDER")
	for _, a := range assets {
		holder := "-"
		if a.AssignedTo != nil {
			holder = a.AssignedTo.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Name, a.AssetTag, a.Category, a.Status, holder)
	}
	return w.Flush()
}
