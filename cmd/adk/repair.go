package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/hward/assetdesk/internal/client"
	"github.com/hward/assetdesk/internal/scan"
	"github.com/spf13/cobra"
)

func newRepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair dispatch and return commands",
	}

	cmd.AddCommand(newRepairListCmd())
	cmd.AddCommand(newRepairDispatchCmd())
	cmd.AddCommand(newRepairReturnCmd())
	cmd.AddCommand(newRepairScanCmd())
	return cmd
}

func newRepairListCmd() *cobra.Command {
	var (
		status      string
		sessionPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repair records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepairList(cmd, status, sessionPath)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (dispatched, returned)")
	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	return cmd
}

func runRepairList(cmd *cobra.Command, status, sessionPath string) error {
	c, _, err := requireSession(sessionPath)
	if err != nil {
		return err
	}

	repairs, err := c.ListRepairs(cmd.Context(), status)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(repairs) == 0 {
		fmt.Fprintln(out, "No repair records found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tASSET\tVENDOR\tSTATUS\tGATE PASS\tDISPATCHED")
	for _, r := range repairs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.AssetName, r.Vendor, r.Status, r.GatePassNumber,
			r.DispatchDate.Format("2006-01-02"))
	}
	return w.Flush()
}

func newRepairDispatchCmd() *cobra.Command {
	var (
		assetID     string
		vendor      string
		reason      string
		sessionPath string
	)

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Send an asset out for repair",
		Long:  "Creates a repair record with a gate pass and a QR code that returns the asset when scanned.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepairDispatch(cmd, assetID, vendor, reason, sessionPath)
		},
	}

	cmd.Flags().StringVar(&assetID, "asset", "", "asset ID (required)")
	cmd.Flags().StringVar(&vendor, "vendor", "", "repair vendor (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "reason for dispatch")
	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("vendor")
	return cmd
}

func runRepairDispatch(cmd *cobra.Command, assetID, vendor, reason, sessionPath string) error {
	c, _, err := requireSession(sessionPath)
	if err != nil {
		return err
	}

	repair, err := c.DispatchRepair(cmd.Context(), assetID, vendor, reason)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dispatched %s to %s\n", repair.AssetName, repair.Vendor)
	fmt.Fprintf(out, "  Repair ID: %s\n", repair.ID)
	fmt.Fprintf(out, "  Gate pass: %s\n", repair.GatePassNumber)
	return nil
}

func newRepairReturnCmd() *cobra.Command {
	var (
		notes       string
		proofPath   string
		sessionPath string
	)

	cmd := &cobra.Command{
		Use:   "return <repair-id>",
		Short: "Manually mark a dispatched repair as returned",
		Long: `Marks the repair returned without scanning its QR code, with optional
free-text notes and an optional proof photo of the returned asset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepairReturn(cmd, args[0], notes, proofPath, sessionPath)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "free-text return notes")
	cmd.Flags().StringVar(&proofPath, "proof", "", "path to a proof image to attach")
	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	return cmd
}

func runRepairReturn(cmd *cobra.Command, repairID, notes, proofPath, sessionPath string) error {
	c, _, err := requireSession(sessionPath)
	if err != nil {
		return err
	}

	var result *client.ReturnResult
	if proofPath != "" {
		f, err := os.Open(proofPath)
		if err != nil {
			return fmt.Errorf("open proof image: %w", err)
		}
		defer f.Close()
		result, err = c.ReturnRepairWithProof(cmd.Context(), repairID, notes, filepath.Base(proofPath), f)
		if err != nil {
			return err
		}
	} else {
		result, err = c.ReturnRepair(cmd.Context(), repairID, notes)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if result.AlreadyReturned {
		fmt.Fprintf(out, "%s was already returned\n", result.Repair.AssetName)
		return nil
	}
	fmt.Fprintf(out, "%s marked as returned\n", result.Repair.AssetName)
	if result.Repair.ProofImage != "" {
		fmt.Fprintf(out, "  Proof image: %s\n", result.Repair.ProofImage)
	}
	return nil
}

func newRepairScanCmd() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Return a repair by scanning its QR code",
		Long: `Reads one QR payload from stdin (a keyboard-wedge scanner types it as
a line) and marks the matching dispatched repair as returned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepairScan(cmd, sessionPath)
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	return cmd
}

func runRepairScan(cmd *cobra.Command, sessionPath string) error {
	out := cmd.OutOrStdout()

	c, _, err := requireSession(sessionPath)
	if err != nil {
		return err
	}

	dispatched, err := c.ListRepairs(cmd.Context(), "dispatched")
	if err != nil {
		return err
	}
	cache := make(map[string]string, len(dispatched))
	for _, r := range dispatched {
		cache[r.ID] = r.AssetName
	}

	source := scan.NewLineSource(cmd.InOrStdin())
	matcher := scan.NewMatcher(&scan.ClientSubmitter{Client: c}, source)
	if err := matcher.Start(cache); err != nil {
		return err
	}
	defer matcher.Stop()

	fmt.Fprintf(out, "Scanning against %d dispatched repairs. Waiting for a QR payload...\n", len(cache))

	payload, ok := source.Next()
	if !ok {
		return fmt.Errorf("no payload received")
	}

	result, err := matcher.OnDecode(cmd.Context(), payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.Message())
	return nil
}
