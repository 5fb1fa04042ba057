package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inquestlab/inquest/internal/profile"
)

var profilesFlags struct {
	pack string
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the available agent profiles",
	RunE:  runProfiles,
}

func init() {
	profilesCmd.Flags().StringVar(&profilesFlags.pack, "pack", "", "Optional YAML profile pack to overlay")
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	registry := profile.NewRegistry()
	if profilesFlags.pack != "" {
		if err := registry.LoadPack(profilesFlags.pack); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, p := range registry.List() {
		fmt.Fprintf(out, "%s - %s: %s\n", p.Key, p.Title, p.Description)
	}
	return nil
}
