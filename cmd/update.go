package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/adkit/config"
)

var (
	updateRepo  string
	forceUpdate bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update adkit to the latest release",
	Long: `Check GitHub releases for a newer adkit build and replace the running
binary with it. Development builds are only replaced with --force.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateRepo, "repo", config.DefaultRepository, "release repository (owner/name)")
	updateCmd.Flags().BoolVar(&forceUpdate, "force", false, "update even when the current version is unknown")
}

// newerRelease reports whether latest should replace current.
// An unparsable current version is only replaced when forced.
func newerRelease(current, latest string, force bool) (bool, error) {
	latestVersion, err := semver.ParseTolerant(latest)
	if err != nil {
		return false, fmt.Errorf("invalid release version %q: %w", latest, err)
	}

	currentVersion, err := semver.ParseTolerant(current)
	if err != nil {
		if force {
			return true, nil
		}
		return false, fmt.Errorf("current version %q is not a release, use --force to update anyway", current)
	}

	return latestVersion.GT(currentVersion), nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepo)
	}

	newer, err := newerRelease(version, latest.Version(), forceUpdate)
	if err != nil {
		return err
	}
	if !newer {
		fmt.Fprintf(out, "adkit %s is up to date\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "Updated adkit %s -> %s\n", version, latest.Version())
	return nil
}
