package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/Fepozopo/edgedetect/pkg/logging"
)

// Repo is the GitHub slug releases are looked up in.
const Repo = "Fepozopo/edgedetect"

// Version is the running build's version, set with -ldflags "-X ...cli.Version=1.2.3".
var Version = "0.1.0"

// needsUpdate reports whether latest is newer than the current version string.
func needsUpdate(current string, latest semver.Version) (bool, error) {
	cur, err := semver.ParseTolerant(current)
	if err != nil {
		return false, fmt.Errorf("could not parse current version %q: %w", current, err)
	}
	return latest.GT(cur), nil
}

// CheckForUpdates looks up the newest release, asks on in/out whether to install it, and
// replaces the running executable when the answer is yes.
func CheckForUpdates(in io.Reader, out io.Writer, logger logging.Logger) error {
	fmt.Fprintf(out, "Current version: %s\n", Version)
	latest, found, err := selfupdate.DetectLatest(Repo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", Repo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	newer, err := needsUpdate(Version, latest.Version)
	if err != nil {
		logger.Warnw("version comparison skipped", "error", err)
		newer = true
	}
	if !newer {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", Version)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		fmt.Fprintf(out, "Please visit %s to download it.\n", latest.URL)
		return nil
	}

	answer, err := PromptLine(in, out, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	answer = strings.ToLower(answer)
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	logger.Infow("updating", "from", Version, "to", latest.Version.String(), "asset", latest.AssetURL)
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s.\n", latest.Version)
	return nil
}
