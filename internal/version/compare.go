package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckStatsCompatibility checks whether a run stats file written by
// statsVersion can be read by engineVersion.
//
// Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - The stats minor version must not be newer than the engine's
//   - Patch versions can differ
//
// Examples:
//   - Engine 1.2.0, Stats 1.2.3 -> OK (patch differs)
//   - Engine 1.3.0, Stats 1.2.0 -> OK (older minor)
//   - Engine 1.2.0, Stats 1.3.0 -> ERROR (stats written by a newer engine)
//   - Engine 2.0.0, Stats 1.2.0 -> ERROR (major differs)
func CheckStatsCompatibility(engineVersion, statsVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	statsVersion = strings.TrimPrefix(statsVersion, "v")

	if engineVersion == "main" || statsVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	statsSemver, err := semver.NewVersion(statsVersion)
	if err != nil {
		return fmt.Errorf("invalid stats version '%s': %w", statsVersion, err)
	}

	if engineSemver.Major() != statsSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but stats were written by %d.x.x",
			engineSemver.Major(), statsSemver.Major())
	}

	if statsSemver.Minor() > engineSemver.Minor() {
		return fmt.Errorf("stats written by newer engine %d.%d.x, this engine is %d.%d.x",
			statsSemver.Major(), statsSemver.Minor(),
			engineSemver.Major(), engineSemver.Minor())
	}

	return nil
}
