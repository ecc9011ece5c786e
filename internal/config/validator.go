package config

import (
	"fmt"
)

// Validate checks a Config for values that would make the scanner, matcher,
// or VCS backend misbehave. It does not mutate cfg.
func Validate(cfg *Config) error {
	if len(cfg.ScanRoots) == 0 {
		return fmt.Errorf("config: ScanRoots must not be empty")
	}
	for _, root := range cfg.ScanRoots {
		if root == "" {
			return fmt.Errorf("config: ScanRoots entry must not be empty")
		}
	}

	if cfg.FuzzyCutoff < 0 || cfg.FuzzyCutoff > 1 {
		return fmt.Errorf("config: FuzzyCutoff must be between 0 and 1, got %v", cfg.FuzzyCutoff)
	}

	if cfg.VCSTimeoutSeconds < 0 {
		return fmt.Errorf("config: VCSTimeoutSeconds must not be negative, got %d", cfg.VCSTimeoutSeconds)
	}

	return nil
}
