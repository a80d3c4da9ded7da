package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ServiceMode names a process role selected through SERVICES.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP API and dashboard.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeScheduler runs the cron-triggered report pipeline.
	ServiceModeScheduler ServiceMode = "scheduler"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeScheduler}
}

// ParseServices parses a comma-separated SERVICES value such as
// "http,scheduler". Names are case-insensitive and blanks are skipped;
// an unknown name fails the whole value.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	if strings.TrimSpace(servicesStr) == "" {
		return map[ServiceMode]bool{}, errors.New("at least one service must be specified")
	}

	valid := ValidServiceModes()
	services := make(map[ServiceMode]bool, len(valid))
	for part := range strings.SplitSeq(servicesStr, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		mode := ServiceMode(name)
		if !slices.Contains(valid, mode) {
			return nil, fmt.Errorf("invalid service name: %q (valid options: %s)", name, joinModes(valid))
		}
		services[mode] = true
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}
	return services, nil
}

func joinModes(modes []ServiceMode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
