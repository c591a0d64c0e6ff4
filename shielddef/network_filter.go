package shielddef

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/jamesrr39/goutil/errorsx"
)

// MatchNetworks keeps the networks matching any of the glob patterns, e.g. "FSA:*".
// No patterns means every network.
func MatchNetworks(networks []string, patterns []string) ([]string, errorsx.Error) {
	if len(patterns) == 0 {
		return networks, nil
	}

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errorsx.Errorf("invalid network pattern %q", pattern)
		}
	}

	var matched []string
	for _, network := range networks {
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, network)
			if err != nil {
				return nil, errorsx.Wrap(err, "pattern", pattern)
			}
			if ok {
				matched = append(matched, network)
				break
			}
		}
	}

	return matched, nil
}
