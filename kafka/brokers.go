package kafka

import "strings"

// NormalizeBrokers resolves a broker-list configuration value into a
// canonical list of host:port endpoints.
//
// A []string is returned unchanged, without validating individual
// entries. A string is split on commas, each part is trimmed of
// whitespace and stripped of a leading PLAINTEXT:// scheme marker, and
// empty parts are dropped. Any other value (nil, numbers, maps, ...)
// yields nil; this is a defined outcome, not an error.
//
// The function is pure and has no side effects.
func NormalizeBrokers(v any) []string {
	switch brokers := v.(type) {
	case []string:
		return brokers
	case string:
		parts := strings.Split(brokers, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			p = strings.TrimPrefix(p, "PLAINTEXT://")
			if p == "" {
				continue
			}
			out = append(out, p)
		}
		return out
	default:
		return nil
	}
}
