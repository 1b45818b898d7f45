package config

import (
	"fmt"
	"strings"
)

// SetTOMLValue writes key = value into existing, replacing the key inside
// its section when present and otherwise adding it (and the section
// header if needed). Unknown keys are rejected.
func SetTOMLValue(existing, key string, value any) (string, error) {
	if !isKnownOption(key) {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return upsertTOML(existing, key, value, ""), nil
}

// upsertTOML replaces or inserts a dotted key. Inserted keys go to the end
// of the last block of their section so a table header is never repeated.
func upsertTOML(existing, key string, value any, comment string) string {
	section, leaf, dotted := strings.Cut(key, ".")
	if !dotted {
		section, leaf = "", key
	}
	assignment := leaf + " = " + formatTOMLValue(value)
	insert := []string{assignment}
	if comment != "" {
		insert = []string{"# " + comment, assignment}
	}

	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines)+4)
	current := ""
	sectionSeen := section == ""
	insertAt := -1
	done := false

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if isSectionHeader(trim) {
			if current == section && sectionSeen {
				insertAt = len(trimTrailingBlank(out))
			}
			current = strings.TrimSpace(trim[1 : len(trim)-1])
			if current == section {
				sectionSeen = true
			}
			out = append(out, line)
			continue
		}
		if k, ok := parseTOMLKey(line); ok && !done && current == section && k == leaf {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+assignment)
			done = true
			continue
		}
		out = append(out, line)
	}

	switch {
	case done:
	case sectionSeen && current == section:
		out = append(trimTrailingBlank(out), insert...)
		out = append(out, "")
	case insertAt >= 0:
		tail := append([]string{}, out[insertAt:]...)
		out = append(append(out[:insertAt], insert...), tail...)
	default:
		out = trimTrailingBlank(out)
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, "["+section+"]")
		out = append(out, insert...)
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func isKnownOption(key string) bool {
	for _, o := range GetConfigOptions() {
		if o.Key == key {
			return true
		}
	}
	return false
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
