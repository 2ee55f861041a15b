package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spektr-org/salesdesk/engine"
)

// parseFacets reads repeated key=a,b specs. Repeating a key adds values.
func parseFacets(specs []string) (engine.FacetSelections, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(engine.FacetSelections, len(specs))
	for _, arg := range specs {
		key, values, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --facet %q: want key=value[,value]", arg)
		}
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" && !slices.Contains(out[key], v) {
				out[key] = append(out[key], v)
			}
		}
	}
	return out, nil
}

// parseSort reads field[:asc|desc]. Empty means no sort.
func parseSort(arg string) (*engine.Sort, error) {
	if arg == "" {
		return nil, nil
	}
	field, dir, _ := strings.Cut(arg, ":")
	if field == "" {
		return nil, fmt.Errorf("invalid --sort %q: missing field", arg)
	}
	s := &engine.Sort{Field: field}
	switch strings.ToLower(dir) {
	case "", "asc":
	case "desc":
		s.Direction = engine.Descending
	default:
		return nil, fmt.Errorf("invalid --sort %q: direction must be asc or desc", arg)
	}
	return s, nil
}

// parseFloors reads repeated key=n minimums.
func parseFloors(specs []string) (map[string]float64, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(specs))
	for _, arg := range specs {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --min %q: want key=number", arg)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --min %q: %w", arg, err)
		}
		out[key] = n
	}
	return out, nil
}
