package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Paths follow the config file layout, for example:
//
//	log_level
//	viewport.width
//	window.cascade_step
//	snap.threshold
//	animation.spring_damping
//	content_types.blog.width
//	catalog
//	catalog.2.title
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	// Catalog entries are attributed to the catalog list itself.
	if strings.HasPrefix(path, "catalog.") {
		if src, ok := res.Sources["catalog"]; ok {
			return value, src, nil
		}
	}

	if path == "catalog" || strings.HasPrefix(path, "catalog.") {
		return value, Source{Kind: SourceBuiltin, Name: "catalog"}, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// lookupValue walks the YAML form of cfg so every field tag is addressable
// without a hand-maintained switch.
func lookupValue(cfg *Config, path string) (any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}

	cur := tree
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	}
	return cur, nil
}
