package entity

import (
	"fmt"
	"maps"

	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/prefabs"
)

// Level is what BuildLevel created, by entity name.
type Level struct {
	Name     string
	Gravity  float64
	Entities map[string]ecs.Entity
}

// BuildLevel loads a level prefab and builds each of its entities. Entries
// naming a prefab start from that prefab's components; inline components
// replace same-named ones.
func (b *Builder) BuildLevel(w *ecs.World, path string) (*Level, error) {
	spec, err := prefabs.LoadLevelSpec(path)
	if err != nil {
		return nil, fmt.Errorf("build level: %w", err)
	}
	lvl := &Level{Name: spec.Name, Gravity: spec.Gravity, Entities: make(map[string]ecs.Entity, len(spec.Entities))}

	for i, es := range spec.Entities {
		name := es.Name
		components := map[string]any{}
		if es.Prefab != "" {
			prefab, err := prefabs.LoadEntityBuildSpec(es.Prefab)
			if err != nil {
				return nil, fmt.Errorf("build level %q: entity %d: %w", path, i, err)
			}
			maps.Copy(components, prefab.Components)
			if name == "" {
				name = prefab.Name
			}
		}
		maps.Copy(components, es.Components)
		if name == "" {
			name = fmt.Sprintf("entity_%d", i)
		}

		e, err := b.BuildComponents(w, name, components)
		if err != nil {
			return nil, fmt.Errorf("build level %q: %w", path, err)
		}
		lvl.Entities[name] = e
	}
	return lvl, nil
}
