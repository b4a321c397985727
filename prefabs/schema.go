package prefabs

import "github.com/invopop/jsonschema"

// Schemas reflects JSON schemas for the prefab file kinds, keyed by the
// file name they are written to. Editors use them to validate yaml.
func Schemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		PreferYAMLSchema:          true,
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
	}

	splash := reflector.Reflect(new(SplashSpec))
	splash.Title = "Splash trigger config"
	splash.Description = "Water splash thresholds, particle template and clip list"

	level := reflector.Reflect(new(LevelSpec))
	level.Title = "Level"
	level.Description = "Entities of a scene, by prefab or inline components"

	entity := reflector.Reflect(new(EntityBuildSpec))
	entity.Title = "Entity prefab"

	return map[string]*jsonschema.Schema{
		"splash.schema.json": splash,
		"level.schema.json":  level,
		"entity.schema.json": entity,
	}
}

// JSONSchema describes the hex string form accepted by UnmarshalYAML.
func (YAMLColor) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:    "string",
		Pattern: "^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$",
	}
}
