package scene

import (
	"fmt"
)

// builtinScenes maps scene names to their constructors
var builtinScenes = map[string]func() *Scene{
	"default":       func() *Scene { return NewDefaultScene() },
	"single-sphere": func() *Scene { return NewSingleSphereScene() },
	"empty":         func() *Scene { return NewEmptyScene() },
	"spheregrid":    func() *Scene { return NewSphereGridScene() },
}

// BuiltinNames returns the names of the hardcoded scenes in display order
func BuiltinNames() []string {
	return []string{"default", "single-sphere", "spheregrid", "empty"}
}

// Create builds and validates the named builtin scene
func Create(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}

	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}

	s := build()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
