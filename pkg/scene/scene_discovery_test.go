package scene

import (
	"testing"
)

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"single-sphere": "Single Sphere",
		"sphere_grid":   "Sphere Grid",
		"default":       "Default",
		"":              "",
	}
	for input, expected := range tests {
		if got := titleCase(input); got != expected {
			t.Errorf("titleCase(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestListAllScenes(t *testing.T) {
	response := ListAllScenes()

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Name != originalGroup {
		t.Errorf("Expected original group first, got %q", response.Groups[0].Name)
	}

	total := 0
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			total++
			if info.Description == "" {
				t.Errorf("Scene %q has no description", info.ID)
			}
			if _, err := Create(info.ID); err != nil {
				t.Errorf("Listed scene %q cannot be created: %v", info.ID, err)
			}
		}
	}
	if total != len(BuiltinNames()) {
		t.Errorf("Expected %d scenes, got %d", len(BuiltinNames()), total)
	}

	if first := response.Groups[0].Scenes[0]; first.ID != "default" || first.PrimitiveCount != 5 {
		t.Errorf("Expected default scene with 5 primitives first, got %+v", first)
	}
}
