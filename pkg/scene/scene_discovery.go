package scene

import (
	"sort"
	"strings"
)

// SceneInfo represents a builtin scene with its metadata
type SceneInfo struct {
	ID             string `json:"id"`             // Name passed to Create
	DisplayName    string `json:"displayName"`    // UI display name
	Description    string `json:"description"`    // Short description
	Group          string `json:"group"`          // Grouping category
	PrimitiveCount int    `json:"primitiveCount"` // Number of primitives in the scene
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	originalGroup = "Original"
	extraGroup    = "Extras"
)

var builtinMetadata = map[string]struct {
	description string
	group       string
}{
	"default":       {"Reflective spheres, a bounded ground plane and an ellipsoid", originalGroup},
	"single-sphere": {"One matte red sphere", originalGroup},
	"empty":         {"No primitives; renders the background", originalGroup},
	"spheregrid":    {"5x5 grid of rainbow-colored reflective spheres", extraGroup},
}

// ListAllScenes returns the builtin scenes grouped by category
func ListAllScenes() ScenesResponse {
	groupMap := make(map[string][]SceneInfo)
	for _, name := range BuiltinNames() {
		meta := builtinMetadata[name]
		groupMap[meta.group] = append(groupMap[meta.group], SceneInfo{
			ID:             name,
			DisplayName:    titleCase(name),
			Description:    meta.description,
			Group:          meta.group,
			PrimitiveCount: builtinScenes[name]().GetPrimitiveCount(),
		})
	}

	// Original first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != originalGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	var response ScenesResponse
	if original, exists := groupMap[originalGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: originalGroup, Scenes: original})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response
}

// titleCase converts a scene name to title case
// e.g., "single-sphere" -> "Single Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
