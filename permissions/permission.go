// Package permissions holds the route table that gates the versioned API: each routed
// endpoint names the capability it needs, and each role is granted a set of capabilities.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission binds a routed endpoint to the capability it requires.
// An empty capability means any authenticated session may call it.
type Permission struct {
	Capability Capability `json:"capability"`
	Path       string     `json:"path"`
	Method     string     `json:"method"`
	Skip       bool       `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the entry for a route pattern and method. The second value is
// false for routes missing from the table, which the gate treats as forbidden.
func (r *PermissionData) FindPermissions(path, method string) (Permission, bool) {
	for _, endpoint := range r.Endpoints {
		if endpoint.Path == path && endpoint.Method == method {
			return endpoint, true
		}
	}

	return Permission{}, false
}

// Authorize is the single capability check applied ahead of every operation.
func (r *PermissionData) Authorize(role, path, method string) bool {
	permission, found := r.FindPermissions(path, method)

	switch {
	case !found:
		return false
	case permission.Skip, permission.Capability == "":
		return true
	default:
		return Allows(role, permission.Capability)
	}
}

// Parse decodes a route table and rejects capabilities no role can hold, as well as
// duplicated routes.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	seen := make(map[string]struct{}, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		route := endpoint.Method + " " + endpoint.Path
		if _, dup := seen[route]; dup {
			return nil, fmt.Errorf("route %s listed twice", route)
		}

		seen[route] = struct{}{}

		if endpoint.Capability != "" && !endpoint.Capability.Known() {
			return nil, fmt.Errorf("route %s requires unknown capability %q", route, endpoint.Capability)
		}
	}

	return &data, nil
}

// Get loads the embedded table. A broken table yields nil, which denies every guarded route.
func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Embedded permissions are invalid")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Permissions loaded")

	return data
}
