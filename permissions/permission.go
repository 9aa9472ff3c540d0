// Package permissions holds the role table of the /v1 routes, embedded at build time.
package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"coating/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	errUnknownRole     = errors.New("unknown role")
	errDuplicateRoute  = errors.New("duplicate route")
	errUnknownMethod   = errors.New("unknown method")
	errMissingRoleList = errors.New("route needs roles or skip")
)

var knownRoles = []string{constant.RoleUser, constant.RoleAdmin}

var knownMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// Permission lists the roles allowed on one route pattern. Skip marks a public route on which
// a token is optional.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return p.Skip || slices.Contains(p.Permissions, role)
}

// AdminOnly reports routes that regular users can never reach, which get the admin denial message.
func (p Permission) AdminOnly() bool {
	return slices.Contains(p.Permissions, constant.RoleAdmin) && !slices.Contains(p.Permissions, constant.RoleUser)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions looks up the endpoint by its route pattern. Patterns of
// group roots carry a trailing slash which is ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func (r *PermissionData) validate() error {
	seen := make(map[string]bool, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		key := endpoint.Method + " " + endpoint.Path

		if seen[key] {
			return fmt.Errorf("%w: %s", errDuplicateRoute, key)
		}

		seen[key] = true

		if !slices.Contains(knownMethods, endpoint.Method) {
			return fmt.Errorf("%w: %s", errUnknownMethod, key)
		}

		if !endpoint.Skip && len(endpoint.Permissions) == 0 {
			return fmt.Errorf("%w: %s", errMissingRoleList, key)
		}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return fmt.Errorf("%w %q on %s", errUnknownRole, role, key)
			}
		}
	}

	return nil
}

// Parse decodes and checks a role table.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	if err := permissions.validate(); err != nil {
		return nil, err
	}

	return &permissions, nil
}

// Get loads the embedded table. A broken table stops the process.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
