// Package project resolves optional external context about the candidate's
// project (GitHub repository, live deployment) for question generation. The
// context is an opaque map at the boundary; Decode produces the typed view
// consumed internally. Absence of context degrades to generic questioning.
package project

import (
	"context"

	"github.com/mitchellh/mapstructure"
)

// Resolver supplies the opaque external-context map. Implementations may
// block on the network and must honor the passed context.
type Resolver interface {
	Resolve(ctx context.Context, githubURL, deploymentURL string) (map[string]any, error)
}

// Context is the typed view over the opaque context map.
type Context struct {
	Summary       string          `mapstructure:"summary"`
	Description   string          `mapstructure:"description"`
	TechStack     []string        `mapstructure:"tech_stack"`
	Architecture  string          `mapstructure:"architecture"`
	Readme        string          `mapstructure:"readme"`
	FocusAreas    []string        `mapstructure:"focus_areas"`
	Deployment    *DeploymentInfo `mapstructure:"deployment_info"`
	FileStructure []FileEntry     `mapstructure:"file_structure"`
}

// DeploymentInfo describes the probe of a live deployment URL.
type DeploymentInfo struct {
	Accessible     bool     `mapstructure:"accessible"`
	ResponseTimeMS int64    `mapstructure:"response_time_ms"`
	Technologies   []string `mapstructure:"technologies_detected"`
}

// FileEntry is one root-level item of the repository tree.
type FileEntry struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

// Decode converts the opaque context map into the typed view. A nil or empty
// map yields a nil Context.
func Decode(raw map[string]any) (*Context, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out Context
	if err := mapstructure.WeakDecode(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
