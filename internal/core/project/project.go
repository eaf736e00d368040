// Package project holds the read-only project description consumed by
// recommendation scoring and configuration. Parsing a build file into a
// Definition is the job of an external collaborator.
package project

import (
	"context"

	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// Project Definition
// =============================================================================

// Definition describes the project a recipe is matched against. It is
// treated as opaque and read-only by everything in this module.
type Definition struct {
	// ProjectPath is the absolute path of the project's build file.
	ProjectPath string

	// SolutionPath is the absolute path of the enclosing solution, if any.
	SolutionPath string

	// SdkType is the project SDK (e.g. "Microsoft.NET.Sdk.Web").
	SdkType string

	// TargetFramework is the project's target framework moniker.
	TargetFramework string

	// AssemblyName is the output assembly name.
	AssemblyName string

	// Properties carries any further build properties matching may inspect.
	Properties map[string]string
}

// Property returns a raw build property by name.
func (d *Definition) Property(name string) (string, bool) {
	v, ok := d.Properties[name]
	return v, ok
}

// =============================================================================
// External Collaborator Interfaces
// =============================================================================

// Parser turns a build file on disk into a Definition.
type Parser interface {
	Parse(ctx context.Context, projectPath string) (*Definition, error)
}

// Scorer decides whether a recipe applies to a project and how strongly.
// Higher priorities rank earlier; applicable reports whether the recipe
// should be offered at all.
type Scorer interface {
	Score(def *recipe.Definition, project *Definition) (priority int, applicable bool)
}
