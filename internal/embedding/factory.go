package embedding

import (
	"fmt"

	apperrors "embedpipe/pkg/errors"
	"embedpipe/pkg/logger"
)

const (
	// TargetKey names the output column in a stored configuration.
	TargetKey = "target"
	// ClassKey pins the resolved backend identifier in a stored
	// configuration, so later registry changes cannot alter
	// reproduced behavior.
	ClassKey = "class"

	// DefaultClass is used when a configuration carries no class.
	DefaultClass = "OpenAIEmbeddings"
)

// Construct deserializes a stored configuration into a ready-to-use
// provider. It resolves the class (or alias) against the registry,
// filters the constructor fields down to the ones the backend
// declares, and returns the configuration with target and the
// canonical class re-attached. The input map is not modified.
func Construct(r *Registry, args map[string]any) (Provider, map[string]any, error) {
	working := make(map[string]any, len(args))
	for k, v := range args {
		working[k] = v
	}

	target, hasTarget := working[TargetKey]
	delete(working, TargetKey)

	className := DefaultClass
	if v, ok := working[ClassKey]; ok {
		if s, ok := v.(string); ok && s != "" {
			className = s
		}
		delete(working, ClassKey)
	}

	spec, err := r.Resolve(className)
	if err != nil {
		return nil, nil, err
	}
	if spec.Identifier != className {
		logger.Info("Mapped backend name to class", "name", className, "class", spec.Identifier)
	}

	// Stored configurations may carry provenance or legacy keys;
	// anything the backend does not declare is dropped silently.
	fields := make(map[string]any, len(working))
	for k, v := range working {
		if spec.Accepts(k) {
			fields[k] = v
		}
	}

	model, err := spec.New(fields)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", apperrors.ErrModelConstruction, spec.Identifier, err)
	}

	updated := make(map[string]any, len(args))
	for k, v := range args {
		updated[k] = v
	}
	if hasTarget {
		updated[TargetKey] = target
	}
	updated[ClassKey] = spec.Identifier
	return model, updated, nil
}
