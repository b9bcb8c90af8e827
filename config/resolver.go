package config

import "github.com/wudi/pdfstamp/paper"

// Resolver looks up the configuration for a page by its classified paper
// key. Resolution never fails: pages that match no catalog entry fall into
// the Unknown bucket, and keys absent from the map fall back to Default.
type Resolver[T any] struct {
	Configs map[paper.Key]*T
	Default *T
}

// Resolve takes the page's display dimensions (as reported by a viewer,
// already rotated) and its /Rotate value, corrects the dimensions back to
// physical media size, classifies them, and returns the matching config or
// the default. Both the preview renderer and the batch worker call exactly
// this function.
func (r Resolver[T]) Resolve(width, height float64, rotation int) *T {
	w, h := paper.CorrectedDims(width, height, rotation)
	key, ok := paper.Classify(w, h, paper.DefaultTolerance)
	if !ok {
		key = paper.Key{Family: paper.FamilyUnknown, Orientation: paper.OrientationFor(w, h)}
	}
	if cfg, ok := r.Configs[key]; ok {
		return cfg
	}
	return r.Default
}

// CloneMap returns a by-value copy of a per-size config map. The batch
// engine snapshots its maps with this before a run so concurrent edits to
// the live configuration cannot affect an in-flight job.
func CloneMap[T any](m map[paper.Key]*T) map[paper.Key]*T {
	if m == nil {
		return nil
	}
	out := make(map[paper.Key]*T, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		c := *v
		out[k] = &c
	}
	return out
}
