package exporter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duneboard/exporter/internal/markers"
	"github.com/duneboard/exporter/internal/scene"
)

// Exporter runs the full pipeline: resolve each group, extract its triangle
// indices, accumulate the location model, cross-reference markers, and write
// the board description. One run produces one complete file or fails; there
// is no incremental mode.
type Exporter struct {
	scene    *scene.Scene
	resolver *Resolver
	crossref *CrossReferencer
	policy   TopologyPolicy
	sets     TerrainSets
	logger   *zap.Logger
}

// New constructs an Exporter.
//
// Precondition: s, h, and logger must be non-nil; policy must be valid.
func New(s *scene.Scene, h *markers.Hierarchy, policy TopologyPolicy, sets TerrainSets, logger *zap.Logger) (*Exporter, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown topology policy %q", policy)
	}
	return &Exporter{
		scene:    s,
		resolver: NewResolver(s),
		crossref: NewCrossReferencer(h),
		policy:   policy,
		sets:     sets,
		logger:   logger,
	}, nil
}

// Build derives the completed model without writing anything. Groups are
// processed strictly in scene order; once Build returns, the model is
// read-only.
//
// Postcondition: returns a model covering every scene group, or the first
// error encountered.
func (e *Exporter) Build() (*Model, error) {
	builder := NewBuilder(e.sets)

	for _, name := range e.scene.Groups() {
		rg, err := e.resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		indices, err := ExtractIndices(rg, e.policy)
		if err != nil {
			return nil, err
		}
		if err := builder.Add(rg, indices); err != nil {
			return nil, err
		}
		e.logger.Debug("resolved group",
			zap.String("group", name),
			zap.Int("vertices", len(rg.Positions)),
			zap.Int("indices", len(indices)),
		)
	}

	model := builder.Model()
	for _, name := range model.Names() {
		rec, _ := model.Get(name)
		if err := e.crossref.Apply(rec); err != nil {
			return nil, err
		}
	}
	return model, nil
}

// Run builds the model from the scene and writes the board description to
// outputPath. The document is serialized in memory, parsed back and compared
// against the model before anything touches disk, then written to a temp file
// and renamed into place, so a failed run leaves no partial output file.
//
// Postcondition: returns the written model, or a non-nil error with the run
// aborted and outputPath untouched.
func (e *Exporter) Run(outputPath string) (*Model, error) {
	runID := uuid.NewString()
	logger := e.logger.With(zap.String("run_id", runID))

	model, err := e.Build()
	if err != nil {
		return nil, fmt.Errorf("building model: %w", err)
	}
	logger.Info("model built",
		zap.Int("locations", model.Len()),
		zap.String("policy", string(e.policy)),
	)

	var buf bytes.Buffer
	if err := WriteModel(&buf, model); err != nil {
		return nil, fmt.Errorf("serializing model: %w", err)
	}

	// Validate output reconstructs the model before writing.
	parsed, err := ParseModel(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("validating serialized output: %w", err)
	}
	if !model.Equal(parsed) {
		return nil, fmt.Errorf("serialized output does not reconstruct the model")
	}

	if err := writeFileAtomic(outputPath, buf.Bytes()); err != nil {
		return nil, err
	}

	logger.Info("board description written",
		zap.String("path", outputPath),
		zap.Int("bytes", buf.Len()),
	)
	return model, nil
}

// writeFileAtomic writes data to a temp file next to path, syncs it, and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp output in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmp.Name(), path, err)
	}
	return nil
}
