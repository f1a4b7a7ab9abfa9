package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/recordrt/internal/config"
	"github.com/vk/recordrt/internal/ctxlog"
	"github.com/vk/recordrt/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL literal loader.
func NewLoader() *Loader {
	return &Loader{}
}

// recordBlock is a `record "name" { ... }` block.
type recordBlock struct {
	Name       string         `hcl:"name,label"`
	Positional hcl.Expression `hcl:"positional,optional"`
	Named      hcl.Expression `hcl:"named,optional"`
}

// fileRoot decodes all top-level blocks of a literal file.
type fileRoot struct {
	Records []*recordBlock `hcl:"record,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// Load parses every .hcl file under paths and translates its record blocks
// into the model. Record names must be unique across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	seen := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		fileCtx := ctxlog.With(ctx, "file", file)

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Records {
			if prev, ok := seen[block.Name]; ok {
				return nil, fmt.Errorf("record %q in %s is already defined in %s", block.Name, file, prev)
			}
			seen[block.Name] = file

			lit, err := l.translateRecord(fileCtx, block)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Literals = append(model.Literals, lit)
		}
	}

	logger.Debug("HCL loading complete.", "records", len(model.Literals))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found. Missing paths are an error.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error scanning directory %s: %w", path, err)
		}
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}
