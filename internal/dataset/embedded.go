package dataset

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

//go:embed data/*.json
var embeddedFiles embed.FS

// EmbeddedLoader serves the datasets compiled into the binary.
type EmbeddedLoader struct{}

func (EmbeddedLoader) Name() string { return "embedded" }

// Load decodes every embedded dataset.
func (EmbeddedLoader) Load(_ context.Context) ([]*calendar.ReferenceDataSet, error) {
	return loadFS(embeddedFiles, "data")
}

// Default returns the embedded datasets, panicking if they are broken.
// The embedded data is part of the build, so a failure is a programming error.
func Default() *Registry {
	sets, err := EmbeddedLoader{}.Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("embedded datasets: %v", err))
	}
	r, err := NewRegistry(sets...)
	if err != nil {
		panic(fmt.Sprintf("embedded datasets: %v", err))
	}
	return r
}

func loadFS(fsys fs.FS, dir string) ([]*calendar.ReferenceDataSet, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var sets []*calendar.ReferenceDataSet
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		ds, err := Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		sets = append(sets, ds)
	}
	return sets, nil
}
