package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/dataset"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// Server carries everything the handlers need. Datasets live in the
// registry; edits go through Store and swap the registry snapshot.
type Server struct {
	Registry   *dataset.Registry
	Comparator *compare.Comparator
	Defaults   Defaults

	// Edit mode only
	EditMode bool
	Store    *dataset.DirStore
	// Auth guards the editing routes; nil leaves them open.
	Auth *Credentials
	// Loaders rebuild the registry after a revert, in override order.
	Loaders []dataset.Loader

	editMu sync.Mutex
	// committed is the registry content before the first pending upload
	committed []*calendar.ReferenceDataSet

	indexHTML []byte
}

// NewServer creates a server over registry answering comparisons with comparator.
func NewServer(registry *dataset.Registry, comparator *compare.Comparator, defaults Defaults) *Server {
	s := &Server{
		Registry:   registry,
		Comparator: comparator,
		Defaults:   defaults,
	}
	page, err := renderIndex(defaults)
	if err != nil {
		logging.Error("Error rendering index page: %v", err)
	}
	s.indexHTML = page
	return s
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeIndex)
	mux.HandleFunc("/api/config", s.GetConfig)
	mux.HandleFunc("/api/regions", s.HandleRegions)
	mux.HandleFunc("/api/compare", s.HandleCompare)
	mux.HandleFunc("/api/download", s.HandleDownload)
	mux.HandleFunc("/api/subscribe/", s.HandleSubscribe)

	// Edit mode routes (protected with Basic Auth)
	if s.EditMode {
		mux.HandleFunc("/api/dataset/commit", s.requireAuth(s.HandleDatasetCommit))
		mux.HandleFunc("/api/dataset/revert", s.requireAuth(s.HandleDatasetRevert))
		mux.HandleFunc("/api/dataset/status", s.requireAuth(s.HandleDatasetStatus))
		mux.HandleFunc("/api/dataset/", s.requireAuth(s.HandleDatasetUpload))
	}
	return RequestLogger(mux)
}

// saveUpload validates an uploaded dataset, stores it as tmp file and makes it
// live. In-flight queries keep the snapshot they started with.
func (s *Server) saveUpload(year int, body io.Reader) error {
	ds, err := dataset.Decode(body)
	if err != nil {
		return err
	}
	if ds.Year != year {
		return fmt.Errorf("%s: got %d, want %d", ErrYearMismatch, ds.Year, year)
	}
	s.editMu.Lock()
	defer s.editMu.Unlock()
	if err := s.Store.SaveTmp(ds); err != nil {
		return err
	}
	if s.committed == nil {
		s.committed = s.registrySets()
	}
	s.Registry.Put(ds)
	logging.Info("dataset %d uploaded (uncommitted)", year)
	return nil
}

// commitAll commits every year with temporary changes. It returns the
// revision id per year.
func (s *Server) commitAll() (map[int]string, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()
	revisions := make(map[int]string)
	for _, year := range s.Store.TmpYears() {
		rev, err := s.Store.Commit(year)
		if err != nil {
			return revisions, err
		}
		revisions[year] = rev
	}
	s.committed = nil
	return revisions, nil
}

// revertAll drops every tmp file and reloads the registry from its loaders.
// Without loaders the content from before the first pending upload is restored.
func (s *Server) revertAll(ctx context.Context) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()
	for _, year := range s.Store.TmpYears() {
		if err := s.Store.Revert(year); err != nil {
			return err
		}
	}
	if len(s.Loaders) > 0 {
		if err := s.Registry.Reload(ctx, s.Loaders...); err != nil {
			return err
		}
	} else if s.committed != nil {
		if err := s.Registry.Replace(s.committed); err != nil {
			return err
		}
	}
	s.committed = nil
	return nil
}

func (s *Server) registrySets() []*calendar.ReferenceDataSet {
	years := s.Registry.Years()
	sets := make([]*calendar.ReferenceDataSet, 0, len(years))
	for _, y := range years {
		if ds, ok := s.Registry.Get(y); ok {
			sets = append(sets, ds)
		}
	}
	return sets
}
