package app

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// ServeIndex serves the help page
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(s.indexHTML); err != nil {
		logging.Error("Error writing index HTML: %v", err)
	}
}

// GetConfig returns the application configuration
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ConfigResponse{
		Regions:        regionInfos(),
		AvailableYears: s.Registry.Years(),
		Defaults:       s.Defaults,
		MaxRangeDays:   compare.MaxRangeDays,
		EditMode:       s.EditMode,
	})
}

// HandleRegions lists the regions sorted by code
func (s *Server) HandleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, regionInfos())
}

func regionInfos() []RegionInfo {
	regions := calendar.Regions()
	out := make([]RegionInfo, 0, len(regions))
	for _, reg := range regions {
		out = append(out, RegionInfo{
			Code:    string(reg),
			Name:    reg.DisplayName(),
			Country: string(reg.Country()),
		})
	}
	return out
}

// HandleCompare compares a date range for a German state against Denmark
// Query params: from, to (DD.MM.YYYY), region, year (optional)
func (s *Server) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.Comparator.Compare(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := CompareResponse{
		From:       q.From.String(),
		To:         q.To.String(),
		Year:       q.Year,
		Region:     string(q.Region),
		RegionName: q.Region.DisplayName(),
		Days:       q.Days() + 1,
		Result:     result,
	}
	lang := requestLanguage(r)
	if len(result.DEHolidays) == 0 && len(result.DEVacations) == 0 {
		resp.DEMessage = NoMatchesMessage(lang)
	}
	if len(result.DKHolidays) == 0 && len(result.DKVacations) == 0 {
		resp.DKMessage = NoMatchesMessage(lang)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDownload exports a comparison in ICS, CSV or JSON format
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "ics", "csv", "json":
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	matches, err := s.Comparator.Matches(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	switch format {
	case "ics":
		GenerateICS(w, matches)
	case "csv":
		GenerateCSV(w, matches)
	case "json":
		GenerateJSON(w, matches)
	}
}

// HandleSubscribe returns an ICS feed with every holiday and vacation of a
// region and Denmark for all loaded years
// URL: /api/subscribe/{region}
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	region, err := calendar.ParseRegion(strings.TrimPrefix(r.URL.Path, "/api/subscribe/"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var all []*compare.Matches
	for _, year := range s.Registry.Years() {
		q := compare.Query{
			From:   calendar.NewDate(year, 1, 1),
			To:     calendar.NewDate(year, 12, 31),
			Region: region,
			Year:   year,
		}
		m, err := s.Comparator.Matches(r.Context(), q)
		if err != nil {
			writeError(w, r, err)
			return
		}
		all = append(all, m)
	}
	GenerateSubscriptionICS(w, region, all)
}

// HandleDatasetUpload stores an uploaded dataset as uncommitted change
// URL: PUT /api/dataset/{year}
func (s *Server) HandleDatasetUpload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) || !s.RequireEditMode(w) {
		return
	}
	year, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/dataset/"))
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	if err := s.saveUpload(year, http.MaxBytesReader(w, r.Body, maxUploadSize)); err != nil {
		logging.Warn("Rejected dataset upload for %d: %v", year, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleDatasetCommit commits temporary changes
func (s *Server) HandleDatasetCommit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !s.RequireEditMode(w) {
		return
	}

	revisions, err := s.commitAll()
	if err != nil {
		logging.Error("Error committing datasets: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "revisions": revisions})
}

// HandleDatasetRevert reverts temporary changes
func (s *Server) HandleDatasetRevert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !s.RequireEditMode(w) {
		return
	}

	if err := s.revertAll(r.Context()); err != nil {
		logging.Error("Error reverting datasets: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleDatasetStatus returns whether there are unsaved changes
func (s *Server) HandleDatasetStatus(w http.ResponseWriter, r *http.Request) {
	if !s.RequireEditMode(w) {
		return
	}
	tmp := s.Store.TmpYears()
	if tmp == nil {
		tmp = []int{}
	}
	writeJSON(w, http.StatusOK, DatasetStatus{
		HasChanges: len(tmp) > 0,
		TmpYears:   tmp,
		Years:      s.Registry.Years(),
	})
}
