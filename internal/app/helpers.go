package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// RequireEditMode validates that edit mode is enabled
func (s *Server) RequireEditMode(w http.ResponseWriter) bool {
	if !s.EditMode || s.Store == nil {
		http.Error(w, ErrEditModeDisabled, http.StatusForbidden)
		return false
	}
	return true
}

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Error encoding response: %v", err)
	}
}

// ErrorKind classifies err and returns the HTTP status it maps to
func ErrorKind(err error) (string, int) {
	var (
		formatErr      *compare.InvalidFormatError
		rangeErr       *compare.InvalidRangeError
		mismatchErr    *compare.YearMismatchError
		tooLongErr     *compare.RangeTooLongError
		regionErr      *calendar.UnknownRegionError
		yearErr        *calendar.UnsupportedYearError
		unavailableErr *compare.DataSourceUnavailableError
	)
	switch {
	case errors.As(err, &formatErr):
		return compare.KindInvalidFormat, http.StatusBadRequest
	case errors.As(err, &rangeErr):
		return compare.KindInvalidRange, http.StatusBadRequest
	case errors.As(err, &mismatchErr):
		return compare.KindYearMismatch, http.StatusBadRequest
	case errors.As(err, &tooLongErr):
		return compare.KindRangeTooLong, http.StatusBadRequest
	case errors.As(err, &regionErr):
		return compare.KindUnknownRegion, http.StatusBadRequest
	case errors.As(err, &yearErr):
		return compare.KindUnsupportedYear, http.StatusNotFound
	case errors.As(err, &unavailableErr):
		return compare.KindDataSourceUnavailable, http.StatusBadGateway
	}
	return "internal", http.StatusInternalServerError
}

// writeError reports err as a localized JSON error body
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind, status := ErrorKind(err)
	if status >= http.StatusInternalServerError {
		logging.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		logging.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:   true,
		Kind:    kind,
		Message: Localize(requestLanguage(r), err),
	})
}

// parseQuery reads from, to, region and year from the URL. A missing year
// defaults to the year of the from date.
func (s *Server) parseQuery(r *http.Request) (compare.Query, error) {
	params := r.URL.Query()
	from := params.Get("from")
	to := params.Get("to")
	region := params.Get("region")

	year := s.Defaults.Year
	if yearStr := strings.TrimSpace(params.Get("year")); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return compare.Query{}, &compare.InvalidFormatError{Field: "year", Value: yearStr}
		}
		year = y
	} else if d, err := calendar.ParseDate(strings.TrimSpace(from)); err == nil {
		year = d.Year
	}
	return compare.ParseQuery(from, to, region, year)
}
