package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"github.com/tartampluch/go-agecalc/internal/insight"
)

// apiError is the JSON body of every non-2xx API response.
type apiError struct {
	Error string `json:"error"`
}

// handleAge answers GET /api/age?birthDate=YYYY-MM-DD with an AgeResult.
// It is read-only: the calendar on /calendar.ics changes only through
// UpdateCalendar or PublishCalendar.
func (s *Server) handleAge(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	input := r.URL.Query().Get(config.QueryBirthDate)
	birth, err := engine.ParseDate(input)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, apiError{Error: config.ErrInvalidInput})
		return
	}

	today := s.calc.Today()
	res, ok := engine.Age(birth, today)
	if !ok {
		writeJSON(w, r, http.StatusBadRequest, apiError{Error: config.ErrInvalidInput})
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// handleInsights answers GET /api/insights?year=&age= with the model's insights.
// 503 means no credential is configured, 502 an upstream failure.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	q := r.URL.Query()
	year, errYear := strconv.Atoi(q.Get(config.QueryYear))
	age, errAge := strconv.Atoi(q.Get(config.QueryAge))
	if errYear != nil || errAge != nil || year <= 0 || age < 0 {
		writeJSON(w, r, http.StatusBadRequest, apiError{
			Error: fmt.Sprintf("%s: %s, %s", config.ErrQueryParam, config.QueryYear, config.QueryAge),
		})
		return
	}

	var f insight.Fetcher
	if box := s.fetcher.Load(); box != nil {
		f = box.f
	}
	if f == nil {
		writeJSON(w, r, http.StatusServiceUnavailable, apiError{Error: insight.ErrMissingCredential.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	out, err := f.FetchInsights(ctx, year, age)
	switch {
	case errors.Is(err, insight.ErrMissingCredential):
		writeJSON(w, r, http.StatusServiceUnavailable, apiError{Error: err.Error()})
	case err != nil:
		slog.Warn(config.MsgInsightFailed,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		writeJSON(w, r, http.StatusBadGateway, apiError{Error: err.Error()})
	default:
		writeJSON(w, r, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	start := time.Now()
	w.Header().Set(config.HeaderContentType, config.MimeJSONUTF8)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.WriteHeader(status)

	if r.Method != http.MethodHead {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err)
		}
	}

	slog.Debug(config.MsgAPIRequest,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyMethod, r.Method,
		config.LogKeyRoute, r.URL.Path,
		config.LogKeyStatus, status,
		config.LogKeyDuration, time.Since(start).Milliseconds())
}
