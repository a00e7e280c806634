package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/carefluent/alarmbridge/internal/document"
	"github.com/carefluent/alarmbridge/internal/engine"
	"github.com/carefluent/alarmbridge/internal/logging"
	"github.com/carefluent/alarmbridge/internal/record"
	"github.com/carefluent/alarmbridge/internal/schema"
	"github.com/carefluent/alarmbridge/internal/sheet"
)

// Multipart part names for the three source sheets, matching the
// engine's conventional sheet names.
const (
	partUnits      = engine.SheetUnits
	partNurseCalls = engine.SheetNurseCalls
	partClinicals  = engine.SheetClinicals
)

// ConversionSummary is the response body for summary-mode conversions.
type ConversionSummary struct {
	ConversionID  string `json:"conversionId"`
	AlarmCount    int    `json:"alarmDefinitions"`
	FlowCount     int    `json:"deliveryFlows"`
	UnitCount     int    `json:"units"`
	DurationMS    int64  `json:"durationMs"`
	UnitsSheet    bool   `json:"unitsSheet"`
	NurseCalls    bool   `json:"nurseCallsSheet"`
	Clinicals     bool   `json:"clinicalsSheet"`
	DocumentBytes int    `json:"documentBytes"`
}

// handleHealth reports service liveness plus limiter and store state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":   "ok",
		"limiter":  s.limiter.Status(),
		"database": s.store.Enabled(),
	})
}

// handleFields returns the header aliases the resolver recognizes, so
// sheet authors can check their column names before converting.
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, schema.Default())
}

// handleConvert runs a conversion. The request is multipart/form-data
// with up to three CSV file parts (units, nursecalls, clinicals); any
// part may be omitted and its records simply come out empty. The
// response is the rendered configuration document, or a count summary
// when ?summary=1 is set.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	if err := s.limiter.Acquire(ctx); err != nil {
		respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.limiter.Release()

	maxSize := s.cfg.Convert.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondError(w, r, fmt.Errorf("invalid form: %w", err), http.StatusBadRequest)
		return
	}

	var in engine.Sheets
	var err error
	if in.Units, err = readSheet(r, partUnits); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if in.NurseCalls, err = readSheet(r, partNurseCalls); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if in.Clinicals, err = readSheet(r, partClinicals); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if in.Units == nil && in.NurseCalls == nil && in.Clinicals == nil {
		respondError(w, r, errors.New("no sheet provided"), http.StatusBadRequest)
		return
	}

	doc := engine.Convert(in, schema.Default())

	out, err := doc.Render()
	if err != nil {
		respondError(w, r, fmt.Errorf("render document: %w", err), http.StatusInternalServerError)
		return
	}

	duration := time.Since(start)
	entry := record.Entry{
		RequestID:  middleware.GetReqID(ctx),
		ClientIP:   r.RemoteAddr,
		Status:     "ok",
		AlarmCount: len(doc.AlarmAlertDefinitions),
		FlowCount:  len(doc.DeliveryFlows),
		UnitCount:  countUnits(doc.DeliveryFlows),
		DurationMS: duration.Milliseconds(),
	}
	conversionID, logErr := s.store.Log(ctx, entry)
	convLogger := logging.WithFields(ctx, "conversion_id", conversionID)
	if logErr != nil {
		// A conversion never fails because the log write did.
		convLogger.Warn("conversion log write failed", "error", logErr)
	}

	convLogger.Info("conversion completed",
		"alarm_definitions", entry.AlarmCount,
		"delivery_flows", entry.FlowCount,
		"units", entry.UnitCount,
		"duration_ms", entry.DurationMS,
	)

	w.Header().Set("X-Conversion-ID", conversionID)

	if r.URL.Query().Get("summary") == "1" {
		writeJSON(w, ConversionSummary{
			ConversionID:  conversionID,
			AlarmCount:    entry.AlarmCount,
			FlowCount:     entry.FlowCount,
			UnitCount:     entry.UnitCount,
			DurationMS:    entry.DurationMS,
			UnitsSheet:    in.Units != nil,
			NurseCalls:    in.NurseCalls != nil,
			Clinicals:     in.Clinicals != nil,
			DocumentBytes: len(out),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(out)); err != nil {
		logging.FromContext(ctx).Error("write response failed", "error", err)
	}
}

// readSheet parses one multipart CSV part into a grid. A missing part
// is not an error; it yields a nil grid.
func readSheet(r *http.Request, part string) (*sheet.Grid, error) {
	file, _, err := r.FormFile(part)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid form part %q: %w", part, err)
	}
	defer file.Close()

	grid, err := sheet.ReadCSV(part, file)
	if err != nil {
		return nil, fmt.Errorf("invalid csv in part %q: %w", part, err)
	}
	return grid, nil
}

// handleHistory returns recent conversion log entries, newest first.
// Without a configured database the list is always empty.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"enabled": s.store.Enabled(),
		"entries": entries,
	})
}

// countUnits counts distinct facility/unit pairs across all flows.
func countUnits(flows []document.DeliveryFlow) int {
	seen := make(map[string]struct{})
	for _, f := range flows {
		for _, u := range f.Units {
			key := strings.ToLower(u.FacilityName) + "\x00" + strings.ToLower(u.Name)
			seen[key] = struct{}{}
		}
	}
	return len(seen)
}
