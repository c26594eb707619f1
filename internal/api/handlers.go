package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dosewise/medsafe/internal/directory"
	"github.com/dosewise/medsafe/internal/schedule"
	"github.com/dosewise/medsafe/internal/timing"
)

const defaultSearchLimit = 10

func generateScheduleHandler(gen *schedule.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		for i, m := range req.Medications {
			if strings.TrimSpace(m.Name) == "" {
				writeError(w, http.StatusBadRequest, "missing_medication_name",
					"medications["+strconv.Itoa(i)+"].name is required")
				return
			}
		}

		date := time.Now()
		if req.Date != "" {
			parsed, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
				return
			}
			date = parsed
		}

		meds := make([]timing.MedicationTiming, 0, len(req.Medications))
		for _, m := range req.Medications {
			meds = append(meds, m.toTiming())
		}

		writeJSON(w, http.StatusOK, ScheduleResponse{Schedule: gen.Generate(meds, date)})
	}
}

func searchDrugsHandler(client *directory.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing_query", "q is required")
			return
		}

		limit := defaultSearchLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 50 {
				writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 50")
				return
			}
			limit = n
		}

		results := client.SearchDrugs(r.Context(), query, limit)

		resp := SearchResponse{Query: query, Results: results}
		if len(results) == 0 {
			resp.DidYouMean = client.GetSpellingSuggestions(r.Context(), query)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func drugLabelHandler(client *directory.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(chi.URLParam(r, "name"))
		if name == "" {
			writeError(w, http.StatusBadRequest, "missing_name", "drug name is required")
			return
		}

		label := client.GetDrugLabel(r.Context(), name)
		if label == nil {
			writeError(w, http.StatusNotFound, "label_not_found", "no label found for "+name)
			return
		}

		writeJSON(w, http.StatusOK, label)
	}
}

func drugInteractionsHandler(client *directory.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("names"))
		if raw == "" {
			writeError(w, http.StatusBadRequest, "missing_names", "names is required (comma-separated)")
			return
		}

		var names []string
		for _, n := range strings.Split(raw, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}

		writeJSON(w, http.StatusOK, client.GetDrugInteractions(r.Context(), names))
	}
}

func spellingSuggestionsHandler(client *directory.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing_query", "q is required")
			return
		}

		suggestions := client.GetSpellingSuggestions(r.Context(), query)
		if suggestions == nil {
			suggestions = []string{}
		}

		writeJSON(w, http.StatusOK, SuggestionsResponse{Query: query, Suggestions: suggestions})
	}
}
