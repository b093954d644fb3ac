// Command server exposes archived induction runs as a JSON REST API.
//
// Endpoints:
//
//	GET /api/gender?noun=<form>[&run=<run-id>]
//	GET /api/stats[?run=<run-id>]
//	GET /api/runs
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strings"

	log "github.com/golang/glog"
	"github.com/rs/cors"

	"github.com/czech-nlp/genus/internal/store"
)

type genderResponse struct {
	Run    string `json:"run"`
	Noun   string `json:"noun"`
	Gender string `json:"gender"`
}

type statsResponse struct {
	Run    string              `json:"run"`
	Stages []store.StageRecord `json:"stages"`
}

type runsResponse struct {
	Runs []store.RunRecord `json:"runs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// resolveRun picks the run from the query, falling back to the newest
// archived run.
func resolveRun(db *store.Store, r *http.Request) (string, error) {
	if run := r.URL.Query().Get("run"); run != "" {
		return run, nil
	}
	return db.LatestRunID()
}

func handleGender(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		noun := strings.ToLower(r.URL.Query().Get("noun"))
		if noun == "" {
			writeError(w, http.StatusBadRequest, "missing 'noun' query parameter")
			return
		}
		run, err := resolveRun(db, r)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if run == "" {
			writeError(w, http.StatusNotFound, "no archived runs")
			return
		}
		gender, ok, err := db.Gender(run, noun)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "noun not in assignment")
			return
		}
		writeJSON(w, http.StatusOK, genderResponse{Run: run, Noun: noun, Gender: gender})
	}
}

func handleStats(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		run, err := resolveRun(db, r)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if run == "" {
			writeError(w, http.StatusNotFound, "no archived runs")
			return
		}
		stages, err := db.StageStats(run)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{Run: run, Stages: stages})
	}
}

func handleRuns(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		runs, err := db.Runs()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, runsResponse{Runs: runs})
	}
}

func main() {
	dbPath := flag.String("db", "results.db", "SQLite results database")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()
	defer log.Flush()

	db, err := store.Open(*dbPath)
	if err != nil {
		log.Exitf("open results database: %v", err)
	}
	defer db.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/gender", handleGender(db))
	mux.HandleFunc("/api/stats", handleStats(db))
	mux.HandleFunc("/api/runs", handleRuns(db))

	handler := cors.Default().Handler(mux)

	log.Infof("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Exitf("server error: %v", err)
	}
}
