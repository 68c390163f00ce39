// Command omdb-mock serves a small fixture-backed stand-in for the OMDb API
// so the server can be exercised without a real API key.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
)

type movieEntry struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Director string `json:"Director"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	IMDBID   string `json:"imdbID"`
	Response string `json:"Response"`
}

func main() {
	var (
		port = flag.String("port", "9099", "port to listen on")
		data = flag.String("data", "mock-omdb.json", "path to mock data file")
	)
	flag.Parse()

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read mock data: %v", err)
	}

	var payload []movieEntry
	if err := json.Unmarshal(file, &payload); err != nil {
		log.Fatalf("parse mock data: %v", err)
	}

	byID := make(map[string]movieEntry, len(payload))
	byTitle := make(map[string]movieEntry, len(payload))
	for _, entry := range payload {
		entry.Response = "True"
		byID[entry.IMDBID] = entry
		byTitle[entry.Title] = entry
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") == "" {
			writeJSON(w, map[string]string{"Response": "False", "Error": "No API key provided."})
			return
		}

		var entry movieEntry
		var ok bool
		if id := r.URL.Query().Get("i"); id != "" {
			entry, ok = byID[id]
		} else if title := r.URL.Query().Get("t"); title != "" {
			entry, ok = byTitle[title]
		}
		if !ok {
			writeJSON(w, map[string]string{"Response": "False", "Error": "Movie not found!"})
			return
		}
		writeJSON(w, entry)
	})

	addr := ":" + *port
	log.Printf("mock omdb listening on %s (%d entries)", addr, len(payload))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
