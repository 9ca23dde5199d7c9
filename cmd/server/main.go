// Package main implements the entry point for the tasktriage API server:
// a personal task tracker backed by flat JSON document files, with
// deterministic keyword triage of task text.
package main

import (
	"context"
	"log"
)

// main initializes configuration, logging, the collection stores and the
// services, then starts the HTTP server.
func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
