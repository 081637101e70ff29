// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main demonstrates the bodyparser middlewares on a plain
// net/http server.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"rivaas.dev/bodyparser"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mux := http.NewServeMux()

	// JSON bodies up to 100kb, gzip/deflate accepted, strict mode on.
	mux.Handle("/api/users", bodyparser.JSON(
		bodyparser.WithLimitString("100kb"),
		bodyparser.WithLogger(logger),
	)(http.HandlerFunc(createUser)))

	// Raw uploads up to 4mb, compression refused outright.
	mux.Handle("/api/upload", bodyparser.Raw(
		bodyparser.WithLimitString("4mb"),
		bodyparser.WithInflate(false),
		bodyparser.WithLogger(logger),
	)(http.HandlerFunc(upload)))

	// Plain-text notes with charset negotiation.
	mux.Handle("/api/notes", bodyparser.Text(
		bodyparser.WithLogger(logger),
	)(http.HandlerFunc(addNote)))

	log.Println("listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", mux))
}

func createUser(w http.ResponseWriter, r *http.Request) {
	user, err := bodyparser.Decode[struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Fprintf(w, "created %s <%s>\n", user.Name, user.Email)
}

func upload(w http.ResponseWriter, r *http.Request) {
	body, ok := bodyparser.RawBody(r)
	if !ok {
		http.Error(w, "no body", http.StatusBadRequest)
		return
	}

	fmt.Fprintf(w, "stored %d bytes\n", len(body))
}

func addNote(w http.ResponseWriter, r *http.Request) {
	text, ok := bodyparser.TextBody(r)
	if !ok {
		http.Error(w, "no body", http.StatusBadRequest)
		return
	}
	charset, _ := bodyparser.BodyCharset(r)

	fmt.Fprintf(w, "note (%s): %s\n", charset, text)
}
