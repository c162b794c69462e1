package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rhyrak/go-schedule/internal/boundary"
	"github.com/rhyrak/go-schedule/internal/engine"
)

func main() {
	requestPath := flag.String("request", "", "path to a JSON generation request; defaults to standard input")
	flag.Parse()

	var in io.Reader = os.Stdin
	if *requestPath != "" {
		file, err := os.Open(*requestPath)
		if err != nil {
			slog.Error("cannot open request file", "path", *requestPath, "err", err)
			os.Exit(1)
		}
		defer file.Close()
		in = file
	}

	raw := map[string]interface{}{}
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		fmt.Fprintln(os.Stderr, "invalid JSON request:", err)
		os.Exit(1)
	}

	doc, err := boundary.DecodeRequest(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid request:", err)
		os.Exit(1)
	}

	entities, config, err := boundary.ToModel(doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid request:", err)
		os.Exit(1)
	}

	result := engine.Generate(config, entities)

	out, err := json.MarshalIndent(boundary.FromResult(result), "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "internal error encoding result:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}
