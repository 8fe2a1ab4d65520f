// Command mimejson is a thin front end over the render package's two entry
// points, plus a "serve" subcommand that exposes them over HTTP.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/eslider/mimejson/internal/auditlog"
	"github.com/eslider/mimejson/internal/config"
	"github.com/eslider/mimejson/internal/httpapi"
	"github.com/eslider/mimejson/internal/render"
	"github.com/eslider/mimejson/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		cmdRender(os.Args[2:])
	case "part":
		cmdPart(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "version":
		fmt.Println("mimejson dev")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  mimejson render <path> [--no-content]
  mimejson part <path> <partId> <contentType>
  mimejson serve <addr> [--root <dir>]
  mimejson version`)
}

func cmdRender(args []string) {
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	_, limits, err := config.Load(envOr("MIMEJSON_CONFIG", "render.yaml"))
	if err != nil {
		log.Fatalf("mimejson: %v", err)
	}

	includeContent := true
	for _, a := range args[1:] {
		if a == "--no-content" {
			includeContent = false
		}
	}

	render.Init()
	defer render.Shutdown()

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("mimejson: %v", err)
	}
	out, err := render.RenderMessage(data, includeContent, limits)
	if err != nil {
		log.Fatalf("mimejson: %v", err)
	}
	fmt.Println(out)
}

func cmdPart(args []string) {
	if len(args) < 3 {
		printUsage()
		os.Exit(1)
	}
	_, limits, err := config.Load(envOr("MIMEJSON_CONFIG", "render.yaml"))
	if err != nil {
		log.Fatalf("mimejson: %v", err)
	}

	var partID int
	if _, err := fmt.Sscanf(args[1], "%d", &partID); err != nil {
		log.Fatalf("mimejson: invalid partId %q", args[1])
	}

	render.Init()
	defer render.Shutdown()

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("mimejson: %v", err)
	}
	out, err := render.ExtractPart(data, partID, args[2], limits)
	if err != nil {
		log.Fatalf("mimejson: %v", err)
	}
	if out == nil {
		log.Fatalf("mimejson: part %d with content type %q not found", partID, args[2])
	}
	os.Stdout.Write(out)
}

func cmdServe(args []string) {
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	addr := args[0]
	root := "."
	for i := 1; i < len(args); i++ {
		if args[i] == "--root" && i+1 < len(args) {
			root = args[i+1]
			i++
		}
	}

	_, limits, err := config.Load(envOr("MIMEJSON_CONFIG", "render.yaml"))
	if err != nil {
		log.Fatalf("mimejson: %v", err)
	}

	auditDB := envOr("MIMEJSON_AUDIT_DB", "mimejson-audit.db")
	alog, err := auditlog.Open(auditDB)
	if err != nil {
		log.Printf("mimejson: audit log disabled: %v", err)
		alog = nil
	}
	defer alog.Close()

	render.Init()
	defer render.Shutdown()

	fsStore := store.NewFSStore(root)
	router := httpapi.NewRouter(httpapi.Config{Store: fsStore, Log: alog, Limits: limits})

	log.Printf("mimejson: serving on %s (root=%s)", addr, root)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("mimejson: %v", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
