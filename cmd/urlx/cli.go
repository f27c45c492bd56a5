package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fwojciec/urlx"
	urlxyaml "github.com/fwojciec/urlx/yaml"
)

// Dependencies holds the I/O and services for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger is set in verbose mode only.
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log extraction steps to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract URLs from HTML, JSON or XML input"`
	Get     GetCmd     `cmd:"" help:"Print the value at a path of a JSON or YAML document"`
	Find    FindCmd    `cmd:"" help:"Print the values whose path matches a pattern"`
	Map     MapCmd     `cmd:"" help:"Extract named fields from a document with a field map"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files            []string `arg:"" optional:"" sep:"none" help:"Input files (stdin when omitted)"`
	Config           string   `short:"c" type:"existingfile" help:"Pipeline file (YAML)"`
	Steps            []string `short:"s" name:"step" sep:"none" help:"Extraction step as STRATEGY[,toStr][,attr:NAME]=EXPR (repeatable, replaces config steps)"`
	Dedup            string   `help:"Deduplication mode: none, exact, fingerprint or bloom"`
	HTTPOnly         bool     `name:"http-only" help:"Drop javascript:, mailto:, tel: and data: links"`
	AllowDomains     []string `name:"allow-domain" help:"Keep only URLs on this host (repeatable)"`
	DenyDomains      []string `name:"deny-domain" help:"Drop URLs on this host (repeatable)"`
	RegisteredDomain bool     `help:"Compare registered domains instead of full hosts"`
	Match            string   `short:"m" help:"Keep only URLs matching this regular expression"`
	Prefix           string   `short:"p" help:"Resolve URLs against this base URL"`
	Template         string   `short:"t" help:"Substitute values into this template at {}"`
	Concurrency      int      `default:"4" help:"Inputs processed concurrently"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Path    string `arg:"" help:"Slash-separated path, e.g. /data/list/0/url"`
	File    string `arg:"" optional:"" type:"existingfile" help:"JSON or YAML document (stdin when omitted)"`
	Default string `short:"d" help:"JSON value printed when the path does not resolve"`
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	Pattern string `arg:"" help:"Regular expression matched against paths from their start"`
	File    string `arg:"" optional:"" type:"existingfile" help:"JSON or YAML document (stdin when omitted)"`
	Default string `short:"d" help:"JSON array printed when nothing matches"`
}

// MapCmd is the "map" subcommand.
type MapCmd struct {
	Fields string `short:"f" required:"" type:"existingfile" help:"Field map file (YAML)"`
	File   string `arg:"" optional:"" type:"existingfile" help:"JSON or YAML document (stdin when omitted)"`
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(deps *Dependencies, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(deps.Stdin)
	}
	return os.ReadFile(path)
}

// loadDocument reads and parses a JSON or YAML document.
func loadDocument(deps *Dependencies, path string) (urlx.Node, error) {
	data, err := readInput(deps, path)
	if err != nil {
		return urlx.Node{}, fmt.Errorf("read document: %w", err)
	}
	doc, err := urlxyaml.ParseDocument(data)
	if err != nil {
		return urlx.Node{}, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// writeNode prints n as indented JSON.
func writeNode(w io.Writer, n urlx.Node) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, n.AppendJSON(nil, false), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// fail reports err on stderr and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", urlx.ErrorMessage(err))
	return err
}
