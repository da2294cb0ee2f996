package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/Mavwarf/iconforge/internal/config"
	"github.com/Mavwarf/iconforge/internal/iconfetch"
	"github.com/Mavwarf/iconforge/internal/icongen"
	"github.com/Mavwarf/iconforge/internal/iconstore"
)

// generateSet writes the configured placeholder variants.
func generateSet(cfg config.Config, colorHex, outDir string) {
	c, err := resolveColor(colorHex, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dir := resolveOutDir(outDir, cfg)

	written, err := icongen.Generate(dir, cfg.Variants, c)
	for _, p := range written {
		fmt.Printf("  %s\n", p)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	recordAll(cfg, written, cfg.Variants)
	fmt.Printf("Created %d PNG icons\n", len(written))
}

// generateSolid writes one solid PNG: mkicons solid <size> <file>.
func generateSolid(cfg config.Config, colorHex, outDir string, args []string) {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "Error: expected <size> <file>\n")
		fmt.Fprintf(os.Stderr, "Usage: mkicons solid 256 icon.png\n")
		os.Exit(1)
	}
	size, err := parsePositiveInt(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: size: %v\n", err)
		os.Exit(1)
	}
	c, err := resolveColor(colorHex, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	variant := icongen.Variant{Name: args[1], Size: size}
	written, err := icongen.Generate(resolveOutDir(outDir, cfg), []icongen.Variant{variant}, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	recordAll(cfg, written, []icongen.Variant{variant})
	fmt.Printf("Created %s\n", written[0])
}

// fetchIcon downloads a website icon: mkicons fetch <url> <name>.
func fetchIcon(cfg config.Config, outDir string, force bool, args []string) {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "Error: expected <url> <name>\n")
		fmt.Fprintf(os.Stderr, "Usage: mkicons fetch https://example.com myapp\n")
		os.Exit(1)
	}
	url, name := args[0], args[1]
	dir := resolveOutDir(outDir, cfg)

	target := filepath.Join(dir, iconfetch.SanitizeName(name)+".png")
	if _, err := os.Stat(target); err == nil && !force {
		if !confirmOverwrite(target) {
			fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", target)
			os.Exit(1)
		}
	}

	out, err := iconfetch.Fetch(url, dir, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	record(cfg, iconstore.Entry{
		Source: iconstore.SourceWeb,
		Name:   name,
		Size:   iconfetch.TargetSize,
		Path:   out,
	})
	fmt.Printf("Saved %s\n", out)
}

// confirmOverwrite asks on the terminal whether target may be replaced.
// Non-interactive stdin always answers no.
func confirmOverwrite(target string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Printf("%s exists, overwrite? [y/N] ", target)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// listIcons prints cache records: mkicons list [days].
func listIcons(args []string) {
	days := 0
	if len(args) > 0 {
		n, err := parsePositiveInt(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: days: %v\n", err)
			os.Exit(1)
		}
		days = n
	}

	s, err := iconstore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	entries, err := s.Entries(days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No cached icons.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %-11s  %4dpx  %s\n",
			e.Time.Format("2006-01-02 15:04"), e.Source, e.Size, e.Path)
	}
}

// cleanIcons prunes cache records older than N days: mkicons clean <days>.
func cleanIcons(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected <days>\n")
		os.Exit(1)
	}
	days, err := parsePositiveInt(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: days: %v\n", err)
		os.Exit(1)
	}

	s, err := iconstore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	removed, err := s.Clean(days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %d records\n", removed)
}

// clearIcons drops every cache record.
func clearIcons() {
	s, err := iconstore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if err := s.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Cache cleared")
}

// recordAll records one store entry per written placeholder. Best-effort:
// failures go to stderr and never abort the run.
func recordAll(cfg config.Config, written []string, set []icongen.Variant) {
	if !cfg.Log {
		return
	}
	s, err := iconstore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "iconstore: %v\n", err)
		return
	}
	defer s.Close()

	for i, p := range written {
		e := iconstore.Entry{
			Source: iconstore.SourcePlaceholder,
			Name:   filepath.Base(p),
			Size:   set[i].Size,
			Path:   p,
		}
		if err := s.Record(e); err != nil {
			fmt.Fprintf(os.Stderr, "iconstore: %v\n", err)
			return
		}
	}
}

// record records a single store entry, best-effort.
func record(cfg config.Config, e iconstore.Entry) {
	if !cfg.Log {
		return
	}
	s, err := iconstore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "iconstore: %v\n", err)
		return
	}
	defer s.Close()
	if err := s.Record(e); err != nil {
		fmt.Fprintf(os.Stderr, "iconstore: %v\n", err)
	}
}
