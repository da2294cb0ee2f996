// mkicons generates solid-color placeholder icon PNGs and fetches website
// icons, recording everything it writes in a local cache.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/Mavwarf/iconforge/internal/config"
	"github.com/Mavwarf/iconforge/internal/pngenc"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	colorHex := ""
	outDir := ""
	configPath := ""
	force := false

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--color", "-c":
			if i+1 < len(args) {
				colorHex = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --color requires a hex value (e.g. #007bff)\n")
				os.Exit(1)
			}
		case "--out", "-o":
			if i+1 < len(args) {
				outDir = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --out requires a directory path\n")
				os.Exit(1)
			}
		case "--config":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --config requires a file path\n")
				os.Exit(1)
			}
		case "--force", "-f":
			force = true
		default:
			filtered = append(filtered, args[i])
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(filtered) == 0 {
		generateSet(cfg, colorHex, outDir)
		return
	}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "generate":
		generateSet(cfg, colorHex, outDir)
	case "solid":
		generateSolid(cfg, colorHex, outDir, filtered[1:])
	case "fetch":
		fetchIcon(cfg, outDir, force, filtered[1:])
	case "list", "-l", "--list":
		listIcons(filtered[1:])
	case "clean":
		cleanIcons(filtered[1:])
	case "clear":
		clearIcons()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", filtered[0])
		fmt.Fprintf(os.Stderr, "Run 'mkicons help' for usage.\n")
		os.Exit(1)
	}
}

// resolveColor applies the CLI color override on top of the config value.
func resolveColor(flagHex string, cfg config.Config) (pngenc.Color, error) {
	if flagHex != "" {
		return pngenc.ParseHex(flagHex)
	}
	return cfg.ParseColor()
}

// resolveOutDir applies the CLI output dir override on top of the config value.
func resolveOutDir(flagDir string, cfg config.Config) string {
	if flagDir != "" {
		return flagDir
	}
	return cfg.OutDir
}

// parsePositiveInt parses s as an integer > 0.
func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive integer", s)
	}
	return n, nil
}

func printVersion() {
	fmt.Printf("mkicons %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("mkicons %s - Generate placeholder icon PNGs and fetch website icons\n", version)
	fmt.Println(`
Usage:
  mkicons [options]                       Generate the default placeholder set
  mkicons [options] solid <size> <file>   Generate one solid PNG
  mkicons [options] fetch <url> <name>    Fetch a website icon as <name>.png
  mkicons list [days]                     List cached icon records
  mkicons clean <days>                    Remove cache records older than <days>
  mkicons clear                           Remove all cache records

Options:
  --color, -c <hex>      Fill color for placeholders (default: #007bff)
  --out, -o <dir>        Output directory (default: current directory)
  --config <path>        Path to iconforge.json
  --force, -f            Overwrite existing files without asking

Config resolution:
  1. --config <path>                        (explicit)
  2. iconforge.json next to binary          (portable)
  3. ~/.config/iconforge/iconforge.json     (user default)
  Missing config means built-in defaults.

Examples:
  mkicons                                  32x32, 128x128 and 128x128@2x placeholders
  mkicons -c #22cc88 -o assets/icons       Same set, custom color and directory
  mkicons solid 512 big.png                One 512px solid PNG
  mkicons fetch https://example.com demo   Save example.com's icon as demo.png`)
}
