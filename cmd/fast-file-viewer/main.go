package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	flag "github.com/spf13/pflag"

	"github.com/canejune/fast-file-viewer/pkg/config"
)

func main() {
	var (
		configPath string
		help       bool
	)
	flag.StringVar(&configPath, "config", "", "Path to settings file")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}

	if configPath == "" {
		configPath = config.DefaultPath()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}

	deps, err := NewDependencies(configPath, screen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting viewer: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	// Restore the terminal before re-panicking
	defer func() {
		if r := recover(); r != nil {
			deps.Close()
			panic(r)
		}
	}()

	if args := flag.Args(); len(args) > 0 {
		deps.OpenFile(args[0])
	}

	deps.Viewer.Run()
}

func printUsage() {
	fmt.Println("fast-file-viewer - view large text files with regex highlighting and bookmarks")
	fmt.Println()
	fmt.Println("Usage: fast-file-viewer [OPTIONS] [FILE]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Keys:")
	fmt.Println("  up/down, j/k, PgUp/PgDn   move")
	fmt.Println("  g/G                       first/last line")
	fmt.Println("  b                         toggle bookmark on the current line")
	fmt.Println("  c                         clear bookmarks for the file")
	fmt.Println("  r                         open/close the results view")
	fmt.Println("  q                         quit")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  FFV_CONFIG    Path to the settings file")
	fmt.Println()
	fmt.Println("Settings file: ~/.config/fast-file-viewer/settings.yaml")
}
