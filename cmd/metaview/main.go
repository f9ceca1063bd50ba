package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"github.com/dnswlt/metaview/internal/config"
	"github.com/dnswlt/metaview/internal/entities"
	"github.com/dnswlt/metaview/internal/gitclient"
	"github.com/dnswlt/metaview/internal/registry"
	"github.com/dnswlt/metaview/internal/snapshot"
	"github.com/dnswlt/metaview/internal/store"
	"github.com/dnswlt/metaview/internal/web"
)

var (
	// Version is the application version.
	// It is set at build time via -ldflags "-X main.Version=...".
	Version = "dev"
)

func gitClientAuthFromEnv() *gitclient.Auth {
	user := os.Getenv("METAVIEW_GIT_USER")
	if user == "" {
		return nil
	}
	pass := os.Getenv("METAVIEW_GIT_PASSWORD")
	return &gitclient.Auth{
		Username: user,
		Password: pass,
	}
}

// Options contains program options that can be set via command-line flags or environment variables.
type Options struct {
	Addr        string
	RootDir     string
	SnapshotDir string
	GitURL      string
	GitRef      string
	ConfigFile  string
	BaseDir     string
	CacheSize   int
}

func main() {
	if len(os.Args) < 2 {
		// Default to "serve"
		runServe(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "check":
		runCheck(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	default:
		// Also default to serve if the argument looks like a flag
		if strings.HasPrefix(os.Args[1], "-") {
			runServe(os.Args[1:])
			return
		}
		fmt.Fprintf(os.Stderr, "Unknown command %q. Available commands: serve, check\n", os.Args[1])
		os.Exit(1)
	}
}

func addCommonFlags(fs *flag.FlagSet, opts *Options) {
	fs.StringVar(&opts.RootDir, "root-dir", ".", "Root directory of the local data store")
	fs.StringVar(&opts.SnapshotDir, "snapshot-dir", "snapshots", "Path to the directory containing entity snapshot YAML files (relative to git root or local -root-dir)")
	fs.StringVar(&opts.ConfigFile, "config", "metaview.yml", "Path to the configuration YAML file (relative to git root or local -root-dir)")
	fs.StringVar(&opts.GitURL, "git-url", "", "URL of the git repository to use as the data store")
	fs.StringVar(&opts.GitRef, "git-ref", "", "Git ref (branch or tag) to read the snapshot from")
}

func runServe(args []string) {
	var opts Options
	fs := flag.NewFlagSet("metaview serve", flag.ExitOnError)
	fs.StringVar(&opts.Addr, "addr", "localhost:8080", "Address to listen on")
	fs.StringVar(&opts.BaseDir, "base-dir", "", "Base directory for resource files. If empty, uses embedded resources (recommended for production).")
	fs.IntVar(&opts.CacheSize, "cache-size", 1024, "Max. number of rendered fragments to hold in the in-memory LRU cache")
	addCommonFlags(fs, &opts)

	err := ff.Parse(fs, args, ff.WithEnvVarPrefix("METAVIEW"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Using config from flags/env vars: %+v", opts)

	st := openStore(opts)
	reg := registry.New()

	// The template funcs close over the registry, so the templates can be
	// parsed before any descriptor is registered.
	tmpl, err := web.LoadTemplates(opts.BaseDir, reg)
	if err != nil {
		log.Fatalf("Could not load templates: %v", err)
	}
	entities.RegisterDefaults(reg, tmpl)

	idx, err := snapshot.Load(st, opts.SnapshotDir, reg)
	if err != nil {
		log.Fatalf("Could not load snapshot: %v", err)
	}
	log.Printf("Read %d entities from snapshot", idx.Size())

	cfg := loadConfig(st, opts.ConfigFile)

	server, err := web.NewServer(
		web.ServerOptions{
			Addr:      opts.Addr,
			BaseDir:   opts.BaseDir,
			CacheSize: opts.CacheSize,
			Version:   Version,
		},
		reg, idx, cfg, tmpl,
	)
	if err != nil {
		log.Fatalf("Could not create server: %v", err)
	}

	log.Fatal(server.Serve()) // Never returns
}

// runCheck loads and validates the snapshot without starting a server.
func runCheck(args []string) {
	var opts Options
	fs := flag.NewFlagSet("metaview check", flag.ExitOnError)
	addCommonFlags(fs, &opts)

	err := ff.Parse(fs, args, ff.WithEnvVarPrefix("METAVIEW"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		os.Exit(1)
	}

	st := openStore(opts)
	reg := registry.New()
	entities.RegisterDefaults(reg, nil)

	idx, err := snapshot.Load(st, opts.SnapshotDir, reg)
	if err != nil {
		log.Fatalf("Snapshot validation failed: %v", err)
	}
	loadConfig(st, opts.ConfigFile)
	log.Printf("Snapshot OK: %d entities", idx.Size())
}

// loadConfig reads the configuration file, falling back to an empty
// configuration if the file does not exist.
func loadConfig(st store.Store, configFile string) *config.Bundle {
	cfg, err := config.Load(st, configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("No configuration file %q, using defaults", configFile)
			return &config.Bundle{}
		}
		log.Fatalf("Could not load configuration: %v", err)
	}
	return cfg
}

// openStore creates the snapshot source per the options and returns a store
// at the default ref.
func openStore(opts Options) store.Store {
	src := createSource(opts)
	st, err := src.Store("")
	if err != nil {
		log.Fatalf("Could not open store: %v", err)
	}
	return st
}

func createSource(opts Options) store.Source {
	if opts.GitURL != "" {
		auth := gitClientAuthFromEnv()
		log.Printf("Retrieving snapshot from git URL %s", opts.GitURL)
		client, err := gitclient.New(opts.GitURL, auth)
		if err != nil {
			log.Fatalf("Failed to retrieve git repo: %v", err)
		}
		ref := opts.GitRef
		if ref == "" {
			ref, err = client.DefaultBranch()
			if err != nil {
				log.Fatalf("No git-ref specified and no default branch found: %v", err)
			}
			log.Printf("Using default git branch %q", ref)
		}
		return store.NewGitSource(client, ref)
	} else if opts.RootDir != "" {
		log.Printf("Using local store at %s", opts.RootDir)
		return store.NewDiskStore(opts.RootDir)
	} else {
		log.Fatalf("Neither -root-dir nor -git-url specified")
		return nil
	}
}
