// Command pkgconf is a pkg-config-compatible CLI wrapping the gps
// solver: --cflags, --libs, --modversion, --exists, and
// --print-graphviz, built on a plain flag.FlagSet since pkgconf's CLI
// is flag-shaped rather than subcommand-shaped.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/golang/pkgconf/gps"
	"github.com/golang/pkgconf/gps/dirlist"
	"github.com/golang/pkgconf/internal/config"
	"github.com/golang/pkgconf/log"
)

var (
	cflags     = flag.Bool("cflags", false, "output all compiler flags")
	libs       = flag.Bool("libs", false, "output all linker flags")
	modversion = flag.Bool("modversion", false, "output the version of each named package")
	exists     = flag.Bool("exists", false, "report success if all named packages are resolvable")
	static     = flag.Bool("static", false, "resolve Requires.private and Libs.private as well")
	digraph    = flag.Bool("print-graphviz", false, "emit a graphviz digraph of the resolved graph")
	listAll    = flag.Bool("list-all", false, "list every package found on the search path")
	configPath = flag.String("config", "", "path to a pkgconf.toml client configuration file")
	pathArg    = flag.String("path", "", "colon-separated search path, overriding PKG_CONFIG_PATH")
	verbose    = flag.Bool("v", false, "enable verbose solve-trace logging")
)

func main() {
	flag.Parse()
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	client, cache, err := buildClient(*verbose)
	if err != nil {
		logger.WithError(err).Fatal("failed to build client")
	}

	if *listAll {
		pkgs, lerr := gps.ScanAll(client)
		if lerr != nil {
			logger.WithError(lerr).Fatal("scanning search path")
		}
		for _, p := range pkgs {
			fmt.Printf("%-32s %s - %s\n", p.ID, p.DisplayName(), p.Description)
		}
		return
	}

	queries := gps.NewQueue()
	for _, arg := range flag.Args() {
		queries.Push(arg)
	}

	world, solveErr := gps.Solve(cache, client, queries)
	if *exists {
		if solveErr == nil {
			fmt.Println("yes")
			os.Exit(0)
		}
		fmt.Println("no")
		os.Exit(1)
	}
	if solveErr != nil {
		logger.WithError(solveErr).Error("solve failed")
		os.Exit(1)
	}

	switch {
	case *digraph:
		fmt.Print(gps.Digraph(cache, client, world, false))
	case *modversion:
		for _, mv := range gps.CollectModversions(cache, world) {
			fmt.Printf("%s %s\n", mv.Name, mv.Version)
		}
	default:
		var out []string
		if *cflags {
			out = append(out, gps.CollectCflags(cache, client, world).Render(" "))
		}
		if *libs {
			out = append(out, gps.CollectLibs(cache, client, world).Render(" "))
		}
		fmt.Println(strings.Join(out, " "))
	}
}

func buildClient(verbose bool) (*gps.StaticClient, *gps.Cache, error) {
	var trace *log.Logger
	if verbose {
		trace = log.New(os.Stderr)
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, nil, err
		}
		if *pathArg != "" {
			cfg.SearchPaths = strings.Split(*pathArg, ":")
		}
		if *static {
			cfg.Static = true
		}
		client, err := config.NewClient(cfg, trace)
		if err != nil {
			return nil, nil, err
		}
		return client, gps.NewCache(client), nil
	}

	searchPath := strings.Split(*pathArg, ":")
	if *pathArg == "" {
		searchPath = strings.Split(os.Getenv("PKG_CONFIG_PATH"), ":")
	}
	dirs, err := dirlist.New(searchPath)
	if err != nil {
		return nil, nil, err
	}
	client := gps.NewClient(dirs)
	client.Static = *static
	if sysroot := os.Getenv("PKG_CONFIG_SYSROOT_DIR"); sysroot != "" {
		client.Sysroot = sysroot
		client.HasSysroot = true
	}
	client.Trace = trace
	return client, gps.NewCache(client), nil
}
