// Command impgraph builds an import graph over one or more Python
// package roots and exposes the graph's queries from the command
// line: dumping it, finding a shortest chain between two modules, or
// checking it against a layered-architecture configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"importgraph.dev/importgraph"
	"importgraph.dev/importgraph/graph"
	"importgraph.dev/importgraph/layers"
	"importgraph.dev/importgraph/report"
)

func usage() {
	io.WriteString(flag.CommandLine.Output(), `usage: impgraph <command> [flags] <roots...>

Commands:
  dump    print every module and edge in the graph
  chain   print the shortest chain between two modules
  check   run a layer-stack configuration against the graph

`)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("impgraph: ")
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "dump":
		err = runDump(args)
	case "chain":
		err = runChain(args)
	case "check":
		err = runCheck(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// dirResolver maps a dotted root name to a directory under base by
// replacing dots with path separators, standing in for whatever
// ambient package resolution a real host environment would supply.
type dirResolver struct{ base string }

func (r dirResolver) Resolve(root string) (string, error) {
	dir := filepath.Join(r.base, filepath.FromSlash(strings.ReplaceAll(root, ".", "/")))
	if _, err := os.Stat(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func commonFlags(fs *flag.FlagSet) (dir, cacheDir *string, includeExternal, excludeTypeChecking *bool) {
	dir = fs.String("dir", ".", "base directory under which root package directories live")
	cacheDir = fs.String("cache", importgraph.DefaultCacheDir, "cache directory (empty disables caching)")
	includeExternal = fs.Bool("include-external", false, "include external (non-root) imports, squashed to their shallowest ancestor")
	excludeTypeChecking = fs.Bool("exclude-type-checking", false, "exclude imports made only under a TYPE_CHECKING guard")
	return
}

func build(dir string, cacheDir *string, includeExternal, excludeTypeChecking bool, roots []string) (*graph.Graph, []string, error) {
	return importgraph.Build(context.Background(), roots, dirResolver{base: dir}, importgraph.Options{
		IncludeExternalPackages:    includeExternal,
		ExcludeTypeCheckingImports: excludeTypeChecking,
		CacheDir:                   cacheDir,
	})
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	dir, cacheDir, includeExternal, excludeTypeChecking := commonFlags(fs)
	fs.Parse(args)
	roots := fs.Args()
	if len(roots) == 0 {
		return fmt.Errorf("dump: at least one root package name is required")
	}

	gr, warnings, err := build(*dir, cacheDir, *includeExternal, *excludeTypeChecking, roots)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Println("warning:", w)
	}
	fmt.Print(gr.DebugString())
	return nil
}

func runChain(args []string) error {
	fs := flag.NewFlagSet("chain", flag.ExitOnError)
	dir, cacheDir, includeExternal, excludeTypeChecking := commonFlags(fs)
	asPackages := fs.Bool("packages", false, "treat the endpoints as packages (include descendants)")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 3 {
		return fmt.Errorf("chain: usage: impgraph chain <from> <to> <roots...>")
	}
	from, to, roots := rest[0], rest[1], rest[2:]

	gr, warnings, err := build(*dir, cacheDir, *includeExternal, *excludeTypeChecking, roots)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Println("warning:", w)
	}

	chain, err := gr.FindShortestChain(from, to, *asPackages)
	if err != nil {
		return err
	}
	if chain == nil {
		fmt.Printf("no chain from %s to %s\n", from, to)
		return nil
	}
	fmt.Println(strings.Join(chain, " -> "))
	return nil
}

// layerConfig is the on-disk shape of one impgraph.yaml layer.
type layerConfig struct {
	Tails       []string `yaml:"tails"`
	Independent bool     `yaml:"independent"`
}

// checkConfig is the on-disk shape of a full impgraph.yaml.
type checkConfig struct {
	Containers []string      `yaml:"containers"`
	Layers     []layerConfig `yaml:"layers"`
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	dir, cacheDir, includeExternal, excludeTypeChecking := commonFlags(fs)
	configPath := fs.String("config", "impgraph.yaml", "layer-stack configuration file")
	htmlOut := fs.Bool("html", false, "render the report as HTML instead of Markdown")
	fs.Parse(args)
	roots := fs.Args()
	if len(roots) == 0 {
		return fmt.Errorf("check: at least one root package name is required")
	}

	data, err := os.ReadFile(*configPath)
	if err != nil {
		return err
	}
	var cfg checkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", *configPath, err)
	}

	gr, warnings, err := build(*dir, cacheDir, *includeExternal, *excludeTypeChecking, roots)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Println("warning:", w)
	}

	stack := make([]layers.Layer, len(cfg.Layers))
	for i, l := range cfg.Layers {
		stack[i] = layers.Layer{Tails: l.Tails, Independent: l.Independent}
	}

	deps, err := layers.Analyze(gr, stack, cfg.Containers)
	if err != nil {
		return err
	}

	if *htmlOut {
		html, err := report.HTML(deps)
		if err != nil {
			return err
		}
		fmt.Print(html)
	} else {
		fmt.Print(report.Markdown(deps))
	}
	if len(deps) > 0 {
		os.Exit(1)
	}
	return nil
}
