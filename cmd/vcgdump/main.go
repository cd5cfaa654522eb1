// Command vcgdump walks a directory for *.vcg source files, compiles
// each one with vcgc.NewModule, and dumps the resulting imports/rules.
// It plays the role of the "directory walker" and "grammar builder"
// collaborators that the core compiler deliberately keeps outside itself —
// this binary is not part of the compiler, just its simplest consumer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/repr"
	"gopkg.in/yaml.v2"

	"github.com/vcglang/vcgc"
)

func main() {
	log.SetFlags(0)

	dir := flag.String("dir", ".", "directory to walk for *.vcg files")
	format := flag.String("format", "yaml", "output format: yaml or repr")
	flag.Parse()

	if *format != "yaml" && *format != "repr" {
		log.Fatalf("invalid -format %q, want yaml or repr", *format)
	}

	var paths []string
	err := filepath.WalkDir(*dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".vcg") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("walking %s: %v", *dir, err)
	}
	sort.Strings(paths)

	exitCode := 0
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			exitCode = 1
			continue
		}

		module, err := vcgc.NewModule(path, string(source))
		if err != nil {
			log.Printf("%s: %v", path, err)
			exitCode = 1
			continue
		}
		module.PackagePath = packagePathFor(*dir, path)
		module.CompanionFile = companionFileFor(path)

		if *format == "repr" {
			repr.Println(dumpModule(module))
			continue
		}

		out, err := yaml.Marshal(dumpModule(module))
		if err != nil {
			log.Printf("%s: marshalling dump: %v", path, err)
			exitCode = 1
			continue
		}
		fmt.Printf("# %s\n%s\n", path, out)
	}

	os.Exit(exitCode)
}

// packagePathFor derives a dotted package path from a file's location
// relative to the walked root, e.g. "sub/dir/foo.vcg" under root "."
// becomes "sub.dir.foo" — the namespace a downstream grammar-builder
// collaborator would import this module's rules under.
func packagePathFor(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = filepath.ToSlash(rel)
	return strings.ReplaceAll(rel, "/", ".")
}

// companionFileFor looks for a sibling file carrying the same base name
// as path but a ".vcgdata" extension — optional bundled data (sample
// utterances, metadata) the walker hands to the module alongside its
// compiled rule tree. Returns "" when no companion exists.
func companionFileFor(path string) string {
	companion := strings.TrimSuffix(path, filepath.Ext(path)) + ".vcgdata"
	if _, err := os.Stat(companion); err != nil {
		return ""
	}
	return companion
}

// moduleDump is a flat DTO mirroring vcgc.Module, shaped for YAML
// output: the node trees are rendered via String() rather than serialized
// structurally, since the hierarchical node isn't itself a DTO-friendly
// shape (Next/Children form a graph, not a tree yaml.v2 round-trips
// cleanly).
type moduleDump struct {
	File      string                `yaml:"file"`
	Package   string                `yaml:"package"`
	Companion string                `yaml:"companion,omitempty"`
	Imports   map[string]importDump `yaml:"imports"`
	Rules     map[string]string     `yaml:"rules"`
}

type importDump struct {
	Alias  string `yaml:"alias,omitempty"`
	Static bool   `yaml:"static"`
}

func dumpModule(m *vcgc.Module) moduleDump {
	d := moduleDump{
		File:      m.FileName,
		Package:   m.PackagePath,
		Companion: m.CompanionFile,
		Imports:   make(map[string]importDump, len(m.Imports)),
		Rules:     make(map[string]string, len(m.Rules)),
	}
	for name, spec := range m.Imports {
		d.Imports[name] = importDump{Alias: spec.Alias, Static: spec.Static}
	}
	for name, root := range m.Rules {
		d.Rules[name] = root.String()
	}
	return d
}
