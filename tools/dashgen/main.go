// Package main generates the Grafana dashboard and Prometheus rules for
// catalog-browser and validates their PromQL against the exported metrics.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/catalog-browser/tools/dashgen/dashboards"
	"github.com/donaldgifford/catalog-browser/tools/dashgen/rules"
	"github.com/donaldgifford/catalog-browser/tools/dashgen/validate"
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// generate builds and validates every enabled artifact.
func generate(cfg Config) ([]artifact, error) {
	var (
		artifacts []artifact
		result    validate.Result
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building overview dashboard: %w", err)
		}
		res := validate.Dashboard(dash, KnownMetrics)
		result.Errors = append(result.Errors, res.Errors...)
		result.Warnings = append(result.Warnings, res.Warnings...)

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling dashboard: %w", err)
		}
		artifacts = append(artifacts, artifact{
			path: filepath.Join("grafana", "data", dashboards.OverviewUID+".json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		crs := rules.AllRules()
		res := validate.Rules(crs, KnownMetrics)
		result.Errors = append(result.Errors, res.Errors...)
		result.Warnings = append(result.Warnings, res.Warnings...)

		for _, cr := range crs {
			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, fmt.Errorf("marshaling %s: %w", cr.Metadata.Name, err)
			}
			artifacts = append(artifacts, artifact{
				path: filepath.Join("prometheus", cr.Metadata.Name+".yaml"),
				data: append([]byte(rules.GeneratedHeader), data...),
			})
		}
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Ok() {
		return nil, errors.New("validation failed:\n  " + strings.Join(result.Errors, "\n  "))
	}
	return artifacts, nil
}
