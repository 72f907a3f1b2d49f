// cmd/tools/catalog-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"kpi-performance-skill/internal/common/validation"
	"kpi-performance-skill/pkg/registry"
)

const defaultCatalogPath = "configs/skill-catalog.json"

// catalogSchema is the structural contract a catalog file must satisfy.
var catalogSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"version", "skills"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string"},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"skills": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id", "displayName", "llmName", "description"},
				"properties": map[string]interface{}{
					"id":          map[string]interface{}{"type": "string", "minLength": 1},
					"displayName": map[string]interface{}{"type": "string", "minLength": 1},
					"llmName":     map[string]interface{}{"type": "string", "minLength": 1},
					"description": map[string]interface{}{"type": "string", "minLength": 1},
				},
			},
		},
	},
}

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	catalogAdd := addCmd.String("path", defaultCatalogPath, "Path to catalog file")
	id := addCmd.String("id", "", "Skill ID (e.g., kpi-performance)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., KPI Performance)")
	llmName := addCmd.String("llmName", "", "LLM-facing name (e.g., kpi_performance)")
	description := addCmd.String("description", "", "Description")

	// Validate command flags
	catalogValidate := validateCmd.String("path", defaultCatalogPath, "Path to catalog file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *id == "" || *displayName == "" || *llmName == "" || *description == "" {
			fmt.Println("Error: id, displayName, llmName, and description are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		if err := addSkill(*catalogAdd, registry.SkillDescriptor{
			ID:          *id,
			DisplayName: *displayName,
			LLMName:     *llmName,
			Description: *description,
		}); err != nil {
			fmt.Printf("Error adding skill: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added skill: %s\n", *id)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(*catalogValidate); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog validation passed.")

	case "help":
		help()

	default:
		help()
		os.Exit(1)
	}
}

func addSkill(path string, skill registry.SkillDescriptor) error {
	catalog, err := registry.LoadCatalog(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		catalog = &registry.SkillCatalog{Version: "1.0.0"}
	}

	if catalog.Find(skill.ID) != nil {
		return fmt.Errorf("skill %q already exists", skill.ID)
	}

	catalog.Skills = append(catalog.Skills, skill)
	catalog.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func validateCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}

	if err := validation.MustBeValid(catalogSchema, doc); err != nil {
		return err
	}

	// Schema cannot catch duplicate IDs.
	catalog, err := registry.LoadCatalog(path)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(catalog.Skills))
	for _, s := range catalog.Skills {
		if seen[s.ID] {
			return fmt.Errorf("duplicate skill id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

func help() {
	fmt.Println(`Usage: catalog-updater <command> [flags]

Commands:
  add       Add a skill descriptor to the catalog
  validate  Validate the catalog file structure
  help      Show this message`)
}
