package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jwebster45206/life-engine/pkg/world"
)

// Validates a world definition JSON file (locations, zones, actions,
// travel routes, item catalog). With no argument it checks the built-in
// world data instead.
func main() {
	if len(os.Args) < 2 {
		if err := world.Default().Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Built-in world data is invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Built-in world data is valid!")
		return
	}

	filename := os.Args[1]
	if err := validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World file is valid!")
}

func validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	if !strings.HasSuffix(filename, ".json") {
		return fmt.Errorf("world file must have .json extension: %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	w, err := world.Load(data)
	if err != nil {
		return err
	}

	var zones, actions int
	for _, def := range w.Locations {
		zones += len(def.Zones)
		for _, z := range def.Zones {
			actions += len(z.Actions)
		}
	}
	fmt.Printf("  %d locations, %d zones, %d actions, %d routes, %d items\n",
		len(w.Locations), zones, actions, len(w.Routes), len(w.Items))

	return nil
}
