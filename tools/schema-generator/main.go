// Command schema-generator regenerates the embedded tour.yml schema from the
// config types. It runs through go generate in the config package.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/tour/config"
)

func main() {
	out := flag.String("out", filepath.Join("..", "schema", "tour.schema.json"), "output path")
	flag.Parse()

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}
	schemaBytes = append(schemaBytes, '\n')

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}
	if err := os.WriteFile(*out, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", *out)
}
