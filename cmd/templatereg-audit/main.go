package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	templatereg "github.com/goliatone/go-templatereg"
	"github.com/goliatone/go-templatereg/pkg/config"
)

func main() {
	manifestPath := flag.String("config", "templates.yaml", "module manifest to audit")
	quiet := flag.Bool("quiet", false, "suppress scan warnings")
	flag.Parse()

	manifest, err := config.Load(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	factories, err := templatereg.DefaultFactories()
	if err != nil {
		log.Fatalf("Failed to build factories: %v", err)
	}

	sink := templatereg.WarnFunc(func(message string) {
		if !*quiet {
			log.Print(message)
		}
	})

	reg := templatereg.New(
		templatereg.WithFactories(factories),
		templatereg.WithWarningSink(sink),
	)

	if err := manifest.Apply(reg); err != nil {
		log.Fatalf("Failed to register templates: %v", err)
	}

	files := reg.UnassociatedFiles()
	inline := reg.UnassociatedInline()
	if len(files) == 0 && len(inline) == 0 {
		fmt.Println("No unassociated templates found.")
		return
	}

	for _, path := range files {
		fmt.Printf("unassociated file template: %s\n", path)
	}
	for _, ref := range inline {
		fmt.Printf("unassociated inline template: %s (module %s)\n", ref.Name, ref.Module)
	}
	os.Exit(1)
}
