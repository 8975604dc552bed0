package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/justyntemme/tabdeck/internal/app"
	"github.com/justyntemme/tabdeck/internal/config"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	generate := flag.Bool("generate-config", false, "Back up the config file, write a fresh default one and exit")
	flag.Parse()

	if *generate {
		backup, err := config.GenerateConfig()
		if err != nil {
			log.Fatalf("Failed to generate config: %v", err)
		}
		if backup != "" {
			fmt.Printf("Backed up old config to %s\n", backup)
		}
		fmt.Printf("Wrote default config to %s\n", config.ConfigPath())
		return
	}

	// Handle OS-specific console visibility
	manageConsole(*debug)

	// An optional path opens as an extra tab
	app.Main(*debug, flag.Arg(0))
}
