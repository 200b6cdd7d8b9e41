package main

import (
	"fmt"
	"os"

	"gentil/internal/di"
	"gentil/internal/structures"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; GENTIL_* variables may come from the environment.
	_ = godotenv.Load()

	var flags structures.CliFlags
	flagSet := pflag.NewFlagSet("gentild", pflag.ContinueOnError)
	flagSet.StringVarP(&flags.ConfigPath, "config", "c", "config/config.yml", "path to the YAML config file")
	flagSet.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug mode")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	_, err := di.InitApp(&flags)
	return err
}
