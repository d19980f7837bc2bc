// Command greenroi estimates the TCO and carbon footprint of an IT fleet and
// recommends keeping, buying or leasing each inventory line.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/rshade/greenroi/internal/cli"
	"github.com/rshade/greenroi/pkg/version"
)

// dotEnvFile is read from the working directory at start-up. Variables that
// are already set are not overridden.
const dotEnvFile = ".env"

func main() {
	os.Exit(run())
}

func run() int {
	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadDotEnv loads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}
