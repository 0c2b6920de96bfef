// Command schemagen writes the JSON schema for the promptrec configuration.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/aidrax/promptrec/pkg/config"
	"github.com/aidrax/promptrec/pkg/yaml"
)

const module = "github.com/aidrax/promptrec"

var cli struct {
	OutFile string `default:"config.v1beta1.json" help:"Output file for the generated schema" short:"o"`
	Root    string `default:"../.."               help:"Module root, relative to the working directory"`
}

func main() {
	cliCtx := kong.Parse(&cli, kong.Description("Generate the promptrec configuration JSON schema."))

	out, err := filepath.Abs(cli.OutFile)
	cliCtx.FatalIfErrorf(err)

	// Doc comments are read relative to the module root.
	err = os.Chdir(cli.Root)
	if err != nil {
		cliCtx.FatalIfErrorf(fmt.Errorf("change to module root: %w", err))
	}

	gen := yaml.NewSchemaGenerator(config.New(), module,
		"api/v1beta1",
		"pkg/config",
		"pkg/component",
	)

	data, err := gen.Generate()
	if err != nil {
		cliCtx.FatalIfErrorf(fmt.Errorf("generate JSON schema: %w", err))
	}

	err = os.WriteFile(out, data, 0o600)
	if err != nil {
		cliCtx.FatalIfErrorf(fmt.Errorf("write schema file: %w", err))
	}
}
