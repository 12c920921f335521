package main

import (
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/Nikcio-labs/openapi-code-generator/internal/domain"
	"github.com/Nikcio-labs/openapi-code-generator/internal/gen"
)

const (
	inputFlag              = "input"
	outputFlag             = "output"
	outputTypesFlag        = "outputTypes"
	casingFlag             = "casing"
	mutableCollectionsFlag = "mutableCollections"
	defaultNonNullableFlag = "defaultNonNullable"
	propagateDefaultsFlag  = "propagateDefaults"
	namespaceFlag          = "namespace"
	maxDepthFlag           = "maxDepth"
	quietFlag              = "quiet"
	debugFlag              = "debug"
)

var generateFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    inputFlag,
		Aliases: []string{"i"},
		Value:   "./swagger.json",
		Usage:   "Schema documents to generate from, comma separated",
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./generated",
		Usage:   "Output directory for all the generated manifests",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "json,yaml",
		Usage:   "Output types of generated manifests like json,yaml",
	},
	&cli.StringFlag{
		Name:    casingFlag,
		Aliases: []string{"c"},
		Value:   string(domain.PascalCase),
		Usage:   "Canonical name casing like " + string(domain.PascalCase) + "," + string(domain.CamelCase),
	},
	&cli.BoolFlag{
		Name:  mutableCollectionsFlag,
		Usage: "Resolve arrays and maps to mutable collection types, disabled by default",
	},
	&cli.BoolFlag{
		Name:  defaultNonNullableFlag,
		Usage: "Treat optional members carrying a default as non-nullable, disabled by default",
	},
	&cli.BoolFlag{
		Name:  propagateDefaultsFlag,
		Value: true,
		Usage: "Emit schema defaults into member initializers",
	},
	&cli.StringFlag{
		Name:    namespaceFlag,
		Aliases: []string{"n"},
		Value:   "",
		Usage:   "Namespace recorded in the manifest for the syntax emitter. It is optional.",
	},
	&cli.IntFlag{
		Name:  maxDepthFlag,
		Value: 128,
		Usage: "Composition resolution depth",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

func generateAction(ctx *cli.Context) error {
	outputTypes := strings.Split(ctx.String(outputTypesFlag), ",")

	return gen.New().Build(&gen.Config{
		InputFiles:           ctx.String(inputFlag),
		OutputDir:            ctx.String(outputFlag),
		OutputTypes:          outputTypes,
		Casing:               ctx.String(casingFlag),
		MutableCollections:   ctx.Bool(mutableCollectionsFlag),
		DefaultAsNonNullable: ctx.Bool(defaultNonNullableFlag),
		PropagateDefaults:    ctx.Bool(propagateDefaultsFlag),
		Namespace:            ctx.String(namespaceFlag),
		MaxDepth:             ctx.Int(maxDepthFlag),
		Quiet:                ctx.Bool(quietFlag),
		Debug:                ctx.Bool(debugFlag),
	})
}

func main() {
	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Generate typed declaration manifests from OpenAPI schema documents."
	app.Commands = []*cli.Command{
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "Generate declaration manifests",
			Action:  generateAction,
			Flags:   generateFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
