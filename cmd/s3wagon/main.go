package main

import (
	"errors"
	"os"
	"path/filepath"

	// Packages
	kong "github.com/alecthomas/kong"
	transport "github.com/mutablelogic/go-s3wagon/pkg/transport"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type CLI struct {
	Globals
	TransferCommands
	VersionCommands
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	configPath = "~/.config/s3wagon.json"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func main() {
	// Parse command-line flags
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Transfer build artifacts to and from an S3 repository"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, configPath),
		kong.Vars{
			"TIMEOUT":      transport.DefaultTimeout.String(),
			"READ_TIMEOUT": transport.DefaultReadTimeout.String(),
		},
	)

	// Create the app
	app, err := NewApp(cli.Globals, execName())
	ctx.FatalIfErrorf(err)

	// Run the command
	ctx.BindTo(app, (*App)(nil))
	err = ctx.Run()
	ctx.FatalIfErrorf(errors.Join(err, app.Close()))
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	}
	return filepath.Base(name)
}
