package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-s3wagon/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommands struct {
	Version VersionCommand `cmd:"" group:"MISC" help:"Print version information"`
}

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *VersionCommand) Run(app App) error {
	fmt.Println(string(version.New(app.Name()).JSON()))
	return nil
}
