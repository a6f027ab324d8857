package main

import (
	"fmt"
	"os"
	"path"
	"time"

	// Packages
	transport "github.com/mutablelogic/go-s3wagon/pkg/transport"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type TransferCommands struct {
	Get        GetCommand        `cmd:"" group:"TRANSFER" help:"Download a resource"`
	GetIfNewer GetIfNewerCommand `cmd:"" name:"get-if-newer" group:"TRANSFER" help:"Download a resource when the remote copy is newer than the local file"`
	Put        PutCommand        `cmd:"" group:"TRANSFER" help:"Upload a file"`
	PutDir     PutDirCommand     `cmd:"" name:"put-dir" group:"TRANSFER" help:"Upload a directory tree"`
	List       ListCommand       `cmd:"" group:"REPOSITORY" help:"List a remote directory"`
	Exists     ExistsCommand     `cmd:"" group:"REPOSITORY" help:"Check if a resource exists"`
}

type GetCommand struct {
	Name        string `arg:"" help:"Resource name, relative to the repository"`
	Destination string `arg:"" optional:"" type:"path" help:"Local file, defaults to the resource base name"`
}

type GetIfNewerCommand struct {
	GetCommand
	Since time.Time `help:"Download if modified after this time (RFC3339), defaults to the modification time of the local file"`
}

type PutCommand struct {
	Source      string `arg:"" type:"existingfile" help:"Local file"`
	Destination string `arg:"" help:"Resource name, relative to the repository"`
}

type PutDirCommand struct {
	Source      string `arg:"" type:"existingdir" help:"Local directory"`
	Destination string `arg:"" optional:"" help:"Remote directory, relative to the repository"`
}

type ListCommand struct {
	Directory string `arg:"" optional:"" help:"Remote directory, relative to the repository"`
}

type ExistsCommand struct {
	Name string `arg:"" help:"Resource name, relative to the repository"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *GetCommand) Run(app App) error {
	return run(app, func(t *transport.Transport) error {
		return t.Get(app.Context(), cmd.Name, cmd.destination())
	})
}

func (cmd *GetIfNewerCommand) Run(app App) error {
	dest := cmd.destination()
	since := cmd.Since
	if since.IsZero() {
		if info, err := os.Stat(dest); err == nil {
			since = info.ModTime()
		}
	}
	return run(app, func(t *transport.Transport) error {
		downloaded, err := t.GetIfNewer(app.Context(), cmd.Name, dest, since)
		if err != nil {
			return err
		} else if !downloaded {
			logger := app.Logger()
			logger.Info().Str("resource", cmd.Name).Msg("remote is not newer")
		}
		return nil
	})
}

func (cmd *PutCommand) Run(app App) error {
	return run(app, func(t *transport.Transport) error {
		return t.Put(app.Context(), cmd.Source, cmd.Destination)
	})
}

func (cmd *PutDirCommand) Run(app App) error {
	return run(app, func(t *transport.Transport) error {
		return t.PutDirectory(app.Context(), cmd.Source, cmd.Destination)
	})
}

func (cmd *ListCommand) Run(app App) error {
	return run(app, func(t *transport.Transport) error {
		names, err := t.GetFileList(app.Context(), cmd.Directory)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	})
}

func (cmd *ExistsCommand) Run(app App) error {
	return run(app, func(t *transport.Transport) error {
		exists, err := t.ResourceExists(app.Context(), cmd.Name)
		if err != nil {
			return err
		} else if !exists {
			return fmt.Errorf("%q does not exist", cmd.Name)
		}
		fmt.Println(cmd.Name)
		return nil
	})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *GetCommand) destination() string {
	if cmd.Destination != "" {
		return cmd.Destination
	}
	return path.Base(cmd.Name)
}

func run(app App, fn func(*transport.Transport) error) error {
	t, err := app.Connect()
	if err != nil {
		return err
	}
	return fn(t)
}
