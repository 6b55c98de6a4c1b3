package main

import (
	_ "embed"
	"io"
	"os"
	"os/user"
	"text/template"
)

//go:embed looper.service
var looperServiceEmbed string

type LooperServiceParams struct {
	BinaryPath string
	User       string
	ConfigPath string
}

// DefaultServiceParams describes the running binary and user.
func DefaultServiceParams(configPath string) (LooperServiceParams, error) {
	path, err := os.Executable()
	if err != nil {
		return LooperServiceParams{}, err
	}

	params := LooperServiceParams{
		BinaryPath: path,
		User:       "root",
		ConfigPath: configPath,
	}
	if u, err := user.Current(); err == nil {
		params.User = u.Username
	}
	return params, nil
}

func SystemdServiceFile(w io.Writer, params LooperServiceParams) error {
	tmpl, err := template.New("looper.service").Parse(looperServiceEmbed)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, params)
}
