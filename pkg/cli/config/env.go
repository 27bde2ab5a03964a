package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// DefaultEnvFile is loaded when no --env-file is given
const DefaultEnvFile = ".env"

const envFileFlag = "env-file"

// EnvFile is the --env-file flag. The file has to be loaded before the
// other flags read their environment sources, so the path is found by
// scanning the raw arguments with EnvFilePath.
type EnvFile struct {
	path string
}

func (x *EnvFile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        envFileFlag,
			Usage:       "Path of a .env file to load before reading ATTENDCTL_* variables",
			Value:       DefaultEnvFile,
			Destination: &x.path,
			Sources:     cli.EnvVars("ATTENDCTL_ENV_FILE"),
		},
	}
}

// EnvFilePath finds the env file given on the command line, falling back
// to ATTENDCTL_ENV_FILE and then DefaultEnvFile. The bool reports whether
// the path was chosen explicitly.
func EnvFilePath(args []string) (string, bool) {
	for i, arg := range args {
		switch {
		case arg == "--"+envFileFlag || arg == "-"+envFileFlag:
			if i+1 < len(args) {
				return args[i+1], true
			}
		case strings.HasPrefix(arg, "--"+envFileFlag+"="):
			return strings.TrimPrefix(arg, "--"+envFileFlag+"="), true
		case strings.HasPrefix(arg, "-"+envFileFlag+"="):
			return strings.TrimPrefix(arg, "-"+envFileFlag+"="), true
		}
	}
	if v := os.Getenv("ATTENDCTL_ENV_FILE"); v != "" {
		return v, true
	}
	return DefaultEnvFile, false
}

// LoadEnvFile loads variables from path without overriding the existing
// environment. A missing file is not an error unless it was requested
// explicitly.
func LoadEnvFile(path string, explicit bool) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V(ConfigPathKey, path))
	}
	return nil
}
