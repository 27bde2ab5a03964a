package config

import (
	"log/slog"
	"time"

	"github.com/classroom-tools/attendctl/pkg/service/backend"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Backend holds the flags that locate the attendance backend
type Backend struct {
	url     string
	timeout time.Duration
}

func (x *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the attendance backend",
			Category:    "Backend",
			Value:       backend.DefaultBaseURL,
			Destination: &x.url,
			Sources:     cli.EnvVars("ATTENDCTL_BACKEND_URL"),
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Timeout of each backend request (0 waits indefinitely)",
			Category:    "Backend",
			Destination: &x.timeout,
			Sources:     cli.EnvVars("ATTENDCTL_BACKEND_TIMEOUT"),
		},
	}
}

func (x Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.url),
		slog.Duration("timeout", x.timeout),
	)
}

// Configure creates the backend client
func (x *Backend) Configure() (*backend.Client, error) {
	var opts []backend.Option
	if x.timeout > 0 {
		opts = append(opts, backend.WithTimeout(x.timeout))
	}
	client, err := backend.New(x.url, opts...)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidBackendURL, err.Error(), goerr.V(ValueKey, x.url))
	}
	return client, nil
}
