package config

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// InitDotEnv loads a local .env file into the process environment before
// any config-tagged initializer resolves. A missing file is not an error.
type InitDotEnv struct{}

// Initialize loads the .env file if present.
func (i InitDotEnv) Initialize(ctx context.Context) (context.Context, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ctx, err
	}
	return ctx, nil
}
