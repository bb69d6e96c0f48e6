package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

var ErrSecretNotFound = errors.New("secret not found")

// SecretProvider defines the interface for retrieving secrets
type SecretProvider interface {
	GetSecret(ctx context.Context, key string) (string, error)
}

// EnvironmentSecretProvider reads secrets from process environment variables
type EnvironmentSecretProvider struct{}

func (EnvironmentSecretProvider) GetSecret(_ context.Context, key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return value, nil
}

// DotEnvSecretProvider reads secrets from a .env file without touching the
// process environment.
type DotEnvSecretProvider struct {
	values map[string]string
}

func NewDotEnvSecretProvider(paths ...string) *DotEnvSecretProvider {
	values := make(map[string]string)
	for _, p := range paths {
		read, err := godotenv.Read(p)
		if err != nil {
			continue
		}
		for k, v := range read {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}
	return &DotEnvSecretProvider{values: values}
}

func (d *DotEnvSecretProvider) GetSecret(_ context.Context, key string) (string, error) {
	if value := d.values[key]; value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
}

// FileSecretProvider reads secrets from files (docker/kubernetes secrets).
// KEY_FILE in the environment names the file explicitly; otherwise the
// lower-cased key is looked up under secretsDir.
type FileSecretProvider struct {
	secretsDir string
}

func NewFileSecretProvider(secretsDir string) *FileSecretProvider {
	return &FileSecretProvider{secretsDir: secretsDir}
}

func (f *FileSecretProvider) GetSecret(_ context.Context, key string) (string, error) {
	path := os.Getenv(key + "_FILE")
	if path == "" {
		if f.secretsDir == "" {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}
		path = filepath.Join(f.secretsDir, strings.ToLower(key))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return value, nil
}

// ChainSecretProvider asks each provider in order and returns the first hit.
type ChainSecretProvider []SecretProvider

func (c ChainSecretProvider) GetSecret(ctx context.Context, key string) (string, error) {
	for _, p := range c {
		value, err := p.GetSecret(ctx, key)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrSecretNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
}

// DefaultSecretProvider resolves secrets from the environment, then .env,
// then secret files.
func DefaultSecretProvider(secretsDir string) SecretProvider {
	return ChainSecretProvider{
		EnvironmentSecretProvider{},
		NewDotEnvSecretProvider(".env"),
		NewFileSecretProvider(secretsDir),
	}
}
