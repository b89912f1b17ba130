package config

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// ResolveSecrets replaces secrets that are configured as Secret Manager
// resources with their current value. It is a no-op when none are configured.
func ResolveSecrets(ctx context.Context, cfg *Config, opts ...option.ClientOption) error {
	if cfg.JWTSecretResource == "" {
		return nil
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: cfg.JWTSecretResource,
	})
	if err != nil {
		return fmt.Errorf("failed to access secret version %s: %w", cfg.JWTSecretResource, err)
	}
	cfg.JWTSecret = string(result.Payload.Data)
	if cfg.JWTSecret == "" {
		return fmt.Errorf("secret %s is empty", cfg.JWTSecretResource)
	}
	return nil
}
