package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"club-platform/internal/gateway/cashfree"
	"club-platform/internal/gateway/instamojo"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct{}

// NewFactory creates a new gateway factory.
func NewFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// CreateGateway creates a gateway instance from provider-specific config.
func (f *DefaultFactory) CreateGateway(ctx context.Context, provider Provider, config any) (Gateway, error) {
	switch provider {
	case ProviderCashfree:
		cfg, ok := config.(*cashfree.Config)
		if !ok {
			return nil, fmt.Errorf("invalid cashfree config type, expected *cashfree.Config")
		}
		return NewCashfreeAdapter(ctx, cfg)

	case ProviderInstamojo:
		cfg, ok := config.(*instamojo.Config)
		if !ok {
			return nil, fmt.Errorf("invalid instamojo config type, expected *instamojo.Config")
		}
		return NewInstamojoAdapter(ctx, cfg)

	default:
		return nil, fmt.Errorf("unsupported gateway provider: %s", provider)
	}
}

// SupportedProviders returns the list of supported gateway providers.
func (f *DefaultFactory) SupportedProviders() []Provider {
	return []Provider{
		ProviderCashfree,
		ProviderInstamojo,
	}
}

// Registry manages the configured gateway instances.
type Registry struct {
	gateways map[Provider]Gateway
	factory  Factory
	primary  Provider
}

// NewRegistry creates a new gateway registry.
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		gateways: make(map[Provider]Gateway),
		factory:  factory,
	}
}

// Register creates and registers a gateway instance.
func (r *Registry) Register(ctx context.Context, provider Provider, config any) error {
	gw, err := r.factory.CreateGateway(ctx, provider, config)
	if err != nil {
		return fmt.Errorf("failed to create %s gateway: %w", provider, err)
	}

	r.gateways[provider] = gw

	// First registered gateway becomes the primary.
	if r.primary == "" {
		r.primary = provider
	}

	return nil
}

// Get returns a gateway instance by provider.
func (r *Registry) Get(provider Provider) (Gateway, error) {
	gw, exists := r.gateways[provider]
	if !exists {
		return nil, fmt.Errorf("gateway provider %s not registered", provider)
	}
	return gw, nil
}

// Primary returns the primary gateway instance.
func (r *Registry) Primary() (Gateway, error) {
	if r.primary == "" {
		return nil, fmt.Errorf("no primary gateway configured")
	}
	return r.Get(r.primary)
}

// Available returns the registered gateway providers.
func (r *Registry) Available() []Provider {
	providers := make([]Provider, 0, len(r.gateways))
	for provider := range r.gateways {
		providers = append(providers, provider)
	}
	return providers
}

// Close gracefully closes all gateway connections.
func (r *Registry) Close(ctx context.Context) error {
	for provider, gw := range r.gateways {
		if err := gw.Close(ctx); err != nil {
			slog.Error("error closing gateway", "provider", provider, "error", err)
		}
	}
	return nil
}
