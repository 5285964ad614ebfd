package core

import "context"

type ctxkey string

const configKey = ctxkey("configKey")

// WithConfig stores the loaded configuration on the context.
func WithConfig(ctx context.Context, cfg ConfigFile) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFrom returns the configuration stored by WithConfig, or Defaults.
func ConfigFrom(ctx context.Context) ConfigFile {
	cfg, ok := ctx.Value(configKey).(ConfigFile)
	if !ok {
		return Defaults()
	}
	return cfg
}
