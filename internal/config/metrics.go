package config

// MetricsConfig drives the Prometheus listener and the optional OTLP push.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// PushEnabled reports whether an OTLP collector endpoint is configured.
func (m MetricsConfig) PushEnabled() bool {
	return m.Enabled && m.OtlpEndpoint != ""
}

func loadMetrics() MetricsConfig {
	m := MetricsConfig{
		Enabled:     boolEnvOrDefault(envMetricsOn, true),
		Port:        envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName: envOrDefault(envOtelService, defaultServiceName),
	}
	if !m.Enabled {
		return m
	}
	m.OtlpEndpoint = envOrDefault(envOtelEndpoint, "")
	m.OtlpInsecure = boolEnvOrDefault(envOtelInsecure, true)
	return m
}
