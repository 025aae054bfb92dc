package logging

import "log/slog"

// Field keys shared by every package so log lines stay greppable.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldTimezone   = "timezone"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldOffset     = "offset"
	FieldTitle      = "title"
	FieldURL        = "url"
	FieldAttempt    = "attempt"
	FieldCount      = "count"
	FieldGames      = "games"
	FieldDropped    = "dropped"
	FieldDurationMS = "duration_ms"
)

// WithCommon appends the service and version attributes that are set.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	for _, kv := range [...]struct{ key, val string }{
		{FieldService, service},
		{FieldVersion, version},
	} {
		if kv.val != "" {
			attrs = append(attrs, slog.String(kv.key, kv.val))
		}
	}
	return attrs
}
