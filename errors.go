package sketch

// ConfigError reports an invalid material field.
// It is returned by Material.Validate and NewProfile before any stroke is
// synthesized; detect it with errors.As.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "sketch: invalid material." + e.Field + ": " + e.Reason
}
