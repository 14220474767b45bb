package config

// ConfigInitError means the config exists but the active workspace is not
// usable yet. Commands suggest running init when they see it.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
