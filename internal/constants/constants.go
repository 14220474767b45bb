package constants

const (
	Version        = `0.1.0`
	AppName        = `promptorg`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `/.promptorg/`
	EnvPrefix      = `PROMPTORG`
	DatabaseFile   = `prompts.db`
	TimeLayout     = `2006-01-02 15:04:05`
)
