package logging

// Config contains the configurable items for this package
type Config struct {
	Environment string `long:"environment" choice:"dev" choice:"prod" description:"Log encoding, console for dev and json for prod"`
	Level       Level  `long:"level" description:"Minimum level logged (debug, info, warn, error, fatal)"`
}

// NewDefaultConfig creates an instance of the package-specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Environment: "dev",
		Level:       InfoLevel,
	}
}
