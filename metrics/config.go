package metrics

// Config represents the configuration of the metric package
type Config struct {
	Textfile string `long:"textfile" description:"Write the run metrics to this node exporter textfile, disabled when empty"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{}
}

func (c Config) Enabled() bool {
	return c.Textfile != ""
}
