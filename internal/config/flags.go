package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagAtlasSize = flag.Int("atlas-size", 0, "Initial atlas width and height")
	flagNoTilePad = flag.Bool("no-tilepad", false, "Disable tile padding until the atlas first expands")
	flagOut       = flag.String("out", "", "Directory for atlas dumps")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAtlasSize > 0 {
		cfg.Atlas.Width = *flagAtlasSize
		cfg.Atlas.Height = *flagAtlasSize
	}
	if *flagNoTilePad {
		cfg.Atlas.TilePad = false
	}
	if *flagOut != "" {
		cfg.Export.Dir = *flagOut
	}
}
