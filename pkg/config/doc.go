// Package config loads frameseq configuration.
//
// Sources are layered with koanf, later ones overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file ($XDG_CONFIG_HOME/frameseq/config.toml, or --config)
//  3. the project file .frameseq.toml in the working directory
//  4. FRAMESEQ_<SECTION>_<KEY> environment variables
//
// The core sequence package never reads configuration; hosts translate the
// loaded values into operation options.
package config
