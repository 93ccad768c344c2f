// Package config loads pokedeck's configuration.
//
// Values come from, in increasing precedence: built-in defaults, the config
// file ($POKEDECK_HOME/config.yaml, default ~/.pokedeck/config.yaml), an
// optional overlay file merged section by section, POKEDECK_* environment
// variables, and finally CLI flags applied by the caller.
package config
