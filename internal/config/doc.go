// Package config provides the settings of the hyperspectral analysis pipeline.
// Settings are built once, either from the built-in defaults or from a YAML file
// overlaying them, validated eagerly and then passed by value to every reader.
package config
