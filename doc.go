// Package main is the entry point of aoai-settings, the advanced settings
// service of the chat client. It serves the settings page and JSON API,
// resolves server defaults from the environment and persists user overrides
// in a database slot.
package main
