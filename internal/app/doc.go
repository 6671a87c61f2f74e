// Package app contains the core application logic. It wires the plugin
// registry, the importer and the optional server, watcher and publisher
// together, decoupled from any specific entrypoint like a CLI.
package app
