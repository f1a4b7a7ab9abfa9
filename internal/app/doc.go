// Package app contains the core application logic. It wires the literal
// loader, the record registries and the factory together, and renders every
// loaded literal, decoupled from any specific entrypoint like a CLI.
package app
