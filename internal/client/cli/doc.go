// Package cli provides the interactive gophsocial command-line client.
//
// It wires configuration, the local token store, the API services and a
// REPL. Every REPL command is a route; routes are wrapped with the guards
// of package guard, so signed-out users asking for the feed land on login
// and signed-in users asking for login land on the feed. A background
// watcher pings the API and switches the prompt between online and offline.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
