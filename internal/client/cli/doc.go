// Package cli provides the interactive story client.
//
// It wires configuration, local storage, the remote API gateway and the sync
// engine into an interactive REPL that keeps working without connectivity:
// submissions made offline are queued locally and drained by the background
// sync once the API becomes reachable again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
