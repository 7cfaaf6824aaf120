// Package cli provides the interactive storefront shell.
//
// It wires configuration, the local state database, the backend client and
// the cart services into a REPL. Signed-in users work on their server cart
// through the optimistic cart cache; signed-out users keep a guest cart that
// is merged into the server cart on login. A background watcher probes the
// backend and switches the prompt between online and offline.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
