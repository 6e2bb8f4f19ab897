// Package cli provides the interactive hybridauth command-line front end.
//
// It wires configuration, the relational and document stores, the auth
// service and a menu-driven REPL. Logged out, the menu offers Login,
// Register, Recover password and Exit; logged in, it offers Info, Edit
// profile and Logout. Every item can be chosen by number or by name.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See NewApp and runREPL for details.
package cli
