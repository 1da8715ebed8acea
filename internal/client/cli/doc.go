// Package cli implements the interactive gymtrack client.
//
// Commands (availability depends on login state):
//   - register / login / logout
//   - whoami: show the current session
//   - profile: edit name, optionally change password
//   - avatar: upload a new profile image
//   - groups / exercises / exercise / history: browse training data
//
// The REPL is a thin layer: every command delegates to the services and
// only formats results and errors for the terminal.
package cli
