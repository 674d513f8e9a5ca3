// Package cli implements taskctl, the command-line client of taskboard.
//
// Each invocation runs one command against the HTTP API:
//
//	taskctl [-s server-url] [-t seconds] <command> [args]
//
// The session token returned by register/login is stored in
// ~/.taskboard/token and sent with every later command until logout.
// The "shell" command starts an interactive loop over the same commands.
package cli
