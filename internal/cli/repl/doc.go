// Package repl implements the interactive shell of sharepay-cli.
//
// Each line is split like a shell command line and handed to an
// Executor, which runs it through the same command tree as one-shot
// invocations. On a terminal the line editor offers tab completion of
// command names; history is kept in a file between sessions.
package repl
