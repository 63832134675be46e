// Package output provides structured output and error handling for the qc CLI.
//
// Every command writes through a Printer so that human output, JSON output
// and hook mode (where nothing but the commit message may reach stdout)
// behave the same way across the CLI.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout())).
//		WithStderr(cmd.ErrOrStderr())
//
//	printer.Success(map[string]any{"message": "Written .changeset/calm-owl-dash.md"})
//	printer.Stderr("Analyzing changes vs %s...\n", base)
//	printer.Error(err)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: no staged changes, no workspace, bad flags
//	output.ExitSystemError // 2: git failed, I/O error
//	output.ExitRemoteError // 3: the generation service rejected or failed the request
//	output.ExitConflict    // 4: an existing hook or file is in the way
//
// Commands return *ExitError values; only main converts them to a process
// exit status via GetExitCode.
package output
