// Package logging provides logging utilities for openwrt-builder.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("merged template", "template", name, "packages", pkgs)
//	logging.Warn("template has no config.json", "template", name)
//
// Every external command (docker, qemu-img, cp, ...) is logged at debug
// level with its shell-quoted command line, so `-v` shows exactly what ran.
// The root command configures the logger once flags are parsed:
//
//	logging.Setup(cmd.ErrOrStderr(), logging.Options{Verbose: true, Manual: true})
//
// With Manual set, every record carries manual=true.
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Staging %d files into %s", n, dir)
//	logging.UserSuccess("Image %s built", name)
//	logging.UserWarning("Dockerfile already present in %s, keeping it", dir)
//	logging.UserError("Build failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// Tests can capture both with SetUserOutput.
package logging
