// Package app provides the application context for openwrt-builder.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths          // Config, templates and work directories
//	    Settings *config.Settings       // Host settings from settings.toml
//	    Runtime  runtime.Runtime        // Container runtime
//	    Executor system.CommandExecutor // Host command execution
//	    FS       system.FileSystem      // Local file access
//	    Manual   bool                   // Print commands instead of running them
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New(app.WithSettings(settings))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithRuntime(mockRuntime),
//	    app.WithExecutor(mockExec),
//	)
//
// # Available Options
//
//	WithPaths(paths)       // Custom path configuration
//	WithSettings(settings) // Custom host settings
//	WithRuntime(runtime)   // Custom container runtime
//	WithExecutor(exec)     // Custom command executor
//	WithFileSystem(fs)     // Custom filesystem
//	WithManual(out)        // Print commands to out instead of running them
package app
