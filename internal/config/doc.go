// Package config resolves layered image build configurations.
//
// # Config Documents
//
// A config document is a JSON object with these keys (the comments below
// are annotations; documents may only carry comments and trailing commas
// when loaded WithComments):
//
//	{
//	    "name": "router",             // image name
//	    "version": "23.05.3",         // OpenWrt release
//	    "arch": "x86",
//	    "board": "64",
//	    "env-file": "build.env",      // env file for the build container
//	    "includes": ["base", "ss"],   // templates, in priority order
//	    "packages": ["luci", "-ppp"], // "-x" cancels "x"
//	    "files": ["files/"],
//	    "disabled_services": ["dnsmasq"]
//	}
//
// # Resolution
//
// Load starts from Default(), overwrites scalars present in the document and
// merges the document's lists onto the defaults. Each included template is
// then loaded from <templates-dir>/<name>/config.json with its files made
// relative to the template directory. Templates are merged together in
// include order (earlier templates win position ties), and the result is
// merged into the document's lists with the template lists first:
//
//	templates: ["x", "y"]    document: ["z", "x"]    result: ["x", "y", "z"]
//
// Package lists resolve negations after every merge; files and disabled
// services are plain ordered unions. See package listmerge.
//
// # Combining Configs
//
// MergeInto merges another Config's lists into a Config the caller owns.
// Add returns a new Config and leaves both operands untouched:
//
//	combined := config.Add(base, extra)
//
// Scalars given on the command line are applied with WithOverrides.
//
// # Settings
//
// Host settings (container runtime, templates directory, builder image,
// qcow2 size, ...) are read from settings.toml by LoadSettings. A missing
// settings file yields DefaultSettings.
package config
