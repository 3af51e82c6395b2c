// Package imagebuilder drives an OpenWrt image build from a resolved config.
//
// A build runs in three steps, each a single blocking external command:
//
//  1. Prepare stages the config's files into <name>-temp and writes a
//     Dockerfile based on the upstream OpenWrt image builder.
//  2. BuildContainerImage builds <repository>:<name> from <name>-temp.
//  3. BuildImage runs that image with PACKAGES, FILES and DISABLED_SERVICES,
//     leaving the output under <name>-bin and the download cache under cache.
//
// Artifacts are then copied out of the finished container (CopyRootfs,
// CopySquashfsQcow2, CopyAll, ...), and RemoveInstance stops and removes it.
//
// Every operation checks its preconditions (image name, env file, source
// files) before running anything, so a missing value never leaves a
// half-finished build behind.
package imagebuilder
