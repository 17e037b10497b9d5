// Package update implements the "Check for Updates…" command.
//
// This package handles:
//   - Querying an update source (GitHub releases or a Sparkle appcast)
//   - Comparing semantic versions to decide whether an update exists
//   - Owning the lifecycle of a single in-flight check
//   - Detecting the installation method for the upgrade hint
//
// Delivery (download, verification, install) is not part of this package.
//
// The package is isolated from UI concerns. An Initiator publishes Request
// snapshots on a channel that the UI drains on its own event loop:
//
//	src, _ := update.NewSource(update.SourceConfig{Kind: "github", Owner: "o", Repo: "r"})
//	initiator := update.NewInitiator(src, "1.0.0")
//	defer initiator.Close()
//	initiator.CheckForUpdates()
//	for req := range initiator.Updates() {
//	    if req.Status.IsTerminal() {
//	        // show req.LatestVersion or req.Reason
//	        break
//	    }
//	}
package update
