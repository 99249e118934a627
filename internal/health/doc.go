// Package health reports the on-disk state of workspaces.
//
// # Status
//
// Workspace state is represented by Status:
//
//	StatusCloned  - package root present with VCS metadata (.git, .hg, .bzr, .svn)
//	StatusPartial - package root present but no VCS metadata
//	StatusMissing - package root absent
//
// # Check Functions
//
//	health.DetectVCS(fs, dir)     // "git", "hg", "bzr", "svn" or ""
//	health.GetAge(fs, dir)        // time since last modification, e.g. "3d 5h"
//
//	result := health.Check(fs, exec, layout)
//	// result.RootExists, .PackagePresent, .VCS, .Age
//
//	status := health.GetSummary(fs, layout)
package health
