// Package github reads and files repository issues through the GitHub REST
// API for the issue run.
//
// The repository comes from configuration, GITHUB_REPOSITORY or GITHUB_REPO,
// or the local git remote. Authentication uses GITHUB_TOKEN. Issue creation
// is throttled to one call per second.
package github
