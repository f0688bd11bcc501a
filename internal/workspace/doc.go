// Package workspace assembles the review context from a directory tree.
//
// [ListStructure] and [LoadFiles] share one walker, so for the same
// arguments the loaded paths are exactly the listed paths that pass the
// file filter. Output order is include-list order, then the lexical order
// of filepath.WalkDir inside each include; nothing is re-sorted afterwards.
//
// An exclude entry is either a path (relative to the root, or absolute) that
// removes itself and everything below it, or a glob pattern matched against
// the slash-separated relative path. Excluded directories are not descended.
package workspace
