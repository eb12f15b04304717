// Package discovery is the glob engine: it enumerates files under a root
// directory that match a set of include patterns minus a set of exclude
// patterns.
//
// Pattern syntax is doublestar's (`**`, `*`, `?`, `[...]`, `{a,b}`), evaluated
// against slash-separated paths relative to the root. The root is passed
// explicitly to every call; the process working directory is never consulted
// or changed.
package discovery
