// Package link materializes local packages into a node_modules directory.
//
// For every local package, [Linker.Link] creates node_modules/<name>
// pointing at the package directory, plus one node_modules/.bin/<bin>
// entry per executable in the package's "bin" field. On Unix both are
// relative symlinks and bin targets are made executable. On Windows the
// package link is a directory junction (created with "mklink /j", which
// needs no elevated rights) and bin entries are small shell and cmd shims.
//
// Entries that already exist are left alone. Failures are collected as
// warnings in the returned [Result]; one failing package never stops the
// others.
package link
