// Package manifest reads and writes DEPENDENCIES.md, the human-editable
// record of a project's third-party dependencies.
//
// # Format
//
// The manifest is a small subset of Markdown:
//
//	# Dependencies
//	Free prose is allowed anywhere.
//
//	## Composer
//	- monolog/monolog: 2.9.1
//	  > pinned until the PSR-3 migration
//	### dev
//	- phpunit/phpunit: 10.5.0
//
//	## Node
//	- lodash: 4.17.21
//
// A level-1 or level-2 heading whose text names a manager opens that
// manager's section; the text is matched case-insensitively against the
// known managers and their aliases (see [deps.LookupManager]). Any deeper
// heading inside the section opens a group, so "# Composer" followed by
// "## dev" works as well as "## Composer" followed by "### dev". Group labels
// are lowercased. A heading at the section's level or above that names no
// manager closes the section; "# Dependencies" is such a title.
//
// List items have the form "- name: version". The first colon followed by
// whitespace (or the end of the line) separates name from version, so scoped
// names like "@types/node" and versions like "dev-main#abc123" are kept
// intact. Lines that are not list items never fail the parse.
//
// # Leniency
//
// Parsing never fails on content. Malformed lines are skipped, and a package
// listed twice under the same manager and group keeps the version of its
// last occurrence at the position of its first. Only read errors are
// reported.
//
// # Annotations
//
// Indented or blockquoted lines directly after a list item are that item's
// annotations. [ParseDocument] collects them together with the preamble
// (everything before the first manager section), the other prose of each
// section, and the sections kept as written: those without a manager and
// those of managers no adapter reads. [Write] carries all of it over when
// the manifest is regenerated.
package manifest
