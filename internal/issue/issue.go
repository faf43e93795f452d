// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Catalog entries. Ids are stable and start at 1; zero means "no issue".
const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	ManifestInvalidId
	UnknownFormatId
	ConfigLoadFailedId
	DatabaseOpenFailedId
	RecordNotFoundId
	PermissionDeniedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of a catalog entry.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog entry: a Markdown explanation of a failure class and
	// what to try next.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the entry, followed by its links, through glamour using the
// given style ("dark", "light", "notty" or a JSON style path).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Manifest not found!

The release manifest you asked to validate could not be read.

## Things you can try:
- Check the path for typos
- Pass the manifest on standard input:
~~~
$ registry validate - --format json < Crate.json
~~~`,
		docLinks: []HttpLink{"https://doc.rust-lang.org/cargo/reference/registry-web-api.html#publish"},
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse the manifest!

The manifest is not well-formed in the format it was read as.

## Common issues:
- The file extension does not match its content (use --format to override)
- Unbalanced braces or brackets
- YAML streams with more than one document
- Trailing data after a JSON object

## Things you can try:
- Re-run with an explicit format:
~~~
$ registry validate manifest.txt --format toml
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# The manifest breaks a publish rule!

The manifest parsed, but a field violates a registry rule. Only the first
violation is reported; fix it and validate again.

## Rules:
- **name**: starts with an ASCII letter, then letters, digits, _ or -, at most 64 characters
- **vers**: a semantic version such as ` + "`1.2.3-rc.1`" + `
- **keywords**: at most 5, each shorter than 20 characters, made of letters, digits, _, - or +
- **features**: ` + "`ident`" + ` or ` + "`ident/ident`" + `
- **deps[].kind**: one of ` + "`dev`, `build`, `normal`" + `

## Example:
~~~toml
name = "demo"
vers = "0.1.0"
deps = []
authors = ["alice"]
keywords = ["cli"]

[features]
default = ["std"]
std = []
~~~`,
		docLinks: []HttpLink{"https://doc.rust-lang.org/cargo/reference/manifest.html"},
		extLinks: []HttpLink{"https://semver.org"},
	}

	unknownFormatIssue = &Issue{
		id: UnknownFormatId,
		mdMsg: `
# Unknown manifest format!

The format could not be inferred from the file name and none was given.

## Supported formats:
- **json** (.json)
- **yaml** (.yaml, .yml)
- **toml** (.toml)
- **cue** (.cue)

## Things you can try:
~~~
$ registry validate manifest --format yaml
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but could not be loaded.

## Things you can try:
- Show where the configuration is read from:
~~~
$ registry config path
~~~

- Print the effective configuration:
~~~
$ registry config show
~~~

- Regenerate a default file:
~~~
$ registry config init --force
~~~

## Example configuration:
~~~cue
database: {
	path:      "/var/lib/registry/registry.db"
	cache_ttl: "5m"
}
log: level: "info"
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	databaseOpenFailedIssue = &Issue{
		id: DatabaseOpenFailedId,
		mdMsg: `
# Failed to open the database!

The SQLite database could not be opened or migrated.

## Things you can try:
- Check that the directory in ` + "`database.path`" + ` is writable
- Apply migrations explicitly:
~~~
$ registry db migrate
~~~

- Point the registry at another file:
~~~
$ REGISTRY_DATABASE_PATH=/tmp/registry.db registry db migrate
~~~`,
	}

	recordNotFoundIssue = &Issue{
		id: RecordNotFoundId,
		mdMsg: `
# Record not found!

No download record exists with the requested id.

## Things you can try:
- Check the id; ids are positive 32-bit integers
- Record a download first:
~~~
$ registry downloads record version --version-id 1 --downloads 10
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- The database or configuration directory belongs to another user
- The manifest file is not readable

## Things you can try:
- Check file and directory permissions
- Run the registry from a directory you own`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():   manifestNotFoundIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		manifestInvalidIssue.Id():    manifestInvalidIssue,
		unknownFormatIssue.Id():      unknownFormatIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		databaseOpenFailedIssue.Id(): databaseOpenFailedIssue,
		recordNotFoundIssue.Id():     recordNotFoundIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
