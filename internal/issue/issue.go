// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DirectoryNotFoundId Id = iota + 1
	ArchiveWriteFailedId
	ArchiveReadFailedId
	RootFolderMissingId
	ConfigLoadFailedId
	InvalidCompressionId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

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

// Render renders the issue Markdown with the given glamour style
// ("auto", "dark", "light", or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	directoryNotFoundIssue = &Issue{
		id: DirectoryNotFoundId,
		mdMsg: `
# Library folder not found!

The path you gave does not exist or is not a directory.

## Things you can try:
- Check the spelling of the folder name, including the version suffix:
~~~
$ h5pack ./H5P.InteractiveBook-1.11
~~~
- Pass the library folder itself, not a file inside it
- Use an absolute path if you are unsure of the current directory`,
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Failed to write the archive!

Packing stopped while reading a source file or writing the output archive.
A partially written archive may have been left at the output path.

## Things you can try:
- Make sure the output directory exists and is writable
- Choose another destination:
~~~
$ h5pack ./H5P.InteractiveBook-1.11 --out /tmp/book.h5p
~~~
- Check that every file in the library folder is readable`,
	}

	archiveReadFailedIssue = &Issue{
		id: ArchiveReadFailedId,
		mdMsg: `
# Failed to read the archive!

The file could not be opened as a zip archive.

## Things you can try:
- Re-create the package with h5pack
- Verify the file was not truncated during download or copy`,
		extLinks: []HttpLink{"https://pkware.cachefly.net/webdocs/casestudies/APPNOTE.TXT"},
	}

	rootFolderMissingIssue = &Issue{
		id: RootFolderMissingId,
		mdMsg: `
# Archive root does not match the library folder!

H5P importers expect every entry of a library package to live under the
version-qualified library folder, e.g. ` + "`H5P.InteractiveBook-1.11/`" + `.

## Things you can try:
- Pack the library folder itself rather than its parent or its contents
- Rename the folder to ` + "`<machineName>-<major>.<minor>`" + ``,
		docLinks: []HttpLink{"https://h5p.org/library-definition"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file or an H5PACK_* environment variable holds an invalid value.

## Things you can try:
- Show the effective configuration:
~~~
$ h5pack config show
~~~
- Compare your file with the defaults:
~~~cue
skip_hidden: true
compression: "deflate"
level:       0
extension:   ".h5p"
exclude_suffixes: ["~", ".bak"]
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	invalidCompressionIssue = &Issue{
		id: InvalidCompressionId,
		mdMsg: `
# Unknown compression!

Only the zip methods every H5P importer understands are supported.

## Valid values:
- ` + "`deflate`" + ` (default)
- ` + "`store`" + ` (no compression)`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read the library folder or write the archive.

## Things you can try:
- Check file and directory permissions
- Write the archive somewhere you own with --out`,
	}

	catalog = []*Issue{
		directoryNotFoundIssue,
		archiveWriteFailedIssue,
		archiveReadFailedIssue,
		rootFolderMissingIssue,
		configLoadFailedIssue,
		invalidCompressionIssue,
		permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	return slices.Clone(catalog)
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	idx := slices.IndexFunc(catalog, func(i *Issue) bool { return i.id == id })
	if idx < 0 {
		return nil
	}
	return catalog[idx]
}
