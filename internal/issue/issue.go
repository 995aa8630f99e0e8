// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	FileTooLargeId
	PermissionDeniedId
	InvalidChunkIDId
	TruncatedChunkId
	ConfigLoadFailedId
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

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The file you asked to inspect does not exist or is not a regular file.

## Things you can try:
- Check the path for typos
- Use an absolute path:
~~~
$ iffchunk inspect "$PWD/sound.wav"
~~~`,
	}

	fileTooLargeIssue = &Issue{
		id: FileTooLargeId,
		mdMsg: `
# File is larger than the configured limit!

Files are read fully into memory before their chunks are scanned, so their
size is capped by ` + "`max_file_size`" + `.

## Things you can try:
- Raise the limit in your config file:
~~~cue
max_file_size: 268435456
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The file exists but could not be opened for reading.

## Things you can try:
- Check the file permissions:
~~~
$ ls -l <file>
~~~`,
	}

	invalidChunkIDIssue = &Issue{
		id: InvalidChunkIDId,
		mdMsg: `
# Invalid chunk identifier!

Chunk identifiers are exactly 4 bytes. Each byte must be printable ASCII
(0x20 to 0x7E), and a space may only be followed by another space.

## Valid examples:
- ` + "`FORM`, `fmt `, `AB  `, `    `" + `

## Invalid examples:
- ` + "` ABC`" + ` (leading space)
- ` + "`A BC`" + ` (inner space)
- ` + "`AB\\x00C`" + ` (control byte)

If a file reports this error, the data at the given offset is not a chunk
header: the file is corrupt, or it is not an IFF-family file.`,
		extLinks: []HttpLink{"https://wiki.amigaos.net/wiki/EA_IFF_85_Standard_for_Interchange_Format_Files"},
	}

	truncatedChunkIssue = &Issue{
		id: TruncatedChunkId,
		mdMsg: `
# Truncated chunk!

A chunk header declares more bytes than the file contains. The file was
probably cut short during a download or copy.

## Things you can try:
- Re-fetch the file
- Inspect without ` + "`--strict`" + ` to list the chunks before the damage:
~~~
$ iffchunk inspect <file>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Print the active configuration:
~~~
$ iffchunk config show
~~~
- Recreate a default config file:
~~~
$ iffchunk config init
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():     fileNotFoundIssue,
		fileTooLargeIssue.Id():     fileTooLargeIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		invalidChunkIDIssue.Id():   invalidChunkIDIssue,
		truncatedChunkIssue.Id():   truncatedChunkIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
	}
)

// Values returns every known issue ordered by Id.
func Values() []*Issue {
	out := slices.Collect(maps.Values(issues))
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
