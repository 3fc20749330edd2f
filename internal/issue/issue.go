// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a help card.
type Id int

const (
	SourceNotFoundId Id = iota + 1
	ConfigNotFoundId
	ConfigLoadFailedId
	InvalidPathEntryId
	InvalidSeedId
	PackExistsId
	CopyFailedId
	CompressFailedId
	CleanupFailedId
)

type (
	// MarkdownMsg is the body of a help card.
	MarkdownMsg string

	// HttpLink is an external reference listed under a card.
	HttpLink string

	// Issue is a help card for a well-known failure.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
		links []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Links() []HttpLink {
	return slices.Clone(i.links)
}

// Markdown returns the card body followed by its links.
func (i *Issue) Markdown() string {
	var b strings.Builder
	b.WriteString(string(i.mdMsg))
	if len(i.links) > 0 {
		b.WriteString("\n\n## See also:\n")
		for _, link := range i.links {
			b.WriteString("\n- <" + string(link) + ">")
		}
	}
	return b.String()
}

// Render renders the card with a glamour style such as "dark" or "light".
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Source textures not found!

texshuffle reads the textures it shuffles from an unpacked resource pack.
Nothing was created because the source directory does not exist.

## Expected layout (relative to the current directory):
~~~
pack/
  assets/
    minecraft/
      textures/
        block/...
        item/...
~~~

## Things you can try:
- Extract the vanilla client jar (or any resource pack) into ` + "`pack/`" + `
- Point texshuffle somewhere else:
~~~
$ texshuffle --source path/to/assets/minecraft/textures
~~~`,
		links: []HttpLink{"https://minecraft.wiki/w/Resource_pack"},
	}

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# No configuration file found!

texshuffle needs a config file listing excluded directories and
compatibility groups. By default it looks for ` + "`config.json`" + ` in the
current directory.

## Things you can try:
- Create a starter config:
~~~
$ texshuffle config init
~~~
- Or pass an explicit file:
~~~
$ texshuffle --config path/to/config.json
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The config file could not be parsed or does not match the expected shape.

## Expected shape:
~~~json
{
  "excludedDirs": ["gui", ["entity", "banner"]],
  "compatibilityGroups": [
    ["item"],
    ["block", "block/destroy"]
  ]
}
~~~

## Things you can try:
- Check the error message above for the offending field
- Every path entry must be a string or a list of strings
- Run with verbose mode for more details:
~~~
$ texshuffle --verbose
~~~`,
	}

	invalidPathEntryIssue = &Issue{
		id: InvalidPathEntryId,
		mdMsg: `
# Invalid path entry in configuration!

Paths in ` + "`excludedDirs`" + ` and ` + "`compatibilityGroups`" + ` are
relative to the texture root. They must be non-empty, must not be absolute
and must not climb out of the texture root with ` + "`..`" + `.

## Things you can try:
- Write ` + "`\"entity/chest\"`" + ` or ` + "`[\"entity\", \"chest\"]`" + `
- Use ` + "`\".\"`" + ` to refer to the texture root itself`,
	}

	invalidSeedIssue = &Issue{
		id: InvalidSeedId,
		mdMsg: `
# Invalid seed!

The seed must be a whole number that fits in 64 bits, such as the value
printed by a previous run.

## Things you can try:
~~~
$ texshuffle 1700000000000
~~~`,
	}

	packExistsIssue = &Issue{
		id: PackExistsId,
		mdMsg: `
# Output already exists!

A directory or archive with the same pack name is already present. texshuffle
refuses to mix a new pack into old content.

## Things you can try:
- Remove or rename the existing output
- Choose another name with ` + "`--name`" + `
- Replace it explicitly with ` + "`--force`",
	}

	copyFailedIssue = &Issue{
		id: CopyFailedId,
		mdMsg: `
# Failed to copy a texture!

A partially shuffled pack is never produced, so the run was aborted and the
intermediate directory removed.

## Things you can try:
- Check free disk space
- Check read permissions on the source textures
- Check write permissions on the output directory`,
	}

	compressFailedIssue = &Issue{
		id: CompressFailedId,
		mdMsg: `
# Failed to compress the resource pack!

## Things you can try:
- Check free disk space
- Check write permissions on the output directory`,
	}

	cleanupFailedIssue = &Issue{
		id: CleanupFailedId,
		mdMsg: `
# Could not remove the intermediate directory

The archive was written successfully and is ready to use. Only the temporary
uncompressed copy could not be deleted; remove it by hand.`,
	}

	issues = map[Id]*Issue{
		sourceNotFoundIssue.Id():   sourceNotFoundIssue,
		configNotFoundIssue.Id():   configNotFoundIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		invalidPathEntryIssue.Id(): invalidPathEntryIssue,
		invalidSeedIssue.Id():      invalidSeedIssue,
		packExistsIssue.Id():       packExistsIssue,
		copyFailedIssue.Id():       copyFailedIssue,
		compressFailedIssue.Id():   compressFailedIssue,
		cleanupFailedIssue.Id():    cleanupFailedIssue,
	}
)

// Values returns every card ordered by Id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the card for id, or nil when there is none.
func Get(id Id) *Issue {
	return issues[id]
}
