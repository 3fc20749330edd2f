// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	SourceNotFoundId,
	ConfigNotFoundId,
	ConfigLoadFailedId,
	InvalidPathEntryId,
	InvalidSeedId,
	PackExistsId,
	CopyFailedId,
	CompressFailedId,
	CleanupFailedId,
}

// stubRender replaces glamour with the identity function for the test.
// Tests using it must not run in parallel.
func stubRender(t *testing.T) {
	t.Helper()
	orig := render
	t.Cleanup(func() { render = orig })
	render = func(in, _ string) (string, error) { return in, nil }
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	if SourceNotFoundId != 1 {
		t.Errorf("SourceNotFoundId = %d, want 1", SourceNotFoundId)
	}

	for _, id := range allIds {
		card := Get(id)
		if card == nil {
			t.Errorf("Get(%d) = nil", id)
			continue
		}
		if card.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, card.Id())
		}
		if strings.TrimSpace(string(card.MarkdownMsg())) == "" {
			t.Errorf("card %d has no text", id)
		}
	}

	if Get(0) != nil || Get(Id(len(allIds)+1)) != nil {
		t.Error("Get() of an unknown id should be nil")
	}
}

func TestValues_Ordered(t *testing.T) {
	t.Parallel()

	got := Values()
	if len(got) != len(allIds) {
		t.Fatalf("Values() returned %d cards, want %d", len(got), len(allIds))
	}
	for i, card := range got {
		if card.Id() != allIds[i] {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, card.Id(), allIds[i])
		}
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	withLinks := &Issue{id: 99, mdMsg: "# Title", links: []HttpLink{"https://a.example", "https://b.example"}}
	want := "# Title\n\n## See also:\n\n- <https://a.example>\n- <https://b.example>"
	if got := withLinks.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}

	bare := &Issue{id: 98, mdMsg: "# Title"}
	if got := bare.Markdown(); got != "# Title" {
		t.Errorf("Markdown() without links = %q", got)
	}

	links := withLinks.Links()
	links[0] = "changed"
	if withLinks.links[0] != "https://a.example" {
		t.Error("Links() should return a copy")
	}
}

func TestIssue_RenderStub(t *testing.T) {
	stubRender(t)

	for _, card := range Values() {
		rendered, err := card.Render("dark")
		if err != nil {
			t.Errorf("card %d: Render() error = %v", card.Id(), err)
		}
		if rendered != card.Markdown() {
			t.Errorf("card %d: Render() should pass the Markdown through", card.Id())
		}
	}

	if got, _ := Get(ConfigNotFoundId).Render(""); !strings.Contains(got, "config init") {
		t.Errorf("config-not-found card should mention config init, got:\n%s", got)
	}
	if got, _ := Get(SourceNotFoundId).Render(""); !strings.Contains(got, "minecraft.wiki") {
		t.Errorf("source-not-found card should link the wiki, got:\n%s", got)
	}
}

func TestIssue_RenderGlamour(t *testing.T) {
	t.Parallel()

	for _, style := range []string{"dark", "light", "notty"} {
		rendered, err := Get(PackExistsId).Render(style)
		if err != nil {
			t.Fatalf("Render(%q) error = %v", style, err)
		}
		if !strings.Contains(rendered, "--force") {
			t.Errorf("Render(%q) lost the card content:\n%s", style, rendered)
		}
	}
}
