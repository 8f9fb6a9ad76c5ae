// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		DirectoryNotFoundId,
		ArchiveWriteFailedId,
		ArchiveReadFailedId,
		RootFolderMissingId,
		ConfigLoadFailedId,
		InvalidCompressionId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	// Verify IDs start at 1 (iota + 1)
	if DirectoryNotFoundId != 1 {
		t.Errorf("DirectoryNotFoundId = %d, want 1", DirectoryNotFoundId)
	}
	if len(Values()) != len(ids) {
		t.Errorf("Values() has %d issues, want %d", len(Values()), len(ids))
	}
}

func TestGet_Unknown(t *testing.T) {
	if Get(0) != nil {
		t.Error("Get(0) should return nil")
	}
	if Get(Id(999)) != nil {
		t.Error("Get(999) should return nil")
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(DirectoryNotFoundId)
	if issue == nil {
		t.Fatal("Get(DirectoryNotFoundId) returned nil")
	}

	msg := issue.MarkdownMsg()
	if !strings.Contains(string(msg), "Library folder not found") {
		t.Errorf("MarkdownMsg() should contain 'Library folder not found', got %q", msg)
	}
}

func TestIssue_DocLinksAreCloned(t *testing.T) {
	issue := Get(RootFolderMissingId)
	if issue == nil {
		t.Fatal("Get(RootFolderMissingId) returned nil")
	}

	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("RootFolderMissing issue should have doc links")
	}
	original := links[0]
	links[0] = "modified"
	if issue.DocLinks()[0] != original {
		t.Error("DocLinks() should return a clone")
	}
}

func TestValues_IsClone(t *testing.T) {
	values := Values()
	values[0] = nil
	if Get(DirectoryNotFoundId) == nil {
		t.Error("modifying Values() result should not affect the catalog")
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	issue := Get(ArchiveReadFailedId)
	rendered, err := issue.Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if gotStyle != "dark" {
		t.Errorf("Render() passed style %q, want dark", gotStyle)
	}
	if !strings.Contains(rendered, "Failed to read the archive") {
		t.Error("rendered output should contain the issue title")
	}
	if !strings.Contains(rendered, "See also") {
		t.Error("rendered output should list external links")
	}
	for _, link := range issue.ExtLinks() {
		if !strings.Contains(rendered, string(link)) {
			t.Errorf("rendered output should contain %s", link)
		}
	}
}

func TestIssue_RenderWithGlamour(t *testing.T) {
	rendered, err := Get(InvalidCompressionId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "deflate") {
		t.Errorf("rendered output should mention deflate, got %q", rendered)
	}
}
