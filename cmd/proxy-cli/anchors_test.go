package main

import (
	"strings"
	"testing"
)

const packagePage = `<!DOCTYPE html>
<html>
<head><title>Links for tool</title></head>
<body>
<a href="/simple/tool/7/tool-1.0.0-linux.tar.gz">tool-1.0.0-linux.tar.gz</a><br/>
<a href="/simple/tool/9/odd%20name.zip">odd name.zip</a><br/>
</body>
</html>
`

func TestParseAnchors(t *testing.T) {
	anchors, err := parseAnchors(strings.NewReader(packagePage))
	if err != nil {
		t.Fatalf("parseAnchors: %v", err)
	}
	if len(anchors) != 2 {
		t.Fatalf("got %d anchors, want 2", len(anchors))
	}
	if anchors[0].Href != "/simple/tool/7/tool-1.0.0-linux.tar.gz" {
		t.Errorf("anchors[0].Href = %q", anchors[0].Href)
	}
	if anchors[0].Text != "tool-1.0.0-linux.tar.gz" {
		t.Errorf("anchors[0].Text = %q", anchors[0].Text)
	}
}

func TestParseArtifactRef(t *testing.T) {
	ref, ok := parseArtifactRef("/simple/tool/7/tool-1.0.0-linux.tar.gz")
	if !ok {
		t.Fatal("expected a valid artifact ref")
	}
	if ref.ID != 7 || ref.Name != "tool-1.0.0-linux.tar.gz" {
		t.Errorf("ref = %+v", ref)
	}

	ref, ok = parseArtifactRef("/simple/tool/9/odd%20name.zip")
	if !ok {
		t.Fatal("expected a valid artifact ref")
	}
	if ref.Name != "odd name.zip" {
		t.Errorf("name = %q, want unescaped", ref.Name)
	}

	if _, ok := parseArtifactRef("/simple/tool/"); ok {
		t.Error("package link must not parse as an artifact ref")
	}
	if _, ok := parseArtifactRef("/simple/tool/not-a-number/x"); ok {
		t.Error("non-numeric id must not parse")
	}
}
