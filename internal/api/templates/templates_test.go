package templates

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pigi/proxy/internal/core/models"
)

func TestRenderIndex(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderIndex(&buf, []string{"tool-a", "tool-b"}); err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`<a href="/simple/tool-a/">tool-a</a>`,
		`<a href="/simple/tool-b/">tool-b</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPackage(t *testing.T) {
	var buf bytes.Buffer
	assets := []models.Asset{
		{ID: 7, Name: "tool-1.0.0-linux.tar.gz"},
		{ID: 9, Name: "tool-1.0.0-darwin.tar.gz"},
	}
	if err := RenderPackage(&buf, "tool", assets); err != nil {
		t.Fatalf("RenderPackage: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`<a href="/simple/tool/7/tool-1.0.0-linux.tar.gz">tool-1.0.0-linux.tar.gz</a>`,
		`<a href="/simple/tool/9/tool-1.0.0-darwin.tar.gz">tool-1.0.0-darwin.tar.gz</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPackageEscapesAssetName(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPackage(&buf, "tool", []models.Asset{{ID: 1, Name: "odd name#1.zip"}}); err != nil {
		t.Fatalf("RenderPackage: %v", err)
	}
	if strings.Contains(buf.String(), `href="/simple/tool/1/odd name#1.zip"`) {
		t.Error("asset name must be path-escaped in the href")
	}
}
