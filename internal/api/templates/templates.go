// Package templates renders the PEP-503 style index pages. The pages carry no
// logic: one anchor per entry, nothing else installers would read.
package templates

import (
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/pigi/proxy/internal/core/models"
)

var page = template.Must(template.New("simple").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
{{- range .Links}}
<a href="{{.Href}}">{{.Text}}</a><br/>
{{- end}}
</body>
</html>
`))

type link struct {
	Href string
	Text string
}

type pageData struct {
	Title string
	Links []link
}

// RenderIndex writes the root index listing: one anchor per package, pointing
// at that package's own listing.
func RenderIndex(w io.Writer, packages []string) error {
	data := pageData{Title: "Simple index"}
	for _, name := range packages {
		data.Links = append(data.Links, link{
			Href: fmt.Sprintf("/simple/%s/", url.PathEscape(name)),
			Text: name,
		})
	}
	return page.Execute(w, data)
}

// RenderPackage writes a package's artifact listing: one anchor per asset,
// pointing at the download endpoint for its id. The asset name rides along in
// the URL for readability only.
func RenderPackage(w io.Writer, pkg string, assets []models.Asset) error {
	data := pageData{Title: "Links for " + pkg}
	for _, asset := range assets {
		data.Links = append(data.Links, link{
			Href: fmt.Sprintf("/simple/%s/%d/%s", url.PathEscape(pkg), asset.ID, url.PathEscape(asset.Name)),
			Text: asset.Name,
		})
	}
	return page.Execute(w, data)
}
