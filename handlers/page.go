package handlers

import (
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/camden-git/datasentinel/models"
)

const (
	thumbnailWidth = 100
	previewWidth   = 200
)

// PageState is everything the result page shows for one interaction. It is
// built per request and never shared.
type PageState struct {
	Rows     []models.ResultRow
	Selected int // index into Rows of the previewed card
	Error    string
}

// NewPageState builds the page state, resolving the submitted selection (a
// serial number) to a row index. A missing or unknown selection previews the first row.
func NewPageState(rows []models.ResultRow, selected string) PageState {
	state := PageState{Rows: rows}
	if n, err := strconv.Atoi(strings.TrimSpace(selected)); err == nil {
		for i, row := range rows {
			if row.SerialNumber == n {
				state.Selected = i
				break
			}
		}
	}
	return state
}

// SelectedRow returns the previewed row, if any.
func (s PageState) SelectedRow() (models.ResultRow, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Rows) {
		return models.ResultRow{}, false
	}
	return s.Rows[s.Selected], true
}

type rowView struct {
	models.ResultRow
	Image    template.URL
	Selected bool
}

type pageView struct {
	Rows           []rowView
	Preview        *rowView
	Error          string
	ThumbnailWidth int
	PreviewWidth   int
}

// imageURL trusts only the inline PNG references produced by the media encoder.
func imageURL(uri string) template.URL {
	if strings.HasPrefix(uri, "data:image/png;base64,") {
		return template.URL(uri)
	}
	return ""
}

func buildView(state PageState) pageView {
	view := pageView{Error: state.Error, ThumbnailWidth: thumbnailWidth, PreviewWidth: previewWidth}
	for i, row := range state.Rows {
		view.Rows = append(view.Rows, rowView{ResultRow: row, Image: imageURL(row.ImageDataURI), Selected: i == state.Selected})
	}
	if row, ok := state.SelectedRow(); ok {
		view.Preview = &rowView{ResultRow: row, Image: imageURL(row.ImageDataURI), Selected: true}
	}
	return view
}

// RenderPage writes the upload form and, when rows exist, the result table and preview selector.
func RenderPage(w io.Writer, state PageState) error {
	return pageTemplate.Execute(w, buildView(state))
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Data Sentinel: Azure's PII Looker</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
.error { color: #b00020; }
.detection-error { color: #b00020; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>Data Sentinel: Azure's PII Looker</h1>
<form id="upload" method="post" action="/" enctype="multipart/form-data">
<label for="images">Upload one or more images of employee ID cards</label>
<input id="images" type="file" name="images" accept=".jpg,.jpeg,.png" multiple>
<button type="submit">Analyze</button>
</form>
<h1 style="text-align: center; color: blue;">Masked Employee Details</h1>
{{if .Error}}<p class="error" role="alert">{{.Error}}</p>{{end}}
{{if .Rows}}
<table id="results">
<thead>
<tr><th>Serial Number</th><th>Name</th><th>Department</th><th>Mobile Number</th><th>Email ID</th><th>Image</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr data-serial="{{.SerialNumber}}">
<td>{{.SerialNumber}}</td>
<td>{{.Name}}{{if .DetectionError}}<div class="detection-error">{{.DetectionError}}</div>{{end}}</td>
<td>{{.Department}}</td>
<td>{{.MaskedMobile}}</td>
<td>{{.MaskedEmail}}</td>
<td><img id="thumb-{{.SerialNumber}}" class="thumb" src="{{.Image}}" alt="{{.FileName}}" style="width:{{$.ThumbnailWidth}}px; height:auto;" onclick="openImage(this.src)"></td>
</tr>
{{end}}</tbody>
</table>
<label for="preview-select">Select an image to preview:</label>
<select id="preview-select" name="selected" form="upload" onchange="showPreview(this.value)">
{{range .Rows}}{{if .Selected}}<option value="{{.SerialNumber}}" selected>{{.Name}}</option>{{else}}<option value="{{.SerialNumber}}">{{.Name}}</option>{{end}}
{{end}}</select>
{{with .Preview}}<figure>
<img id="preview" src="{{.Image}}" alt="{{.FileName}}" width="{{$.PreviewWidth}}">
<figcaption>Preview</figcaption>
</figure>{{end}}
<script>
function openImage(src) {
  var w = window.open("");
  if (w) { w.document.write('<img src="' + src + '">'); }
}
function showPreview(serial) {
  var thumb = document.getElementById("thumb-" + serial);
  var preview = document.getElementById("preview");
  if (thumb && preview) { preview.src = thumb.src; preview.alt = thumb.alt; }
}
</script>
{{end}}
</body>
</html>
`))
