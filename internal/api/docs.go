package api

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"sync"
)

const (
	docsPath     = "/docs"
	specJSONPath = "/docs/openapi"
	specYAMLPath = "/docs/openapi.yaml"
)

// RegisterDocsRoutes mounts the API reference. The root path redirects to
// the Swagger UI, which loads the JSON rendering of the embedded document.
func RegisterDocsRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsPath, http.StatusMovedPermanently)
	})
	mux.HandleFunc("GET "+docsPath, serveSwaggerUI)
	mux.HandleFunc("GET "+specJSONPath, serveSpecJSON)
	mux.HandleFunc("GET "+specYAMLPath, serveSpecYAML)
}

type renderedDocs struct {
	json []byte
	page []byte
	err  error
}

var (
	docsOnce sync.Once
	docs     renderedDocs
)

// rendered builds the JSON document and the UI page once per process.
func rendered() renderedDocs {
	docsOnce.Do(func() {
		doc, err := GetSwagger()
		if err != nil {
			docs.err = err
			return
		}

		if docs.json, docs.err = json.Marshal(doc); docs.err != nil {
			return
		}

		var page bytes.Buffer
		docs.err = swaggerUI.Execute(&page, struct {
			Title   string
			Version string
			SpecURL string
		}{doc.Info.Title, doc.Info.Version, specJSONPath})
		docs.page = page.Bytes()
	})
	return docs
}

func serveSpecJSON(w http.ResponseWriter, _ *http.Request) {
	d := rendered()
	if d.err != nil {
		http.Error(w, "OpenAPI document unavailable", http.StatusInternalServerError)
		return
	}
	writeDoc(w, "application/json", d.json)
}

func serveSpecYAML(w http.ResponseWriter, _ *http.Request) {
	writeDoc(w, "application/yaml", openAPISpec)
}

func serveSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	d := rendered()
	if d.err != nil {
		http.Error(w, "OpenAPI document unavailable", http.StatusInternalServerError)
		return
	}
	writeDoc(w, "text/html; charset=utf-8", d.page)
}

func writeDoc(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(body) //nolint:errcheck // client went away
}

var swaggerUI = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} {{.Version}} - Swagger UI</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => SwaggerUIBundle({
      url: {{.SpecURL}},
      dom_id: '#swagger-ui',
      deepLinking: true,
      tryItOutEnabled: true
    });
  </script>
</body>
</html>`))
