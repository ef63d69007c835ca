// Package index renders the static PEP 503 "simple" index pages.
package index

import (
	"bytes"
	"html"
	"os"
	"path/filepath"
	"text/template"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/zerr"
)

const pageHeader = "<!DOCTYPE html>\n<html>\n  <body>\n"

const pageFooter = "  </body>\n</html>"

// Only markup characters are escaped; wheel names keep PEP 440 "+" local versions verbatim.
var funcs = template.FuncMap{"escape": html.EscapeString}

var (
	rootPage = template.Must(template.New("root index").Funcs(funcs).Parse(pageHeader +
		`{{range .}}    <a href="{{escape .}}/">{{escape .}}</a><br>` + "\n{{end}}" + pageFooter))

	packagePage = template.Must(template.New("package index").Funcs(funcs).Parse(pageHeader +
		`{{range .}}    <a href="{{escape .Filename}}">v{{escape .Version}}</a><br>` + "\n{{end}}" + pageFooter))
)

// Writer implements ports.IndexWriter.
type Writer struct {
	root  string
	store ports.ArtifactStore
}

// NewWriter creates a Writer for the index rooted at root, listing
// artifacts through store.
func NewWriter(root string, store ports.ArtifactStore) *Writer {
	if root == "" {
		root = domain.IndexDirName
	}
	return &Writer{root: root, store: store}
}

// WriteIndex regenerates the root page and the page of every package.
// Packages are linked from the root page in the given order.
func (w *Writer) WriteIndex(packages []string) error {
	for _, pkg := range packages {
		if err := w.writePackage(pkg); err != nil {
			return err
		}
	}
	return w.render(rootPage, packages, filepath.Join(w.root, domain.IndexFileName))
}

func (w *Writer) writePackage(pkg string) error {
	names, err := w.store.List(pkg)
	if err != nil {
		return zerr.With(err, "package", pkg)
	}

	artifacts := make([]domain.Artifact, 0, len(names))
	for _, name := range names {
		a, err := domain.ParseArtifactName(name)
		if err != nil {
			return zerr.With(err, "package", pkg)
		}
		if !a.BelongsTo(pkg) {
			continue
		}
		artifacts = append(artifacts, a)
	}

	path := filepath.Join(domain.PackageDir(w.root, pkg), domain.IndexFileName)
	return w.render(packagePage, artifacts, path)
}

func (w *Writer) render(tmpl *template.Template, data any, path string) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil { //nolint:gosec // index pages are public
		return zerr.With(zerr.Wrap(err, domain.ErrIndexWriteFailed.Error()), "path", path)
	}
	return nil
}

var _ ports.IndexWriter = (*Writer)(nil)
