package main

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mev/internal/model"
)

func TestFacetQuery(t *testing.T) {
	q, err := facetQuery("pizza", []string{"flavor=1", "flavor=2", "price=1", "flavor=1"})
	assert.NilError(t, err)
	assert.Equal(t, q.Encode(), "flavor=1&flavor=2&keyword=pizza&price=1")
}

func TestFacetQuery_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		facets []string
		want   string
	}{
		{"no separator", []string{"flavor"}, "expected key=value"},
		{"empty option", []string{"flavor="}, "expected key=value"},
		{"unknown facet", []string{"color=1"}, `unknown facet "color"`},
		{"unknown option", []string{"portion=9"}, `facet "portion" has no option "9"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := facetQuery("", tt.facets)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseEvaluation(t *testing.T) {
	ev, err := parseEvaluation([]string{"flavor=2", " spiciness = 1 "}, "또 올게요")
	assert.NilError(t, err)
	assert.DeepEqual(t, ev, model.Evaluation{
		Scores:  map[string]string{"flavor": "2", "spiciness": "1"},
		Comment: "또 올게요",
	})

	_, err = parseEvaluation(nil, "")
	assert.ErrorContains(t, err, "no scores")

	_, err = parseEvaluation([]string{"flavor=1", "flavor=2"}, "")
	assert.ErrorContains(t, err, "scored twice")
}

func TestFacetSummary(t *testing.T) {
	it := model.MenuItem{Facets: map[string]string{"price": "3", "flavor": "2", "unknown": "1"}}
	assert.Equal(t, facetSummary(it), "짭짤해요 · 비싸요")
}

func TestLoadUpload(t *testing.T) {
	up, err := loadUpload("")
	assert.NilError(t, err)
	assert.Check(t, up.Data == nil)

	dir := t.TempDir()
	gif := filepath.Join(dir, "dish.gif")
	assert.NilError(t, os.WriteFile(gif, []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), 0o600))

	up, err = loadUpload(gif)
	assert.NilError(t, err)
	assert.Equal(t, up.Name, "dish.gif")
	assert.Equal(t, up.ContentType, "image/gif")

	txt := filepath.Join(dir, "notes.txt")
	assert.NilError(t, os.WriteFile(txt, []byte("just text"), 0o600))
	_, err = loadUpload(txt)
	assert.Check(t, is.ErrorContains(err, "not an image"))

	_, err = loadUpload(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "read image")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"search", "login", "restaurant", "menu", "evaluate", "dev-server"} {
		cmd, _, err := root.Find([]string{name})
		assert.NilError(t, err)
		assert.Equal(t, cmd.Name(), name)
	}
}
