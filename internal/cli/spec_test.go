package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSpec = `
title = "Quarterly report"
creator = "reporting pipeline"

[[section]]
width = "21cm"
height = "29.7cm"

[[section.element]]
kind = "paragraph"
text = "Results"
style = "Heading1"

[[section.element]]
kind = "table"
width = "100%"
columns = ["40%", "60%"]

[[section.element.row]]
cells = ["Region", "Revenue"]
header = true

[[section.element.row]]
cells = ["EMEA", "1.2M"]
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec(writeSpec(t, sampleSpec))
	require.NoError(t, err)

	assert.Equal(t, "Quarterly report", spec.Title)
	require.Len(t, spec.Sections, 1)
	require.Len(t, spec.Sections[0].Elements, 2)

	table := spec.Sections[0].Elements[1]
	assert.Equal(t, "table", table.Kind)
	assert.Equal(t, []string{"40%", "60%"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.True(t, table.Rows[0].Header)
	assert.Equal(t, []string{"EMEA", "1.2M"}, table.Rows[1].Cells)
}

func TestLoadSpecMissing(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestBuildDocumentAssembles(t *testing.T) {
	spec, err := LoadSpec(writeSpec(t, sampleSpec))
	require.NoError(t, err)

	doc, err := BuildDocument(spec)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	assert.Greater(t, buf.Len(), 0)
}

func TestBuildDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{
			"unknown kind",
			"[[section]]\n[[section.element]]\nkind = \"chart\"\n",
			`unknown element kind "chart"`,
		},
		{
			"image without locator",
			"[[section]]\n[[section.element]]\nkind = \"image\"\n",
			"needs a locator",
		},
		{
			"table without columns",
			"[[section]]\n[[section.element]]\nkind = \"table\"\n",
			"needs columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := LoadSpec(writeSpec(t, tt.spec))
			require.NoError(t, err)

			_, err = BuildDocument(spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildDocumentDefaultsToOneSection(t *testing.T) {
	doc, err := BuildDocument(&DocumentSpec{Title: "empty"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	assert.Greater(t, buf.Len(), 0)
}
