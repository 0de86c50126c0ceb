package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testDocuments() []Document {
	return []Document{
		{
			Name: `C:\Users\Public\Desktop\calc.lnk`,
			Report: map[string]interface{}{
				"command": `C:\Windows\System32\calc.exe`,
				"header": map[string]interface{}{
					"link_flags": []string{"HasLinkInfo", "HasRelativePath"},
					"file_size":  uint32(0x1234),
				},
				"extra": []map[string]interface{}{
					{"name": "ENVIRONMENTAL_VARIABLES_LOCATION_BLOCK", "target_unicode": `%COMSPEC%`},
				},
			},
		},
		{
			Name:   "notes.txt",
			Report: map[string]interface{}{"mime": "text/plain"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "json", input: "json", want: FormatJSON},
		{name: "empty defaults to json", input: "", want: FormatJSON},
		{name: "yaml", input: "YAML", want: FormatYAML},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "table", input: " table ", want: FormatTable},
		{name: "text alias", input: "text", want: FormatTable},
		{name: "invalid format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlatten(t *testing.T) {
	rows := Flatten(testDocuments()[0].Report)
	require.Equal(t, [][2]string{
		{"command", `C:\Windows\System32\calc.exe`},
		{"extra[0].name", "ENVIRONMENTAL_VARIABLES_LOCATION_BLOCK"},
		{"extra[0].target_unicode", `%COMSPEC%`},
		{"header.file_size", "4660"},
		{"header.link_flags", "HasLinkInfo, HasRelativePath"},
	}, rows)
	require.Empty(t, Flatten(map[string]interface{}{"absent": nil}))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatJSON).Print(testDocuments()))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, `C:\Users\Public\Desktop\calc.lnk`, decoded[0]["name"])
	assert.Equal(t, `C:\Windows\System32\calc.exe`, decoded[0]["command"])
	assert.Equal(t, "text/plain", decoded[1]["mime"])
	assert.Contains(t, buf.String(), `"target_unicode": "%COMSPEC%"`)
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatYAML).Print(testDocuments()))

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "notes.txt", decoded[1]["name"])
	header := decoded[0]["header"].(map[string]interface{})
	assert.Equal(t, []interface{}{"HasLinkInfo", "HasRelativePath"}, header["link_flags"])
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable)
	assert.Equal(t, FormatTable, printer.Format())
	require.NoError(t, printer.Print(testDocuments()))

	output := buf.String()
	assert.Contains(t, output, `C:\Users\Public\Desktop\calc.lnk`)
	assert.Contains(t, output, "header.link_flags")
	assert.Contains(t, output, "HasLinkInfo, HasRelativePath")
	assert.Contains(t, output, "notes.txt")
	assert.Contains(t, output, "text/plain")
}

func TestDocumentValuesDoNotModifyReport(t *testing.T) {
	doc := testDocuments()[1]
	values := doc.values()
	assert.Equal(t, "notes.txt", values["name"])
	assert.NotContains(t, doc.Report, "name")
}

func TestUnknownFormat(t *testing.T) {
	require.Error(t, NewPrinter(&bytes.Buffer{}, Format("xml")).Print(testDocuments()))
}
