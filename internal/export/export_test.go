package export

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/wdl/internal/wdl"
)

const survey = `window "Survey" (400, 300)
layout grid(2, 1, 4, 2):
  label "Size";
  panel layout flow:
    group radio "S"; radio "M"; end;
    textfield 8;
    button "OK";
  end;
end.`

func mustParse(t *testing.T, src string) *wdl.Window {
	t.Helper()
	w, err := wdl.Parse(src)
	require.NoError(t, err)
	return w
}

func TestMarshal_YAML(t *testing.T) {
	out, err := Marshal(mustParse(t, survey), YAML)
	require.NoError(t, err)

	expected := `type: window
title: Survey
width: 400
height: 300
layout:
  type: grid
  rows: 2
  cols: 1
  hgap: 4
  vgap: 2
children:
  - type: label
    text: Size
  - type: panel
    layout:
      type: flow
    children:
      - type: group
        options:
          - S
          - M
      - type: textfield
        columns: 8
      - type: button
        label: OK
`
	require.Equal(t, expected, string(out))
}

func TestMarshal_JSON(t *testing.T) {
	out, err := Marshal(mustParse(t, `window "<A&B>" (1, 2) layout flow: button ""; end.`), JSON)
	require.NoError(t, err)

	expected := `{
  "type": "window",
  "title": "<A&B>",
  "width": 1,
  "height": 2,
  "layout": {
    "type": "flow"
  },
  "children": [
    {
      "type": "button",
      "label": ""
    }
  ]
}
`
	require.Equal(t, expected, string(out))
}

func TestMarshal_ZeroValuesKept(t *testing.T) {
	out, err := Marshal(mustParse(t, `window "" (0, 0) layout grid(0, 0): textfield 0; end.`), JSON)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))
	require.NotNil(t, doc.Layout.Rows)
	require.Zero(t, *doc.Layout.Rows)
	require.NotNil(t, doc.Children[0].Columns)
	require.Zero(t, *doc.Children[0].Columns)
}

func TestMarshal_FormatsAgree(t *testing.T) {
	w := mustParse(t, survey)

	y, err := Marshal(w, YAML)
	require.NoError(t, err)
	j, err := Marshal(w, JSON)
	require.NoError(t, err)

	var fromYAML, fromJSON Document
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))
	require.NoError(t, json.Unmarshal(j, &fromJSON))
	require.Equal(t, fromJSON, fromYAML)
	require.Equal(t, FromWindow(w), fromJSON)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": YAML, "YML": YAML, "Json": JSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("toml")
	require.ErrorContains(t, err, `unknown export format "toml"`)
}
