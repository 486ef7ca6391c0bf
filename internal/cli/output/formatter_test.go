package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		wide   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{FormatTable, true},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format, tt.wide)

			switch tt.format {
			case FormatJSON:
				if _, ok := f.(*JSONFormatter); !ok {
					t.Errorf("got %T, want *JSONFormatter", f)
				}
			case FormatYAML:
				if _, ok := f.(*YAMLFormatter); !ok {
					t.Errorf("got %T, want *YAMLFormatter", f)
				}
			default:
				tf, ok := f.(*TableFormatter)
				if !ok {
					t.Fatalf("got %T, want *TableFormatter", f)
				}
				if tf.Wide != tt.wide {
					t.Errorf("Wide = %v, want %v", tf.Wide, tt.wide)
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type tripRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Note     string `json:"description" table:"wide"`
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	err := (&JSONFormatter{}).Format(&buf, tripRow{ID: 1, Name: "Food & Drinks", Currency: "TWD"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Food & Drinks") {
		t.Errorf("HTML characters escaped: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "\n  \"id\": 1") {
		t.Errorf("output not indented: %s", buf.String())
	}

	var back tripRow
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	t.Run("struct keeps field order and json names", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&YAMLFormatter{}).Format(&buf, tripRow{ID: 3, Name: "Kyoto", Currency: "JPY", Note: "spring"})
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		want := "id: 3\nname: Kyoto\ncurrency: JPY\ndescription: spring\n"
		if buf.String() != want {
			t.Errorf("Format() =\n%s\nwant\n%s", buf.String(), want)
		}
	})

	t.Run("numeric strings stay strings", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&YAMLFormatter{}).Format(&buf, map[string]string{"code": "007"}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"007"`) {
			t.Errorf("Format() = %q, want quoted 007", buf.String())
		}
	})

	t.Run("nested slice is block style", func(t *testing.T) {
		var buf bytes.Buffer
		data := map[string]any{"transactions": []map[string]any{{"from_user": "amy", "amount": 10}}}
		if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if strings.Contains(out, "{") || strings.Contains(out, "[") {
			t.Errorf("flow style leaked: %q", out)
		}
		if !strings.Contains(out, "- amount: 10") {
			t.Errorf("unexpected output: %q", out)
		}
	})
}
