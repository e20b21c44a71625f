package cleaner

import (
	"testing"

	"dqpipe/internal/models"
)

func TestNewCleaner(t *testing.T) {
	if New() == nil {
		t.Fatal("New returned nil")
	}
}

func TestClean(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Full pipeline",
			input: "  <p>Hello&nbsp;&amp; “world”</p>\n\n",
			want:  `Hello & "world"`,
		},
		{
			name:  "Plain text",
			input: "already clean",
			want:  "already clean",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
		{
			name:  "Control characters collapse into spacing",
			input: "a\x07\x08b",
			want:  "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	c := New()

	inputs := []string{
		"  <p>Hello&nbsp;&amp; <b>world</b></p>\n\n",
		"café – a​b",
		"plain",
		"",
		"‘quoted’ \x7ftext",
	}

	for _, input := range inputs {
		once := c.Clean(input)

		if twice := c.Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestClean_StageToggles(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		input string
		want  string
	}{
		{
			name:  "HTML removal disabled keeps tags",
			opts:  Options{CollapseWhitespace: true},
			input: "<b>a</b>   b",
			want:  "<b>a</b> b",
		},
		{
			name:  "Whitespace collapsing disabled keeps runs",
			opts:  Options{RemoveHTML: true},
			input: "<b>a</b>   b",
			want:  "a   b",
		},
		{
			name:  "All stages disabled is identity",
			opts:  Options{},
			input: "  <b>a</b> ’ ",
			want:  "  <b>a</b> ’ ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWithOptions(tt.opts).Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanValue(t *testing.T) {
	c := New()

	if got := c.CleanValue(models.Null()); got.Text() != "" || got.Kind() != models.KindText {
		t.Errorf("CleanValue(null) = %v, want empty text", got)
	}

	got := c.CleanValue(models.List(models.Text(" a "), models.Text("<b>b</b>")))
	elems := got.List()

	if len(elems) != 2 || elems[0].Text() != "a" || elems[1].Text() != "b" {
		t.Errorf("CleanValue(list) = %v", elems)
	}
}

func TestCleanRecord(t *testing.T) {
	c := New()

	record := models.Record{
		models.FieldTitle:   models.Text("  <h1>Breaking&nbsp;News</h1>  "),
		models.FieldContent: models.Text("Some “content” here"),
		models.FieldAuthor:  models.Text("  Jane   Doe "),
		models.FieldDate:    models.Text("Jan 15, 2024"),
		models.FieldTags:    models.List(models.Text(" <i>go</i> "), models.Null(), models.Text("data ")),
		models.FieldURL:     models.Text("  https://example.com/page  "),
		"site_id":           models.Text("42"),
	}

	cleaned := c.CleanRecord(record)

	if got := cleaned[models.FieldTitle].Text(); got != "Breaking News" {
		t.Errorf("title = %q", got)
	}

	if got := cleaned[models.FieldContent].Text(); got != `Some "content" here` {
		t.Errorf("content = %q", got)
	}

	if got := cleaned[models.FieldAuthor].Text(); got != "Jane Doe" {
		t.Errorf("author = %q", got)
	}

	if got := cleaned[models.FieldDate].Text(); got != "2024-01-15" {
		t.Errorf("date = %q", got)
	}

	tags := cleaned[models.FieldTags].List()
	if len(tags) != 2 || tags[0].Text() != "go" || tags[1].Text() != "data" {
		t.Errorf("tags = %v", tags)
	}

	if got := cleaned[models.FieldURL].Text(); got != "https://example.com/page" {
		t.Errorf("url = %q", got)
	}

	if got := cleaned["site_id"].Text(); got != "42" {
		t.Errorf("passthrough key site_id = %q", got)
	}
}

func TestCleanRecord_DateBestEffort(t *testing.T) {
	c := New()

	record := models.Record{
		models.FieldDate: models.Text("sometime last week"),
	}

	cleaned := c.CleanRecord(record)

	// Unparseable dates keep their original spelling; failure to standardize
	// is not an error.
	if got := cleaned[models.FieldDate].Text(); got != "sometime last week" {
		t.Errorf("date = %q, want original text", got)
	}
}

func TestCleanRecord_BlankURLRemoved(t *testing.T) {
	c := New()

	cleaned := c.CleanRecord(models.Record{
		models.FieldURL: models.Text("   "),
	})

	if cleaned.Has(models.FieldURL) {
		t.Error("blank url should be removed from the cleaned record")
	}
}

func TestCleanRecord_NullFieldsSkipped(t *testing.T) {
	c := New()

	cleaned := c.CleanRecord(models.Record{
		models.FieldTitle: models.Null(),
		models.FieldDate:  models.Null(),
	})

	if !cleaned[models.FieldTitle].IsNull() {
		t.Error("null title should stay null")
	}

	if !cleaned[models.FieldDate].IsNull() {
		t.Error("null date should stay null")
	}
}

func TestCleanRecord_DoesNotMutateInput(t *testing.T) {
	c := New()

	record := models.Record{
		models.FieldTitle: models.Text("<b>dirty</b>"),
	}

	_ = c.CleanRecord(record)

	if got := record[models.FieldTitle].Text(); got != "<b>dirty</b>" {
		t.Errorf("input record mutated: title = %q", got)
	}
}
