package report

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Disease:\x00 Flu (cid:127) here\t\n", "Disease: Flu here"},
		{"cid:12 Symptoms  :   cough", "Symptoms : cough"},
		{"\x7f\x1b", ""},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractField(t *testing.T) {
	text := "Disease Name: Typhoid Fever Symptoms: high fever, weakness. Home Care: rest and fluids. " +
		"When to Visit a Doctor - if fever persists"

	tests := []struct {
		name   string
		text   string
		labels []string
		want   string
	}{
		{"disease up to next heading", text, Labels(Disease), "Typhoid Fever"},
		{"symptoms trimmed", text, Labels(Symptoms), "high fever, weakness"},
		{"home care", text, Labels(HomeCare), "rest and fluids"},
		{"dash separator at end", text, Labels(WhenToVisit), "if fever persists"},
		{"case insensitive", "SYMPTOMS: sneezing", Labels(Symptoms), "sneezing"},
		{"longer synonym", "Common symptoms: chills and sweating", Labels(Symptoms), "chills and sweating"},
		{"illness synonym", "Illness: Malaria. Symptoms: chills", Labels(Disease), "Malaria"},
		{"home care advice", "Home Care Advice: drink water", Labels(HomeCare), "drink water"},
		{"label without value", "Disease:", Labels(Disease), ""},
		{"no label", "Patient is recovering well", Labels(Disease), ""},
		{"no labels given", text, nil, ""},
		{"empty text", "", Labels(Disease), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractField(tt.text, tt.labels...); got != tt.want {
				t.Errorf("ExtractField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractFields(t *testing.T) {
	fields := ExtractFields("Disease: Dengue Possible Causes: mosquito bite Symptoms: rash")
	if fields.Get(Disease) != "Dengue" {
		t.Errorf("disease = %q", fields.Get(Disease))
	}
	if fields.Get(PossibleCauses) != "mosquito bite" {
		t.Errorf("causes = %q", fields.Get(PossibleCauses))
	}
	if fields.Get(Symptoms) != "rash" {
		t.Errorf("symptoms = %q", fields.Get(Symptoms))
	}
	if fields.Has(HomeCare) || fields.Get(HomeCare) != NotClearlyFound {
		t.Errorf("home care should be missing, got %q", fields.Get(HomeCare))
	}
	if !fields.Any(HomeCare, Disease) || fields.Any(HomeCare, WhenToVisit) {
		t.Error("unexpected Any result")
	}
}

func TestExtractFields_cleanupAndNoise(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field Field
		want  string
	}{
		{
			name:  "short token soup",
			text:  "Disease: a b c d e f g h ij kl flu",
			field: Disease,
			want:  NotClearlyFound,
		},
		{
			name:  "noisy field does not spill into others",
			text:  "Disease: a b c d e f Symptoms: high temperature and shivering",
			field: Symptoms,
			want:  "high temperature and shivering",
		},
		{
			name:  "glyph placeholders and control characters",
			text:  "Disease:\x07 Viral (cid:127) Fever\x00 Symptoms: chills",
			field: Disease,
			want:  "Viral Fever",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ExtractFields(tt.text)
			if got := fields.Get(tt.field); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.field, got, tt.want)
			}
			if !fields.Has(tt.field) {
				t.Errorf("%s label should be reported as found", tt.field)
			}
		})
	}
}

func TestUploadSection(t *testing.T) {
	t.Run("fields found", func(t *testing.T) {
		got := UploadSection("Disease: Fever Symptoms: chills")
		want := "Text found in file:\nDisease: Fever\nSymptoms: chills\nHome Care: Not clearly found"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("no labels falls back to snippet", func(t *testing.T) {
		got := UploadSection("Patient   visited the clinic\nfor a routine checkup")
		want := "Text found in file:\nDisease: Not clearly found\nSymptoms: Not clearly found\n" +
			"Home Care: Not clearly found\nSummary: Patient visited the clinic for a routine checkup"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("snippet is capped", func(t *testing.T) {
		got := UploadSection(strings.Repeat("बुखार ", 200))
		_, snippet, ok := strings.Cut(got, "Summary: ")
		if !ok {
			t.Fatalf("missing summary line: %q", got)
		}
		if n := utf8.RuneCountInString(snippet); n != uploadSnippetLen {
			t.Errorf("snippet has %d runes, want %d", n, uploadSnippetLen)
		}
	})
}

func TestBriefSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "  ",
			want: "Brief Summary from file:\nNot clearly found.",
		},
		{
			name: "fields with watermark",
			in:   "www.onlinedoctranslator.com Disease: Typhoid Symptoms: fever and weakness",
			want: "Brief Summary from file:\nDisease: Typhoid\nSymptoms: fever and weakness",
		},
		{
			name: "uppercase ocr noise removed",
			in:   "Disease: Flu WRI WA SIS Symptoms: cough",
			want: "Brief Summary from file:\nDisease: Flu\nSymptoms: cough",
		},
		{
			name: "first two sentences",
			in:   "The patient has had a mild fever for three days. Blood tests were normal. Follow up next week.",
			want: "Brief Summary from file:\nThe patient has had a mild fever for three days Blood tests were normal",
		},
		{
			name: "noise gate",
			in:   "ab cd ef gh ij kl mn op",
			want: "Brief Summary from file:\nNot clearly found from uploaded text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BriefSummary(tt.in); got != tt.want {
				t.Errorf("BriefSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBriefSummary_Truncates(t *testing.T) {
	got := StripSummaryPrefix(BriefSummary(strings.Repeat("persistent cough ", 60)))
	if n := utf8.RuneCountInString(got); n > summaryLen {
		t.Errorf("summary has %d runes, want at most %d", n, summaryLen)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("summary ends with a space: %q", got)
	}
}

func TestStripSummaryPrefix(t *testing.T) {
	if got := StripSummaryPrefix("Brief Summary from file:\nDisease: X"); got != "Disease: X" {
		t.Errorf("got %q", got)
	}
	if got := StripSummaryPrefix("Brief Summary from file: inline"); got != "inline" {
		t.Errorf("got %q", got)
	}
	if got := StripSummaryPrefix("  untouched "); got != "untouched" {
		t.Errorf("got %q", got)
	}
}

func TestHasMeaningfulText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"short", false},
		{"Patient has mild fever and cough", true},
		{"................................", false},
		{"मरीज़ को हल्का बुखार और खांसी है दो दिन से", true},
	}
	for _, tt := range tests {
		if got := HasMeaningfulText(tt.in); got != tt.want {
			t.Errorf("HasMeaningfulText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLooksMedical(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Home Care advice: rest", true},
		{"रोग: बुखार", true},
		{"રોગ: તાવ", true},
		{"Invoice total 450", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksMedical(tt.in); got != tt.want {
			t.Errorf("LooksMedical(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
