package reports

import (
	"context"
	"strings"

	"github.com/hyperjump/symptomatch/internal/language"
	"github.com/hyperjump/symptomatch/internal/models"
	"github.com/hyperjump/symptomatch/internal/report"
)

// Gujarati names for catalog keywords. Keywords outside the table are
// machine translated.
var gujaratiDiseaseNames = map[string]string{
	"thyroid":             "થાયરોઇડની તકલીફ",
	"covid":               "કોરોના (કોવિડ-19)",
	"cough":               "ખાંસી",
	"cold":                "સર્દી",
	"fever":               "તાવ",
	"asthma":              "દમ",
	"diabetes":            "મધુમેહ",
	"high blood pressure": "ઉચ્ચ રક્તચાપ",
	"low blood pressure":  "નીચું રક્તચાપ",
	"anemia":              "અનીમિયા",
	"dengue":              "ડૅન્ગ્યૂ",
	"malaria":             "મેલેરિયા",
	"pneumonia":           "ન્યુમોનિયા",
}

type nativeLabels struct {
	summaryHeading string
	faqHeading     string
	disease        string
	summary        string
	symptoms       string
	causes         string
	homeCare       string
	whenToVisit    string
}

var (
	hindiLabels = nativeLabels{
		summaryHeading: "फ़ाइल का संक्षिप्त सार:",
		faqHeading:     "मिलान किया गया FAQ:",
		disease:        "रोग",
		summary:        "समझाइश",
		symptoms:       "लक्षण",
		causes:         "संभावित कारण",
		homeCare:       "घरेलू देखभाल सलाह",
		whenToVisit:    "डॉक्टर से कब मिलें",
	}
	gujaratiLabels = nativeLabels{
		summaryHeading: "ફાઇલનો સંક્ષિપ્ત સાર:",
		faqHeading:     "મેળવાયેલ FAQ:",
		disease:        "રોગ",
		summary:        "સમજૂતી",
		symptoms:       "લક્ષણો",
		causes:         "સંભવિત કારણો",
		homeCare:       "ઘરેલુ દેખભાળ સલાહ",
		whenToVisit:    "ડૉક્ટરને ક્યારે મળવું",
	}
)

// englishLayout renders the reply in English: what was read from the file,
// then the matched FAQ. Indic sources get the brief summary in place of the
// field listing, since OCR of those scripts is rarely clean enough to list.
func englishLayout(detected language.Code, english, raw string, entry *models.FAQEntry) string {
	var section string
	if detected.Indic() {
		section = report.BriefSummary(english)
	} else {
		source := english
		if strings.TrimSpace(source) == "" {
			source = raw
		}
		section = report.UploadSection(source)
	}
	return section + "\n\n" + faqSection(entry)
}

func faqSection(entry *models.FAQEntry) string {
	if entry == nil {
		return "Matched FAQ:\n" + noMatchSection
	}
	return "Matched FAQ:\n" +
		"Disease: " + entry.Title() + "\n" +
		"Possible Causes: " + entry.PossibleCauses + "\n" +
		"Home Care Advice: " + entry.HomeCare + "\n" +
		"When to Visit Doctor: " + entry.WhenToVisit
}

// faqFields are the English values laid out line by line in native replies.
type faqFields struct {
	keyword     string
	disease     string
	symptoms    string
	causes      string
	homeCare    string
	whenToVisit string
}

func fieldsOf(entry *models.FAQEntry) faqFields {
	f := faqFields{
		disease:     report.NotClearlyFound,
		symptoms:    report.NotClearlyFound,
		causes:      report.NotClearlyFound,
		homeCare:    report.NotClearlyFound,
		whenToVisit: report.NotClearlyFound,
	}
	if entry == nil {
		return f
	}
	f.keyword = strings.TrimSpace(entry.Keyword)
	f.disease = orNotFound(entry.Title())
	f.symptoms = orNotFound(strings.Join(entry.Symptoms, ", "))
	f.causes = orNotFound(entry.PossibleCauses)
	f.homeCare = orNotFound(entry.HomeCare)
	f.whenToVisit = orNotFound(entry.WhenToVisit)
	return f
}

func orNotFound(s string) string {
	if strings.TrimSpace(s) == "" {
		return report.NotClearlyFound
	}
	return s
}

// nativeLayout builds the line-by-line reply used when both the report and
// the reader are Hindi or Gujarati. Each value is translated on its own so a
// failed translation only leaves that line in English. It reports false when
// the combination has no native layout.
func (p *Processor) nativeLayout(ctx context.Context, detected, target language.Code, english string, entry *models.FAQEntry) (string, bool) {
	if !detected.Indic() || !target.Indic() {
		return "", false
	}

	tr := func(s string) string { return p.engine.Localize(ctx, s, target) }
	labels := hindiLabels
	if target == language.Gujarati {
		labels = gujaratiLabels
	}

	fields := fieldsOf(entry)
	summary := orNotFound(report.StripSummaryPrefix(report.BriefSummary(english)))

	disease := tr(fields.disease)
	if target == language.Gujarati {
		disease = p.gujaratiDiseaseName(ctx, fields)
	}

	lines := []string{
		labels.disease + ": " + disease,
		labels.symptoms + ": " + tr(fields.symptoms),
		labels.causes + ": " + tr(fields.causes),
		labels.homeCare + ": " + tr(fields.homeCare),
		labels.whenToVisit + ": " + tr(fields.whenToVisit),
	}

	if detected == language.Gujarati {
		// Gujarati reports keep the summary inline, right after the disease.
		withSummary := append([]string{lines[0], labels.summary + ": " + tr(summary)}, lines[1:]...)
		return strings.Join(withSummary, "\n"), true
	}
	return labels.summaryHeading + "\n" + tr(summary) + "\n\n" +
		labels.faqHeading + "\n" + strings.Join(lines, "\n"), true
}

func (p *Processor) gujaratiDiseaseName(ctx context.Context, fields faqFields) string {
	if name, ok := gujaratiDiseaseNames[strings.ToLower(fields.keyword)]; ok {
		return name
	}
	return p.engine.Localize(ctx, fields.disease, language.Gujarati)
}
