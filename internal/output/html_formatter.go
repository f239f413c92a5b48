package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/withholding-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":       FormatCurrency,
	"pct":        FormatPercentage,
	"caseNumber": FormatCaseNumber,
	"fields":     outcomeFields,
	"add":        func(i, j int) int { return i + j },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Summaries   []Summary
		Total       Summary
		Assumptions []string
	}{report, SummarizeByScenario(report), Summarize(report), DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
