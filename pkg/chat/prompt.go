package chat

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// PromptContext carries the per-request context interpolated into the
// system prompt. Country, City and Timezone come from the edge-supplied
// request headers; any of them may be empty.
type PromptContext struct {
	Persona  string
	Country  string
	City     string
	Timezone string

	// Now is the reference instant for the caller's local time.
	// Zero means time.Now at render.
	Now time.Time
}

const systemPromptTemplate = `{{.Persona}}
{{if .Location}}
The person you are speaking with is in {{.Location}}.{{end}}{{if .LocalTime}}
Their local time is {{.LocalTime}}.{{end}}

Keep replies short and conversational; they will be read aloud.`

// templateData is the resolved view of a PromptContext.
type templateData struct {
	Persona   string
	Location  string
	LocalTime string
}

// SystemPrompt renders the persona system prompt for one request.
// Missing geolocation or timezone headers simply drop their sentence.
func SystemPrompt(pctx PromptContext) (string, error) {
	data := templateData{
		Persona:  pctx.Persona,
		Location: location(pctx.City, pctx.Country),
	}

	if pctx.Timezone != "" {
		if loc, err := time.LoadLocation(pctx.Timezone); err == nil {
			now := pctx.Now
			if now.IsZero() {
				now = time.Now()
			}
			data.LocalTime = now.In(loc).Format("Monday 3:04 PM")
		}
	}

	tmpl, err := template.New("systemPrompt").Parse(systemPromptTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse system prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute system prompt template: %w", err)
	}

	return buf.String(), nil
}

func location(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return country
	}
}
