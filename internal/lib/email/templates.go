package email

// Template names a file in templates/emails without its extension.
type Template string

const (
	TemplateRSVP Template = "rsvp"
)

// PreviewData holds sample values for every template.
var PreviewData = map[Template]map[string]string{
	TemplateRSVP: {
		"Name":    "Alice",
		"Status":  "attending",
		"Message": "Congratulations to you both!",
	},
}
