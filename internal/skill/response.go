package skill

import (
	"strings"

	"bitbucket.org/sotavant/dolly-skill/internal/models"
	"bitbucket.org/sotavant/dolly-skill/internal/store"
)

// Response is what a handler wants said and sent back to the platform.
type Response struct {
	Speech           string
	RepromptSpeech   string
	ShouldEndSession *bool
	Directives       []models.Directive
}

func NewResponse() *Response {
	return &Response{}
}

func (r *Response) Speak(text string) *Response {
	r.Speech = text
	return r
}

// Reprompt sets the text used when the user stays silent. A reprompt keeps
// the session open.
func (r *Response) Reprompt(text string) *Response {
	r.RepromptSpeech = text
	return r.WithShouldEndSession(false)
}

func (r *Response) WithShouldEndSession(end bool) *Response {
	r.ShouldEndSession = &end
	return r
}

func (r *Response) AddDirective(d models.Directive) *Response {
	r.Directives = append(r.Directives, d)
	return r
}

// EndsSession reports whether the platform will close the conversation
// after this response. Without an explicit flag the session ends.
func (r *Response) EndsSession() bool {
	if r.ShouldEndSession == nil {
		return true
	}
	return *r.ShouldEndSession
}

// Envelope renders the response together with the session attributes to carry over.
func (r *Response) Envelope(s *store.Session) *models.Response {
	body := models.ResponseBody{
		ShouldEndSession: r.ShouldEndSession,
		Directives:       r.Directives,
	}
	if r.Speech != "" {
		body.OutputSpeech = ssml(r.Speech)
	}
	if r.RepromptSpeech != "" {
		body.Reprompt = &models.Reprompt{OutputSpeech: *ssml(r.RepromptSpeech)}
	}

	return &models.Response{
		Version:           models.Version,
		SessionAttributes: s.Attributes(),
		Response:          body,
	}
}

var ssmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func ssml(text string) *models.OutputSpeech {
	return &models.OutputSpeech{
		Type: models.TypeSSML,
		SSML: "<speak>" + ssmlEscaper.Replace(text) + "</speak>",
	}
}
