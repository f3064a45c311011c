package models

import "encoding/json"

const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"

	TypeSSML = "SSML"

	TypeSendDirective = "CustomInterfaceController.SendDirective"

	Version = "1.0"
)

// Request описывает конверт входящего запроса голосовой платформы.
type Request struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Context Context `json:"context"`
	Request Payload `json:"request"`
}

type Session struct {
	New         bool                       `json:"new"`
	SessionID   string                     `json:"sessionId"`
	Application Application                `json:"application"`
	Attributes  map[string]json.RawMessage `json:"attributes,omitempty"`
	User        User                       `json:"user"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID string `json:"userId"`
}

type Context struct {
	System System `json:"System"`
}

// System несёт адрес API платформы и токен, которыми пользуется поиск устройств.
type System struct {
	APIEndpoint    string      `json:"apiEndpoint"`
	APIAccessToken string      `json:"apiAccessToken"`
	Application    Application `json:"application"`
	Device         Device      `json:"device"`
}

type Device struct {
	DeviceID string `json:"deviceId"`
}

// Payload — тело запроса; набор заполненных полей зависит от Type.
type Payload struct {
	Type      string        `json:"type"`
	RequestID string        `json:"requestId"`
	Timestamp string        `json:"timestamp"`
	Locale    string        `json:"locale"`
	Reason    string        `json:"reason,omitempty"`
	Intent    *Intent       `json:"intent,omitempty"`
	Error     *RequestError `json:"error,omitempty"`
}

type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type RequestError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ApplicationID returns the skill id the request was issued for.
func (r *Request) ApplicationID() string {
	if id := r.Context.System.Application.ApplicationID; id != "" {
		return id
	}
	return r.Session.Application.ApplicationID
}

// IntentName returns the intent name of an IntentRequest and "" for anything else.
func (r *Request) IntentName() string {
	if r.Request.Type != TypeIntentRequest || r.Request.Intent == nil {
		return ""
	}
	return r.Request.Intent.Name
}

// SlotValue returns the value of the named slot. Slots that were not filled
// by the platform are reported as absent.
func (r *Request) SlotValue(name string) (string, bool) {
	if r.Request.Intent == nil {
		return "", false
	}
	slot, ok := r.Request.Intent.Slots[name]
	if !ok || slot.Value == "" {
		return "", false
	}
	return slot.Value, true
}

// Response описывает ответ сервера.
type Response struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes,omitempty"`
	Response          ResponseBody   `json:"response"`
}

type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// Directive — команда, которую платформа доставит на подключённое устройство.
type Directive struct {
	Type     string            `json:"type"`
	Header   DirectiveHeader   `json:"header"`
	Endpoint DirectiveEndpoint `json:"endpoint"`
	Payload  map[string]any    `json:"payload"`
}

type DirectiveHeader struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

type DirectiveEndpoint struct {
	EndpointID string `json:"endpointId,omitempty"`
}

// Endpoints is the result of the endpoint enumeration call.
type Endpoints struct {
	Endpoints []Endpoint `json:"endpoints"`
}

type Endpoint struct {
	EndpointID   string       `json:"endpointId"`
	FriendlyName string       `json:"friendlyName,omitempty"`
	Capabilities []Capability `json:"capabilities,omitempty"`
}

type Capability struct {
	Type      string `json:"type"`
	Interface string `json:"interface"`
	Version   string `json:"version"`
}
