package main

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/sotavant/dolly-skill/internal/gadget/mock"
	"bitbucket.org/sotavant/dolly-skill/internal/models"
	"bitbucket.org/sotavant/dolly-skill/internal/skill"
)

const testSkillID = "amzn1.ask.skill.dolly"

const launchBody = `{
	"version": "1.0",
	"session": {"new": true, "sessionId": "s1", "application": {"applicationId": "amzn1.ask.skill.dolly"}},
	"context": {"System": {
		"apiEndpoint": "https://api.amazonalexa.com",
		"apiAccessToken": "token",
		"application": {"applicationId": "amzn1.ask.skill.dolly"}
	}},
	"request": {"type": "LaunchRequest", "requestId": "r1"}
}`

const setSpeedBody = `{
	"version": "1.0",
	"session": {"sessionId": "s1", "attributes": {"endpointId": "amzn1.ask.endpoint.A"}},
	"context": {"System": {"application": {"applicationId": "amzn1.ask.skill.dolly"}}},
	"request": {
		"type": "IntentRequest",
		"requestId": "r2",
		"intent": {"name": "SetSpeedIntent", "slots": {"Speed": {"name": "Speed", "value": "42"}}}
	}
}`

const setSpeedResponse = `{
	"version": "1.0",
	"sessionAttributes": {"endpointId": "amzn1.ask.endpoint.A", "speed": 42},
	"response": {
		"outputSpeech": {"type": "SSML", "ssml": "<speak>speed set to 42 percent.</speak>"},
		"reprompt": {"outputSpeech": {"type": "SSML", "ssml": "<speak>awaiting command</speak>"}},
		"shouldEndSession": false
	}
}`

func TestWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	endpoints := mock.NewMockEndpointLister(ctrl)

	endpoints.EXPECT().
		ListEndpoints(gomock.Any(), "https://api.amazonalexa.com", "token").
		Return([]models.Endpoint{{EndpointID: "amzn1.ask.endpoint.A"}}, nil)

	appInstance := newApp(skill.New(endpoints), testSkillID)

	handler := http.HandlerFunc(appInstance.webhook)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	testCases := []struct {
		name         string
		method       string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "method_get",
			method:       http.MethodGet,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_put",
			method:       http.MethodPut,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_delete",
			method:       http.MethodDelete,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_post_without_body",
			method:       http.MethodPost,
			expectedCode: http.StatusBadRequest,
			expectedBody: "",
		},
		{
			name:         "method_post_other_skill",
			method:       http.MethodPost,
			body:         `{"context": {"System": {"application": {"applicationId": "amzn1.ask.skill.other"}}}, "request": {"type": "LaunchRequest"}}`,
			expectedCode: http.StatusForbidden,
			expectedBody: "",
		},
		{
			name:         "method_post_launch",
			method:       http.MethodPost,
			body:         launchBody,
			expectedCode: http.StatusOK,
			expectedBody: `"sessionAttributes":\{"endpointId":"amzn1.ask.endpoint.A"\}.*Welcome, you can start issuing move commands`,
		},
		{
			name:         "method_post_unknown_type",
			method:       http.MethodPost,
			body:         `{"context": {"System": {"application": {"applicationId": "amzn1.ask.skill.dolly"}}}, "request": {"type": "Display.ElementSelected"}}`,
			expectedCode: http.StatusOK,
			expectedBody: `You just triggered Display.ElementSelected`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := resty.New().R()
			r.Method = tc.method
			r.URL = srv.URL

			if len(tc.body) > 0 {
				r.SetHeader("Content-Type", "application/json")
				r.SetBody(tc.body)
			}

			resp, err := r.Send()
			assert.NoError(t, err, "error making request")

			assert.Equal(t, tc.expectedCode, resp.StatusCode(), "код ответа не совпадает")
			if tc.expectedBody != "" {
				assert.Regexp(t, tc.expectedBody, string(resp.Body()))
			}
		})
	}
}

func TestWebhookAnySkill(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInstance := newApp(skill.New(mock.NewMockEndpointLister(ctrl)), "")

	srv := httptest.NewServer(http.HandlerFunc(appInstance.webhook))
	defer srv.Close()

	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(setSpeedBody).
		Post(srv.URL)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	assert.JSONEq(t, setSpeedResponse, string(resp.Body()))
}

func TestGzipCompression(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInstance := newApp(skill.New(mock.NewMockEndpointLister(ctrl)), testSkillID)

	handler := gzipMiddleware(appInstance.webhook)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	t.Run("sends_gzip", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		zb := gzip.NewWriter(buf)
		_, err := zb.Write([]byte(setSpeedBody))
		require.NoError(t, err)
		err = zb.Close()
		require.NoError(t, err)

		r := httptest.NewRequest("POST", srv.URL, buf)
		r.RequestURI = ""
		r.Header.Set("Content-Encoding", "gzip")
		r.Header.Set("Accept-Encoding", "0")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		defer func(Body io.ReadCloser) {
			err := Body.Close()
			require.NoError(t, err)
		}(resp.Body)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.JSONEq(t, setSpeedResponse, string(b))
	})

	t.Run("accept_gzip", func(t *testing.T) {
		buf := bytes.NewBufferString(setSpeedBody)
		r := httptest.NewRequest("POST", srv.URL, buf)
		r.RequestURI = ""
		r.Header.Set("Accept-Encoding", "gzip")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

		defer resp.Body.Close()

		zr, err := gzip.NewReader(resp.Body)
		require.NoError(t, err)

		b, err := io.ReadAll(zr)
		require.NoError(t, err)

		require.JSONEq(t, setSpeedResponse, string(b))
	})

	t.Run("broken_gzip", func(t *testing.T) {
		r := httptest.NewRequest("POST", srv.URL, bytes.NewBufferString("not gzip"))
		r.RequestURI = ""
		r.Header.Set("Content-Encoding", "gzip")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInstance := newApp(skill.New(mock.NewMockEndpointLister(ctrl)), testSkillID)

	srv := httptest.NewServer(newRouter(appInstance))
	defer srv.Close()

	t.Run("ping", func(t *testing.T) {
		resp, err := resty.New().R().Get(srv.URL + "/ping")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
	})

	t.Run("webhook", func(t *testing.T) {
		resp, err := resty.New().R().
			SetHeader("Content-Type", "application/json").
			SetBody(setSpeedBody).
			Post(srv.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.JSONEq(t, setSpeedResponse, string(resp.Body()))
	})

	t.Run("bad_method", func(t *testing.T) {
		resp, err := resty.New().R().Get(srv.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode())
	})
}
