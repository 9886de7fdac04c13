package emailsvc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysphere/core"
	"github.com/trezcool/studysphere/testutil"
)

func verifyMessage() *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{{Address: "awe@test.cd"}},
		Subject:      "Please verify your email address",
		TemplateName: "verify_email",
		TemplateData: struct{ VerifyURL, ValidFor string }{"http://localhost:8000/verify/tok", "1h0m0s"},
	}
}

func TestConsoleService_SendMessages(t *testing.T) {
	var out bytes.Buffer
	svc := NewConsoleService(testutil.NewConfig(), testutil.NewLogger())
	svc.out = &out

	svc.SendMessages(verifyMessage(), &core.EmailMessage{Subject: "no recipient", BodyStr: "hi"})

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].TextContent, "http://localhost:8000/verify/tok")
	assert.Contains(t, sent[0].TextContent, "The Study Sphere Team")
	assert.Contains(t, sent[0].HTMLContent, "http://localhost:8000/verify/tok")

	printed := out.String()
	assert.Contains(t, printed, "Subject: [Study Sphere] Please verify your email address")
	assert.Contains(t, printed, "To: <awe@test.cd>")
	assert.Contains(t, printed, "From: \"Study Sphere\" <no-reply@studysphereapp.com>")
}

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	svc := NewConsoleServiceMock(testutil.NewConfig(), testutil.NewLogger())
	var out bytes.Buffer
	svc.out = &out

	svc.SendMessages(&core.EmailMessage{To: []mail.Address{{Address: "a@test.cd"}}, BodyStr: "plain"})
	svc.SendMessages(&core.EmailMessage{To: []mail.Address{{Address: "b@test.cd"}}, TemplateName: "missing"})

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "plain", sent[0].TextContent)
	assert.Empty(t, out.String())
}

func TestSendgridService_SendMessages(t *testing.T) {
	var reqs []rest.Request
	origAPI := sendgridAPI
	sendgridAPI = func(req rest.Request) (*rest.Response, error) {
		reqs = append(reqs, req)
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}
	defer func() { sendgridAPI = origAPI }()

	conf := testutil.NewConfig()
	conf.SendgridAPIKey = "sg-key"
	svc := NewSendgridService(conf, testutil.NewLogger())

	svc.SendMessages(verifyMessage(), &core.EmailMessage{Subject: "nobody", BodyStr: "hi"})

	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, rest.Post, req.Method)
	assert.Equal(t, "https://api.sendgrid.com/v3/mail/send", req.BaseURL)
	assert.Equal(t, "Bearer sg-key", req.Headers["Authorization"])

	var body struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "no-reply@studysphereapp.com", body.From.Email)
	require.Len(t, body.Personalizations, 1)
	assert.Equal(t, "[Study Sphere] Please verify your email address", body.Personalizations[0].Subject)
	assert.Equal(t, "awe@test.cd", body.Personalizations[0].To[0].Email)
	require.Len(t, body.Content, 2)
	assert.Equal(t, "text/plain", body.Content[0].Type)
	assert.True(t, strings.Contains(body.Content[1].Value, "/verify/tok"))
}
