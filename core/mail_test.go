package core

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailMessage_Render(t *testing.T) {
	data := struct {
		VerifyURL string
		ValidFor  string
	}{VerifyURL: "http://localhost:8000/verify/tok", ValidFor: "1h0m0s"}

	t.Run("template", func(t *testing.T) {
		msg := &EmailMessage{
			To:           []mail.Address{{Address: "awe@test.cd"}},
			TemplateName: "verify_email",
			TemplateData: data,
		}
		require.NoError(t, msg.Render("Study Sphere"))
		assert.True(t, msg.HasContent())

		// both base layouts wrap the content
		assert.Contains(t, msg.TextContent, "http://localhost:8000/verify/tok")
		assert.Contains(t, msg.TextContent, "The Study Sphere Team")
		assert.Contains(t, msg.HTMLContent, `<a href="http://localhost:8000/verify/tok">`)
		assert.Contains(t, msg.HTMLContent, "<title>Study Sphere</title>")
	})

	t.Run("plain body", func(t *testing.T) {
		msg := &EmailMessage{BodyStr: "hello"}
		require.NoError(t, msg.Render("Study Sphere"))
		assert.Equal(t, "hello", msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
	})

	t.Run("unknown template", func(t *testing.T) {
		msg := &EmailMessage{TemplateName: "lol"}
		assert.EqualError(t, msg.Render("Study Sphere"), `email template "lol" not found`)
	})
}
