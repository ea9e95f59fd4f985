package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestEnglishMessages(t *testing.T) {
	c := English()
	require.Equal(t, language.English, c.Language())
	require.Equal(t, "An error occurred", c.T("AlertTitle"))
	require.Equal(t, "We sent a sign-in link to user@example.com.",
		c.T("ConfirmBody", map[string]any{"Email": "user@example.com"}))
	require.Equal(t, "View IFSC", c.T("Route.View_ifsc"))
}

func TestHindiFallsBackPerMessage(t *testing.T) {
	c, err := New("hi-IN")
	require.NoError(t, err)
	require.Equal(t, "hi", c.Language().String())
	require.Equal(t, "लॉग इन", c.T("LoginTitle"))
	// not translated yet
	require.Equal(t, "BHIM UPI", c.T("Route.BhimUPI"))
}

func TestUnknownLanguageAndMessage(t *testing.T) {
	c, err := New("xx-not-a-tag")
	require.NoError(t, err)
	require.Equal(t, language.English, c.Language())
	require.Equal(t, "NoSuchMessage", c.T("NoSuchMessage"))

	c, err = New("fr")
	require.NoError(t, err)
	require.Equal(t, "Continue", c.T("Continue"))
}
