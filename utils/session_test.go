package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return ctx, w
}

func TestSignAndParseSession(t *testing.T) {
	token, err := SignSession(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseSession(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), userID)
}

func TestParseSession_Tampered(t *testing.T) {
	token, err := SignSession(42)
	require.NoError(t, err)

	// flip one character of the payload segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = ParseSession(tampered)
	require.Error(t, err)
}

func TestParseSession_Garbage(t *testing.T) {
	_, err := ParseSession("not-a-token")
	require.Error(t, err)
}

func TestReadSession_RoundTrip(t *testing.T) {
	token, err := SignSession(7)
	require.NoError(t, err)

	ctx, _ := newTestContext(t)
	ctx.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

	userID, ok := ReadSession(ctx)
	require.True(t, ok)
	require.Equal(t, uint(7), userID)
}

func TestReadSession_NoCookie(t *testing.T) {
	ctx, _ := newTestContext(t)
	_, ok := ReadSession(ctx)
	require.False(t, ok)
}

func TestSetSession_WritesHttpOnlyCookie(t *testing.T) {
	ctx, w := newTestContext(t)
	require.NoError(t, SetSession(ctx, 3))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, SessionCookie, c.Name)
	require.True(t, c.HttpOnly)

	userID, err := ParseSession(c.Value)
	require.NoError(t, err)
	require.Equal(t, uint(3), userID)
}

func TestClearSession_ExpiresCookie(t *testing.T) {
	ctx, w := newTestContext(t)
	ClearSession(ctx)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, SessionCookie, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Equal(t, -1, cookies[0].MaxAge)
}
