package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSRFToken_ReusesExistingCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/chat", nil)
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "existing"})
	rec := httptest.NewRecorder()

	token := csrfToken(rec, r, false)

	assert.Equal(t, "existing", token)
	assert.Empty(t, rec.Result().Cookies())
}

func TestCSRFToken_SetsNewCookie(t *testing.T) {
	rec := httptest.NewRecorder()

	token := csrfToken(rec, httptest.NewRequest(http.MethodGet, "/chat", nil), true)

	assert.Len(t, token, csrfTokenBytes*2)
	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, token, cookies[0].Value)
		assert.True(t, cookies[0].Secure)
		assert.True(t, cookies[0].HttpOnly)
	}
}

func TestValidateCSRF(t *testing.T) {
	form := func(token string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(url.Values{csrfFormField: {token}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return r
	}

	r := form("abc")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc"})
	assert.True(t, validateCSRF(r), "form field matches cookie")

	r = httptest.NewRequest(http.MethodPost, "/chat", nil)
	r.Header.Set(csrfHeader, "abc")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc"})
	assert.True(t, validateCSRF(r), "header matches cookie")

	r = form("abc")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "xyz"})
	assert.False(t, validateCSRF(r), "mismatch")

	assert.False(t, validateCSRF(form("abc")), "no cookie")

	r = form("")
	r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "abc"})
	assert.False(t, validateCSRF(r), "empty token")
}
