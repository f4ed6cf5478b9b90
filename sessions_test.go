package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookieRoundTrip(t *testing.T) {
	reg := newSessionRegistry(time.Hour)

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	first := reg.get(w1, r1)
	require.NotNil(t, first)
	assert.Equal(t, 1, reg.count())

	var cookie *http.Cookie
	for _, c := range w1.Result().Cookies() {
		if c.Name == sessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "first visit must set the session cookie")
	assert.Equal(t, first.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookie)
	second := reg.get(w2, r2)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.count())
}

func TestSessionUnknownCookieGetsFreshSession(t *testing.T) {
	reg := newSessionRegistry(time.Hour)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "swept-away"})
	s := reg.get(w, r)

	require.NotNil(t, s)
	assert.NotEqual(t, "swept-away", s.ID)
	assert.Equal(t, 1, reg.count())
}

func TestSessionSweepDropsIdle(t *testing.T) {
	reg := newSessionRegistry(10 * time.Millisecond)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	reg.get(w, r)
	require.Equal(t, 1, reg.count())

	time.Sleep(25 * time.Millisecond)
	removed := reg.sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, reg.count())
}

func TestSessionSweepKeepsActive(t *testing.T) {
	reg := newSessionRegistry(time.Hour)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	reg.get(w, r)

	assert.Equal(t, 0, reg.sweep())
	assert.Equal(t, 1, reg.count())
}
