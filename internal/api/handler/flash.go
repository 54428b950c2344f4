package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

// Flash messages ride a short-lived cookie: set on the redirecting request,
// read and deleted by the next page render. This is the server-rendered
// stand-in for the hosted client's toast notifications.
const flashCookie = "sa_flash"

func setFlash(c echo.Context, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		Expires:  time.Now().Add(time.Minute),
		HttpOnly: true,
	})
}

// popFlash returns the pending flash message, if any, and deletes it.
func popFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
