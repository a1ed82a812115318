// Package web assembles the site's HTTP surface: the chi router, the
// page and form handlers, the authentication guard, and the terminal
// error pipeline that turns every failure into a rendered error page.
package web
