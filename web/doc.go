// Package web exposes the binder to fiber applications: a middleware that
// binds query and form parameters onto a fresh root bean per request, and an
// fx module that serves it over HTTP.
package web
