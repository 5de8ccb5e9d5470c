// Package login serves the pages of the demo: the login page driving the
// flow and the account page consuming the result.
package login

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/norlig/bankid/pkg/flow"
)

type Login struct {
	router    chi.Router
	protector flow.Protector

	// options every session on this demo starts with
	options flow.LoginOptions
}

func New(protector flow.Protector, options flow.LoginOptions) *Login {
	l := &Login{
		protector: protector,
		options:   options,
	}
	l.createRouter()
	return l
}

func (l *Login) createRouter() {
	l.router = chi.NewRouter()
	l.router.Get("/bankid/login", l.loginHandler)
	l.router.Get("/account", l.accountHandler)
	l.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/bankid/login?returnUrl=%2Faccount", http.StatusFound)
	})
}

func (l *Login) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.router.ServeHTTP(w, r)
}

func (l *Login) loginHandler(w http.ResponseWriter, r *http.Request) {
	returnURL := r.URL.Query().Get("returnUrl")
	if returnURL == "" {
		returnURL = "/account"
	}
	if !flow.IsLocalURL(returnURL) {
		http.Error(w, "returnUrl must be local", http.StatusBadRequest)
		return
	}
	// a launch return re-enters with the running session's options
	optionsToken := r.URL.Query().Get("loginOptions")
	if optionsToken == "" {
		var err error
		optionsToken, err = l.protector.ProtectLoginOptions(&l.options)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	data := &struct {
		LoginOptions          string
		ReturnURL             string
		AllowChangingIdentity bool
	}{
		LoginOptions:          optionsToken,
		ReturnURL:             returnURL,
		AllowChangingIdentity: l.options.AllowChangingIdentity,
	}
	if err := loginTmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (l *Login) accountHandler(w http.ResponseWriter, r *http.Request) {
	resultToken := r.URL.Query().Get("loginResult")
	if resultToken == "" {
		http.Redirect(w, r, "/bankid/login?returnUrl=%2Faccount", http.StatusFound)
		return
	}
	result, err := l.protector.UnprotectLoginResult(resultToken)
	if err != nil {
		http.Error(w, "invalid login result", http.StatusBadRequest)
		return
	}
	fmt.Fprintf(w, "<!DOCTYPE html><html><body><h1>Welcome %s</h1><p>Personal number: %s</p></body></html>",
		template.HTMLEscapeString(result.Name),
		template.HTMLEscapeString(result.PersonalNumber),
	)
}
