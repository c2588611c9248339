package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/isometry/cloudfront-edge-app/internal/helpers"
)

const (
	// dataParam marks requests made by the client runtime; they expect JSON instead of a document.
	dataParam = "_data"
	// RedirectHeader tells the client runtime where to navigate after a data request.
	RedirectHeader = "X-Remix-Redirect"

	missingAnswer = "Come on, at least try!"
	maxFormMemory = 1 << 20
	// maxLoggedAnswer bounds user input echoed into the logs.
	maxLoggedAnswer = 64
)

func (a *application) actionsPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "actions", page{Title: "Actions Demo"})
}

func (a *application) action(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		a.logger.Warn("failed to parse form", slog.Any("error", err))
		a.actionData(w, r, http.StatusBadRequest, "Unable to read the submitted form.")
		return
	}

	answers := r.PostForm["answer"]
	if len(answers) == 0 {
		a.actionData(w, r, http.StatusBadRequest, missingAnswer)
		return
	}
	answer := answers[0]

	if !slices.Contains(a.answers, Hash(answer)) {
		a.logger.Debug("rejected answer", slog.String("answer", helpers.Truncate(answer, maxLoggedAnswer)))
		a.actionData(w, r, http.StatusBadRequest, fmt.Sprintf("Sorry, %s is not right.", answer))
		return
	}

	a.redirect(w, r, "/demos/correct")
}

// actionData answers an action with a message: JSON for data requests, the re-rendered page otherwise.
func (a *application) actionData(w http.ResponseWriter, r *http.Request, status int, message string) {
	if !r.URL.Query().Has(dataParam) {
		a.render(w, r, status, "actions", page{Title: "Actions Demo", Message: message})
		return
	}
	body, err := json.Marshal(message)
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (a *application) redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.URL.Query().Has(dataParam) {
		w.Header().Set(RedirectHeader, location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}
