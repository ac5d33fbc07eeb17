// Command contact-function deploys the contact relay as a Cloud Function.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/opendataloader-project/odlsite/internal/config"
	"github.com/opendataloader-project/odlsite/internal/contact"
	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/logfields"
)

var (
	handler http.Handler
	once    sync.Once
	initErr error
)

func init() {
	functions.HTTP("Contact", handleContact)
}

func main() {}

func newHandler() (http.Handler, error) {
	cfg, err := config.Default()
	if err != nil {
		return nil, err
	}
	logger := cfg.Logging.NewLogger(os.Stderr, false)
	svc, err := contact.NewFromConfig(cfg, contact.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return contact.NewHandler(svc, derrors.NewHTTPErrorAdapter(logger)), nil
}

func handleContact(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		handler, initErr = newHandler()
	})
	if initErr != nil {
		slog.Error("Contact function initialization failed", logfields.Error(initErr))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	handler.ServeHTTP(w, r)
}
