package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/bgda-tools/bgda_browser/pack/mdl"
	"github.com/bgda-tools/bgda_browser/status"
	"github.com/bgda-tools/bgda_browser/vfs"
)

var ServerDirectory vfs.Directory
var ServerModelOptions mdl.Options

func NewRouter(d vfs.Directory, opts mdl.Options, webPath string) *mux.Router {
	ServerDirectory = d
	ServerModelOptions = opts

	r := mux.NewRouter()
	r.HandleFunc("/json/files", HandlerAjaxFiles)
	r.HandleFunc("/json/vif/{file}", HandlerAjaxTypedFile(".vif"))
	r.HandleFunc("/json/anm/{file}", HandlerAjaxTypedFile(".anm"))
	r.HandleFunc("/json/model/{file}", HandlerAjaxModel)
	r.HandleFunc("/gltf/{file}", HandlerGLTFModel)
	r.Handle("/ws/status", status.Default)

	if webPath != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))
	}
	return r
}

func StartServer(addr string, d vfs.Directory, opts mdl.Options, webPath string) error {
	r := NewRouter(d, opts, webPath)

	h := handlers.LoggingHandler(os.Stdout, r)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
