package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers of the API described in openapi.yaml.
type ServerInterface interface {
	GetHealth(w http.ResponseWriter, r *http.Request)
	GetInfo(w http.ResponseWriter, r *http.Request)
	CheckSyntax(w http.ResponseWriter, r *http.Request)
	ValidateNet(w http.ResponseWriter, r *http.Request)
	SimulateNet(w http.ResponseWriter, r *http.Request)
	RenderGraph(w http.ResponseWriter, r *http.Request, params GraphParams)
	ListNets(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request, params ListRunsParams)
	GetRun(w http.ResponseWriter, r *http.Request, id string)
	DeleteRun(w http.ResponseWriter, r *http.Request, id string)
}

// InvalidParamFormatError is passed to the error handler when a parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// serverInterfaceWrapper binds path and query parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler      ServerInterface
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) renderGraph(w http.ResponseWriter, r *http.Request) {
	var params GraphParams
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &params.Format); err != nil {
		siw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "format", Err: err})
		return
	}
	siw.handler.RenderGraph(w, r, params)
}

func (siw *serverInterfaceWrapper) listRuns(w http.ResponseWriter, r *http.Request) {
	var params ListRunsParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	siw.handler.ListRuns(w, r, params)
}

func (siw *serverInterfaceWrapper) runID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return "", false
	}
	return id, true
}

func (siw *serverInterfaceWrapper) getRun(w http.ResponseWriter, r *http.Request) {
	if id, ok := siw.runID(w, r); ok {
		siw.handler.GetRun(w, r, id)
	}
}

func (siw *serverInterfaceWrapper) deleteRun(w http.ResponseWriter, r *http.Request) {
	if id, ok := siw.runID(w, r); ok {
		siw.handler.DeleteRun(w, r, id)
	}
}

// HandlerFromMux registers every route of si on r and returns r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	wrapper := &serverInterfaceWrapper{
		handler: si,
		errorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		},
	}

	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	r.Post("/syntax", si.CheckSyntax)
	r.Post("/validate", si.ValidateNet)
	r.Post("/simulate", si.SimulateNet)
	r.Post("/graph", wrapper.renderGraph)
	r.Get("/nets", si.ListNets)
	r.Get("/runs", wrapper.listRuns)
	r.Get("/runs/{id}", wrapper.getRun)
	r.Delete("/runs/{id}", wrapper.deleteRun)
	return r
}
