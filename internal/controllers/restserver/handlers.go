package restserver

import (
	"bytes"
	"errors"
	htmltemplate "html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chrissnell/bikedash/internal/charts"
	"github.com/chrissnell/bikedash/internal/constants"
	"github.com/chrissnell/bikedash/internal/dashboard"
	"github.com/chrissnell/bikedash/internal/dataset"
	"github.com/chrissnell/bikedash/internal/filter"
	"github.com/chrissnell/bikedash/internal/log"
	"github.com/chrissnell/bikedash/internal/types"
	"github.com/chrissnell/bikedash/pkg/responseformat"
)

// Chart image size limits accepted from the query string
const (
	minChartSize = 200
	maxChartSize = 4096
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// OptionsResponse is the body of GET /api/options
type OptionsResponse struct {
	Options dataset.FilterOptions `json:"options"`
	Summary dataset.Summary       `json:"summary"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status        string `json:"status"`
	DatasetLoaded bool   `json:"dataset_loaded"`
	Version       string `json:"version"`
}

// records returns the cached dataset, writing a 503 when it cannot be loaded
func (h *Handlers) records(w http.ResponseWriter, req *http.Request) ([]types.DailyRecord, bool) {
	records, err := h.controller.Dataset.Get()
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	return records, true
}

// selection loads the dataset and parses the filter selection from the query string.
// It writes the error response itself and returns ok=false on failure.
func (h *Handlers) selection(w http.ResponseWriter, req *http.Request) ([]types.DailyRecord, types.FilterSelection, bool) {
	records, ok := h.records(w, req)
	if !ok {
		return nil, types.FilterSelection{}, false
	}

	sel, err := parseSelection(req.URL.Query(), dataset.Options(records))
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return nil, types.FilterSelection{}, false
	}
	return records, sel, true
}

// GetOptions handles requests for the filter options and the dataset summary
func (h *Handlers) GetOptions(w http.ResponseWriter, req *http.Request) {
	records, ok := h.records(w, req)
	if !ok {
		return
	}

	resp := OptionsResponse{
		Options: dataset.Options(records),
		Summary: dataset.Summarize(records),
	}
	if err := h.formatter.WriteResponse(w, req, http.StatusOK, resp); err != nil {
		log.Error("error encoding options response:", err)
	}
}

// GetDashboard handles requests for the full view model of a selection
func (h *Handlers) GetDashboard(w http.ResponseWriter, req *http.Request) {
	records, sel, ok := h.selection(w, req)
	if !ok {
		return
	}

	vm := dashboard.Render(records, sel)
	if err := h.formatter.WriteResponse(w, req, http.StatusOK, vm); err != nil {
		log.Error("error encoding dashboard response:", err)
	}
}

// GetRecords handles requests for the filtered records of a selection
func (h *Handlers) GetRecords(w http.ResponseWriter, req *http.Request) {
	records, sel, ok := h.selection(w, req)
	if !ok {
		return
	}

	filtered := filter.Apply(records, sel)
	if err := h.formatter.WriteResponse(w, req, http.StatusOK, filtered); err != nil {
		log.Error("error encoding records response:", err)
	}
}

// GetChart handles requests for a chart image of a selection
func (h *Handlers) GetChart(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]

	records, sel, ok := h.selection(w, req)
	if !ok {
		return
	}

	opts, err := chartOptions(req)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	spec, err := dashboard.Chart(name, dashboard.Render(records, sel))
	if errors.Is(err, dashboard.ErrUnknownChart) {
		h.formatter.WriteError(w, req, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderPNG(&buf, spec, opts); err != nil {
		h.controller.logger.Errorw("chart rendering failed", "chart", name, "error", err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "error rendering chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// chartOptions reads the optional width and height query parameters
func chartOptions(req *http.Request) (charts.Options, error) {
	var opts charts.Options
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
	} {
		v := req.URL.Query().Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < minChartSize || n > maxChartSize {
			return opts, errors.New("invalid " + p.name + ": must be between " +
				strconv.Itoa(minChartSize) + " and " + strconv.Itoa(maxChartSize))
		}
		*p.dst = n
	}
	return opts, nil
}

// GetHealth reports liveness and whether the dataset has been loaded
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, http.StatusOK, HealthResponse{
		Status:        "ok",
		DatasetLoaded: h.controller.Dataset.Loaded(),
		Version:       constants.Version,
	})
}

// GetRecentRequests returns the most recent requests served, oldest first
func (h *Handlers) GetRecentRequests(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, http.StatusOK, log.GetHTTPLogBuffer().Entries())
}

// ServeIndexTemplate serves the dashboard page
func (h *Handlers) ServeIndexTemplate(w http.ResponseWriter, req *http.Request) {
	view, err := htmltemplate.New("index.html.tmpl").ParseFS(h.controller.FS, "index.html.tmpl")
	if err != nil {
		log.Error("error parsing index template:", err)
		http.Error(w, "error loading page template", http.StatusInternalServerError)
		return
	}

	templateData := struct {
		PageTitle string
		Version   string
		Charts    []string
	}{
		PageTitle: h.controller.restConfig.PageTitle,
		Version:   constants.Version,
		Charts:    dashboard.ChartNames,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Execute(w, templateData); err != nil {
		log.Error("error executing index template:", err)
	}
}
