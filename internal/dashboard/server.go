package dashboard

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/chart"
	"github.com/sells-group/census-dash/internal/render"
	"github.com/sells-group/census-dash/internal/selection"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Options configures a Server.
type Options struct {
	Render      render.Options
	Dispatcher  chart.Dispatcher
	RateLimit   float64 // requests per second; <= 0 disables limiting
	RateBurst   int
	CORSOrigins []string
}

// Server serves one loaded frame. It holds no per-request state.
type Server struct {
	frame   *census.Frame
	options selection.Options
	opts    Options
	limiter *rate.Limiter
}

// NewServer prepares the sidebar options for f.
func NewServer(f *census.Frame, opts Options) *Server {
	s := &Server{
		frame:   f,
		options: selection.BuildOptions(f),
		opts:    opts,
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, accessLog, recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(limit(s.limiter))
		}
		r.Get("/", s.handlePage)
		r.Get("/chart.svg", s.handleSVG)
		r.Get("/map.geojson", s.handleGeoJSON)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.corsOrigins(),
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
				ExposedHeaders: []string{RequestIDHeader},
				MaxAge:         300,
			}))
			r.Get("/options", s.handleOptions)
			r.Get("/figure", s.handleFigure)
		})
	})
	return r
}

func (s *Server) corsOrigins() []string {
	if len(s.opts.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return s.opts.CORSOrigins
}

// run parses the query into a selection and computes one pass. forcePlot
// is set by the endpoints that only exist to return a chart.
func (s *Server) run(r *http.Request, forcePlot bool) (Pass, error) {
	sel, err := selection.FromValues(r.URL.Query(), s.options)
	if err != nil {
		return Pass{}, err
	}
	if forcePlot {
		sel.Plot = true
	}
	return Cycle{Frame: s.frame, Selection: sel, Dispatcher: s.opts.Dispatcher}.Run(), nil
}

type pageView struct {
	Options   selection.Options
	Selection selection.Selection
	Phase     string
	Welcome   bool
	Scope     string
	Captions  []template.HTML
	Warning   string
	Chart     template.HTML
	Links     []link
	Table     *table
}

type link struct {
	Label string
	Href  string
}

// downloadLinks points the chart-only endpoints at the current selection.
func downloadLinks(sel selection.Selection) []link {
	q := sel.Values().Encode()
	links := []link{
		{Label: "SVG", Href: "/chart.svg?" + q},
		{Label: "JSON", Href: "/api/figure?" + q},
	}
	if sel.Chart == chart.Mapbox {
		links = append(links, link{Label: "GeoJSON", Href: "/map.geojson?" + q})
	}
	return links
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	pass, err := s.run(r, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := pageView{
		Options:   s.options,
		Selection: pass.Selection,
		Phase:     pass.Phase.String(),
		Welcome:   pass.Phase == selection.Welcome,
		Warning:   pass.Result.Warning,
	}
	for _, c := range pass.Result.Captions {
		view.Captions = append(view.Captions, Caption(c))
	}
	if pass.Working != nil {
		view.Scope = pass.Working.Scope
		t := newTable(*pass.Working)
		view.Table = &t
	}
	if fig := pass.Result.Figure; fig != nil {
		view.Links = downloadLinks(pass.Selection)
		view.Chart, err = s.chartHTML(fig)
		if err != nil {
			zap.L().Warn("dashboard: chart render failed",
				zap.String("request_id", RequestID(r.Context())),
				zap.Error(err),
			)
			view.Warning = "The chart could not be drawn."
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		zap.L().Error("dashboard: page template", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// chartHTML embeds fig in the page: a Leaflet map for Mapbox, inline SVG
// for everything else.
func (s *Server) chartHTML(fig *chart.Figure) (template.HTML, error) {
	if fig.Kind == chart.Mapbox {
		return render.MapHTML(fig, s.opts.Render)
	}
	svg, err := render.SVG(fig, s.opts.Render)
	if err != nil {
		return "", err
	}
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		svg = svg[i:]
	}
	return template.HTML(svg), nil
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	pass, err := s.run(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pass.Result.Warning != "" {
		writeError(w, http.StatusUnprocessableEntity, pass.Result.Warning)
		return
	}
	svg, err := render.SVG(pass.Result.Figure, s.opts.Render)
	if err != nil {
		writeError(w, http.StatusInternalServerError, eris.Wrap(err, "dashboard: render svg").Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	pass, err := s.run(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pass.Selection.Chart != chart.Mapbox {
		writeError(w, http.StatusBadRequest, "map.geojson needs chart=mapbox")
		return
	}
	if pass.Result.Warning != "" {
		writeError(w, http.StatusUnprocessableEntity, pass.Result.Warning)
		return
	}
	data, err := render.GeoJSON(pass.Result.Figure)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.options)
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	pass, err := s.run(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pass)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("dashboard: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
