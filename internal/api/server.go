// Package api serves the client over a plain JSON http api.
package api

import (
	"encoding/json"
	"net/http"
	"owprofile-backend/internal/client"
	"owprofile-backend/internal/components/assert"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/pkg/owtypes"
	"strconv"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	report_handler = "server.handler"
	report_encode  = "server.encode"
)

type Options struct {
	// AllowedOrigins are the CORS origins, empty allows every origin.
	AllowedOrigins []string
}

// Server answers requests using whichever client was last given to Swap.
type Server struct {
	client   atomic.Pointer[client.Client]
	tel      telemetry.API
	validate *validator.Validate
	opts     Options
}

func NewServer(c *client.Client, tel telemetry.API, opts Options) *Server {
	assert.NotNil(c)
	assert.NotNil(tel)

	s := &Server{
		tel:      telemetry.NewScopedAPI("api", tel),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		opts:     opts,
	}
	s.client.Store(c)
	return s
}

// Swap replaces the client, requests already in flight finish on the old one.
func (s *Server) Swap(c *client.Client) {
	assert.NotNil(c)
	s.client.Store(c)
}

func (s *Server) Client() *client.Client {
	return s.client.Load()
}

// battletagQuery only validates the name, 0 is a valid number so the number
// is checked for presence on the raw parameter instead.
type battletagQuery struct {
	Name   string `validate:"required,max=64"`
	Number uint64
}

func (s *Server) battletag(r *http.Request) (owtypes.Battletag, error) {
	query := r.URL.Query()
	if tag := query.Get("battletag"); tag != "" {
		return owtypes.ParseBattletag(tag)
	}

	var q battletagQuery
	q.Name = query.Get("name")
	err := s.validate.Struct(q)
	if err != nil {
		return owtypes.Battletag{}, err
	}
	number := query.Get("number")
	if number == "" {
		return owtypes.Battletag{}, &InputError{Reason: "number is required"}
	}
	q.Number, err = strconv.ParseUint(number, 10, 64)
	if err != nil {
		return owtypes.Battletag{}, &InputError{Reason: "number must be a non-negative integer"}
	}
	return owtypes.NewBattletag(q.Name, q.Number), nil
}

type searchQuery struct {
	Name string `validate:"required,max=64"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		s.tel.ReportWarning(report_encode, err)
	}
}

func (s *Server) handle(fn func(r *http.Request, c *client.Client) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := fn(r, s.client.Load())
		if err != nil {
			status := statusOf(err)
			if status >= http.StatusInternalServerError {
				s.tel.ReportBroken(report_handler, r.URL.Path, err)
			}
			s.writeJSON(w, status, errorResponse{
				Error:     err.Error(),
				RequestId: GetRequestId(r.Context()),
			})
			return
		}
		s.writeJSON(w, http.StatusOK, value)
	}
}

func (s *Server) search(r *http.Request, c *client.Client) (any, error) {
	q := searchQuery{Name: r.URL.Query().Get("name")}
	err := s.validate.Struct(q)
	if err != nil {
		return nil, err
	}
	return c.Search(r.Context(), q.Name)
}

func (s *Server) profile(r *http.Request, c *client.Client) (any, error) {
	btag, err := s.battletag(r)
	if err != nil {
		return nil, err
	}
	return c.Profile(r.Context(), btag)
}

func (s *Server) profileFull(r *http.Request, c *client.Client) (any, error) {
	btag, err := s.battletag(r)
	if err != nil {
		return nil, err
	}
	return c.ProfileFull(r.Context(), btag)
}

func (s *Server) overbuff(r *http.Request, c *client.Client) (any, error) {
	btag, err := s.battletag(r)
	if err != nil {
		return nil, err
	}
	return c.Overbuff(r.Context(), btag)
}

func (s *Server) lookup(r *http.Request, c *client.Client) (any, error) {
	btag, err := s.battletag(r)
	if err != nil {
		return nil, err
	}
	return c.Lookup(r.Context(), btag)
}

func (s *Server) assets(r *http.Request, c *client.Client) (any, error) {
	assets := c.Assets()
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		return assets, nil
	}
	filter, err := owtypes.ParseAssetKind(kind)
	if err != nil {
		return nil, &InputError{Reason: err.Error()}
	}
	for id, a := range assets {
		if a.Kind != filter {
			delete(assets, id)
		}
	}
	return assets, nil
}

func (s *Server) heroes(r *http.Request, c *client.Client) (any, error) {
	return c.Heroes(), nil
}

func (s *Server) hero(r *http.Request, c *client.Client) (any, error) {
	name := r.PathValue("name")
	hero, ok := c.Catalog().FindHero(name)
	if !ok {
		return nil, &notFoundError{what: "hero", name: name}
	}
	return hero, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", s.handle(s.search))
	mux.HandleFunc("GET /api/v1/profile", s.handle(s.profile))
	mux.HandleFunc("GET /api/v1/profile_full", s.handle(s.profileFull))
	mux.HandleFunc("GET /api/v1/overbuff", s.handle(s.overbuff))
	mux.HandleFunc("GET /api/v1/lookup", s.handle(s.lookup))
	mux.HandleFunc("GET /api/v1/assets", s.handle(s.assets))
	mux.HandleFunc("GET /api/v1/heroes", s.handle(s.heroes))
	mux.HandleFunc("GET /api/v1/heroes/{name}", s.handle(s.hero))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIdHeader},
	})

	return RequestId(c.Handler(otelhttp.NewHandler(mux, "owprofile-api")))
}
