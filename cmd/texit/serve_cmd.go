package main

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deepnoodle-ai/texit"
	"github.com/deepnoodle-ai/texit/errors"
	"github.com/deepnoodle-ai/texit/parser"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	maxRequestBytes = 1 << 20
	maxBatchSize    = 1000
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Serve the renderer over HTTP.

  POST /render   {"expression": "x**2", "output": "word"}
  GET  /outputs  supported output notations
  GET  /healthz  liveness check

The render flags of the root command set the defaults for every request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveHandler(cmd, v)
		},
	}
	cmd.Flags().String("addr", ":8080", "address to listen on")
	v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func serveHandler(cmd *cobra.Command, v *viper.Viper) error {
	opts, err := getRenderOptions(cmd, v)
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     cmd.ErrOrStderr(),
		NoColor: !useColor(v, cmd.ErrOrStderr()),
	}).With().Timestamp().Logger()

	srv := &http.Server{
		Addr:              v.GetString("addr"),
		Handler:           newRouter(logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx := cmd.Context()
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type server struct {
	logger zerolog.Logger
	opts   []texit.Option
}

func newRouter(logger zerolog.Logger, opts []texit.Option) http.Handler {
	s := &server{logger: logger, opts: opts}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/outputs", func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, map[string][]string{"outputs": texit.Outputs()})
	})
	r.With(middleware.AllowContentType("application/json")).Post("/render", s.handleRender)
	return r
}

// renderRequest carries either one expression or a batch. Unset fields
// keep the server defaults.
type renderRequest struct {
	Expression          string   `json:"expression"`
	Expressions         []string `json:"expressions"`
	Output              string   `json:"output"`
	Fortran             bool     `json:"fortran"`
	DummyVar            string   `json:"dummy_var"`
	SimplifyOutput      *bool    `json:"simplify_output"`
	SimplifyMultipliers *bool    `json:"simplify_multipliers"`
	SimplifyFractions   *bool    `json:"simplify_fractions"`
	SimplifyInts        *bool    `json:"simplify_ints"`
}

func (req *renderRequest) options(base []texit.Option) []texit.Option {
	opts := append([]texit.Option(nil), base...)
	if req.Output != "" {
		opts = append(opts, texit.WithOutput(req.Output))
	}
	if req.DummyVar != "" {
		opts = append(opts, texit.WithDummyVar(req.DummyVar))
	}
	if req.SimplifyOutput != nil {
		opts = append(opts, texit.WithSimplifyOutput(*req.SimplifyOutput))
	}
	if req.SimplifyMultipliers != nil {
		opts = append(opts, texit.WithSimplifyMultipliers(*req.SimplifyMultipliers))
	}
	if req.SimplifyFractions != nil {
		opts = append(opts, texit.WithSimplifyFractions(*req.SimplifyFractions))
	}
	if req.SimplifyInts != nil {
		opts = append(opts, texit.WithSimplifyInts(*req.SimplifyInts))
	}
	return opts
}

type renderResponse struct {
	Output  string         `json:"output,omitempty"`
	Results []renderResult `json:"results,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeResponse(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	single := req.Expression != ""
	if single == (len(req.Expressions) > 0) {
		writeResponse(w, http.StatusBadRequest, errorResponse{Error: `exactly one of "expression" or "expressions" is required`})
		return
	}
	if len(req.Expressions) > maxBatchSize {
		writeResponse(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("too many expressions: %d (limit %d)", len(req.Expressions), maxBatchSize),
		})
		return
	}

	opts := req.options(s.opts)
	render := texit.RenderAll
	if req.Fortran {
		render = renderAllFortran
	}
	if single {
		out, err := render(r.Context(), []string{req.Expression}, opts...)
		if err != nil {
			var exprErr *texit.ExpressionError
			if goerrors.As(err, &exprErr) {
				err = exprErr.Err
			}
			s.logger.Debug().Err(err).Str("expression", req.Expression).Msg("render failed")
			writeResponse(w, statusFor(err), errorResponse{Error: err.Error(), Code: string(errors.CodeOf(err))})
			return
		}
		writeResponse(w, http.StatusOK, renderResponse{Output: out[0]})
		return
	}

	outputs, err := render(r.Context(), req.Expressions, opts...)
	results := make([]renderResult, len(req.Expressions))
	for i, expr := range req.Expressions {
		results[i] = renderResult{Input: expr, Output: outputs[i]}
	}
	var merr *multierror.Error
	if goerrors.As(err, &merr) {
		for _, e := range merr.Errors {
			var exprErr *texit.ExpressionError
			if goerrors.As(e, &exprErr) {
				results[exprErr.Index].Error = exprErr.Err.Error()
				results[exprErr.Index].Code = string(errors.CodeOf(exprErr.Err))
			}
		}
	}
	writeResponse(w, http.StatusOK, renderResponse{Results: results})
}

// statusFor maps a render error to an HTTP status. Problems with the
// request itself are 400s; well-formed expressions that cannot be typeset
// are 422s.
func statusFor(err error) int {
	var parseErrs *parser.Errors
	switch {
	case goerrors.Is(err, context.Canceled), goerrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case goerrors.As(err, &parseErrs),
		goerrors.Is(err, errors.ErrInputType),
		goerrors.Is(err, errors.ErrUnsupportedOutput):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
