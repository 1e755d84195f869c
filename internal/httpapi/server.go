package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/service"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Dependencies struct {
	Logger    *zap.Logger
	Addr      string
	Gate      *service.Gate
	Registrar *service.Registrar
	Catalog   *service.Catalog
	Reports   *service.Reports

	// Health reports whether backing storage is reachable. Optional.
	Health func(ctx context.Context) error

	LoginRatePerMin int
	CORSOrigins     []string
}

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	gate       *service.Gate
	registrar  *service.Registrar
	catalog    *service.Catalog
	reports    *service.Reports
	health     func(ctx context.Context) error
	limiter    *loginLimiter
}

func NewServer(d Dependencies) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	s := &Server{
		logger:    logger,
		mux:       mux,
		gate:      d.Gate,
		registrar: d.Registrar,
		catalog:   d.Catalog,
		reports:   d.Reports,
		health:    d.Health,
		limiter:   newLoginLimiter(d.LoginRatePerMin),
	}

	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /cadastro", s.handleRegister)
	mux.HandleFunc("GET /produto", s.handleProducts)
	mux.HandleFunc("GET /api/login-report", s.handleLoginReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	handler := requestIDMiddleware(loggingMiddleware(logger, corsMiddleware(d.CORSOrigins, mux)))

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(clientIP(r)) {
		respond(w, r, http.StatusTooManyRequests, types.ErrorResponse{
			Error:   "rate_limited",
			Message: "Muitas tentativas. Tente novamente em instantes.",
		})
		return
	}

	req, err := decodeLogin(r)
	if err != nil {
		respond(w, r, http.StatusBadRequest, types.ErrorResponse{Error: "bad_body", Message: "invalid request body"})
		return
	}

	adm, err := s.gate.Admit(r.Context(), req.Login, req.Senha)
	if err != nil {
		s.logger.Error("login error",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err))
		respond(w, r, http.StatusInternalServerError, types.ErrorResponse{Error: "internal_error"})
		return
	}

	respond(w, r, statusFor(adm.Decision), adm.Response())
}

func decodeLogin(r *http.Request) (types.LoginRequest, error) {
	if isProtobuf(r) {
		var msg structpb.Struct
		if err := readProto(r, &msg); err != nil {
			return types.LoginRequest{}, err
		}
		return types.LoginRequestFromProto(&msg), nil
	}

	var req types.LoginRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		return types.LoginRequest{}, err
	}
	return req, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.RegisterResponse{Message: "Nome, login e senha são obrigatórios."})
		return
	}

	id, err := s.registrar.Register(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, types.RegisterResponse{
			Message:   "Usuário cadastrado com sucesso!",
			IDUsuario: id,
		})
	case errors.Is(err, service.ErrInvalidRegistration):
		writeJSON(w, http.StatusBadRequest, types.RegisterResponse{Message: "Nome, login e senha são obrigatórios."})
	case errors.Is(err, store.ErrLoginTaken):
		writeJSON(w, http.StatusConflict, types.RegisterResponse{Message: "Usuário já cadastrado."})
	default:
		s.logger.Error("register error",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, types.RegisterResponse{Message: "Erro ao cadastrar usuário."})
	}
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := s.catalog.Products(r.Context())
	if err != nil {
		s.logger.Error("products error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Erro ao buscar produtos")
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (s *Server) handleLoginReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "xlsx" {
		var buf bytes.Buffer
		if err := s.reports.WriteXLSX(r.Context(), &buf); err != nil {
			s.logger.Error("login report xlsx error", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "Erro ao buscar registros")
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="login-report.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	rows, err := s.reports.LoginReport(r.Context())
	if err != nil {
		s.logger.Error("login report error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Erro ao buscar registros")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Error("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]bool{"ok": false})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
