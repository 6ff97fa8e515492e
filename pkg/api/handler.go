package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hazyhaar/hebmorph/pkg/kit"
	"github.com/hazyhaar/hebmorph/pkg/lemma"
	"github.com/mark3labs/mcp-go/server"
)

// Options tune the HTTP surface.
type Options struct {
	// MaxBodyBytes caps request bodies; 0 means 1 MiB.
	MaxBodyBytes int64
	// MCP, when set, is mounted at /mcp as a streamable HTTP endpoint.
	MCP *server.MCPServer
}

const defaultMaxBodyBytes = 1 << 20

// NewRouter returns an http.Handler with all lemmatization routes.
func NewRouter(ep *Endpoints, opts Options) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	mux := http.NewServeMux()
	h := &handler{ep: ep, maxBody: opts.MaxBodyBytes}

	mux.HandleFunc("POST /lemmatize", h.handleLemmatize(lemma.Ranked))
	mux.HandleFunc("POST /lemmatize-first", h.handleLemmatize(lemma.First))
	mux.HandleFunc("POST /lemmatize-raw", h.handleLemmatizeRaw)
	mux.HandleFunc("GET /health", h.handleHealth)
	if opts.MCP != nil {
		mux.Handle("/mcp", server.NewStreamableHTTPServer(opts.MCP))
	}

	return cors(mux)
}

type handler struct {
	ep      *Endpoints
	maxBody int64
}

// --- lemmatize ---

type httpLemmatizeRequest struct {
	Sentences []string `json:"sentences"`
}

func (h *handler) handleLemmatize(strategy lemma.Strategy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req httpLemmatizeRequest
		if !h.decode(w, r, &req) {
			return
		}

		resp, err := h.ep.Lemmatize(requestContext(r), &lemmatizeReq{
			Sentences: req.Sentences,
			Strategy:  strategy,
		})
		if err != nil {
			writeEndpointError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// --- raw candidates ---

type httpLemmatizeRawRequest struct {
	Sentence *string `json:"sentence"`
}

func (h *handler) handleLemmatizeRaw(w http.ResponseWriter, r *http.Request) {
	var req httpLemmatizeRawRequest
	if !h.decode(w, r, &req) {
		return
	}
	var sentence string
	if req.Sentence != nil {
		sentence = *req.Sentence
	}

	resp, err := h.ep.LemmatizeRaw(requestContext(r), &lemmatizeRawReq{Sentence: sentence})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status     string `json:"status"`
	Dictionary string `json:"dictionary"`
	Version    string `json:"version"`
	Entries    int    `json:"entries"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.DictionaryInfo(requestContext(r), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	info := resp.(DictionaryInfo)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Dictionary: info.ID,
		Version:    info.Version,
		Entries:    info.Entries,
	})
}

// --- helpers ---

// decode reads a JSON body into v. It writes a 400 and returns false on
// oversized or malformed bodies. An empty body decodes as {}.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusBadRequest, "request body too large")
			return false
		case errors.Is(err, io.EOF):
			return true
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func requestContext(r *http.Request) context.Context {
	ctx := kit.WithTransport(r.Context(), "http")
	if id := r.Header.Get("X-Request-ID"); id != "" {
		ctx = kit.WithRequestID(ctx, id)
	}
	return ctx
}

func writeEndpointError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrTooManySentences) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
