package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/hebmorph/pkg/kit"
	"github.com/hazyhaar/hebmorph/pkg/lemma"
	"github.com/hazyhaar/hebmorph/pkg/lexicon"
)

// Shared request/response types used by the HTTP, MCP and CLI transports.

type lemmatizeReq struct {
	Sentences []string
	Strategy  lemma.Strategy
}

type lemmatizeResponse struct {
	Results [][]string `json:"results"`
}

type lemmatizeRawReq struct {
	Sentence string
}

type lemmatizeRawResponse struct {
	Results [][]lemma.CandidateView `json:"results"`
}

// DictionaryInfo describes the dictionary the service was started with.
type DictionaryInfo struct {
	ID         string `json:"id"`
	Version    string `json:"version"`
	Language   string `json:"language"`
	Source     string `json:"source"`
	License    string `json:"license"`
	Entries    int    `json:"entries"`
	Candidates int    `json:"candidates"`
}

// ErrTooManySentences is returned when a batch exceeds the configured limit.
var ErrTooManySentences = errors.New("too many sentences")

// Endpoints are the service actions, each wrapped with request ID and
// logging middleware.
type Endpoints struct {
	Lemmatize      kit.Endpoint
	LemmatizeRaw   kit.Endpoint
	DictionaryInfo kit.Endpoint
}

// NewEndpoints builds the endpoints over one loaded lexicon. maxSentences
// <= 0 disables the batch limit.
func NewEndpoints(lex *lexicon.Lexicon, svc *lemma.Service, logger *slog.Logger, maxSentences int) *Endpoints {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return &Endpoints{
		Lemmatize:      wrap("lemmatize", lemmatizeEndpoint(svc, maxSentences)),
		LemmatizeRaw:   wrap("lemmatize_raw", lemmatizeRawEndpoint(svc)),
		DictionaryInfo: wrap("dictionary_info", dictionaryInfoEndpoint(lex)),
	}
}

// LemmatizeSentences runs the lemmatize endpoint and returns the per-sentence lemmas.
func (e *Endpoints) LemmatizeSentences(ctx context.Context, sentences []string, strategy lemma.Strategy) ([][]string, error) {
	resp, err := e.Lemmatize(ctx, &lemmatizeReq{Sentences: sentences, Strategy: strategy})
	if err != nil {
		return nil, err
	}
	return resp.(lemmatizeResponse).Results, nil
}

// Candidates runs the raw endpoint for one sentence.
func (e *Endpoints) Candidates(ctx context.Context, sentence string) ([][]lemma.CandidateView, error) {
	resp, err := e.LemmatizeRaw(ctx, &lemmatizeRawReq{Sentence: sentence})
	if err != nil {
		return nil, err
	}
	return resp.(lemmatizeRawResponse).Results, nil
}

func lemmatizeEndpoint(svc *lemma.Service, maxSentences int) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*lemmatizeReq)
		if maxSentences > 0 && len(req.Sentences) > maxSentences {
			return nil, fmt.Errorf("%w (max %d, got %d)", ErrTooManySentences, maxSentences, len(req.Sentences))
		}
		return lemmatizeResponse{Results: svc.CanonicalizeBatch(req.Sentences, req.Strategy)}, nil
	}
}

func lemmatizeRawEndpoint(svc *lemma.Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*lemmatizeRawReq)
		return lemmatizeRawResponse{Results: svc.ListCandidates(req.Sentence)}, nil
	}
}

func dictionaryInfoEndpoint(lex *lexicon.Lexicon) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		m := lex.Manifest
		return DictionaryInfo{
			ID:         m.ID,
			Version:    m.Version,
			Language:   m.Language,
			Source:     m.Source,
			License:    m.License,
			Entries:    lex.Len(),
			Candidates: lex.Candidates(),
		}, nil
	}
}
