package api

import (
	"fmt"

	"github.com/hazyhaar/hebmorph/pkg/kit"
	"github.com/hazyhaar/hebmorph/pkg/lemma"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer returns an MCP server carrying the lemmatization tools.
func NewMCPServer(ep *Endpoints, version string) *server.MCPServer {
	srv := server.NewMCPServer("hebmorph", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, ep)
	return srv
}

// RegisterMCPTools registers the three hebmorph MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, ep *Endpoints) {
	registerLemmatize(srv, ep)
	registerLemmatizeRaw(srv, ep)
	registerDictionaryInfo(srv, ep)
}

func registerLemmatize(srv *server.MCPServer, ep *Endpoints) {
	tool := mcp.NewTool("lemmatize",
		mcp.WithDescription("Reduce every word of each Hebrew sentence to its dictionary lemma. Punctuation and single letters are dropped."),
		mcp.WithArray("sentences", mcp.Required(),
			mcp.Description("Sentences to lemmatize"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("strategy",
			mcp.Description("ranked (default) or first"),
			mcp.Enum(string(lemma.Ranked), string(lemma.First)),
		),
	)

	kit.RegisterMCPTool(srv, tool, ep.Lemmatize, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		raw, ok := args["sentences"].([]any)
		if !ok {
			return nil, fmt.Errorf("sentences must be an array of strings")
		}
		sentences := make([]string, len(raw))
		for i, v := range raw {
			s, ok := v.(string)
			if !ok && v != nil {
				return nil, fmt.Errorf("sentences[%d] is not a string", i)
			}
			sentences[i] = s
		}
		name, _ := args["strategy"].(string)
		strategy, err := lemma.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &lemmatizeReq{Sentences: sentences, Strategy: strategy}}, nil
	})
}

func registerLemmatizeRaw(srv *server.MCPServer, ep *Endpoints) {
	tool := mcp.NewTool("lemmatize_raw",
		mcp.WithDescription("List the analyzer's unranked candidates (lemma, score, part of speech, prefix length) for every word of a sentence."),
		mcp.WithString("sentence", mcp.Description("The sentence to analyze")),
	)

	kit.RegisterMCPTool(srv, tool, ep.LemmatizeRaw, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		sentence, _ := req.GetArguments()["sentence"].(string)
		return &kit.MCPDecodeResult{Request: &lemmatizeRawReq{Sentence: sentence}}, nil
	})
}

func registerDictionaryInfo(srv *server.MCPServer, ep *Endpoints) {
	tool := mcp.NewTool("dictionary_info",
		mcp.WithDescription("Describe the loaded Hebrew dictionary (id, version, source, license, entry counts)."),
	)

	kit.RegisterMCPTool(srv, tool, ep.DictionaryInfo, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
