package mcp

import (
	"context"
	"encoding/json"
	"io"
	stdlog "log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/escalation"
	"github.com/sandevgo/campinnova/pkg/log"
)

type Triage interface {
	Classify(text string) core.RiskLevel
	DetectConsent(text string) bool
}

// Assessment is the tool payload. It never contains the assessed text.
type Assessment struct {
	Risk      core.RiskLevel `json:"risk"`
	Sentiment string         `json:"sentiment"`
	Consent   bool           `json:"consent"`
	Escalate  bool           `json:"escalate"`
	Reply     string         `json:"reply,omitempty"`
}

// Server exposes the triage pipeline as MCP tools over stdio so other agents
// can screen messages. It is stateless and never raises notifications.
type Server struct {
	triage Triage
	mcp    *server.MCPServer
	in     io.Reader
	out    io.Writer
}

func NewServer(triage Triage) *Server {
	s := &Server{
		triage: triage,
		mcp:    server.NewMCPServer(core.AppName, core.AppVersion, server.WithToolCapabilities(false)),
		in:     os.Stdin,
		out:    os.Stdout,
	}

	s.mcp.AddTool(mcp.NewTool("classify_risk",
		mcp.WithDescription("Classify the distress risk of a single student message as none, low, moderate or high."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Message text to classify")),
	), s.handleClassify)

	s.mcp.AddTool(mcp.NewTool("assess_message",
		mcp.WithDescription("Run the full safety triage on a message: risk, consent, whether to escalate and the canned reply for escalated risk."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Message text to assess")),
	), s.handleAssess)

	return s
}

func (s *Server) Assess(text string) Assessment {
	risk := s.triage.Classify(text)
	a := Assessment{
		Risk:      risk,
		Sentiment: core.SentimentBucket(risk),
		Escalate:  risk == core.RiskHigh,
	}
	if a.Escalate {
		a.Consent = s.triage.DetectConsent(text)
	}
	a.Reply, _ = escalation.Reply(risk)
	return a
}

func (s *Server) handleClassify(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.triage.Classify(text).String()), nil
}

func (s *Server) handleAssess(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(s.Assess(text))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Start serves MCP over stdin/stdout until ctx is done or stdin closes.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("mcp server listening on stdio")

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(logger, "", 0))
	return stdio.Listen(ctx, s.in, s.out)
}

func (s *Server) Shutdown(context.Context) error {
	return nil
}
