package chat

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-node-chat/internal/eval/cel"
	"github.com/aescanero/dago-node-chat/internal/eval/template"
	"github.com/aescanero/dago-node-chat/internal/llm"
	"github.com/aescanero/dago-node-chat/internal/transcript"
	"go.uber.org/zap"
)

// Mode represents the prompting strategy for a round
type Mode string

const (
	// ModeSingle sends the resolved prompt on its own, with no history
	ModeSingle Mode = "single"

	// ModeChat runs the round against the session transcript, resubmitting
	// the full prior history
	ModeChat Mode = "chat"
)

// Rule selects a prompt template when its CEL condition matches
type Rule struct {
	Condition string `json:"condition"`
	Template  string `json:"template"`
}

// RoundRequest describes one prompting round
type RoundRequest struct {
	Mode      Mode              `json:"mode,omitempty"`
	Template  string            `json:"template,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// RoundResult represents the outcome of a round
type RoundResult struct {
	Reply     string `json:"reply"`
	UserText  string `json:"user_text"`
	Mode      string `json:"mode"`
	PathTaken string `json:"path_taken"` // "rule", "template", "message"
	Turns     int    `json:"turns"`
}

// Service runs prompting rounds against an injected model invoker
type Service struct {
	celEvaluator   *cel.Evaluator
	templateEngine *template.Engine
	invoker        llm.Invoker
	logger         *zap.Logger
}

// NewService creates a new chat service
func NewService(invoker llm.Invoker, logger *zap.Logger) *Service {
	return &Service{
		celEvaluator:   cel.NewEvaluator(),
		templateEngine: template.NewEngine(),
		invoker:        invoker,
		logger:         logger,
	}
}

// Round runs one prompting round. In chat mode the round is recorded on tr;
// in single mode tr is ignored and may be nil.
func (s *Service) Round(ctx context.Context, tr *transcript.Transcript, req *RoundRequest) (*RoundResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	if s.invoker == nil {
		return nil, fmt.Errorf("invoker not configured")
	}

	mode := req.Mode
	if mode == "" {
		mode = s.detectMode(tr)
	}
	if mode == ModeChat && tr == nil {
		return nil, fmt.Errorf("chat mode requires a transcript")
	}

	turns := 0
	if tr != nil {
		turns = tr.Len()
	}

	userText, path, err := s.buildUserText(req, turns)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	s.logger.Debug("round prompt built",
		zap.String("mode", string(mode)),
		zap.String("path", path),
		zap.String("user_text", userText),
	)

	var reply string
	switch mode {
	case ModeSingle:
		reply, err = s.invoker.Invoke(ctx, userText)
		if err != nil {
			return nil, fmt.Errorf("model invocation failed: %w", err)
		}
	case ModeChat:
		reply, err = tr.RecordRound(ctx, userText, s.invoker)
		if err != nil {
			return nil, err
		}
		turns = tr.Len()
	default:
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}

	s.logger.Info("round completed",
		zap.String("mode", string(mode)),
		zap.String("path", path),
		zap.Int("turns", turns),
	)

	return &RoundResult{
		Reply:     reply,
		UserText:  userText,
		Mode:      string(mode),
		PathTaken: path,
		Turns:     turns,
	}, nil
}

// detectMode detects the round mode from the presence of a transcript
func (s *Service) detectMode(tr *transcript.Transcript) Mode {
	if tr != nil {
		return ModeChat
	}
	return ModeSingle
}

// validateRequest validates the round request
func (s *Service) validateRequest(req *RoundRequest) error {
	if req == nil {
		return fmt.Errorf("request is nil")
	}

	if req.Message == "" && req.Template == "" && len(req.Rules) == 0 {
		return fmt.Errorf("one of message, template or rules is required")
	}

	for i, rule := range req.Rules {
		if rule.Condition == "" {
			return fmt.Errorf("rule %d: condition is required", i)
		}
		if rule.Template == "" {
			return fmt.Errorf("rule %d: template is required", i)
		}
	}

	switch req.Mode {
	case "", ModeSingle, ModeChat:
	default:
		return fmt.Errorf("unknown mode: %s", req.Mode)
	}

	return nil
}
