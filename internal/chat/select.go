package chat

import (
	"fmt"

	"go.uber.org/zap"
)

// buildUserText produces the text for the round's user turn: the first
// matching rule's template, the request template, or the raw message, in that
// order of preference.
func (s *Service) buildUserText(req *RoundRequest, turns int) (string, string, error) {
	if tmpl, matched := s.selectRuleTemplate(req, turns); matched {
		text, err := s.renderTemplate(tmpl, req)
		if err != nil {
			return "", "", err
		}
		return text, "rule", nil
	}

	if req.Template != "" {
		text, err := s.renderTemplate(req.Template, req)
		if err != nil {
			return "", "", err
		}
		return text, "template", nil
	}

	if req.Message == "" {
		return "", "", fmt.Errorf("no rule matched and no template or message given")
	}
	return req.Message, "message", nil
}

// selectRuleTemplate evaluates the rules in order and returns the template of
// the first whose condition matches.
func (s *Service) selectRuleTemplate(req *RoundRequest, turns int) (string, bool) {
	for i, rule := range req.Rules {
		matched, err := s.celEvaluator.EvaluateBool(rule.Condition, req.Variables, turns)
		if err != nil {
			s.logger.Warn("rule evaluation error",
				zap.Int("rule_index", i),
				zap.String("condition", rule.Condition),
				zap.Error(err),
			)
			// Continue to next rule on error
			continue
		}

		if matched {
			s.logger.Debug("rule matched",
				zap.Int("rule_index", i),
				zap.String("condition", rule.Condition),
			)
			return rule.Template, true
		}
	}

	return "", false
}

// renderTemplate resolves a template with the request variables. The raw
// message is exposed to templates as {message} unless the request already
// defines that variable.
func (s *Service) renderTemplate(tmpl string, req *RoundRequest) (string, error) {
	vars := req.Variables
	if req.Message != "" {
		if _, ok := vars["message"]; !ok {
			vars = make(map[string]string, len(req.Variables)+1)
			for k, v := range req.Variables {
				vars[k] = v
			}
			vars["message"] = req.Message
		}
	}

	text, err := s.templateEngine.Render(tmpl, vars)
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return text, nil
}
