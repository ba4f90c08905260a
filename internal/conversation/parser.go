package conversation

import (
	"context"
	"regexp"
	"strings"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// CommandParser matches user input to intents using keywords and
// simple patterns.
type CommandParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	intent  domain.IntentType
	payload bool // carry the rest of the input as payload
}

// NewCommandParser creates a keyword-based command parser.
func NewCommandParser(log *logger.Logger) *CommandParser {
	p := &CommandParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(login|signin|sign in)\b`), domain.IntentSignIn, true},
		{regexp.MustCompile(`(?i)^(logout|signout|sign out)$`), domain.IntentSignOut, false},
		{regexp.MustCompile(`(?i)^profile\b`), domain.IntentProfile, true},
		{regexp.MustCompile(`(?i)^(dish|show|open)\b`), domain.IntentShowDish, true},
		{regexp.MustCompile(`(?i)^(\+|inc|more)$`), domain.IntentIncrease, false},
		{regexp.MustCompile(`(?i)^(-|dec|less)$`), domain.IntentDecrease, false},
		{regexp.MustCompile(`(?i)^(add|include|order)$`), domain.IntentAddToCart, false},
		{regexp.MustCompile(`(?i)^(new|create)( dish)?$`), domain.IntentNewDish, false},
		{regexp.MustCompile(`(?i)^edit$`), domain.IntentEditDish, false},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp, false},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit, false},
	}
	return p
}

// Parse converts user input into an intent.
func (p *CommandParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number opens that dish's detail view.
	if isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentShowDish, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			if rule.payload {
				rest := strings.TrimSpace(rule.regex.ReplaceAllString(trimmed, ""))
				return &domain.Intent{Type: rule.intent, Payload: rest}, nil
			}
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
