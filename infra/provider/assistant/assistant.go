// Package assistant implements the financial assistant: a rule-based
// responder grounded in the user's transaction history, with an optional
// chat-completion backend used when a real API key is configured.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bankline/bankline/pkg/analytics"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/money"
)

// Greeting is the assistant's canned opening message.
const Greeting = "Hello! I'm your AI financial assistant. How can I help you today?"

// placeholderKey is the non-functional default API key. With it in place
// the responder never calls out and answers locally.
const placeholderKey = "your-api-key-here"

// RuleBased answers from the transaction history without any remote call.
type RuleBased struct{}

// NewRuleBased creates the local responder.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Respond picks an answer from the message keywords, computing spending,
// savings and category figures from the transaction list.
func (r *RuleBased) Respond(_ context.Context, message string, txs []domain.Transaction) (domain.AssistantReply, error) {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "spend") || strings.Contains(lower, "expense"):
		var spent float64
		for _, tx := range txs {
			if tx.Direction == domain.Debit {
				spent += tx.Amount
			}
		}
		top := analytics.TopCategories(txs, 3)
		names := make([]string, len(top))
		for i, ct := range top {
			names[i] = ct.Category
		}
		formatted, err := money.FormatNumber(spent)
		if err != nil {
			return domain.AssistantReply{}, err
		}
		return domain.AssistantReply{
			Text: fmt.Sprintf("You've spent $%s this month. Your top spending categories are: %s.",
				formatted, strings.Join(names, ", ")),
		}, nil

	case strings.Contains(lower, "save") || strings.Contains(lower, "saving"):
		rate := analytics.SavingsRate(txs) * 100
		return domain.AssistantReply{
			Text: fmt.Sprintf("Your current savings rate is %.1f%%. Consider saving 20%% of your income for better financial health.", rate),
		}, nil

	case strings.Contains(lower, "budget"):
		return domain.AssistantReply{
			Text: "To create a budget, track your income and expenses, categorize your spending, and set limits for each category. I can help you analyze your current spending patterns.",
		}, nil

	case strings.Contains(lower, "invest"):
		return domain.AssistantReply{
			Text: "For investing, consider your risk tolerance and financial goals. Diversify your portfolio and consider long-term investments. Consult a financial advisor for personalized advice.",
		}, nil

	default:
		return domain.AssistantReply{
			Text: "I'm here to help with your financial questions. Try asking about your spending, savings, budgeting, or investment advice!",
		}, nil
	}
}

// Responder routes between the chat-completion backend and the rule-based
// fallback. With the placeholder key configured, the remote backend is
// never tried.
type Responder struct {
	completion *CompletionClient
	local      *RuleBased
	logger     *slog.Logger
}

// NewResponder creates the routing responder. completion may be nil.
func NewResponder(completion *CompletionClient, logger *slog.Logger) *Responder {
	return &Responder{
		completion: completion,
		local:      NewRuleBased(),
		logger:     logger.With("provider", "assistant"),
	}
}

// Respond tries the chat-completion backend first and falls back to the
// rule-based answer when the backend is not configured or fails.
func (r *Responder) Respond(ctx context.Context, message string, txs []domain.Transaction) (domain.AssistantReply, error) {
	if r.completion != nil && r.completion.Configured() {
		reply, err := r.completion.Complete(ctx, message)
		if err == nil {
			return reply, nil
		}
		r.logger.Warn("chat completion failed, answering locally", "error", err)
	}
	return r.local.Respond(ctx, message, txs)
}
