package pipeline

import (
	"context"
	"regexp"
	"strings"

	"paisabot/internal/ai"
	"paisabot/internal/logging"
	"paisabot/internal/types"
)

// fallbackIntent is the label assumed when the classification call itself
// fails. Treating an unclassifiable message as an expense keeps the most
// common path alive at the cost of an occasional "couldn't understand"
// reply to a question.
const fallbackIntent = types.IntentExpense

// smallTalkPatterns is the fast path: short greetings, thanks, goodbyes and
// capability questions are labelled conversation without a network call.
var smallTalkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi+|hii+|hello|hey+|yo|hola|namaste)[\s!.]*$`),
	regexp.MustCompile(`^good\s+(morning|afternoon|evening|night)[\s!.]*$`),
	regexp.MustCompile(`^(thanks|thank\s+you|thx|ty)[\s!.]*\w*[\s!.]*$`),
	regexp.MustCompile(`^(bye+|goodbye|good\s+bye|see\s+(you|ya))[\s!.]*$`),
	regexp.MustCompile(`^(ok|okay|cool|nice|great)[\s!.]*$`),
	regexp.MustCompile(`what\s+(can|do)\s+you\s+do`),
	regexp.MustCompile(`^who\s+are\s+you[\s?!.]*$`),
	regexp.MustCompile(`^how\s+are\s+you[\s?!.]*$`),
}

// classify labels the message text. The regex tier never touches the
// network; everything else goes through one temperature-0 model call whose
// raw answer is normalized by substring match.
func (p *Pipeline) classify(ctx context.Context, st *state) result {
	lower := strings.ToLower(strings.TrimSpace(st.text))
	for _, re := range smallTalkPatterns {
		if re.MatchString(lower) {
			st.intent = types.IntentConversation
			return cont()
		}
	}

	raw, err := p.svcCtx.AI.Complete(ctx, st.apiKey, ai.ClassifyPrompt(ai.ClassifyParams{Text: st.text}))
	if err != nil {
		logging.Warnf("classification call failed, assuming %q: %v", fallbackIntent, err)
		st.intent = fallbackIntent
		return cont()
	}

	st.intent = normalizeIntent(raw)
	return cont()
}

// normalizeIntent maps a raw model answer onto the closed label set.
func normalizeIntent(raw string) types.Intent {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "expense"):
		return types.IntentExpense
	case strings.Contains(lower, "query"):
		return types.IntentQuery
	default:
		return types.IntentConversation
	}
}

// respond routes the classified message to its terminal flow.
func (p *Pipeline) respond(ctx context.Context, st *state) result {
	switch st.intent {
	case types.IntentExpense:
		return p.extractExpenses(ctx, st)
	case types.IntentQuery:
		return p.answerQuery(ctx, st)
	default:
		return done(replyConversation)
	}
}
