package pipeline

import (
	"context"

	"paisabot/internal/types"
)

// identity maps the normalized sender to an account and resolves the model
// credential. An unknown sender or a missing credential halts the pipeline
// before any model call is made.
func (p *Pipeline) identity(ctx context.Context, st *state) result {
	account, err := p.svcCtx.DB.GetAccountByPhone(ctx, st.phone)
	if err != nil {
		return fail(replySomethingWrong, err)
	}
	if account == nil {
		return done(replyLinkAccount)
	}

	st.account = account
	st.apiKey = account.OpenAIKey
	if st.apiKey == "" {
		st.apiKey = p.svcCtx.Config.OpenAIKey
	}
	if st.apiKey == "" {
		return done(replyNotConfigured)
	}

	if st.msg.Kind == types.KindText {
		st.text = st.msg.Text
	}
	return cont()
}
