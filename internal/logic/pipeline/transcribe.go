package pipeline

import (
	"context"

	"paisabot/internal/types"
)

// transcribe resolves a voice message to text: media id → short-lived URL →
// binary download → whisper upload. Every failure, including an empty
// transcript, ends in the same apology reply; nothing is re-thrown.
func (p *Pipeline) transcribe(ctx context.Context, st *state) result {
	if st.msg.Kind != types.KindAudio {
		return skip()
	}

	info, err := p.svcCtx.WhatsApp.GetMedia(ctx, st.msg.MediaID)
	if err != nil {
		return fail(replyTranscribeFailed, err)
	}

	audio, err := p.svcCtx.WhatsApp.DownloadMedia(ctx, info.URL)
	if err != nil {
		return fail(replyTranscribeFailed, err)
	}

	text, err := p.svcCtx.AI.Transcribe(ctx, st.apiKey, audio, info.MimeType)
	if err != nil {
		return fail(replyTranscribeFailed, err)
	}
	if text == "" {
		return done(replyTranscribeFailed)
	}

	st.text = text
	return cont()
}
