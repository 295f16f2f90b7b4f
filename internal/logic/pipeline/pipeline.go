package pipeline

import (
	"context"
	"time"

	"paisabot/internal/logging"
	"paisabot/internal/svc"
	"paisabot/internal/types"
)

// status tags the outcome of one pipeline stage.
type status int

const (
	// statusContinue hands control to the next stage.
	statusContinue status = iota
	// statusSkip means the stage did not apply to this message.
	statusSkip
	// statusDone is terminal: the chosen reply (if any) is sent and the
	// pipeline stops.
	statusDone
	// statusDrop is terminal with no reply at all (duplicate delivery).
	statusDrop
)

type result struct {
	status status
	reply  string
	err    error // logged by the runner, never propagated further
}

func cont() result { return result{status: statusContinue} }

func skip() result { return result{status: statusSkip} }

func done(reply string) result { return result{status: statusDone, reply: reply} }

func fail(reply string, err error) result {
	return result{status: statusDone, reply: reply, err: err}
}

// state carries what the stages have resolved so far for one message.
type state struct {
	msg     types.InboundMessage
	phone   string // normalized sender address
	account *types.Account
	apiKey  string // resolved model credential
	text    string // message body, or transcript for voice messages
	intent  types.Intent
}

// stage is a named step with a tagged outcome, so each one can be run and
// tested in isolation.
type stage struct {
	name string
	run  func(ctx context.Context, st *state) result
}

// Pipeline processes one inbound message through the ordered stage list.
// It holds no per-message state; a single Pipeline serves all events.
type Pipeline struct {
	svcCtx *svc.ServiceContext
	stages []stage
	now    func() time.Time
}

// New builds the pipeline in its fixed stage order.
func New(svcCtx *svc.ServiceContext) *Pipeline {
	p := &Pipeline{svcCtx: svcCtx, now: time.Now}
	p.stages = []stage{
		{"dedupe", p.dedupe},
		{"identity", p.identity},
		{"transcribe", p.transcribe},
		{"shortcut", p.shortcut},
		{"classify", p.classify},
		{"respond", p.respond},
	}
	return p
}

// Handle runs the message through every stage until one is terminal.
// Nothing escapes: any error becomes a logged chat reply, and a panic in a
// stage still produces the generic failure reply. The webhook response has
// already been committed by the time this runs.
func (p *Pipeline) Handle(ctx context.Context, msg types.InboundMessage) {
	st := &state{msg: msg, phone: types.NormalizePhone(msg.From)}

	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("pipeline panic for message %s: %v", msg.MessageID, r)
			p.send(ctx, st, replySomethingWrong)
		}
	}()

	for _, sg := range p.stages {
		res := sg.run(ctx, st)
		if res.err != nil {
			logging.Errorf("stage %s: %v", sg.name, res.err)
		}
		switch res.status {
		case statusDone:
			if res.reply != "" {
				p.send(ctx, st, res.reply)
			}
			return
		case statusDrop:
			logging.Infof("stage %s: dropped message %s", sg.name, msg.MessageID)
			return
		}
	}
}

// send dispatches the outbound reply. Failures are logged and never
// retried; the transport response is long gone either way.
func (p *Pipeline) send(ctx context.Context, st *state, text string) {
	if err := p.svcCtx.WhatsApp.SendText(ctx, st.msg.From, text); err != nil {
		logging.Errorf("send reply to %s: %v", st.phone, err)
	}
}

// dedupe drops redelivered events by provider message id before any model
// call or insert happens. Payloads without an id are processed every time
// they arrive. An idempotency-store error is logged but does not block the
// message.
func (p *Pipeline) dedupe(ctx context.Context, st *state) result {
	if st.msg.MessageID == "" {
		return cont()
	}
	first, err := p.svcCtx.DB.MarkEventProcessed(ctx, st.msg.MessageID)
	if err != nil {
		return result{status: statusContinue, err: err}
	}
	if !first {
		return result{status: statusDrop}
	}
	return cont()
}
