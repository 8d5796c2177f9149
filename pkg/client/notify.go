package client

import (
	"sync"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
)

// Notice durations: success toasts are short, block explanations stay up
// long enough to read the blocking list.
const (
	DuracaoSucesso  = 2500 * time.Millisecond
	DuracaoErro     = 4 * time.Second
	DuracaoBloqueio = 6 * time.Second
)

type NoticeKind int

const (
	NoticeSucesso NoticeKind = iota
	NoticeErro
	NoticeBloqueio
	NoticeConfirmaDesativar
	NoticeConfirmaFinalizar
)

// Notice is a typed user-facing announcement with a fixed display duration.
// Confirmation prompts carry a zero Duracao: they stay up until the user
// answers them.
type Notice struct {
	Kind     NoticeKind
	Mensagem string
	Bloqueio []apierror.BlockingItem
	Duracao  time.Duration
}

// Notifier fans notices out to a registered sink. A nil Notifier is safe to
// publish to, which keeps it optional in tests.
type Notifier struct {
	mu   sync.Mutex
	sink func(Notice)
	last *Notice
}

func NewNotifier(sink func(Notice)) *Notifier {
	return &Notifier{sink: sink}
}

func (n *Notifier) publish(notice Notice) {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.last = &notice
	sink := n.sink
	n.mu.Unlock()
	if sink != nil {
		sink(notice)
	}
}

// Last returns the most recent notice, for tests and status bars.
func (n *Notifier) Last() *Notice {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func (n *Notifier) sucesso(msg string) {
	n.publish(Notice{Kind: NoticeSucesso, Mensagem: msg, Duracao: DuracaoSucesso})
}

func (n *Notifier) erro(msg string) {
	n.publish(Notice{Kind: NoticeErro, Mensagem: msg, Duracao: DuracaoErro})
}

func (n *Notifier) bloqueio(msg string, items []apierror.BlockingItem) {
	n.publish(Notice{Kind: NoticeBloqueio, Mensagem: msg, Bloqueio: items, Duracao: DuracaoBloqueio})
}

func (n *Notifier) confirmacao(kind NoticeKind, msg string) {
	n.publish(Notice{Kind: kind, Mensagem: msg})
}
