package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
)

// EditorState is where the edit flow currently stands.
type EditorState int

const (
	StateViewing EditorState = iota
	StateEditing
	StateConfirming
	StateBlocked
	StateResultAnnounced
)

func (s EditorState) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateConfirming:
		return "confirming"
	case StateBlocked:
		return "blocked"
	case StateResultAnnounced:
		return "result"
	}
	return "unknown"
}

// ErrAcaoIndisponivel marks actions the current record state does not allow,
// such as deactivating an already inactive record. The UI hides these
// actions instead of sending requests that would only earn an invalid_state.
var ErrAcaoIndisponivel = errors.New("acao indisponivel para o estado atual")

// pendingAction names what a Confirming state is waiting on.
type pendingAction int

const (
	actionNone pendingAction = iota
	actionSave
	actionDesativar
	actionFinalizar
)

// EntitySchema tells an Editor how to treat one entity type.
type EntitySchema[T any] struct {
	// Entity is the cache entity name invalidated after a successful write.
	Entity string
	// Path is the collection path, e.g. "/api/ferramentas".
	Path string
	// ID extracts the record's identifier.
	ID func(T) string
	// Editavel reports whether the record may be edited right now. Checked
	// against a live fetch, never against a stale listing row.
	Editavel func(T) bool
	// MotivoBloqueio names why Editavel said no, for the block notice.
	MotivoBloqueio func(T) string
	// Inativa reports whether the record is inactive (reactivation target).
	Inativa func(T) bool
	// Cascata marks entities whose deactivation can orphan children; for
	// those a preview request runs before the confirmation is offered.
	Cascata bool
	// Finalizavel marks entities with a finalizar endpoint (loans and
	// maintenance records).
	Finalizavel bool
}

// Editor drives the view/edit/confirm flow for a single record. All writes
// re-validate against the server; the editor's job is to keep the local
// draft, surface field errors without losing typed input, and refuse actions
// the record's live state makes meaningless.
type Editor[T any] struct {
	c      *Client
	cache  *Cache
	notify *Notifier
	schema EntitySchema[T]

	state       EditorState
	record      T
	draft       map[string]any
	fieldErrors map[string]string
	blockReason string
	blocking    []apierror.BlockingItem
	pending     pendingAction
	pendingFim  string
}

func NewEditor[T any](c *Client, cache *Cache, notify *Notifier, schema EntitySchema[T]) *Editor[T] {
	return &Editor[T]{c: c, cache: cache, notify: notify, schema: schema, state: StateViewing}
}

func (e *Editor[T]) State() EditorState                { return e.state }
func (e *Editor[T]) Record() T                         { return e.record }
func (e *Editor[T]) FieldErrors() map[string]string    { return e.fieldErrors }
func (e *Editor[T]) BlockReason() string               { return e.blockReason }
func (e *Editor[T]) Blocking() []apierror.BlockingItem { return e.blocking }

// Open fetches the record and enters Viewing.
func (e *Editor[T]) Open(ctx context.Context, id string) error {
	var rec T
	if err := e.c.get(ctx, e.itemPath(id), nil, &rec); err != nil {
		return err
	}
	e.record = rec
	e.state = StateViewing
	e.draft = nil
	e.fieldErrors = nil
	e.pending = actionNone
	e.pendingFim = ""
	return nil
}

// BeginEdit re-fetches the record and checks eligibility against the fresh
// copy. A record someone else just locked (loaned tool, closed loan) lands
// in Blocked with the reason, not in Editing.
func (e *Editor[T]) BeginEdit(ctx context.Context) error {
	if err := e.refetch(ctx); err != nil {
		return err
	}
	if e.schema.Editavel != nil && !e.schema.Editavel(e.record) {
		e.state = StateBlocked
		e.blockReason = e.motivo()
		e.notify.bloqueio(e.blockReason, nil)
		return nil
	}
	e.state = StateEditing
	e.draft = make(map[string]any)
	e.fieldErrors = nil
	return nil
}

// SetField records one draft change. Only valid while Editing.
func (e *Editor[T]) SetField(key string, value any) {
	if e.state != StateEditing {
		return
	}
	e.draft[key] = value
	delete(e.fieldErrors, key)
}

// Confirm moves Editing to Confirming; the UI shows the summary dialog.
func (e *Editor[T]) Confirm() error {
	if e.state != StateEditing {
		return ErrAcaoIndisponivel
	}
	e.state = StateConfirming
	e.pending = actionSave
	return nil
}

// Cancel backs out of the current step without applying anything. A save
// confirmation returns to Editing with the draft intact; everything else
// returns to Viewing.
func (e *Editor[T]) Cancel() {
	if e.state == StateConfirming && e.pending == actionSave {
		e.state = StateEditing
		e.pending = actionNone
		return
	}
	e.state = StateViewing
	e.pending = actionNone
	e.pendingFim = ""
	e.draft = nil
	e.fieldErrors = nil
}

// Save sends the draft. On success the parent cache entry is invalidated
// before the result is announced, so a list rendered behind the toast is
// already fresh. On a validation failure the field errors land on the draft
// and the user's typed values stay put.
func (e *Editor[T]) Save(ctx context.Context) error {
	if e.state != StateConfirming && e.state != StateEditing {
		return ErrAcaoIndisponivel
	}
	if e.state == StateConfirming && e.pending != actionSave {
		return ErrAcaoIndisponivel
	}
	var updated T
	err := e.c.patch(ctx, e.itemPath(e.schema.ID(e.record)), e.draft, &updated)
	if err != nil {
		e.absorb(err)
		return err
	}
	e.record = updated
	e.draft = nil
	e.fieldErrors = nil
	e.pending = actionNone
	if e.cache != nil {
		e.cache.Invalidate(e.schema.Entity)
	}
	e.state = StateResultAnnounced
	e.notify.sucesso("Registro atualizado")
	return nil
}

// RequestDesativar opens the deactivation confirmation. Cascade entities run
// a preview first and surface the blocking list without applying anything;
// nothing is written until ConfirmDesativar. Only reachable from Viewing on
// an active record.
func (e *Editor[T]) RequestDesativar(ctx context.Context) error {
	if e.state != StateViewing {
		return ErrAcaoIndisponivel
	}
	if e.schema.Inativa != nil && e.schema.Inativa(e.record) {
		return ErrAcaoIndisponivel
	}
	if e.schema.Cascata {
		q := url.Values{"preview": {"true"}}
		if err := e.c.do(ctx, "PATCH", e.acaoPath("desativar"), q, nil, nil); err != nil {
			e.absorb(err)
			return err
		}
	}
	e.state = StateConfirming
	e.pending = actionDesativar
	e.notify.confirmacao(NoticeConfirmaDesativar, "Confirma a desativacao deste registro?")
	return nil
}

// ConfirmDesativar applies the deactivation the user just confirmed.
func (e *Editor[T]) ConfirmDesativar(ctx context.Context) error {
	if e.state != StateConfirming || e.pending != actionDesativar {
		return ErrAcaoIndisponivel
	}
	e.pending = actionNone
	if err := e.c.do(ctx, "PATCH", e.acaoPath("desativar"), nil, nil, nil); err != nil {
		e.absorb(err)
		return err
	}
	if e.cache != nil {
		e.cache.Invalidate(e.schema.Entity)
	}
	if err := e.refetch(ctx); err != nil {
		return err
	}
	e.state = StateResultAnnounced
	e.notify.sucesso("Registro desativado")
	return nil
}

// RequestFinalizar opens the finalize confirmation for the given end date.
// Nothing reaches the server until ConfirmFinalizar.
func (e *Editor[T]) RequestFinalizar(dataFim string) error {
	if e.state != StateViewing || !e.schema.Finalizavel {
		return ErrAcaoIndisponivel
	}
	if e.schema.Inativa != nil && e.schema.Inativa(e.record) {
		return ErrAcaoIndisponivel
	}
	e.state = StateConfirming
	e.pending = actionFinalizar
	e.pendingFim = dataFim
	e.notify.confirmacao(NoticeConfirmaFinalizar, "Confirma a finalizacao deste registro?")
	return nil
}

// ConfirmFinalizar applies the finalize the user just confirmed.
func (e *Editor[T]) ConfirmFinalizar(ctx context.Context) error {
	if e.state != StateConfirming || e.pending != actionFinalizar {
		return ErrAcaoIndisponivel
	}
	fim := e.pendingFim
	e.pending = actionNone
	e.pendingFim = ""
	if err := e.c.patch(ctx, e.acaoPath("finalizar"), map[string]any{"data_fim": fim}, nil); err != nil {
		e.absorb(err)
		return err
	}
	if e.cache != nil {
		e.cache.Invalidate(e.schema.Entity)
	}
	if err := e.refetch(ctx); err != nil {
		return err
	}
	e.state = StateResultAnnounced
	e.notify.sucesso("Registro finalizado")
	return nil
}

// Reativar is only reachable from Viewing on an inactive record. Reactivation
// has no cascade, so it applies directly.
func (e *Editor[T]) Reativar(ctx context.Context) error {
	if e.state != StateViewing {
		return ErrAcaoIndisponivel
	}
	if e.schema.Inativa != nil && !e.schema.Inativa(e.record) {
		return ErrAcaoIndisponivel
	}
	if err := e.c.do(ctx, "PATCH", e.acaoPath("reativar"), nil, nil, nil); err != nil {
		e.absorb(err)
		return err
	}
	if e.cache != nil {
		e.cache.Invalidate(e.schema.Entity)
	}
	if err := e.refetch(ctx); err != nil {
		return err
	}
	e.state = StateResultAnnounced
	e.notify.sucesso("Registro reativado")
	return nil
}

// Acknowledge dismisses a result or block notice and returns to Viewing.
func (e *Editor[T]) Acknowledge() {
	if e.state == StateResultAnnounced || e.state == StateBlocked {
		e.state = StateViewing
		e.blockReason = ""
		e.blocking = nil
		e.pending = actionNone
		e.pendingFim = ""
	}
}

// absorb maps a server error onto editor state: validation errors keep the
// user in Editing with per-field messages, blocked errors show the blocking
// list, everything else becomes an error notice.
func (e *Editor[T]) absorb(err error) {
	e.pending = actionNone
	e.pendingFim = ""
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		e.notify.erro("Falha de comunicacao com o servidor")
		return
	}
	switch apiErr.Code {
	case apierror.CodeValidation, apierror.CodeDuplicate:
		e.state = StateEditing
		if e.draft == nil {
			e.draft = make(map[string]any)
		}
		e.fieldErrors = apiErr.Fields
		if len(e.fieldErrors) == 0 {
			e.fieldErrors = map[string]string{"detail": apiErr.Detail}
		}
	case apierror.CodeBlocked:
		e.state = StateBlocked
		e.blockReason = apiErr.Detail
		e.blocking = apiErr.Blocking
		e.notify.bloqueio(apiErr.Detail, apiErr.Blocking)
	case apierror.CodeInvalidState:
		e.state = StateBlocked
		e.blockReason = apiErr.Detail
		e.notify.bloqueio(apiErr.Detail, nil)
	default:
		e.notify.erro(apiErr.Detail)
	}
}

func (e *Editor[T]) refetch(ctx context.Context) error {
	var rec T
	if err := e.c.get(ctx, e.itemPath(e.schema.ID(e.record)), nil, &rec); err != nil {
		return err
	}
	e.record = rec
	return nil
}

func (e *Editor[T]) motivo() string {
	if e.schema.MotivoBloqueio != nil {
		if m := e.schema.MotivoBloqueio(e.record); m != "" {
			return m
		}
	}
	return "Registro nao pode ser editado no estado atual"
}

// itemPath keeps the server's trailing-slash route shape.
func (e *Editor[T]) itemPath(id string) string {
	return fmt.Sprintf("%s/%s/", e.schema.Path, id)
}

func (e *Editor[T]) acaoPath(acao string) string {
	return e.itemPath(e.schema.ID(e.record)) + acao + "/"
}
