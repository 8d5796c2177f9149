package client

import (
	"context"
	"net/url"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
)

// Typed listers for each collection endpoint.

func NewFilialLister(c *Client, cache *Cache, opts ...ListerOption[dto.FilialResponse]) *Lister[dto.FilialResponse] {
	return NewLister(c, cache, "filiais", "/api/filiais/", opts...)
}

func NewDepositoLister(c *Client, cache *Cache, opts ...ListerOption[dto.DepositoResponse]) *Lister[dto.DepositoResponse] {
	return NewLister(c, cache, "depositos", "/api/depositos/", opts...)
}

func NewFerramentaLister(c *Client, cache *Cache, opts ...ListerOption[dto.FerramentaResponse]) *Lister[dto.FerramentaResponse] {
	return NewLister(c, cache, "ferramentas", "/api/ferramentas/", opts...)
}

func NewFuncionarioLister(c *Client, cache *Cache, opts ...ListerOption[dto.FuncionarioResponse]) *Lister[dto.FuncionarioResponse] {
	return NewLister(c, cache, "funcionarios", "/api/funcionarios/", opts...)
}

func NewEmprestimoLister(c *Client, cache *Cache, opts ...ListerOption[dto.EmprestimoResponse]) *Lister[dto.EmprestimoResponse] {
	return NewLister(c, cache, "emprestimos", "/api/emprestimos/", opts...)
}

func NewManutencaoLister(c *Client, cache *Cache, opts ...ListerOption[dto.ManutencaoResponse]) *Lister[dto.ManutencaoResponse] {
	return NewLister(c, cache, "manutencoes", "/api/manutencoes/", opts...)
}

func NewCargoLister(c *Client, cache *Cache, opts ...ListerOption[dto.CargoResponse]) *Lister[dto.CargoResponse] {
	return NewLister(c, cache, "cargos", "/api/cargos/", opts...)
}

func NewSetorLister(c *Client, cache *Cache, opts ...ListerOption[dto.SetorResponse]) *Lister[dto.SetorResponse] {
	return NewLister(c, cache, "setores", "/api/setores/", opts...)
}

func NewUsuarioLister(c *Client, cache *Cache, opts ...ListerOption[dto.UsuarioResponse]) *Lister[dto.UsuarioResponse] {
	return NewLister(c, cache, "usuarios", "/api/usuarios/", opts...)
}

// Dashboard fetches the aggregate panel, optionally scoped to one branch.
func Dashboard(ctx context.Context, c *Client, filialID string) (*dto.DashboardResponse, error) {
	var q url.Values
	if filialID != "" {
		q = url.Values{"filial": {filialID}}
	}
	var out dto.DashboardResponse
	if err := c.get(ctx, "/api/dashboard/", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FerramentasDisponiveis is the option source for the loan form's tool
// select: only tools currently available in the chosen deposito qualify.
func FerramentasDisponiveis(c *Client) OptionSource {
	return func(ctx context.Context, depositoID string) ([]SelectOption, error) {
		var dep dto.DepositoResponse
		if err := c.get(ctx, "/api/depositos/"+depositoID+"/", nil, &dep); err != nil {
			return nil, err
		}
		opts := []SelectOption{}
		q := url.Values{
			"filial":       {dep.FilialID},
			"search_field": {"estado"},
			"search_value": {"DISPONIVEL"},
		}
		page := dto.Pagina[dto.FerramentaResponse]{}
		path := "/api/ferramentas/"
		for {
			if err := c.get(ctx, path, q, &page); err != nil {
				return nil, err
			}
			for _, f := range page.Results {
				if f.DepositoID == depositoID {
					opts = append(opts, SelectOption{ID: f.ID, Label: f.Nome + " (" + f.NumeroSerie + ")"})
				}
			}
			if page.Next == nil {
				break
			}
			path = pathOf(*page.Next)
			q = queryOf(*page.Next)
		}
		return opts, nil
	}
}

// FuncionariosDaFilial is the option source for the loan form's employee
// select: only active employees assigned to the tool's branch may borrow it.
func FuncionariosDaFilial(c *Client) OptionSource {
	return func(ctx context.Context, filialID string) ([]SelectOption, error) {
		opts := []SelectOption{}
		q := url.Values{
			"filial":         {filialID},
			"somente_ativos": {"true"},
		}
		page := dto.Pagina[dto.FuncionarioResponse]{}
		path := "/api/funcionarios/"
		for {
			if err := c.get(ctx, path, q, &page); err != nil {
				return nil, err
			}
			for _, f := range page.Results {
				opts = append(opts, SelectOption{ID: f.ID, Label: f.Nome + " (" + f.Matricula + ")"})
			}
			if page.Next == nil {
				break
			}
			path = pathOf(*page.Next)
			q = queryOf(*page.Next)
		}
		return opts, nil
	}
}

// EmprestimoDraft is the loan creation form. Validar runs the same date
// rules the server enforces so an out-of-order pair is rejected before any
// request is made.
type EmprestimoDraft struct {
	Nome          string
	FerramentaID  string
	FuncionarioID string
	DataInicio    string
	DataPrevista  string
	Observacoes   string
}

// Validar returns per-field problems; an empty map means the draft may be
// submitted.
func (d *EmprestimoDraft) Validar() map[string]string {
	fields := map[string]string{}
	if d.Nome == "" {
		fields["nome"] = "obrigatorio"
	}
	if d.FerramentaID == "" {
		fields["ferramenta_id"] = "obrigatorio"
	}
	if d.FuncionarioID == "" {
		fields["funcionario_id"] = "obrigatorio"
	}
	inicio, err := time.Parse(time.DateOnly, d.DataInicio)
	switch {
	case err != nil:
		fields["data_inicio"] = "data invalida"
	case inicio.After(time.Now()):
		fields["data_inicio"] = "data no futuro"
	}
	if d.DataPrevista != "" {
		prevista, perr := time.Parse(time.DateOnly, d.DataPrevista)
		switch {
		case perr != nil:
			fields["data_prevista"] = "data invalida"
		case err == nil && prevista.Before(inicio):
			fields["data_prevista"] = "anterior a data de inicio"
		}
	}
	return fields
}

// Criar submits the draft. Drafts that fail Validar never reach the network.
func (d *EmprestimoDraft) Criar(ctx context.Context, c *Client) (*dto.EmprestimoResponse, map[string]string, error) {
	if fields := d.Validar(); len(fields) > 0 {
		return nil, fields, nil
	}
	req := dto.CriarEmprestimoRequest{
		Nome:          d.Nome,
		FerramentaID:  d.FerramentaID,
		FuncionarioID: d.FuncionarioID,
		DataInicio:    d.DataInicio,
	}
	if d.DataPrevista != "" {
		req.DataPrevista = &d.DataPrevista
	}
	if d.Observacoes != "" {
		req.Observacoes = &d.Observacoes
	}
	var out dto.EmprestimoResponse
	if err := c.post(ctx, "/api/emprestimos/", req, &out); err != nil {
		return nil, nil, err
	}
	return &out, nil, nil
}

// FinalizarEmprestimo closes a loan; the end date is checked against the
// loan's start locally before the request goes out.
func FinalizarEmprestimo(ctx context.Context, c *Client, emp *dto.EmprestimoResponse, dataFim string) (map[string]string, error) {
	fim, err := time.Parse(time.DateOnly, dataFim)
	if err != nil {
		return map[string]string{"data_fim": "data invalida"}, nil
	}
	inicio, err := time.Parse(time.DateOnly, emp.DataInicio)
	if err == nil && fim.Before(inicio) {
		return map[string]string{"data_fim": "anterior a data de inicio"}, nil
	}
	return nil, c.patch(ctx, "/api/emprestimos/"+emp.ID+"/finalizar/", dto.FinalizarRequest{DataFim: dataFim}, nil)
}
