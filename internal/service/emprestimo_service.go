package service

import (
	"context"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmprestimoService interface {
	Criar(ctx context.Context, req dto.CriarEmprestimoRequest) (*dto.EmprestimoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.EmprestimoResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.EmprestimoResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarEmprestimoRequest) (*dto.EmprestimoResponse, error)
	// Finalizar closes the loan and releases the tool back to DISPONIVEL.
	Finalizar(ctx context.Context, id uuid.UUID, req dto.FinalizarRequest) (*dto.EmprestimoResponse, error)
}

type emprestimoService struct {
	repo            repository.EmprestimoRepository
	ferramentaRepo  repository.FerramentaRepository
	funcionarioRepo repository.FuncionarioRepository
}

func NewEmprestimoService(
	repo repository.EmprestimoRepository,
	ferramentaRepo repository.FerramentaRepository,
	funcionarioRepo repository.FuncionarioRepository,
) EmprestimoService {
	return &emprestimoService{repo: repo, ferramentaRepo: ferramentaRepo, funcionarioRepo: funcionarioRepo}
}

func (s *emprestimoService) Criar(ctx context.Context, req dto.CriarEmprestimoRequest) (*dto.EmprestimoResponse, error) {
	inicio, err := parseData("data_inicio", req.DataInicio)
	if err != nil {
		return nil, err
	}
	if err := naoFutura("data_inicio", inicio); err != nil {
		return nil, err
	}
	var prevista *time.Time
	if req.DataPrevista != nil {
		p, err := parseData("data_prevista", *req.DataPrevista)
		if err != nil {
			return nil, err
		}
		if p.Before(inicio) {
			return nil, apierror.Validation(map[string]string{"data_prevista": "data prevista anterior a data inicial"})
		}
		prevista = &p
	}

	ferramentaID, err := uuid.Parse(req.FerramentaID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"ferramenta_id": "uuid invalido"})
	}
	funcionarioID, err := uuid.Parse(req.FuncionarioID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"funcionario_id": "uuid invalido"})
	}

	ferramenta, err := s.ferramentaRepo.FindByID(ctx, ferramentaID)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Ferramenta nao encontrada")
	}
	if ferramenta.Estado != model.EstadoDisponivel {
		return nil, apierror.New(apierror.CodeInvalidState, "Ferramenta nao esta disponivel para emprestimo")
	}
	funcionario, err := s.funcionarioRepo.FindByID(ctx, funcionarioID)
	if err != nil || !funcionario.Ativo {
		return nil, apierror.New(apierror.CodeNotFound, "Funcionario nao encontrado ou inativo")
	}
	if ferramenta.Deposito != nil && !funcionarioNaFilial(funcionario, ferramenta.Deposito.FilialID) {
		return nil, apierror.Validation(map[string]string{"funcionario_id": "funcionario nao pertence a filial da ferramenta"})
	}

	e := &model.Emprestimo{
		Nome:          req.Nome,
		FerramentaID:  ferramentaID,
		FuncionarioID: funcionarioID,
		DataInicio:    inicio,
		DataPrevista:  prevista,
		Observacoes:   req.Observacoes,
		Ativo:         true,
	}

	// Loan creation and the tool state flip are one atomic unit.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, e); err != nil {
			return err
		}
		return s.ferramentaRepo.UpdateEstadoTx(tx, ferramentaID, model.EstadoEmprestada)
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}

	e.Ferramenta = ferramenta
	e.Funcionario = funcionario
	return emprestimoToResponse(e), nil
}

func (s *emprestimoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.EmprestimoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Emprestimo nao encontrado")
	}
	return emprestimoToResponse(e), nil
}

func (s *emprestimoService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.EmprestimoResponse, int64, error) {
	es, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EmprestimoResponse, len(es))
	for i := range es {
		out[i] = *emprestimoToResponse(&es[i])
	}
	return out, total, nil
}

func (s *emprestimoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarEmprestimoRequest) (*dto.EmprestimoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Emprestimo nao encontrado")
	}
	if !e.Aberto() {
		return nil, apierror.New(apierror.CodeInvalidState, "Emprestimo ja foi finalizado")
	}
	if req.Nome != nil {
		e.Nome = *req.Nome
	}
	if req.Observacoes != nil {
		e.Observacoes = req.Observacoes
	}
	if req.DataPrevista != nil {
		p, err := parseData("data_prevista", *req.DataPrevista)
		if err != nil {
			return nil, err
		}
		if p.Before(e.DataInicio) {
			return nil, apierror.Validation(map[string]string{"data_prevista": "data prevista anterior a data inicial"})
		}
		e.DataPrevista = &p
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, apierror.From(err)
	}
	return emprestimoToResponse(e), nil
}

func (s *emprestimoService) Finalizar(ctx context.Context, id uuid.UUID, req dto.FinalizarRequest) (*dto.EmprestimoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Emprestimo nao encontrado")
	}
	if !e.Aberto() {
		return nil, apierror.New(apierror.CodeInvalidState, "Emprestimo ja foi finalizado")
	}
	fim, err := parseData("data_fim", req.DataFim)
	if err != nil {
		return nil, err
	}
	if err := fimAposInicio(e.DataInicio, fim); err != nil {
		return nil, err
	}

	e.DataFim = &fim
	e.Ativo = false
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, e); err != nil {
			return err
		}
		return s.ferramentaRepo.UpdateEstadoTx(tx, e.FerramentaID, model.EstadoDisponivel)
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}
	return emprestimoToResponse(e), nil
}

func funcionarioNaFilial(f *model.Funcionario, filialID uuid.UUID) bool {
	for _, fl := range f.Filiais {
		if fl.ID == filialID {
			return true
		}
	}
	return false
}

func emprestimoToResponse(e *model.Emprestimo) *dto.EmprestimoResponse {
	resp := &dto.EmprestimoResponse{
		ID:            e.ID.String(),
		Nome:          e.Nome,
		FerramentaID:  e.FerramentaID.String(),
		FuncionarioID: e.FuncionarioID.String(),
		DataInicio:    formatar(e.DataInicio),
		DataPrevista:  formatarPtr(e.DataPrevista),
		DataFim:       formatarPtr(e.DataFim),
		Observacoes:   e.Observacoes,
		Ativo:         e.Ativo,
	}
	if e.Ferramenta != nil {
		resp.FerramentaNome = e.Ferramenta.Nome
	}
	if e.Funcionario != nil {
		resp.FuncionarioNome = e.Funcionario.Nome
	}
	return resp
}
