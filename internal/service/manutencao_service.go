package service

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManutencaoService interface {
	Criar(ctx context.Context, req dto.CriarManutencaoRequest) (*dto.ManutencaoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ManutencaoResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.ManutencaoResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarManutencaoRequest) (*dto.ManutencaoResponse, error)
	Finalizar(ctx context.Context, id uuid.UUID, req dto.FinalizarRequest) (*dto.ManutencaoResponse, error)
}

type manutencaoService struct {
	repo           repository.ManutencaoRepository
	ferramentaRepo repository.FerramentaRepository
}

func NewManutencaoService(repo repository.ManutencaoRepository, ferramentaRepo repository.FerramentaRepository) ManutencaoService {
	return &manutencaoService{repo: repo, ferramentaRepo: ferramentaRepo}
}

func (s *manutencaoService) Criar(ctx context.Context, req dto.CriarManutencaoRequest) (*dto.ManutencaoResponse, error) {
	inicio, err := parseData("data_inicio", req.DataInicio)
	if err != nil {
		return nil, err
	}
	if err := naoFutura("data_inicio", inicio); err != nil {
		return nil, err
	}
	tipo := model.TipoManutencao(req.Tipo)
	if tipo != model.ManutencaoPreventiva && tipo != model.ManutencaoCorretiva {
		return nil, apierror.Validation(map[string]string{"tipo": "tipo de manutencao invalido"})
	}

	ferramentaID, err := uuid.Parse(req.FerramentaID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"ferramenta_id": "uuid invalido"})
	}
	ferramenta, err := s.ferramentaRepo.FindByID(ctx, ferramentaID)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Ferramenta nao encontrada")
	}
	if ferramenta.Estado != model.EstadoDisponivel {
		return nil, apierror.New(apierror.CodeInvalidState, "Ferramenta nao esta disponivel para manutencao")
	}

	m := &model.Manutencao{
		Nome:         req.Nome,
		FerramentaID: ferramentaID,
		Tipo:         tipo,
		DataInicio:   inicio,
		Observacoes:  req.Observacoes,
		Ativo:        true,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, m); err != nil {
			return err
		}
		return s.ferramentaRepo.UpdateEstadoTx(tx, ferramentaID, model.EstadoEmManutencao)
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}

	m.Ferramenta = ferramenta
	return manutencaoToResponse(m), nil
}

func (s *manutencaoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ManutencaoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Manutencao nao encontrada")
	}
	return manutencaoToResponse(m), nil
}

func (s *manutencaoService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.ManutencaoResponse, int64, error) {
	ms, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ManutencaoResponse, len(ms))
	for i := range ms {
		out[i] = *manutencaoToResponse(&ms[i])
	}
	return out, total, nil
}

func (s *manutencaoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarManutencaoRequest) (*dto.ManutencaoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Manutencao nao encontrada")
	}
	if !m.Aberta() {
		return nil, apierror.New(apierror.CodeInvalidState, "Manutencao ja foi finalizada")
	}
	if req.Nome != nil {
		m.Nome = *req.Nome
	}
	if req.Observacoes != nil {
		m.Observacoes = req.Observacoes
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, apierror.From(err)
	}
	return manutencaoToResponse(m), nil
}

func (s *manutencaoService) Finalizar(ctx context.Context, id uuid.UUID, req dto.FinalizarRequest) (*dto.ManutencaoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Manutencao nao encontrada")
	}
	if !m.Aberta() {
		return nil, apierror.New(apierror.CodeInvalidState, "Manutencao ja foi finalizada")
	}
	fim, err := parseData("data_fim", req.DataFim)
	if err != nil {
		return nil, err
	}
	if err := fimAposInicio(m.DataInicio, fim); err != nil {
		return nil, err
	}

	m.DataFim = &fim
	m.Ativo = false
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, m); err != nil {
			return err
		}
		return s.ferramentaRepo.UpdateEstadoTx(tx, m.FerramentaID, model.EstadoDisponivel)
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}
	return manutencaoToResponse(m), nil
}

func manutencaoToResponse(m *model.Manutencao) *dto.ManutencaoResponse {
	resp := &dto.ManutencaoResponse{
		ID:           m.ID.String(),
		Nome:         m.Nome,
		FerramentaID: m.FerramentaID.String(),
		Tipo:         string(m.Tipo),
		DataInicio:   formatar(m.DataInicio),
		DataFim:      formatarPtr(m.DataFim),
		Observacoes:  m.Observacoes,
		Ativo:        m.Ativo,
	}
	if m.Ferramenta != nil {
		resp.FerramentaNome = m.Ferramenta.Nome
	}
	return resp
}
