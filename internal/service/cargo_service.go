package service

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/google/uuid"
)

type CargoService interface {
	Criar(ctx context.Context, req dto.CriarCargoRequest) (*dto.CargoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.CargoResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.CargoResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarCargoRequest) (*dto.CargoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID, preview bool) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type cargoService struct {
	repo repository.CargoRepository
}

func NewCargoService(repo repository.CargoRepository) CargoService {
	return &cargoService{repo: repo}
}

func (s *cargoService) Criar(ctx context.Context, req dto.CriarCargoRequest) (*dto.CargoResponse, error) {
	c := &model.Cargo{Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.Duplicate("nome", "Cargo com este nome ja existe")
	}
	return cargoToResponse(c), nil
}

func (s *cargoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.CargoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Cargo nao encontrado")
	}
	return cargoToResponse(c), nil
}

func (s *cargoService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.CargoResponse, int64, error) {
	cs, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.CargoResponse, len(cs))
	for i := range cs {
		out[i] = *cargoToResponse(&cs[i])
	}
	return out, total, nil
}

func (s *cargoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarCargoRequest) (*dto.CargoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Cargo nao encontrado")
	}
	if req.Nome != nil {
		c.Nome = *req.Nome
	}
	if req.Descricao != nil {
		c.Descricao = req.Descricao
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.Duplicate("nome", "Cargo com este nome ja existe")
	}
	return cargoToResponse(c), nil
}

func (s *cargoService) Desativar(ctx context.Context, id uuid.UUID, preview bool) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Cargo nao encontrado")
	}
	if !c.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Cargo ja esta inativo")
	}
	if preview {
		return nil
	}
	return s.repo.SetAtivo(ctx, id, false)
}

func (s *cargoService) Reativar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Cargo nao encontrado")
	}
	if c.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Cargo ja esta ativo")
	}
	return s.repo.SetAtivo(ctx, id, true)
}

func cargoToResponse(c *model.Cargo) *dto.CargoResponse {
	return &dto.CargoResponse{ID: c.ID.String(), Nome: c.Nome, Descricao: c.Descricao, Ativo: c.Ativo}
}
