package service

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/google/uuid"
)

type SetorService interface {
	Criar(ctx context.Context, req dto.CriarSetorRequest) (*dto.SetorResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.SetorResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.SetorResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarSetorRequest) (*dto.SetorResponse, error)
	Desativar(ctx context.Context, id uuid.UUID, preview bool) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type setorService struct {
	repo repository.SetorRepository
}

func NewSetorService(repo repository.SetorRepository) SetorService {
	return &setorService{repo: repo}
}

func (s *setorService) Criar(ctx context.Context, req dto.CriarSetorRequest) (*dto.SetorResponse, error) {
	st := &model.Setor{Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, apierror.Duplicate("nome", "Setor com este nome ja existe")
	}
	return setorToResponse(st), nil
}

func (s *setorService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.SetorResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Setor nao encontrado")
	}
	return setorToResponse(st), nil
}

func (s *setorService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.SetorResponse, int64, error) {
	sts, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SetorResponse, len(sts))
	for i := range sts {
		out[i] = *setorToResponse(&sts[i])
	}
	return out, total, nil
}

func (s *setorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarSetorRequest) (*dto.SetorResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Setor nao encontrado")
	}
	if req.Nome != nil {
		st.Nome = *req.Nome
	}
	if req.Descricao != nil {
		st.Descricao = req.Descricao
	}
	if req.Ativo != nil {
		st.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, apierror.Duplicate("nome", "Setor com este nome ja existe")
	}
	return setorToResponse(st), nil
}

func (s *setorService) Desativar(ctx context.Context, id uuid.UUID, preview bool) error {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Setor nao encontrado")
	}
	if !st.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Setor ja esta inativo")
	}
	if preview {
		return nil
	}
	return s.repo.SetAtivo(ctx, id, false)
}

func (s *setorService) Reativar(ctx context.Context, id uuid.UUID) error {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Setor nao encontrado")
	}
	if st.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Setor ja esta ativo")
	}
	return s.repo.SetAtivo(ctx, id, true)
}

func setorToResponse(st *model.Setor) *dto.SetorResponse {
	return &dto.SetorResponse{ID: st.ID.String(), Nome: st.Nome, Descricao: st.Descricao, Ativo: st.Ativo}
}
