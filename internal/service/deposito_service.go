package service

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/google/uuid"
)

type DepositoService interface {
	Criar(ctx context.Context, req dto.CriarDepositoRequest) (*dto.DepositoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DepositoResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.DepositoResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDepositoRequest) (*dto.DepositoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID, preview bool) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type depositoService struct {
	repo       repository.DepositoRepository
	filialRepo repository.FilialRepository
}

func NewDepositoService(repo repository.DepositoRepository, filialRepo repository.FilialRepository) DepositoService {
	return &depositoService{repo: repo, filialRepo: filialRepo}
}

func (s *depositoService) Criar(ctx context.Context, req dto.CriarDepositoRequest) (*dto.DepositoResponse, error) {
	filialID, err := uuid.Parse(req.FilialID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"filial_id": "uuid invalido"})
	}
	filial, err := s.filialRepo.FindByID(ctx, filialID)
	if err != nil || !filial.Ativo {
		return nil, apierror.Validation(map[string]string{"filial_id": "filial inexistente ou inativa"})
	}
	d := &model.Deposito{Nome: req.Nome, FilialID: filialID, Ativo: true}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, apierror.From(err)
	}
	d.Filial = filial
	return depositoToResponse(d), nil
}

func (s *depositoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.DepositoResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Deposito nao encontrado")
	}
	return depositoToResponse(d), nil
}

func (s *depositoService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.DepositoResponse, int64, error) {
	ds, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.DepositoResponse, len(ds))
	for i := range ds {
		out[i] = *depositoToResponse(&ds[i])
	}
	return out, total, nil
}

func (s *depositoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDepositoRequest) (*dto.DepositoResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Deposito nao encontrado")
	}
	if req.Nome != nil {
		d.Nome = *req.Nome
	}
	if req.FilialID != nil {
		filialID, err := uuid.Parse(*req.FilialID)
		if err != nil {
			return nil, apierror.Validation(map[string]string{"filial_id": "uuid invalido"})
		}
		filial, err := s.filialRepo.FindByID(ctx, filialID)
		if err != nil || !filial.Ativo {
			return nil, apierror.Validation(map[string]string{"filial_id": "filial inexistente ou inativa"})
		}
		d.FilialID = filialID
		d.Filial = filial
	}
	if req.Ativo != nil && *req.Ativo != d.Ativo {
		if *req.Ativo {
			if err := s.Reativar(ctx, id); err != nil {
				return nil, err
			}
		} else {
			if err := s.Desativar(ctx, id, false); err != nil {
				return nil, err
			}
		}
		d.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, apierror.From(err)
	}
	return depositoToResponse(d), nil
}

func (s *depositoService) Desativar(ctx context.Context, id uuid.UUID, preview bool) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Deposito nao encontrado")
	}
	if !d.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Deposito ja esta inativo")
	}
	bloqueantes, err := s.repo.FerramentasBloqueantes(ctx, id)
	if err != nil {
		return err
	}
	if len(bloqueantes) > 0 {
		return apierror.Blocked("Deposito possui ferramentas emprestadas ou em manutencao", bloquingItems(bloqueantes))
	}
	if preview {
		return nil
	}
	return s.repo.SetAtivo(ctx, id, false)
}

func (s *depositoService) Reativar(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Deposito nao encontrado")
	}
	if d.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Deposito ja esta ativo")
	}
	return s.repo.SetAtivo(ctx, id, true)
}

func depositoToResponse(d *model.Deposito) *dto.DepositoResponse {
	resp := &dto.DepositoResponse{
		ID:       d.ID.String(),
		Nome:     d.Nome,
		FilialID: d.FilialID.String(),
		Ativo:    d.Ativo,
	}
	if d.Filial != nil {
		resp.FilialNome = d.Filial.Nome
	}
	return resp
}
