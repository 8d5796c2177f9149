package service

import (
	"context"
	"path"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"

	"github.com/google/uuid"
)

type FerramentaService interface {
	Criar(ctx context.Context, req dto.CriarFerramentaRequest) (*dto.FerramentaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FerramentaResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.FerramentaResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFerramentaRequest) (*dto.FerramentaResponse, error)
	AtualizarFoto(ctx context.Context, id uuid.UUID, fotoPath string) error
	Desativar(ctx context.Context, id uuid.UUID, preview bool) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type ferramentaService struct {
	repo         repository.FerramentaRepository
	depositoRepo repository.DepositoRepository
}

func NewFerramentaService(repo repository.FerramentaRepository, depositoRepo repository.DepositoRepository) FerramentaService {
	return &ferramentaService{repo: repo, depositoRepo: depositoRepo}
}

func (s *ferramentaService) Criar(ctx context.Context, req dto.CriarFerramentaRequest) (*dto.FerramentaResponse, error) {
	aquisicao, err := parseData("data_aquisicao", req.DataAquisicao)
	if err != nil {
		return nil, err
	}
	if err := naoFutura("data_aquisicao", aquisicao); err != nil {
		return nil, err
	}
	if req.ValorAquisicao.IsNegative() {
		return nil, apierror.Validation(map[string]string{"valor_aquisicao": "valor nao pode ser negativo"})
	}
	depositoID, err := uuid.Parse(req.DepositoID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"deposito_id": "uuid invalido"})
	}
	deposito, err := s.depositoRepo.FindByID(ctx, depositoID)
	if err != nil || !deposito.Ativo {
		return nil, apierror.Validation(map[string]string{"deposito_id": "deposito inexistente ou inativo"})
	}

	// Pre-check keeps the duplicate attribution on the right field instead of
	// surfacing a raw unique-constraint error.
	if _, err := s.repo.FindByNumeroSerie(ctx, req.NumeroSerie); err == nil {
		return nil, apierror.Duplicate("numero_serie", "Numero de serie ja cadastrado")
	} else if !notFound(err) {
		return nil, apierror.From(err)
	}

	f := &model.Ferramenta{
		Nome:           req.Nome,
		NumeroSerie:    req.NumeroSerie,
		DataAquisicao:  aquisicao,
		ValorAquisicao: req.ValorAquisicao,
		Descricao:      req.Descricao,
		Estado:         model.EstadoDisponivel,
		DepositoID:     depositoID,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, apierror.From(err)
	}
	f.Deposito = deposito
	return ferramentaToResponse(f), nil
}

func (s *ferramentaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FerramentaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Ferramenta nao encontrada")
	}
	return ferramentaToResponse(f), nil
}

func (s *ferramentaService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.FerramentaResponse, int64, error) {
	fs, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.FerramentaResponse, len(fs))
	for i := range fs {
		out[i] = *ferramentaToResponse(&fs[i])
	}
	return out, total, nil
}

func (s *ferramentaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFerramentaRequest) (*dto.FerramentaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Ferramenta nao encontrada")
	}
	// Only available tools may be edited; loaned/in-maintenance wait for the
	// open record to close, inactive ones must be reactivated first.
	if !f.Editavel() {
		return nil, apierror.New(apierror.CodeInvalidState, "Apenas ferramentas disponiveis podem ser editadas")
	}

	if req.NumeroSerie != nil && *req.NumeroSerie != f.NumeroSerie {
		if _, err := s.repo.FindByNumeroSerie(ctx, *req.NumeroSerie); err == nil {
			return nil, apierror.Duplicate("numero_serie", "Numero de serie ja cadastrado")
		} else if !notFound(err) {
			return nil, apierror.From(err)
		}
		f.NumeroSerie = *req.NumeroSerie
	}
	if req.Nome != nil {
		f.Nome = *req.Nome
	}
	if req.DataAquisicao != nil {
		aquisicao, err := parseData("data_aquisicao", *req.DataAquisicao)
		if err != nil {
			return nil, err
		}
		if err := naoFutura("data_aquisicao", aquisicao); err != nil {
			return nil, err
		}
		f.DataAquisicao = aquisicao
	}
	if req.ValorAquisicao != nil {
		if req.ValorAquisicao.IsNegative() {
			return nil, apierror.Validation(map[string]string{"valor_aquisicao": "valor nao pode ser negativo"})
		}
		f.ValorAquisicao = *req.ValorAquisicao
	}
	if req.Descricao != nil {
		f.Descricao = req.Descricao
	}
	if req.DepositoID != nil {
		depositoID, err := uuid.Parse(*req.DepositoID)
		if err != nil {
			return nil, apierror.Validation(map[string]string{"deposito_id": "uuid invalido"})
		}
		deposito, err := s.depositoRepo.FindByID(ctx, depositoID)
		if err != nil || !deposito.Ativo {
			return nil, apierror.Validation(map[string]string{"deposito_id": "deposito inexistente ou inativo"})
		}
		f.DepositoID = depositoID
		f.Deposito = deposito
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, apierror.From(err)
	}
	return ferramentaToResponse(f), nil
}

func (s *ferramentaService) AtualizarFoto(ctx context.Context, id uuid.UUID, fotoPath string) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Ferramenta nao encontrada")
	}
	f.FotoPath = &fotoPath
	if err := s.repo.Update(ctx, f); err != nil {
		return apierror.From(err)
	}
	return nil
}

func (s *ferramentaService) Desativar(ctx context.Context, id uuid.UUID, preview bool) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Ferramenta nao encontrada")
	}
	switch f.Estado {
	case model.EstadoInativa:
		return apierror.New(apierror.CodeInvalidState, "Ferramenta ja esta inativa")
	case model.EstadoEmprestada, model.EstadoEmManutencao:
		return apierror.Blocked("Ferramenta esta emprestada ou em manutencao",
			[]apierror.BlockingItem{{ID: f.ID.String(), Nome: f.Nome, Estado: string(f.Estado)}})
	}
	if preview {
		return nil
	}
	return s.repo.UpdateEstado(ctx, id, model.EstadoInativa)
}

func (s *ferramentaService) Reativar(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Ferramenta nao encontrada")
	}
	if f.Estado != model.EstadoInativa {
		return apierror.New(apierror.CodeInvalidState, "Apenas ferramentas inativas podem ser reativadas")
	}
	return s.repo.UpdateEstado(ctx, id, model.EstadoDisponivel)
}

func ferramentaToResponse(f *model.Ferramenta) *dto.FerramentaResponse {
	resp := &dto.FerramentaResponse{
		ID:             f.ID.String(),
		Nome:           f.Nome,
		NumeroSerie:    f.NumeroSerie,
		DataAquisicao:  formatar(f.DataAquisicao),
		ValorAquisicao: f.ValorAquisicao,
		Descricao:      f.Descricao,
		Estado:         string(f.Estado),
		DepositoID:     f.DepositoID.String(),
		FotoURL:        fotoURL(f.FotoPath),
	}
	if f.Deposito != nil {
		resp.DepositoNome = f.Deposito.Nome
		resp.FilialID = f.Deposito.FilialID.String()
		if f.Deposito.Filial != nil {
			resp.FilialNome = f.Deposito.Filial.Nome
		}
	}
	return resp
}

// fotoURL maps a stored file path to the public /fotos/ route.
func fotoURL(p *string) *string {
	if p == nil {
		return nil
	}
	u := "/fotos/" + path.Base(*p)
	return &u
}
