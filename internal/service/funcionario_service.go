package service

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"
	"github.com/alexhcferreira/toolcare-backend/pkg/cpf"

	"github.com/google/uuid"
)

type FuncionarioService interface {
	Criar(ctx context.Context, req dto.CriarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FuncionarioResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.FuncionarioResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	AtualizarFoto(ctx context.Context, id uuid.UUID, fotoPath string) error
	Desativar(ctx context.Context, id uuid.UUID, preview bool) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type funcionarioService struct {
	repo           repository.FuncionarioRepository
	filialRepo     repository.FilialRepository
	setorRepo      repository.SetorRepository
	cargoRepo      repository.CargoRepository
	emprestimoRepo repository.EmprestimoRepository
}

func NewFuncionarioService(
	repo repository.FuncionarioRepository,
	filialRepo repository.FilialRepository,
	setorRepo repository.SetorRepository,
	cargoRepo repository.CargoRepository,
	emprestimoRepo repository.EmprestimoRepository,
) FuncionarioService {
	return &funcionarioService{
		repo:           repo,
		filialRepo:     filialRepo,
		setorRepo:      setorRepo,
		cargoRepo:      cargoRepo,
		emprestimoRepo: emprestimoRepo,
	}
}

func (s *funcionarioService) Criar(ctx context.Context, req dto.CriarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	if !cpf.Valido(req.CPF) {
		return nil, apierror.Validation(map[string]string{"cpf": "cpf invalido"})
	}
	doc := cpf.Normalizar(req.CPF)

	if _, err := s.repo.FindByCPF(ctx, doc); err == nil {
		return nil, apierror.Duplicate("cpf", "CPF ja cadastrado")
	} else if !notFound(err) {
		return nil, apierror.From(err)
	}
	if _, err := s.repo.FindByMatricula(ctx, req.Matricula); err == nil {
		return nil, apierror.Duplicate("matricula", "Matricula ja cadastrada")
	} else if !notFound(err) {
		return nil, apierror.From(err)
	}

	f := &model.Funcionario{
		Nome:      req.Nome,
		CPF:       doc,
		Matricula: req.Matricula,
		Ativo:     true,
	}
	if err := s.resolverRelacionamentos(ctx, f, req.SetorID, req.CargoID, req.Filiais); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, apierror.From(err)
	}
	return funcionarioToResponse(f), nil
}

func (s *funcionarioService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FuncionarioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Funcionario nao encontrado")
	}
	return funcionarioToResponse(f), nil
}

func (s *funcionarioService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.FuncionarioResponse, int64, error) {
	fs, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.FuncionarioResponse, len(fs))
	for i := range fs {
		out[i] = *funcionarioToResponse(&fs[i])
	}
	return out, total, nil
}

func (s *funcionarioService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Funcionario nao encontrado")
	}
	if err := s.bloquearComEmprestimoAberto(ctx, f); err != nil {
		return nil, err
	}

	if req.CPF != nil {
		if !cpf.Valido(*req.CPF) {
			return nil, apierror.Validation(map[string]string{"cpf": "cpf invalido"})
		}
		doc := cpf.Normalizar(*req.CPF)
		if doc != f.CPF {
			if _, err := s.repo.FindByCPF(ctx, doc); err == nil {
				return nil, apierror.Duplicate("cpf", "CPF ja cadastrado")
			} else if !notFound(err) {
				return nil, apierror.From(err)
			}
			f.CPF = doc
		}
	}
	if req.Matricula != nil && *req.Matricula != f.Matricula {
		if _, err := s.repo.FindByMatricula(ctx, *req.Matricula); err == nil {
			return nil, apierror.Duplicate("matricula", "Matricula ja cadastrada")
		} else if !notFound(err) {
			return nil, apierror.From(err)
		}
		f.Matricula = *req.Matricula
	}
	if req.Nome != nil {
		f.Nome = *req.Nome
	}

	var filiais []string
	if req.Filiais != nil {
		filiais = *req.Filiais
	}
	if err := s.resolverRelacionamentos(ctx, f, req.SetorID, req.CargoID, filiais); err != nil {
		return nil, err
	}
	if req.Filiais != nil {
		if err := s.repo.ReplaceFiliais(ctx, f, f.Filiais); err != nil {
			return nil, apierror.From(err)
		}
	}

	// ativo flips in PATCH go through the same guarded paths as the
	// dedicated endpoints.
	if req.Ativo != nil && *req.Ativo != f.Ativo {
		if *req.Ativo {
			if err := s.Reativar(ctx, id); err != nil {
				return nil, err
			}
		} else {
			if err := s.Desativar(ctx, id, false); err != nil {
				return nil, err
			}
		}
		f.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, apierror.From(err)
	}
	return funcionarioToResponse(f), nil
}

func (s *funcionarioService) AtualizarFoto(ctx context.Context, id uuid.UUID, fotoPath string) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Funcionario nao encontrado")
	}
	f.FotoPath = &fotoPath
	if err := s.repo.Update(ctx, f); err != nil {
		return apierror.From(err)
	}
	return nil
}

func (s *funcionarioService) Desativar(ctx context.Context, id uuid.UUID, preview bool) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Funcionario nao encontrado")
	}
	if !f.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Funcionario ja esta inativo")
	}
	if err := s.bloquearComEmprestimoAberto(ctx, f); err != nil {
		return err
	}
	if preview {
		return nil
	}
	return s.repo.SetAtivo(ctx, id, false)
}

func (s *funcionarioService) Reativar(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Funcionario nao encontrado")
	}
	if f.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Funcionario ja esta ativo")
	}
	return s.repo.SetAtivo(ctx, id, true)
}

// bloquearComEmprestimoAberto enforces the loan lock: an employee holding a
// tool cannot be edited or deactivated.
func (s *funcionarioService) bloquearComEmprestimoAberto(ctx context.Context, f *model.Funcionario) error {
	n, err := s.emprestimoRepo.CountAbertosPorFuncionario(ctx, f.ID)
	if err != nil {
		return apierror.From(err)
	}
	if n > 0 {
		return apierror.New(apierror.CodeBlocked, "Funcionario possui emprestimo ativo")
	}
	return nil
}

// resolverRelacionamentos validates and attaches setor, cargo and filiais.
// A nil pointer leaves the relation untouched; an empty filiais slice leaves
// the set untouched (callers decide whether to replace).
func (s *funcionarioService) resolverRelacionamentos(ctx context.Context, f *model.Funcionario, setorID, cargoID *string, filiais []string) error {
	if setorID != nil {
		id, err := uuid.Parse(*setorID)
		if err != nil {
			return apierror.Validation(map[string]string{"setor_id": "uuid invalido"})
		}
		setor, err := s.setorRepo.FindByID(ctx, id)
		if err != nil || !setor.Ativo {
			return apierror.Validation(map[string]string{"setor_id": "setor inexistente ou inativo"})
		}
		f.SetorID = &id
		f.Setor = setor
	}
	if cargoID != nil {
		id, err := uuid.Parse(*cargoID)
		if err != nil {
			return apierror.Validation(map[string]string{"cargo_id": "uuid invalido"})
		}
		cargo, err := s.cargoRepo.FindByID(ctx, id)
		if err != nil || !cargo.Ativo {
			return apierror.Validation(map[string]string{"cargo_id": "cargo inexistente ou inativo"})
		}
		f.CargoID = &id
		f.Cargo = cargo
	}
	if len(filiais) > 0 {
		fs := make([]model.Filial, 0, len(filiais))
		for _, raw := range filiais {
			id, err := uuid.Parse(raw)
			if err != nil {
				return apierror.Validation(map[string]string{"filiais": "uuid invalido"})
			}
			filial, err := s.filialRepo.FindByID(ctx, id)
			if err != nil || !filial.Ativo {
				return apierror.Validation(map[string]string{"filiais": "filial inexistente ou inativa"})
			}
			fs = append(fs, *filial)
		}
		f.Filiais = fs
	}
	return nil
}

func funcionarioToResponse(f *model.Funcionario) *dto.FuncionarioResponse {
	resp := &dto.FuncionarioResponse{
		ID:        f.ID.String(),
		Nome:      f.Nome,
		CPF:       f.CPF,
		Matricula: f.Matricula,
		FotoURL:   fotoURL(f.FotoPath),
		Ativo:     f.Ativo,
		Filiais:   make([]dto.FilialRef, 0, len(f.Filiais)),
	}
	if f.SetorID != nil {
		id := f.SetorID.String()
		resp.SetorID = &id
		if f.Setor != nil {
			resp.SetorNome = &f.Setor.Nome
		}
	}
	if f.CargoID != nil {
		id := f.CargoID.String()
		resp.CargoID = &id
		if f.Cargo != nil {
			resp.CargoNome = &f.Cargo.Nome
		}
	}
	for _, fl := range f.Filiais {
		resp.Filiais = append(resp.Filiais, dto.FilialRef{ID: fl.ID.String(), Nome: fl.Nome})
	}
	return resp
}
