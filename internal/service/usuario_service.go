package service

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"
	"github.com/alexhcferreira/toolcare-backend/pkg/cpf"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UsuarioService interface {
	Criar(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, lq dto.ListQuery) ([]dto.UsuarioResponse, int64, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Desativar(ctx context.Context, id uuid.UUID, preview bool) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type usuarioService struct {
	repo       repository.UsuarioRepository
	filialRepo repository.FilialRepository
}

func NewUsuarioService(repo repository.UsuarioRepository, filialRepo repository.FilialRepository) UsuarioService {
	return &usuarioService{repo: repo, filialRepo: filialRepo}
}

func (s *usuarioService) Criar(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if !cpf.Valido(req.CPF) {
		return nil, apierror.Validation(map[string]string{"cpf": "CPF invalido"})
	}
	normalizado := cpf.Normalizar(req.CPF)
	if _, err := s.repo.FindByCPF(ctx, normalizado); err == nil {
		return nil, apierror.Duplicate("cpf", "Ja existe um usuario com este CPF")
	} else if !notFound(err) {
		return nil, apierror.From(err)
	}

	tipo := model.TipoAcesso(req.TipoAcesso)
	if !tipo.Valido() {
		return nil, apierror.Validation(map[string]string{"tipo_acesso": "tipo de acesso invalido"})
	}
	filiais, err := s.resolverFiliais(ctx, tipo, req.Filiais)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
	if err != nil {
		return nil, apierror.From(err)
	}

	u := &model.Usuario{
		Nome:       req.Nome,
		CPF:        normalizado,
		SenhaHash:  string(hash),
		TipoAcesso: tipo,
		Ativo:      true,
		Filiais:    filiais,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apierror.From(err)
	}
	return usuarioToResponse(u), nil
}

func (s *usuarioService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Usuario nao encontrado")
	}
	return usuarioToResponse(u), nil
}

func (s *usuarioService) Listar(ctx context.Context, lq dto.ListQuery) ([]dto.UsuarioResponse, int64, error) {
	us, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UsuarioResponse, len(us))
	for i := range us {
		out[i] = *usuarioToResponse(&us[i])
	}
	return out, total, nil
}

func (s *usuarioService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.New(apierror.CodeNotFound, "Usuario nao encontrado")
	}

	if req.Ativo != nil && *req.Ativo != u.Ativo {
		if *req.Ativo {
			if err := s.Reativar(ctx, id); err != nil {
				return nil, err
			}
		} else {
			if err := s.Desativar(ctx, id, false); err != nil {
				return nil, err
			}
		}
		u.Ativo = *req.Ativo
	}

	if req.Nome != nil {
		u.Nome = *req.Nome
	}
	if req.Senha != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), bcryptCost)
		if err != nil {
			return nil, apierror.From(err)
		}
		u.SenhaHash = string(hash)
	}

	tipo := u.TipoAcesso
	if req.TipoAcesso != nil {
		tipo = model.TipoAcesso(*req.TipoAcesso)
		if !tipo.Valido() {
			return nil, apierror.Validation(map[string]string{"tipo_acesso": "tipo de acesso invalido"})
		}
		u.TipoAcesso = tipo
	}

	if req.Filiais != nil {
		filiais, err := s.resolverFiliais(ctx, tipo, *req.Filiais)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceFiliais(ctx, u, filiais); err != nil {
			return nil, apierror.From(err)
		}
		u.Filiais = filiais
	} else if tipo == model.AcessoCoordenador && len(u.Filiais) == 0 {
		// Demoting to COORDENADOR without an assigned set would strand the user.
		return nil, apierror.Validation(map[string]string{"filiais": "coordenador precisa de ao menos uma filial"})
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, apierror.From(err)
	}
	return usuarioToResponse(u), nil
}

func (s *usuarioService) Desativar(ctx context.Context, id uuid.UUID, preview bool) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Usuario nao encontrado")
	}
	if !u.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Usuario ja esta inativo")
	}
	if preview {
		return nil
	}
	return apierror.From(s.repo.SetAtivo(ctx, id, false))
}

func (s *usuarioService) Reativar(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.New(apierror.CodeNotFound, "Usuario nao encontrado")
	}
	if u.Ativo {
		return apierror.New(apierror.CodeInvalidState, "Usuario ja esta ativo")
	}
	return apierror.From(s.repo.SetAtivo(ctx, id, true))
}

// resolverFiliais enforces the COORDENADOR rule: the scoped tier needs at
// least one filial; the global tiers may carry an empty set.
func (s *usuarioService) resolverFiliais(ctx context.Context, tipo model.TipoAcesso, raw []string) ([]model.Filial, error) {
	if tipo == model.AcessoCoordenador && len(raw) == 0 {
		return nil, apierror.Validation(map[string]string{"filiais": "coordenador precisa de ao menos uma filial"})
	}
	filiais := make([]model.Filial, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, apierror.Validation(map[string]string{"filiais": "uuid invalido"})
		}
		filial, err := s.filialRepo.FindByID(ctx, id)
		if err != nil || !filial.Ativo {
			return nil, apierror.Validation(map[string]string{"filiais": "filial inexistente ou inativa"})
		}
		filiais = append(filiais, *filial)
	}
	return filiais, nil
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	resp := &dto.UsuarioResponse{
		ID:         u.ID.String(),
		Nome:       u.Nome,
		CPF:        u.CPF,
		TipoAcesso: string(u.TipoAcesso),
		Ativo:      u.Ativo,
		Filiais:    make([]dto.FilialRef, 0, len(u.Filiais)),
	}
	for _, fl := range u.Filiais {
		resp.Filiais = append(resp.Filiais, dto.FilialRef{ID: fl.ID.String(), Nome: fl.Nome})
	}
	return resp
}
