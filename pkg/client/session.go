package client

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/pkg/cpf"
)

// TokenStore persists a token pair between runs.
type TokenStore interface {
	Save(pair dto.TokenResponse) error
	Load() (dto.TokenResponse, error)
	Clear() error
}

// FileTokenStore keeps the pair as a mode-0600 JSON file.
type FileTokenStore struct {
	Path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{Path: path}
}

func (s *FileTokenStore) Save(pair dto.TokenResponse) error {
	raw, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0o600)
}

func (s *FileTokenStore) Load() (dto.TokenResponse, error) {
	var pair dto.TokenResponse
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return pair, err
	}
	err = json.Unmarshal(raw, &pair)
	return pair, err
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Identity is what the SDK knows about the logged-in user without asking the
// server: the access token claims.
type Identity struct {
	UserID     uuid.UUID
	Nome       string
	TipoAcesso model.TipoAcesso
	Filiais    []uuid.UUID
}

// Session owns the token pair and the decoded identity. A Session restored
// from a store whose access token no longer decodes clears itself silently
// and starts unauthenticated.
type Session struct {
	c     *Client
	store TokenStore

	mu       sync.RWMutex
	pair     dto.TokenResponse
	identity *Identity
}

func NewSession(baseURL string, store TokenStore, opts ...Option) *Session {
	s := &Session{store: store}
	opts = append(opts, WithTokenProvider(s.Access))
	s.c = New(baseURL, opts...)

	if store != nil {
		if pair, err := store.Load(); err == nil {
			if id, err := decodeIdentity(pair.Access); err == nil {
				s.pair = pair
				s.identity = id
			} else {
				_ = store.Clear()
			}
		}
	}
	return s
}

// Client returns the HTTP client bound to this session's token.
func (s *Session) Client() *Client { return s.c }

// Access returns the current access token, empty when logged out.
func (s *Session) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.Access
}

// Authenticated reports whether a decodable token pair is held.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Ready reports whether the session can stamp requests right now.
func (s *Session) Ready() bool {
	return s.Access() != ""
}

// Identity returns the decoded claims, or nil when logged out.
func (s *Session) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Login exchanges credentials for a token pair and persists it. The CPF is
// checked and normalized locally first; a malformed one never goes out.
func (s *Session) Login(ctx context.Context, loginCPF, senha string) error {
	if !cpf.Valido(loginCPF) {
		return apierror.Validation(map[string]string{"cpf": "cpf invalido"})
	}
	var pair dto.TokenResponse
	req := dto.TokenRequest{CPF: cpf.Normalizar(loginCPF), Senha: senha}
	if err := s.c.post(ctx, "/api/token/", req, &pair); err != nil {
		return err
	}
	return s.adopt(pair)
}

// Refresh trades the refresh token for a new pair. On an unauthorized
// response the session is cleared so the caller can route back to login.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.pair.Refresh
	s.mu.RUnlock()
	if refresh == "" {
		return apierror.New(apierror.CodeUnauthorized, "Sessao expirada")
	}

	var pair dto.TokenResponse
	err := s.c.post(ctx, "/api/token/refresh/", dto.RefreshRequest{Refresh: refresh}, &pair)
	if err != nil {
		var apiErr *apierror.Error
		if errors.As(err, &apiErr) && apiErr.Code == apierror.CodeUnauthorized {
			_ = s.Logout()
		}
		return err
	}
	return s.adopt(pair)
}

// Logout drops the pair from memory and from the store atomically: the store
// is cleared first so a crash cannot leave a pair on disk with none in memory
// being the stale one.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return err
		}
	}
	s.pair = dto.TokenResponse{}
	s.identity = nil
	return nil
}

func (s *Session) adopt(pair dto.TokenResponse) error {
	id, err := decodeIdentity(pair.Access)
	if err != nil {
		return apierror.New(apierror.CodeInternal, "Token de acesso ilegivel")
	}
	s.mu.Lock()
	s.pair = pair
	s.identity = id
	s.mu.Unlock()
	if s.store != nil {
		return s.store.Save(pair)
	}
	return nil
}

// decodeIdentity reads the access token claims without verifying the
// signature; the server is the only party that needs to trust them.
func decodeIdentity(access string) (*Identity, error) {
	if access == "" {
		return nil, errors.New("token vazio")
	}
	var claims jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return nil, err
	}

	idStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errors.New("claim user_id invalida")
	}
	nome, _ := claims["nome"].(string)
	tipoStr, _ := claims["tipo_acesso"].(string)
	tipo := model.TipoAcesso(tipoStr)
	if !tipo.Valido() {
		return nil, errors.New("claim tipo_acesso invalida")
	}

	var filiais []uuid.UUID
	if raw, ok := claims["filiais"].([]any); ok {
		for _, v := range raw {
			str, _ := v.(string)
			id, err := uuid.Parse(str)
			if err != nil {
				continue
			}
			filiais = append(filiais, id)
		}
	}
	return &Identity{UserID: userID, Nome: nome, TipoAcesso: tipo, Filiais: filiais}, nil
}
