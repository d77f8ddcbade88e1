package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/control-stock-api/internal/application/auth"
	"github.com/tu-usuario/control-stock-api/internal/application/dto"
	"github.com/tu-usuario/control-stock-api/internal/domain"
	"github.com/tu-usuario/control-stock-api/internal/domain/entity"
	"github.com/tu-usuario/control-stock-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "control-stock",
	}), repo
}

func TestRegisterUser_RolPorDefectoYHash(t *testing.T) {
	uc, repo := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.com",
		Password: "clave-segura",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, resp.Role)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "ana@tienda.com", resp.Name) // sin nombre se usa el email

	// El password nunca se guarda en claro
	stored := repo.byEmail["ana@tienda.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_CamposObligatorios(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@b.com", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenConUserIDYRol(t *testing.T) {
	uc, _ := newAuthUC()

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "bodega@tienda.com",
		Password: "clave-segura",
		Role:     entity.RoleBodeguero,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "bodega@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.ID, resp.User.ID)

	userID, role, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleBodeguero, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.com", Password: "clave-mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ex@tienda.com", Password: "clave-segura"})
	require.NoError(t, err)
	repo.byEmail["ex@tienda.com"].Status = "inactive"

	_, err = uc.Login(dto.LoginRequest{Email: "ex@tienda.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
