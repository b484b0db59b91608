package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/auth"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/permissao"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain/entity"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/api"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/storage"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

type ambiente struct {
	contexto *auth.Contexto
	escopo   *storage.Escopo
	store    *storage.Store
	backend  *backendFalso
	authSvc  *api.AuthService
}

// backendFalso simula o backend de cultos com respostas programáveis.
type backendFalso struct {
	mu             chan struct{} // bloqueia /auth/verify enquanto aberto (nil = não bloqueia)
	loginMu        chan struct{} // bloqueia o PRIMEIRO /auth/login enquanto aberto (nil = não bloqueia)
	verifyOK       atomic.Bool
	logoutAvisos   atomic.Int32
	verifyChamadas atomic.Int32
	loginChamadas  atomic.Int32
}

func (b *backendFalso) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			n := b.loginChamadas.Add(1)
			if b.loginMu != nil && n == 1 {
				<-b.loginMu
			}
			var in struct {
				Email string `json:"email"`
				Senha string `json:"senha"`
			}
			json.NewDecoder(r.Body).Decode(&in)
			if in.Senha != "senha-certa" {
				json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "credenciais incorretas"})
				return
			}
			token := tokenVigente
			if b.loginMu != nil {
				// Tokens distinguíveis por chamada, para aferir qual login
				// ficou persistido.
				token = fmt.Sprintf("token-login-%d", n)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"token":   token,
				"usuario": usuarioJSON,
			})
		case "/auth/verify":
			b.verifyChamadas.Add(1)
			if b.mu != nil {
				<-b.mu
			}
			if !b.verifyOK.Load() {
				json.NewEncoder(w).Encode(map[string]any{"success": false})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"success": true, "usuario": usuarioJSON})
		case "/auth/logout":
			b.logoutAvisos.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

var usuarioJSON = map[string]any{
	"id":    7,
	"nome":  "Maria",
	"email": "maria@igreja.org",
	"perfil": map[string]any{
		"id":         2,
		"nome":       entity.PerfilSecretario,
		"permissoes": []map[string]string{{"codigo": "read_pessoas", "nome": "read_pessoas"}},
	},
}

var tokenVigente = func() string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	assinado, err := tok.SignedString([]byte("segredo-de-teste"))
	if err != nil {
		panic(err)
	}
	return assinado
}()

func novoAmbiente(t *testing.T) *ambiente {
	t.Helper()

	backend := &backendFalso{}
	backend.verifyOK.Store(true)

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	store, err := storage.Abrir(filepath.Join(t.TempDir(), "sessoes.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Fechar() })

	escopo := store.Escopo("sid-teste")
	client := api.New(api.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, logger.Nop())
	authSvc := api.NovoAuthService(client.Sessao(escopo, nil), escopo, logger.Nop())
	av := permissao.NovoAvaliador(nil)

	return &ambiente{
		contexto: auth.NovoContexto(authSvc, escopo, av, logger.Nop()),
		escopo:   escopo,
		store:    store,
		backend:  backend,
		authSvc:  authSvc,
	}
}

// sessaoArmazenada simula uma sessão persistida de uma visita anterior.
func (a *ambiente) sessaoArmazenada(t *testing.T) {
	t.Helper()
	a.escopo.DefinirToken(tokenVigente)
	a.escopo.DefinirUsuario(&entity.Usuario{
		ID:    7,
		Nome:  "Maria",
		Email: "maria@igreja.org",
		Perfil: &entity.Perfil{
			ID:         2,
			Nome:       entity.PerfilSecretario,
			Permissoes: []entity.Permissao{{Codigo: "read_pessoas", Nome: "read_pessoas"}},
		},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Inicialização
// ──────────────────────────────────────────────────────────────────────────────

// Cenário: primeira visita, nada armazenado. Resolve NaoAutenticado sem
// consultar o backend.
func TestInicializar_SemSessaoArmazenada(t *testing.T) {
	amb := novoAmbiente(t)

	assert.Equal(t, auth.EstadoInicializando, amb.contexto.Estado())

	amb.contexto.Inicializar(context.Background())

	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado())
	assert.Zero(t, amb.backend.verifyChamadas.Load(), "sem token não há verificação em rede")
}

// Cenário: sessão persistida válida. Resolve Autenticado com o usuário
// verificado.
func TestInicializar_SessaoValida(t *testing.T) {
	amb := novoAmbiente(t)
	amb.sessaoArmazenada(t)

	amb.contexto.Inicializar(context.Background())

	require.Equal(t, auth.EstadoAutenticado, amb.contexto.Estado())
	assert.Equal(t, "maria@igreja.org", amb.contexto.Usuario().Email)
	assert.True(t, amb.contexto.TemPermissao("read_pessoas"))
}

// Cenário: token recusado pelo backend. Degrada para NaoAutenticado com o
// armazenamento limpo.
func TestInicializar_TokenRecusado(t *testing.T) {
	amb := novoAmbiente(t)
	amb.sessaoArmazenada(t)
	amb.backend.verifyOK.Store(false)

	amb.contexto.Inicializar(context.Background())

	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado())
	_, ok := amb.escopo.Token()
	assert.False(t, ok, "credenciais recusadas são descartadas")
}

// Cenário: backend fora do ar. Falha fecha: NaoAutenticado, nunca preso em
// Inicializando.
func TestInicializar_BackendForaDoAr(t *testing.T) {
	backend := &backendFalso{}
	srv := httptest.NewServer(backend.handler())
	srv.Close() // fora do ar desde o início

	store, err := storage.Abrir(filepath.Join(t.TempDir(), "sessoes.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Fechar() })

	escopo := store.Escopo("sid-teste")
	escopo.DefinirToken(tokenVigente)
	escopo.DefinirUsuario(&entity.Usuario{ID: 7, Email: "maria@igreja.org"})

	client := api.New(api.Config{BaseURL: srv.URL, Timeout: time.Second}, logger.Nop())
	authSvc := api.NovoAuthService(client.Sessao(escopo, nil), escopo, logger.Nop())
	ctx := auth.NovoContexto(authSvc, escopo, permissao.NovoAvaliador(nil), logger.Nop())

	ctx.Inicializar(context.Background())

	assert.Equal(t, auth.EstadoNaoAutenticado, ctx.Estado())
}

// Cenário: sessão parcial (token sem snapshot). Autocorrige para ausente
// sem ir à rede.
func TestInicializar_SessaoParcial(t *testing.T) {
	amb := novoAmbiente(t)
	amb.escopo.DefinirToken(tokenVigente)

	amb.contexto.Inicializar(context.Background())

	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado())
	assert.Zero(t, amb.backend.verifyChamadas.Load())
	_, ok := amb.escopo.Token()
	assert.False(t, ok, "o resto da sessão parcial foi limpo")
}

// AguardarInicializacao desbloqueia quando a primeira verificação resolve, e
// respeita o contexto do chamador.
func TestAguardarInicializacao(t *testing.T) {
	amb := novoAmbiente(t)

	curto, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := amb.contexto.AguardarInicializacao(curto)
	assert.Error(t, err, "antes de inicializar, a espera expira com o ctx")

	amb.contexto.Inicializar(context.Background())
	assert.NoError(t, amb.contexto.AguardarInicializacao(context.Background()))
}

// InicializarUmaVez dispara uma única inicialização em segundo plano.
func TestInicializarUmaVez(t *testing.T) {
	amb := novoAmbiente(t)
	amb.sessaoArmazenada(t)

	amb.contexto.InicializarUmaVez()
	amb.contexto.InicializarUmaVez()
	amb.contexto.InicializarUmaVez()

	require.NoError(t, amb.contexto.AguardarInicializacao(context.Background()))
	assert.Equal(t, auth.EstadoAutenticado, amb.contexto.Estado())
	assert.Equal(t, int32(1), amb.backend.verifyChamadas.Load(), "uma verificação, não três")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login e logout
// ──────────────────────────────────────────────────────────────────────────────

// Login com credenciais corretas autentica e persiste; um contexto novo
// sobre o mesmo escopo (recarga) reencontra a sessão.
func TestLogin_Sucesso_E_Recarga(t *testing.T) {
	amb := novoAmbiente(t)
	amb.contexto.Inicializar(context.Background())

	res := amb.contexto.Login(context.Background(), "maria@igreja.org", "senha-certa")
	require.True(t, res.Sucesso, "login deve suceder: %s", res.Erro)
	assert.Equal(t, auth.EstadoAutenticado, amb.contexto.Estado())

	// Recarga: contexto novo, mesmo escopo e serviço.
	recarga := auth.NovoContexto(amb.authSvc, amb.escopo, permissao.NovoAvaliador(nil), logger.Nop())
	recarga.Inicializar(context.Background())

	assert.Equal(t, auth.EstadoAutenticado, recarga.Estado(), "a sessão persiste entre visitas")
	assert.Equal(t, "maria@igreja.org", recarga.Usuario().Email)
}

// Falha de credencial vira mensagem inline; o estado permanece
// NaoAutenticado e nada é gravado.
func TestLogin_CredenciaisErradas(t *testing.T) {
	amb := novoAmbiente(t)
	amb.contexto.Inicializar(context.Background())

	res := amb.contexto.Login(context.Background(), "maria@igreja.org", "senha-errada")

	require.False(t, res.Sucesso)
	assert.Equal(t, "credenciais incorretas", res.Erro, "a mensagem do backend chega à tela")
	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado())
	_, ok := amb.escopo.Token()
	assert.False(t, ok)
}

// Logout limpa memória e armazenamento de imediato e notifica o backend em
// segundo plano.
func TestLogout(t *testing.T) {
	amb := novoAmbiente(t)
	amb.sessaoArmazenada(t)
	amb.contexto.Inicializar(context.Background())
	require.Equal(t, auth.EstadoAutenticado, amb.contexto.Estado())

	amb.contexto.Logout()

	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado())
	assert.Nil(t, amb.contexto.Usuario())
	_, ok := amb.escopo.Token()
	assert.False(t, ok, "o armazenamento já está limpo quando Logout retorna")

	assert.Eventually(t, func() bool {
		return amb.backend.logoutAvisos.Load() == 1
	}, 2*time.Second, 10*time.Millisecond, "a notificação ao backend acontece em segundo plano")
}

// Logout é idempotente: repetir não muda nada nem propaga erro.
func TestLogout_Idempotente(t *testing.T) {
	amb := novoAmbiente(t)
	amb.contexto.Inicializar(context.Background())

	amb.contexto.Logout()
	amb.contexto.Logout()

	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado())
}

// ──────────────────────────────────────────────────────────────────────────────
// Épocas: vence a última transição iniciada
// ──────────────────────────────────────────────────────────────────────────────

// Uma verificação lenta que resolve positiva DEPOIS de um logout não
// reautentica a sessão.
func TestVerificacaoLentaNaoVenceLogout(t *testing.T) {
	amb := novoAmbiente(t)
	amb.sessaoArmazenada(t)
	amb.backend.mu = make(chan struct{})

	feito := make(chan struct{})
	go func() {
		amb.contexto.VerificarAutenticacao(context.Background())
		close(feito)
	}()

	// Espera a verificação suspender na rede, então faz logout.
	require.Eventually(t, func() bool {
		return amb.backend.verifyChamadas.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
	amb.contexto.Logout()

	close(amb.backend.mu)
	<-feito

	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado(),
		"o resultado obsoleto da verificação é descartado")
	assert.Nil(t, amb.contexto.Usuario())
}

// Dois logins em voo: o que resolve DEPOIS de uma transição mais nova é
// descartado inteiro — não publica estado em memória e não toca as
// credenciais que a transição vencedora persistiu.
func TestLoginObsoletoNaoTocaOArmazenamento(t *testing.T) {
	amb := novoAmbiente(t)
	amb.contexto.Inicializar(context.Background())
	amb.backend.loginMu = make(chan struct{})

	obsoleto := make(chan auth.ResultadoLogin, 1)
	go func() {
		obsoleto <- amb.contexto.Login(context.Background(), "maria@igreja.org", "senha-certa")
	}()

	// Espera o primeiro login suspender na rede; o segundo resolve antes e
	// vence por ser a última transição iniciada.
	require.Eventually(t, func() bool {
		return amb.backend.loginChamadas.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
	vencedor := amb.contexto.Login(context.Background(), "maria@igreja.org", "senha-certa")
	require.True(t, vencedor.Sucesso, "o segundo login deve suceder: %s", vencedor.Erro)

	close(amb.backend.loginMu)
	res := <-obsoleto
	assert.False(t, res.Sucesso, "o login resolvido sob época antiga é recusado")

	assert.Equal(t, auth.EstadoAutenticado, amb.contexto.Estado())
	token, ok := amb.escopo.Token()
	require.True(t, ok, "as credenciais do login vencedor permanecem persistidas")
	assert.Equal(t, "token-login-2", token)
	u, ok := amb.escopo.Usuario()
	require.True(t, ok)
	assert.Equal(t, "maria@igreja.org", u.Email)
}

// ExpirarSessao (o destino do 401 global) derruba o estado em memória.
func TestExpirarSessao(t *testing.T) {
	amb := novoAmbiente(t)
	amb.sessaoArmazenada(t)
	amb.contexto.Inicializar(context.Background())
	require.Equal(t, auth.EstadoAutenticado, amb.contexto.Estado())

	amb.contexto.ExpirarSessao()

	assert.Equal(t, auth.EstadoNaoAutenticado, amb.contexto.Estado())
	assert.Nil(t, amb.contexto.Usuario())
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

// Consultas de permissão são totais em qualquer estado.
func TestConsultasSemSessao(t *testing.T) {
	amb := novoAmbiente(t)

	assert.False(t, amb.contexto.Autenticado())
	assert.False(t, amb.contexto.TemPermissao("read_pessoas"))
	assert.False(t, amb.contexto.TemQualquerPermissao("read_pessoas", "read_cultos"))
	assert.Nil(t, amb.contexto.Usuario())
}
