// Package auth mantém o ciclo de vida da sessão do portal: é a única fonte
// de verdade de "quem está logado e o que pode fazer", e o único escritor do
// estado de sessão em memória. Cada sessão do portal tem o seu Contexto,
// criado e encerrado pelo Gerenciador — nunca um singleton de pacote.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/permissao"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/domain/entity"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/api"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/storage"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/metrics"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

// Estado da sessão. O ciclo é reiniciável: Autenticado volta a
// NaoAutenticado por logout, 401 global ou verificação falhada.
type Estado int

const (
	// EstadoInicializando vale apenas entre a criação do contexto e a
	// primeira resolução de VerificarAutenticacao.
	EstadoInicializando Estado = iota
	EstadoNaoAutenticado
	EstadoAutenticado
)

func (e Estado) String() string {
	switch e {
	case EstadoInicializando:
		return "inicializando"
	case EstadoNaoAutenticado:
		return "nao_autenticado"
	case EstadoAutenticado:
		return "autenticado"
	default:
		return "desconhecido"
	}
}

// ResultadoLogin é a resposta de Login: nunca um erro propagado, sempre um
// par sucesso/mensagem que a tela exibe inline.
type ResultadoLogin struct {
	Sucesso bool   `json:"success"`
	Erro    string `json:"error,omitempty"`
}

// Contexto é a célula de estado de uma sessão do portal.
//
// Toda operação que muda estado incrementa a época antes de suspender em
// rede; um resultado que chega sob época antiga é descartado. Vence a
// última transição INICIADA, não a última a resolver — uma verificação
// lenta não reautentica uma sessão que fez logout no meio do caminho.
type Contexto struct {
	mu      sync.Mutex
	estado  Estado
	usuario *entity.Usuario
	epoca   uint64

	auth      *api.AuthService
	escopo    *storage.Escopo
	avaliador *permissao.Avaliador
	log       *logger.Logger

	initUma   sync.Once
	prontoUma sync.Once
	pronto    chan struct{}
}

// NovoContexto constrói o contexto de uma sessão no estado Inicializando.
func NovoContexto(auth *api.AuthService, escopo *storage.Escopo, avaliador *permissao.Avaliador, log *logger.Logger) *Contexto {
	return &Contexto{
		estado:    EstadoInicializando,
		auth:      auth,
		escopo:    escopo,
		avaliador: avaliador,
		log:       log,
		pronto:    make(chan struct{}),
	}
}

// Inicializar executa a verificação de autenticação inicial e marca o
// contexto como resolvido. Segura para chamar mais de uma vez.
func (c *Contexto) Inicializar(ctx context.Context) {
	c.VerificarAutenticacao(ctx)
	c.prontoUma.Do(func() { close(c.pronto) })
}

// InicializarUmaVez dispara a inicialização em segundo plano na primeira
// chamada; as seguintes são no-op. Reverificações posteriores usam
// VerificarAutenticacao diretamente.
func (c *Contexto) InicializarUmaVez() {
	c.initUma.Do(func() {
		go c.Inicializar(context.Background())
	})
}

// AguardarInicializacao bloqueia até a primeira verificação resolver, ou o
// ctx expirar. É o equivalente do estado de carregamento neutro: o guard
// espera em vez de redirecionar prematuramente.
func (c *Contexto) AguardarInicializacao(ctx context.Context) error {
	select {
	case <-c.pronto:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// VerificarAutenticacao relê o armazenamento e revalida o token no backend.
// Reentrante: sempre resolve para NaoAutenticado ou Autenticado, nunca
// permanece pendente. Qualquer falha — rede, invalidade explícita, pânico —
// degrada para NaoAutenticado com o armazenamento limpo.
func (c *Contexto) VerificarAutenticacao(ctx context.Context) {
	// Um pânico aqui derrubaria o portal inteiro; falha fecha, nunca abre.
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panico", r).Msg("pânico na verificação de autenticação")
			c.descartarSessao(c.epocaAtual())
		}
	}()

	c.mu.Lock()
	c.epoca++
	epoca := c.epoca
	c.mu.Unlock()

	_, temToken := c.escopo.Token()
	armazenado, temUsuario := c.escopo.Usuario()

	if !temToken || !temUsuario {
		// Sessão parcial (token sem snapshot ou vice-versa) é estado
		// inválido: se autocorrige para ausente.
		if temToken != temUsuario {
			c.escopo.Limpar()
		}
		metrics.Verificacoes.WithLabelValues("nao_autenticado").Inc()
		c.transicao(epoca, EstadoNaoAutenticado, nil)
		return
	}

	verificado, err := c.auth.VerificarToken(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNaoAutorizado) {
			c.log.Warn().Err(err).Msg("verificação de token falhou")
		}
		metrics.Verificacoes.WithLabelValues("nao_autenticado").Inc()
		c.descartarSessao(epoca)
		return
	}

	u := verificado
	if u == nil {
		// Verificação positiva sem payload: vale o snapshot em cache.
		u = armazenado
	}
	metrics.Verificacoes.WithLabelValues("autenticado").Inc()
	c.transicao(epoca, EstadoAutenticado, u)
}

// Login tenta autenticar. Nunca propaga erro nem pânico: toda falha vira
// ResultadoLogin com mensagem exibível. Falha mantém NaoAutenticado e o
// armazenamento intocado.
func (c *Contexto) Login(ctx context.Context, email, senha string) (res ResultadoLogin) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panico", r).Msg("pânico no login")
			res = ResultadoLogin{Erro: domain.ErrIndisponivel.Error()}
		}
	}()

	c.mu.Lock()
	c.epoca++
	epoca := c.epoca
	c.mu.Unlock()

	u, token, err := c.auth.Login(ctx, email, senha)
	if err != nil {
		return ResultadoLogin{Erro: mensagemDeLogin(err)}
	}

	c.mu.Lock()
	if epoca != c.epoca {
		// Outra transição venceu enquanto o login estava em voo. O resultado
		// obsoleto é descartado inteiro: nada foi persistido e nada é limpo —
		// memória e armazenamento continuam os da transição vencedora.
		c.mu.Unlock()
		return ResultadoLogin{Erro: "a sessão foi alterada durante o login"}
	}
	// Persiste sob a época corrente, antes de publicar em memória: o estado
	// Autenticado nunca existe sem a cópia durável correspondente.
	c.escopo.DefinirToken(token)
	c.escopo.DefinirUsuario(u)
	c.usuario = u
	c.estado = EstadoAutenticado
	c.mu.Unlock()
	return ResultadoLogin{Sucesso: true}
}

// Logout encerra a sessão de imediato: limpa primeiro a memória, depois a
// cópia persistida, e por fim notifica o backend em segundo plano. A
// transição para NaoAutenticado é incondicional — a navegação para a tela
// de login acontece logo em seguida e não espera o servidor.
func (c *Contexto) Logout() {
	c.mu.Lock()
	c.epoca++
	c.usuario = nil
	c.estado = EstadoNaoAutenticado
	c.mu.Unlock()

	c.auth.LimparLocal()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notificacaoLogoutTimeout)
		defer cancel()
		c.auth.NotificarLogout(ctx)
	}()
}

// ExpirarSessao é o destino do sinal global de 401: derruba o estado em
// memória imediatamente (o transporte já limpou as credenciais persistidas).
func (c *Contexto) ExpirarSessao() {
	c.mu.Lock()
	c.epoca++
	c.usuario = nil
	c.estado = EstadoNaoAutenticado
	c.mu.Unlock()
}

// Estado devolve o estado corrente da sessão.
func (c *Contexto) Estado() Estado {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.estado
}

// Usuario devolve o usuário autenticado, ou nil.
func (c *Contexto) Usuario() *entity.Usuario {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usuario
}

// Autenticado informa se há sessão ativa.
func (c *Contexto) Autenticado() bool {
	return c.Estado() == EstadoAutenticado
}

// TemPermissao e TemQualquerPermissao são leituras puras, disponíveis em
// qualquer estado; sem sessão devolvem false, nunca erro.
func (c *Contexto) TemPermissao(codigo string) bool {
	return c.avaliador.TemPermissao(c.Usuario(), codigo)
}

func (c *Contexto) TemQualquerPermissao(codigos ...string) bool {
	return c.avaliador.TemQualquerPermissao(c.Usuario(), codigos...)
}

// Avaliador expõe o motor de permissões da sessão para consumidores puros
// (filtro de menu).
func (c *Contexto) Avaliador() *permissao.Avaliador {
	return c.avaliador
}

// transicao aplica o novo estado apenas se a época ainda for a corrente.
func (c *Contexto) transicao(epoca uint64, estado Estado, u *entity.Usuario) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoca != c.epoca {
		// Resultado obsoleto. Garante apenas que ninguém fique pendurado em
		// Inicializando (falha fecha).
		if c.estado == EstadoInicializando {
			c.estado = EstadoNaoAutenticado
			c.usuario = nil
		}
		return
	}
	c.estado = estado
	c.usuario = u
}

// descartarSessao limpa memória (primeiro) e armazenamento (depois) sob a
// época dada.
func (c *Contexto) descartarSessao(epoca uint64) {
	c.transicao(epoca, EstadoNaoAutenticado, nil)
	c.escopo.Limpar()
}

func (c *Contexto) epocaAtual() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoca
}

func mensagemDeLogin(err error) string {
	var apiErr *api.Erro
	switch {
	case errors.Is(err, domain.ErrCredenciaisInvalidas):
		// A mensagem do backend vem embutida ("credenciais inválidas: ...");
		// mostra só a parte específica.
		prefixo := domain.ErrCredenciaisInvalidas.Error() + ": "
		if resto := strings.TrimPrefix(err.Error(), prefixo); resto != err.Error() {
			return resto
		}
		return domain.ErrCredenciaisInvalidas.Error()
	case errors.As(err, &apiErr):
		return apiErr.Mensagem
	case errors.Is(err, domain.ErrIndisponivel):
		return domain.ErrIndisponivel.Error()
	default:
		return "erro ao fazer login"
	}
}
