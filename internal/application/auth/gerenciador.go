package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/application/permissao"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/api"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/infrastructure/storage"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/internal/metrics"
	"github.com/leandromunizdev/portal-gerenciamento-cultos/pkg/logger"
)

// notificacaoLogoutTimeout limita a notificação de logout em segundo plano.
const notificacaoLogoutTimeout = 5 * time.Second

// sessao agrupa o que o portal mantém por cookie de sessão: o contexto de
// autenticação e a visão do transporte vinculada às mesmas credenciais.
type sessao struct {
	contexto *Contexto
	http     *api.Sessao
	auth     *api.AuthService
}

// Gerenciador é o registro de sessões do portal, uma por cookie. Constrói
// cada contexto com suas dependências próprias (escopo de armazenamento,
// sessão de transporte, serviço de identidade) e o encerra explicitamente.
type Gerenciador struct {
	mu      sync.Mutex
	sessoes map[string]*sessao

	store     *storage.Store
	client    *api.Client
	avaliador *permissao.Avaliador
	log       *logger.Logger
}

// NovoGerenciador constrói o registro de sessões.
func NovoGerenciador(store *storage.Store, client *api.Client, avaliador *permissao.Avaliador, log *logger.Logger) *Gerenciador {
	return &Gerenciador{
		sessoes:   make(map[string]*sessao),
		store:     store,
		client:    client,
		avaliador: avaliador,
		log:       log,
	}
}

// NovaSessao cria uma sessão nova com identificador fresco.
func (g *Gerenciador) NovaSessao() (string, *Contexto) {
	sid := uuid.NewString()
	return sid, g.Obter(sid)
}

// Obter devolve o contexto da sessão, construindo-o se necessário (caso de
// um portal reiniciado com o cookie ainda vivo no navegador: o estado
// durável é relido e revalidado na inicialização do contexto).
func (g *Gerenciador) Obter(sid string) *Contexto {
	return g.obterSessao(sid).contexto
}

// SessaoAPI devolve a visão do transporte vinculada às credenciais da
// sessão, para os serviços de recurso do portal.
func (g *Gerenciador) SessaoAPI(sid string) *api.Sessao {
	return g.obterSessao(sid).http
}

// AuthService devolve o serviço de identidade da sessão, para as operações
// de senha que o portal apenas repassa.
func (g *Gerenciador) AuthService(sid string) *api.AuthService {
	return g.obterSessao(sid).auth
}

// SessaoAnonima devolve uma visão do transporte sem credenciais, para as
// rotas públicas do portal.
func (g *Gerenciador) SessaoAnonima() *api.Sessao {
	return g.client.Sessao(nil, nil)
}

// Encerrar descarta o contexto e o estado durável de uma sessão.
func (g *Gerenciador) Encerrar(sid string) {
	g.mu.Lock()
	s, ok := g.sessoes[sid]
	delete(g.sessoes, sid)
	g.mu.Unlock()

	if ok {
		s.contexto.ExpirarSessao()
	}
	g.store.RemoverEscopo(sid)
}

func (g *Gerenciador) obterSessao(sid string) *sessao {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessoes[sid]; ok {
		return s
	}

	escopo := g.store.Escopo(sid)
	// O gancho de 401 é global ao transporte: qualquer endpoint que receba
	// 401 limpa as credenciais persistidas e derruba o estado em memória.
	sessaoHTTP := g.client.Sessao(escopo, func() {
		metrics.NaoAutorizadoGlobal.Inc()
		escopo.Limpar()
		g.expirar(sid)
	})
	authSvc := api.NovoAuthService(sessaoHTTP, escopo, g.log)
	s := &sessao{
		contexto: NovoContexto(authSvc, escopo, g.avaliador, g.log),
		http:     sessaoHTTP,
		auth:     authSvc,
	}
	g.sessoes[sid] = s
	return s
}

func (g *Gerenciador) expirar(sid string) {
	g.mu.Lock()
	s, ok := g.sessoes[sid]
	g.mu.Unlock()
	if ok {
		s.contexto.ExpirarSessao()
	}
}
