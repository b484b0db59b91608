// Package metrics concentra os contadores Prometheus do portal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginsSucesso conta logins aceitos pelo backend.
	LoginsSucesso = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal_cultos",
		Name:      "logins_sucesso_total",
		Help:      "Logins concluídos com sucesso.",
	})

	// LoginsFalha conta tentativas de login recusadas ou falhadas.
	LoginsFalha = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal_cultos",
		Name:      "logins_falha_total",
		Help:      "Tentativas de login recusadas ou com falha de transporte.",
	})

	// Verificacoes conta verificações de token na inicialização de sessão,
	// rotuladas pelo resultado (autenticado | nao_autenticado).
	Verificacoes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal_cultos",
		Name:      "verificacoes_token_total",
		Help:      "Verificações de token por resultado.",
	}, []string{"resultado"})

	// NaoAutorizadoGlobal conta respostas 401 recebidas de qualquer endpoint
	// do backend (sinal global de credencial inválida).
	NaoAutorizadoGlobal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal_cultos",
		Name:      "nao_autorizado_global_total",
		Help:      "Respostas 401 do backend que derrubaram a sessão.",
	})

	// PermissoesNegadas conta acessos barrados pelo guard de rotas.
	PermissoesNegadas = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal_cultos",
		Name:      "permissoes_negadas_total",
		Help:      "Acessos negados por falta de permissão.",
	})
)
