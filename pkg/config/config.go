package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	API    APIConfig
	Sessao SessaoConfig
	Auth   AuthConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuração do servidor HTTP do portal.
type HTTPConfig struct {
	Host string
	Port int
	// MetricsAddr endereço do listener de métricas Prometheus.
	// Vazio desativa o listener.
	MetricsAddr string
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig configuração do backend REST consumido pelo portal.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessaoConfig configuração do armazenamento durável de sessões.
type SessaoConfig struct {
	DBPath     string // arquivo SQLite com token + snapshot de usuário por sessão
	CookieName string
}

// AuthConfig configuração do modelo de autorização.
type AuthConfig struct {
	// PerfisAdministradores: perfis cujo nome concede todas as permissões,
	// sem consultar o conjunto de permissões. Configuração, não código:
	// conceder acesso total a "Pastor" é decisão de implantação.
	PerfisAdministradores []string
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, API_BASE_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "portal-gerenciamento-cultos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 3000),
			MetricsAddr: getString(v, "METRICS_ADDR", ""),
		},
		API: APIConfig{
			BaseURL: getString(v, "API_BASE_URL", "http://localhost:3008/api"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Sessao: SessaoConfig{
			DBPath:     getString(v, "SESSION_DB_PATH", "./sessoes.db"),
			CookieName: getString(v, "SESSION_COOKIE_NAME", "portal_sid"),
		},
		Auth: AuthConfig{
			PerfisAdministradores: getLista(v, "ADMIN_PROFILES", []string{"Administrador", "admin"}),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL é obrigatório")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getLista lê uma lista separada por vírgula, aparando espaços e descartando vazios.
func getLista(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, item := range strings.Split(v.GetString(key), ",") {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
