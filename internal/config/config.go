// Package config carga la configuración del aprovisionador una sola vez en el
// entry point. Los componentes reciben structs explícitos; nada de leer env
// vars dentro de la lógica de negocio.
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBaseDomain es el dominio base para los hostnames de tenant.
const DefaultBaseDomain = "greenlanecloudsolutions.com"

// DefaultServiceHostname es el backend al que apuntan los CNAME cuando no hay
// archivo de hostname ni SERVICE_HOSTNAME en el entorno.
const DefaultServiceHostname = "greenlane-crm-app-l3dglnyzgq-uc.a.run.app"

// DefaultHostnameFile es el cache local del hostname del backend, escrito por
// el deploy. Tiene la máxima precedencia al resolver el target de los CNAME.
const DefaultHostnameFile = ".service-hostname"

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
		// debug | info | warn | error
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Database struct {
		URL          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	DNS struct {
		APIToken        string `yaml:"api_token"`
		ZoneID          string `yaml:"zone_id"`
		BaseDomain      string `yaml:"base_domain"`
		ServiceHostname string `yaml:"service_hostname"`
		HostnameFile    string `yaml:"hostname_file"`
	} `yaml:"dns"`

	Security struct {
		// plain | argon2id. "plain" replica el comportamiento heredado.
		PasswordEncoder string `yaml:"password_encoder"`
		// StrictSubdomain rechaza guiones consecutivos en el slug.
		// Off por defecto: hay labels existentes que los usan.
		StrictSubdomain bool `yaml:"strict_subdomain"`
	} `yaml:"security"`

	SMTP struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
		FromEmail string `yaml:"from_email"`
		UseTLS    bool   `yaml:"use_tls"`
	} `yaml:"smtp"`
}

// Load lee el YAML (opcional: si no existe retorna defaults), aplica
// overrides de entorno y completa defaults.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	c.applyEnvOverrides()

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.DNS.BaseDomain == "" {
		c.DNS.BaseDomain = DefaultBaseDomain
	}
	if c.DNS.HostnameFile == "" {
		c.DNS.HostnameFile = DefaultHostnameFile
	}
	if c.Security.PasswordEncoder == "" {
		c.Security.PasswordEncoder = "plain"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}

	return &c, nil
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}

	if v, ok := getEnvStr("DATABASE_URL"); ok {
		c.Database.URL = v
	}

	if v, ok := getEnvStr("CLOUDFLARE_API_TOKEN"); ok {
		c.DNS.APIToken = v
	}
	if v, ok := getEnvStr("CLOUDFLARE_ZONE_ID"); ok {
		c.DNS.ZoneID = v
	}
	if v, ok := getEnvStr("BASE_DOMAIN"); ok {
		c.DNS.BaseDomain = v
	}
	if v, ok := getEnvStr("SERVICE_HOSTNAME"); ok {
		c.DNS.ServiceHostname = v
	}

	if v, ok := getEnvStr("PASSWORD_ENCODER"); ok {
		c.Security.PasswordEncoder = strings.ToLower(v)
	}
	if v, ok := getEnvBool("STRICT_SUBDOMAIN"); ok {
		c.Security.StrictSubdomain = v
	}

	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM_EMAIL"); ok {
		c.SMTP.FromEmail = v
	}
	if v, ok := getEnvBool("SMTP_USE_TLS"); ok {
		c.SMTP.UseTLS = v
	}
}

// ResolveServiceHostname resuelve el hostname del backend con esta precedencia:
// archivo local de hostname > SERVICE_HOSTNAME/yaml > literal por defecto.
func (c *Config) ResolveServiceHostname() string {
	if b, err := os.ReadFile(c.DNS.HostnameFile); err == nil {
		if h := strings.TrimSpace(string(b)); h != "" {
			return h
		}
	}
	if h := strings.TrimSpace(c.DNS.ServiceHostname); h != "" {
		return h
	}
	return DefaultServiceHostname
}
