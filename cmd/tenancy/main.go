// tenancy aprovisiona tenants del CRM: registro en base de datos,
// reconciliación DNS del subdominio, o el setup completo en secuencia.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/greenlanecloud/tenancy/internal/config"
	"github.com/greenlanecloud/tenancy/internal/dns"
	"github.com/greenlanecloud/tenancy/internal/dns/cloudflare"
	"github.com/greenlanecloud/tenancy/internal/email"
	"github.com/greenlanecloud/tenancy/internal/observability/logger"
	"github.com/greenlanecloud/tenancy/internal/provision"
	"github.com/greenlanecloud/tenancy/internal/security/password"
	"github.com/greenlanecloud/tenancy/internal/store/pg"
	"github.com/greenlanecloud/tenancy/internal/util"
)

func main() {
	// .env (opcional) - prioridad .env.dev > .env
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.dev")

	var (
		configPath string
		cfg        *config.Config
	)

	root := &cobra.Command{
		Use:           "tenancy",
		Short:         "Aprovisionamiento de tenants del CRM",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.App.LogLevel,
				ServiceName: "tenancy",
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path al YAML de configuración (opcional)")

	registerCmd := &cobra.Command{
		Use:   "register <tenant-id> <company-name> <admin-email> [admin-password]",
		Short: "Registra un tenant nuevo (tenant + admin + módulos, una transacción)",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			reg, err := newRegistrar(cfg, store).Register(ctx, inputFromArgs(args))
			if err != nil {
				return err
			}
			printRegistration(reg)
			return nil
		},
	}

	dnsCmd := &cobra.Command{
		Use:     "dns <tenant-id>",
		Aliases: []string{"dns-reconcile"},
		Short:   "Reconcilia el CNAME del tenant contra el proveedor DNS",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newReconciler(cfg).Reconcile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(res.Message)
			return nil
		},
	}

	setupCmd := &cobra.Command{
		Use:   "setup <tenant-id> <company-name> <admin-email> [admin-password]",
		Short: "Setup completo: registro y después DNS, estrictamente en secuencia",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			pipeline := provision.NewPipeline(
				newRegistrar(cfg, store),
				newReconciler(cfg),
				newNotifier(cfg),
			)
			out, err := pipeline.Run(ctx, inputFromArgs(args))
			if err != nil {
				return fmt.Errorf("setup failed at %s: %w", out.FailedAt, err)
			}
			printRegistration(out.Registration)
			fmt.Println(out.DNS.Message)
			return nil
		},
	}

	configCmd := &cobra.Command{Use: "config", Short: "Inspección de configuración"}
	configCheckCmd := &cobra.Command{
		Use:   "check",
		Short: "Muestra la configuración resuelta (secretos enmascarados)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("env:              %s\n", cfg.App.Env)
			fmt.Printf("database_url:     %s\n", util.MaskSecret(cfg.Database.URL))
			fmt.Printf("cf_api_token:     %s\n", util.MaskSecret(cfg.DNS.APIToken))
			fmt.Printf("cf_zone_id:       %s\n", cfg.DNS.ZoneID)
			fmt.Printf("base_domain:      %s\n", cfg.DNS.BaseDomain)
			fmt.Printf("service_hostname: %s\n", cfg.ResolveServiceHostname())
			fmt.Printf("password_encoder: %s\n", cfg.Security.PasswordEncoder)
			fmt.Printf("strict_subdomain: %t\n", cfg.Security.StrictSubdomain)
			fmt.Printf("smtp_host:        %s\n", cfg.SMTP.Host)
			return nil
		},
	}
	configCmd.AddCommand(configCheckCmd)

	root.AddCommand(registerCmd)
	root.AddCommand(dnsCmd)
	root.AddCommand(setupCmd)
	root.AddCommand(configCmd)

	defer logger.Sync()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func inputFromArgs(args []string) provision.RegisterInput {
	in := provision.RegisterInput{
		TenantID:    args[0],
		CompanyName: args[1],
		AdminEmail:  args[2],
	}
	if len(args) == 4 {
		in.AdminPassword = args[3]
	}
	return in
}

// openStore abre el pool de Postgres. DATABASE_URL ausente es fatal acá:
// ningún comando con base de datos puede seguir sin DSN.
func openStore(ctx context.Context, cfg *config.Config) (*pg.Store, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required (env o database.url en el YAML)")
	}
	return pg.New(ctx, cfg.Database.URL, pg.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
}

func newRegistrar(cfg *config.Config, store *pg.Store) *provision.Registrar {
	return provision.NewRegistrar(
		store,
		password.ForName(cfg.Security.PasswordEncoder),
		provision.RegistrarConfig{
			BaseDomain:      cfg.DNS.BaseDomain,
			StrictSubdomain: cfg.Security.StrictSubdomain,
		},
	)
}

func newReconciler(cfg *config.Config) *dns.Reconciler {
	dnsCfg := dns.Config{
		APIToken:        cfg.DNS.APIToken,
		ZoneID:          cfg.DNS.ZoneID,
		BaseDomain:      cfg.DNS.BaseDomain,
		TargetHostname:  cfg.ResolveServiceHostname(),
		StrictSubdomain: cfg.Security.StrictSubdomain,
	}
	return dns.NewReconciler(dnsCfg, cloudflare.New(cfg.DNS.APIToken, cfg.DNS.ZoneID))
}

// newNotifier retorna el notifier de bienvenida si hay SMTP configurado.
func newNotifier(cfg *config.Config) provision.Notifier {
	if cfg.SMTP.Host == "" {
		return nil
	}
	return email.NewWelcomeNotifier(email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}))
}

func printRegistration(reg *provision.Registration) {
	t := reg.Tenant
	fmt.Println("Tenant provisioned")
	fmt.Printf("  company: %s\n", t.CompanyName)
	fmt.Printf("  url:     https://%s\n", t.DomainName)
	fmt.Printf("  admin:   %s\n", t.AdminEmail)
	if reg.GeneratedPassword != "" {
		// Única vez que este secreto se muestra; no es recuperable después.
		fmt.Printf("  admin password (save it now, it will not be shown again): %s\n", reg.GeneratedPassword)
	}
}
