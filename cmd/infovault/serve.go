package main

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
	deadletterconfig "github.com/nspcc-dev/infovault/cmd/infovault/config/deadletter"
	metricsconfig "github.com/nspcc-dev/infovault/cmd/infovault/config/metrics"
	natsconfig "github.com/nspcc-dev/infovault/cmd/infovault/config/nats"
	"github.com/nspcc-dev/infovault/cmd/infovault/internal/common"
	"github.com/nspcc-dev/infovault/misc"
	"github.com/nspcc-dev/infovault/pkg/metrics"
	vaultsvc "github.com/nspcc-dev/infovault/pkg/services/vault"
	"github.com/nspcc-dev/infovault/pkg/services/vault/deadletter"
	vaultnats "github.com/nspcc-dev/infovault/pkg/services/vault/nats"
	"github.com/nspcc-dev/infovault/pkg/util"
	"github.com/nspcc-dev/infovault/pkg/util/grace"
	httputil "github.com/nspcc-dev/infovault/pkg/util/http"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the vault service",
		Long: `Run the vault service: the dispatcher handles envelopes received from NATS
and metrics are exported over HTTP if enabled. The service stops on SIGINT, SIGTERM or SIGHUP.`,
		Args: cobra.NoArgs,
		RunE: serveFunc,
	}

	common.AddConfigFileFlag(cmd)

	return cmd
}

func serveFunc(cmd *cobra.Command, _ []string) error {
	c, err := common.ReadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := common.NewLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := grace.NewGracefulContext(log)
	defer cancel()

	return runService(ctx, c, log, prometheus.DefaultRegisterer)
}

// app holds running components of the service.
type app struct {
	log *zap.Logger

	metricsSrv  *httputil.Server
	vault       *vault.Vault
	deadLetters *deadletter.Storage
	dispatcher  *vaultsvc.Dispatcher
	transport   *vaultnats.Server
}

// runService starts the service and blocks until ctx is done.
func runService(ctx context.Context, c *config.Config, log *zap.Logger, reg prometheus.Registerer) error {
	log.Info("starting", zap.String("version", misc.Version))

	a := &app{log: log}
	defer a.shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.init(ctx, cancel, c, reg); err != nil {
		return err
	}

	log.Info("service is running")

	<-ctx.Done()

	return nil
}

func (a *app) init(ctx context.Context, cancel context.CancelFunc, c *config.Config, reg prometheus.Registerer) error {
	var m *metrics.InfoVaultMetrics

	if metricsconfig.Enabled(c) {
		m = metrics.New(reg)

		handler := promhttp.Handler()
		if g, ok := reg.(prometheus.Gatherer); ok {
			handler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
		}

		a.metricsSrv = httputil.New(httputil.HTTPSrvPrm{
			Address: metricsconfig.Address(c),
			Handler: handler,
		}, httputil.WithShutdownTimeout(metricsconfig.ShutdownTimeout(c)))

		go func() {
			if err := a.metricsSrv.Serve(); err != nil {
				a.log.Error("metrics server failure", zap.Error(err))
				cancel()
			}
		}()

		a.log.Info("metrics server started", zap.String("address", metricsconfig.Address(c)))
	}

	vaultOpts := common.VaultOptions(c, a.log)
	dispatcherOpts := []vaultsvc.Option{
		vaultsvc.WithLogger(a.log),
		vaultsvc.WithStatusListener(func(s vaultsvc.Status) {
			a.log.Debug("dispatcher status changed", zap.Stringer("status", s))
		}),
	}

	if m != nil {
		vaultOpts = append(vaultOpts, vault.WithMetrics(m))
		dispatcherOpts = append(dispatcherOpts, vaultsvc.WithMetrics(m))
	}

	if p := deadletterconfig.Path(c); p != "" {
		var err error

		a.deadLetters, err = deadletter.Open(p,
			deadletter.WithLogger(a.log),
			deadletter.WithTimeout(deadletterconfig.Timeout(c)),
		)
		if err != nil {
			return fmt.Errorf("could not open dead letter storage: %w", err)
		}

		dispatcherOpts = append(dispatcherOpts, vaultsvc.WithDeadLetter(a.deadLetters))
	}

	a.vault = vault.New(vaultOpts...)
	if err := a.vault.Init(); err != nil {
		return fmt.Errorf("could not init vault: %w", err)
	}

	a.dispatcher = vaultsvc.New(a.vault, dispatcherOpts...)
	if err := a.dispatcher.Start(); err != nil {
		return fmt.Errorf("could not start dispatcher: %w", err)
	}

	if !natsconfig.Enabled(c) {
		a.log.Warn("NATS transport is disabled, envelopes are not served")
		return nil
	}

	pool, err := util.NewWorkerPool(natsconfig.Workers(c), true)
	if err != nil {
		return fmt.Errorf("could not create worker pool: %w", err)
	}

	a.transport = vaultnats.New(a.dispatcher,
		vaultnats.WithLogger(a.log),
		vaultnats.WithWorkerPool(pool),
		vaultnats.WithTimeout(natsconfig.Timeout(c)),
		vaultnats.WithConnectionName("infovault"),
	)

	if err := a.transport.Connect(ctx, natsconfig.Endpoint(c)); err != nil {
		return err
	}

	return a.transport.Listen(natsconfig.Subject(c), natsconfig.Queue(c))
}

func (a *app) shutdown() {
	a.log.Info("shutting down")

	if a.transport != nil {
		a.transport.Close()
	}

	if a.dispatcher != nil {
		_ = a.dispatcher.Stop()
	}

	if a.deadLetters != nil {
		if err := a.deadLetters.Close(); err != nil {
			a.log.Warn("could not close dead letter storage", zap.Error(err))
		}
	}

	if a.vault != nil {
		if err := a.vault.Close(); err != nil {
			a.log.Warn("could not close vault", zap.Error(err))
		}
	}

	if a.metricsSrv != nil {
		if err := a.metricsSrv.Shutdown(); err != nil {
			a.log.Warn("could not shutdown metrics server", zap.Error(err))
		}
	}

	a.log.Info("service stopped")
}
