package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"outreach-campaigns/internal/common/aws"
	"outreach-campaigns/internal/common/database"
	"outreach-campaigns/internal/common/observability"
	generateproposal "outreach-campaigns/internal/workers/ai/generate-proposal"
	runcampaign "outreach-campaigns/internal/workers/campaign/run-campaign"
	saveresults "outreach-campaigns/internal/workers/campaign/save-results"
	sendproposals "outreach-campaigns/internal/workers/campaign/send-proposals"
	emailsend "outreach-campaigns/internal/workers/communication/email-send"
	injecttracking "outreach-campaigns/internal/workers/communication/inject-tracking"
	rendertemplate "outreach-campaigns/internal/workers/communication/render-template"
	businessdirectory "outreach-campaigns/internal/workers/directory/business-directory"
)

// closers collects cleanup functions for clients opened by a command.
type closers []func() error

func (c *closers) add(fn func() error) { *c = append(*c, fn) }

func (c closers) Close() {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			log.Warn("Cleanup failed", map[string]interface{}{"error": err})
		}
	}
}

func openDirectory(ctx context.Context, cl *closers) (*businessdirectory.Directory, error) {
	dirCfg := &businessdirectory.Config{
		Backend:  cfg.Storage.Backend,
		FilePath: cfg.Storage.BusinessFile,
		Table:    businessdirectory.DefaultConfig().Table,
	}

	var pg *database.PostgresClient
	if dirCfg.Backend == businessdirectory.BackendPostgres {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		cl.add(pg.Close)
		if err := pg.Ping(ctx); err != nil {
			return nil, err
		}
	}

	store, err := businessdirectory.NewStore(dirCfg, pg)
	if err != nil {
		return nil, err
	}
	if ps, ok := store.(*businessdirectory.PostgresStore); ok {
		if err := ps.EnsureSchema(ctx); err != nil {
			return nil, err
		}
	}

	return businessdirectory.NewDirectory(businessdirectory.ServiceDependencies{Store: store, Logger: log}), nil
}

func openRecorder(ctx context.Context, cl *closers) (*saveresults.Recorder, error) {
	resCfg := saveresults.DefaultConfig()
	resCfg.Backend = cfg.Storage.ReportBackend
	resCfg.FilePath = cfg.Storage.ResultsFile
	if cfg.Database.Redis.ReportKey != "" {
		resCfg.RedisKey = cfg.Database.Redis.ReportKey
	}

	var client redis.Cmdable
	if resCfg.Backend == saveresults.BackendRedis {
		rc := database.NewRedis(cfg.Database.Redis)
		cl.add(rc.Close)
		if err := rc.Ping(ctx); err != nil {
			return nil, err
		}
		client = rc.Client
	}

	store, err := saveresults.NewStore(resCfg, client)
	if err != nil {
		return nil, err
	}

	deps := saveresults.ServiceDependencies{Store: store, Logger: log}
	if cfg.Notifications.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		deps.Notifier = saveresults.NewSNSNotifier(snsClient, cfg.Notifications.SNS.TopicARN)
	}
	return saveresults.NewRecorder(deps), nil
}

func openSender(ctx context.Context) (emailsend.Sender, error) {
	mailCfg := emailsend.FromAppConfig(cfg)
	if err := mailCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mail config: %w", err)
	}

	deps := emailsend.ServiceDependencies{Logger: log}
	if mailCfg.Provider == emailsend.ProviderSES {
		sesClient, err := aws.NewSESClient(ctx, mailCfg.SESRegion)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		deps.SESClient = sesClient
	}
	return emailsend.NewSender(deps, mailCfg)
}

func openRunner(ctx context.Context, cl *closers, obs *observability.Observability) (*runcampaign.Runner, error) {
	directory, err := openDirectory(ctx, cl)
	if err != nil {
		return nil, err
	}
	recorder, err := openRecorder(ctx, cl)
	if err != nil {
		return nil, err
	}
	sender, err := openSender(ctx)
	if err != nil {
		return nil, err
	}

	genCfg := generateproposal.FromAppConfig(cfg)
	client, err := generateproposal.NewGenAIClient(ctx, genCfg)
	if err != nil {
		return nil, err
	}
	generator := generateproposal.NewGenerator(generateproposal.ServiceDependencies{Client: client, Logger: log}, genCfg)

	renderer := rendertemplate.NewRenderer(&rendertemplate.Config{
		TemplateDir: cfg.Storage.TemplateDir,
		Extension:   rendertemplate.DefaultConfig().Extension,
	}, log)

	var tracker sendproposals.TrackingInjector
	if cfg.Campaign.TrackingEnabled {
		trackCfg := &injecttracking.Config{TrackingURL: cfg.Campaign.TrackingURL}
		if err := trackCfg.Validate(); err != nil {
			return nil, err
		}
		tracker = injecttracking.NewInjector(trackCfg)
	}

	dispatcher := sendproposals.NewDispatcher(sendproposals.ServiceDependencies{
		Generator:     generator,
		Renderer:      renderer,
		Tracker:       tracker,
		Sender:        sender,
		Observability: obs,
		Logger:        log,
	}, sendproposals.FromAppConfig(cfg))

	return runcampaign.NewRunner(runcampaign.ServiceDependencies{
		Directory:     directory,
		Dispatcher:    dispatcher,
		Recorder:      recorder,
		Observability: obs,
		Logger:        log,
	}), nil
}
