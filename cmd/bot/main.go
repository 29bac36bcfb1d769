package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"oengusbot/internal/announce"
	"oengusbot/internal/config"
	"oengusbot/internal/discord"
	"oengusbot/internal/logx"
	"oengusbot/internal/oengus"
	"oengusbot/internal/scheduler"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config file (yaml or json)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfgPath); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	log, closeLog := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	defer closeLog()

	source, err := oengus.New(oengus.Config{
		BaseURL:  cfg.Oengus.BaseURL,
		Marathon: cfg.Oengus.Marathon,
		Timeout:  cfg.HTTPTimeout(),
	}, log.With(logx.String("comp", "oengus")))
	if err != nil {
		return err
	}

	connector, err := discord.NewConnector(discord.Config{
		Token:        cfg.Discord.Token,
		BotUserID:    cfg.Discord.BotUserID,
		LoginTimeout: cfg.LoginTimeout(),
	}, log.With(logx.String("comp", "discord")))
	if err != nil {
		return err
	}

	announcer := announce.New(connector, source, announce.Config{
		ChannelID:      cfg.Discord.ChannelID,
		PageSize:       cfg.Announce.PageSize,
		SendRatePerSec: cfg.Announce.SendRatePerSec,
	}, log.With(logx.String("comp", "announce")))

	sched := scheduler.New(log.With(logx.String("comp", "scheduler")))
	if err := sched.AddEvery("announce", cfg.Interval(), announcer.RunTick); err != nil {
		return err
	}

	log.Info("starting",
		logx.String("marathon", cfg.Oengus.Marathon),
		logx.String("channel_id", cfg.Discord.ChannelID),
		logx.Duration("interval", cfg.Interval()))
	sched.Start(ctx)

	<-ctx.Done()
	sched.Stop()
	log.Info("stopped")
	return nil
}
