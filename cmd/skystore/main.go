// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"database/sql"
	"net"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skystore.io/skystore/pkg/catalog"
	"skystore.io/skystore/pkg/process"
	"skystore.io/skystore/pkg/rpc"
	"skystore.io/skystore/pkg/schema"
)

var (
	rootCmd = &cobra.Command{
		Use:   "skystore",
		Short: "Typed, schema-driven storage service",
		RunE:  cmdRun,
	}

	initDB bool
	useMem bool
)

func init() {
	rootCmd.Flags().BoolVar(&initDB, "init-db", false, "create tables and indices before serving")
	rootCmd.Flags().BoolVar(&useMem, "mem", false, "serve from in-memory stores instead of Postgres")

	viper.SetEnvPrefix("skystore")
	viper.AutomaticEnv()
	viper.SetDefault("host", "[::]")
	viper.SetDefault("port", 50051)
	viper.SetDefault("log", "info")
}

func cmdRun(cmd *cobra.Command, args []string) (err error) {
	log, err := process.NewLogger(viper.GetString("log"), viper.GetBool("log_dev"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := process.Ctx()
	defer cancel()

	var db *sql.DB
	if useMem {
		log.Info("serving from in-memory stores")
	} else {
		dsn := viper.GetString("database_url")
		if dsn == "" {
			return errs.New("SKYSTORE_DATABASE_URL is not set (or pass --mem)")
		}
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return errs.Wrap(err)
		}
		defer func() { err = errs.Combine(err, db.Close()) }()

		if err := db.PingContext(ctx); err != nil {
			return errs.New("database unreachable: %v", err)
		}
		if initDB {
			if err := schema.InitAll(ctx, log, db, catalog.Definitions()); err != nil {
				return err
			}
			log.Info("database initialized")
		}
	}

	cat := catalog.New(log, db)
	srv := rpc.NewServer(log, cat)

	addr := net.JoinHostPort(viper.GetString("host"), strconv.Itoa(viper.GetInt("port")))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.Wrap(err)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.Serve(lis)
	})
	group.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		srv.GracefulStop()
		return nil
	})
	if err := group.Wait(); err != nil {
		log.Error("exited", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
