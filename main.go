package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"luxpos/db"
	"luxpos/ledger"
	"luxpos/message"
	"luxpos/service"
	"luxpos/trace"
)

func main() {
	_ = godotenv.Load()
	log.Init(logrus.InfoLevel)

	tp := trace.ConfigureTraceProvider()
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	redisClient := message.NewRedisClient(os.Getenv("REDIS_ADDR"))
	defer redisClient.Close()

	ledgerClient := newLedgerClient()

	svc := service.New(redisClient, ledgerClient)

	if err := svc.Run(ctx); err != nil {
		panic(err)
	}
}

// newLedgerClient picks the ledger backend: the remote sheets gateway in
// production, a local postgres when POSTGRES_URL is set. Either way the
// client is wrapped with bounded retry on transient failures.
func newLedgerClient() ledger.Client {
	if postgresURL := os.Getenv("POSTGRES_URL"); postgresURL != "" {
		conn, err := db.NewDBConn(postgresURL)
		if err != nil {
			panic(err)
		}
		conn.MigrateSchema()
		return ledger.WithRetry(db.NewPostgresLedger(&conn))
	}

	return ledger.WithRetry(ledger.NewHTTPClient(
		os.Getenv("LEDGER_ADDR"),
		os.Getenv("LEDGER_API_KEY"),
	))
}
