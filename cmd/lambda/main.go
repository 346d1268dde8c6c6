package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/sicko7947/recordkit"
	"github.com/sicko7947/recordkit/api"
	"github.com/sicko7947/recordkit/store"
)

func main() {
	// Lambda ships stdout to CloudWatch; keep JSON logs
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := recordkit.ConfigFromEnv()

	client, err := store.NewDynamoDBClient(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create DynamoDB client")
	}

	resolver := recordkit.NewResolver(
		store.NewDynamoDBStore(client, cfg.TableName),
		recordkit.WithConfig(cfg),
		recordkit.WithLogger(logger),
	)

	lambda.Start(api.NewAppSyncHandler(resolver).Handle)
}
