package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/trufnetwork/notary/app"
)

// NotarizeEvent is the request an agent sends to the function
type NotarizeEvent struct {
	Text string `json:"text"`
}

type textNotarizer interface {
	NotarizeText(ctx context.Context, text string) string
}

// handler answers with the explorer link or an ERROR: line. A failed
// notarization is a normal response so the calling agent keeps running.
type handler struct {
	notarizer textNotarizer
}

func (h handler) HandleRequest(ctx context.Context, event NotarizeEvent) (string, error) {
	return h.notarizer.NotarizeText(ctx, event.Text), nil
}

func main() {
	logger := zap.Must(zap.NewProduction())
	zap.ReplaceGlobals(logger)

	// configuration and dialing happen once per cold start
	n, closeFn, err := app.NewNotarizerFromEnv(context.Background(), logger.Named("notary"))
	if err != nil {
		logger.Fatal("failed to initialize notarizer", zap.Error(err))
	}
	defer closeFn()

	lambda.Start(handler{notarizer: n}.HandleRequest)
}
