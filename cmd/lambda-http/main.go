package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"resume-critic/internal/bootstrap"
	"resume-critic/internal/shared/config"
	"resume-critic/internal/shared/server/respond"
	"resume-critic/internal/shared/telemetry"
)

// lambdaApp builds the router on the first invocation and reuses it.
type lambdaApp struct {
	build   func() (*gin.Engine, error)
	once    sync.Once
	initErr error
	proxy   *ginadapter.GinLambdaV2
}

func newLambdaApp() *lambdaApp {
	return &lambdaApp{build: func() (*gin.Engine, error) {
		cfg := config.Load()
		telemetry.Setup(os.Stdout, cfg.LogFormat, cfg.LogLevel)
		app, err := bootstrap.Build(cfg)
		if err != nil {
			return nil, err
		}
		return app.Router, nil
	}}
}

func (a *lambdaApp) init() {
	router, err := a.build()
	if err != nil {
		a.initErr = err
		return
	}
	a.proxy = ginadapter.NewV2(router)
}

func (a *lambdaApp) handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	a.once.Do(a.init)
	if a.initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"err": a.initErr.Error()})
		return errorResponse("bootstrap_failed", "service failed to start"), a.initErr
	}
	if a.proxy == nil {
		return errorResponse("internal", "router not initialized"), nil
	}
	return a.proxy.ProxyWithContext(ctx, req)
}

func errorResponse(code, message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: respond.ErrorBody{Code: code, Message: message}})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func main() {
	lambda.Start(newLambdaApp().handle)
}
