package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/AmineMekki01/rag-app-prod-example/config"
	"github.com/AmineMekki01/rag-app-prod-example/controller"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/chunk"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/embedding"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/llm"
	redisclient "github.com/AmineMekki01/rag-app-prod-example/pkg/clients/redis"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/vectorstore"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/projectlog"
	"github.com/AmineMekki01/rag-app-prod-example/repository/xormimplement"
	"github.com/AmineMekki01/rag-app-prod-example/router"
	"github.com/AmineMekki01/rag-app-prod-example/service/chat"
	"github.com/AmineMekki01/rag-app-prod-example/service/history"
	"github.com/AmineMekki01/rag-app-prod-example/service/ingest"
	"github.com/AmineMekki01/rag-app-prod-example/service/retrieval"
)

func main() {
	defer func() {
		if serviceErr := recover(); serviceErr != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)
			log.Println("The service exits abnormally, error message:【", serviceErr, "】")
			log.Println("Stack info: ")
			fmt.Printf("==> %s\n", string(buf[:n]))
			os.Exit(1)
		}
	}()

	projectlog.Init()

	server := buildServer()

	go startServer(server)
	waitStop()
}

// buildServer wires clients, services and controllers together. Every
// component is constructed here once and shared read-only afterwards.
func buildServer() *http.Server {
	cfg := config.GetInstance()

	embedderClient, err := embedding.NewClient(&embedding.Config{
		APIKey:    config.GetModelApiKey(),
		BaseURL:   cfg.GetString(config.EmbeddingConfigKeyBaseURL),
		ModelName: cfg.GetString(config.EmbeddingConfigKeyModelName),
	}, newRemoteEmbeddingCache())
	if err != nil {
		panic("failed to create embedding client: " + err.Error())
	}

	store := vectorstore.NewClient(&vectorstore.Config{
		Addr:      cfg.GetString(config.VectorStoreAddr),
		APIKey:    cfg.GetString(config.VectorStoreApiKey),
		Timeout:   time.Duration(cfg.GetIntOrDefault(config.VectorStoreTimeoutSec, 15)) * time.Second,
		Dimension: cfg.GetIntOrDefault(config.VectorStoreDimension, vectorstore.DefaultDimension),
	}, embedderClient)

	splitter, err := chunk.NewSplitter(
		cfg.GetStringOrDefault(config.ChunkerEncoding, chunk.DefaultEncoding),
		cfg.GetIntOrDefault(config.ChunkerMaxTokens, chunk.DefaultMaxTokens),
	)
	if err != nil {
		panic("failed to create splitter: " + err.Error())
	}

	llmClient := llm.NewClient(&llm.Config{
		Addr:        cfg.GetString(config.ClientChatModelAddr),
		Model:       cfg.GetString(config.ClientChatModelModel),
		Token:       config.GetModelApiKey(),
		Temperature: cast.ToFloat32(cfg.GetFloat64(config.ClientChatModelTemperature)),
		MaxTokens:   cfg.GetInt(config.ClientChatModelMaxTokens),
	})

	repositoryFactory := xormimplement.NewRepositoryFactory()

	ingestService := ingest.NewService(splitter, store)
	retrievalService := retrieval.NewService(store, cfg.GetIntOrDefault(config.RetrievalTopK, retrieval.DefaultTopK))
	chatService := chat.NewService(repositoryFactory, retrievalService, llmClient)
	historyService := history.NewService(repositoryFactory)

	engine := router.New(&router.Controllers{
		Ingest:  controller.NewIngestController(ingestService),
		Chat:    controller.NewChatController(chatService),
		History: controller.NewHistoryController(historyService),
	})

	return &http.Server{
		Addr:    cfg.GetString(config.AppHost),
		Handler: engine,
	}
}

// newRemoteEmbeddingCache builds the shared redis embedding cache, or
// nil when no redis host is configured.
func newRemoteEmbeddingCache() embedding.RemoteCache {
	cfg := config.GetInstance()

	host := cfg.GetString(config.RedisClientHost)
	if host == "" {
		return nil
	}

	client, err := redisclient.NewSingleClient(&redisclient.Config{
		Host:     host,
		Password: cfg.GetString(config.RedisClientPassword),
		Db:       cfg.GetInt(config.RedisClientDb),
	})
	if err != nil {
		logrus.Warnf("redis unavailable, embedding cache runs in-process only: %v", err)
		return nil
	}

	ttl := time.Duration(cfg.GetIntOrDefault(config.RedisCacheTTLSec, 0)) * time.Second
	return embedding.NewRedisCache(client, ttl)
}

func startServer(server *http.Server) {
	if err := server.ListenAndServe(); err != nil {
		logrus.Errorf("Failed to ListenAndServe at %v, err = %v", server.Addr, err)
		os.Exit(1)
	}
}

func waitStop() {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	sig := <-sc
	log.Printf("exit: signal=<%d>.\n", sig)
	switch sig {
	case syscall.SIGTERM:
		log.Println("exit: bye :-).")
		os.Exit(0)
	default:
		log.Println("exit: bye :-(.")
		os.Exit(1)
	}
}
