package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/lockedin/taskplan-agent/internal/adapters/http"
	"github.com/lockedin/taskplan-agent/internal/adapters/llm"
	firestorestore "github.com/lockedin/taskplan-agent/internal/adapters/storage/firestore"
	memstore "github.com/lockedin/taskplan-agent/internal/adapters/storage/memory"
	"github.com/lockedin/taskplan-agent/internal/app/chat"
	"github.com/lockedin/taskplan-agent/internal/config"
	"github.com/lockedin/taskplan-agent/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	var (
		completion domain.CompletionClient
		err        error
	)

	switch cfg.LLMBackend {
	case "groq":
		log.Println("[LLM] Using Groq completion client")
		completion, err = llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL)
		if err != nil {
			log.Fatalf("error initializing Groq client: %v", err)
		}
	case "vertex":
		log.Println("[LLM] Using Vertex AI completion client")
		completion, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation)
		if err != nil {
			log.Fatalf("error initializing Vertex AI client: %v", err)
		}
	default:
		log.Println("[LLM] Using MOCK completion client")
		completion = llm.NewMockCompletion()
	}

	var (
		sessionStore domain.SessionStore
		messageStore domain.MessageStore
		planStore    domain.PlanStore
	)

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 3 interfaces
		sessionStore = fsStore
		messageStore = fsStore
		planStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		sessionStore = memstore.NewSessionStore()
		messageStore = memstore.NewMessageStore()
		planStore = memstore.NewPlanStore()
	}

	svc := chat.NewService(completion, sessionStore, messageStore, planStore, chat.Policy{
		ContextWindow: cfg.ContextWindow,
		MaxMessageLen: cfg.MaxMessageLen,
		TitleLimit:    cfg.TitleLimit,
		Model:         cfg.ModelName,
		Temperature:   cfg.Temperature,
		MaxTokens:     cfg.MaxTokens,
	})

	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	log.Println("taskplan API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
