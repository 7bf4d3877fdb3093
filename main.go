package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	chatx "github.com/Samilincoln/ai-customer-chat/agent/chat"
	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	dispatchx "github.com/Samilincoln/ai-customer-chat/agent/dispatch"
	storex "github.com/Samilincoln/ai-customer-chat/agent/store"
	toolx "github.com/Samilincoln/ai-customer-chat/agent/tool"
	configx "github.com/Samilincoln/ai-customer-chat/pkg/config"
	groqx "github.com/Samilincoln/ai-customer-chat/pkg/groq"
	gsearchx "github.com/Samilincoln/ai-customer-chat/pkg/gsearch"
	_ "github.com/Samilincoln/ai-customer-chat/pkg/logger/autoload"
)

func main() {
	groqCfg := configx.MustNew[groqx.Config]("GROQ")
	model := groqx.MustNew(*groqCfg)

	service, err := buildService(model)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build chat service")
	}

	runChatLoop(service)
}

func buildService(model contractx.ModelClient) (*chatx.Service, error) {
	st := buildStore()

	var searcher contractx.Searcher
	if searchCfg, err := configx.New[gsearchx.Config]("GSEARCH"); err != nil {
		log.Warn().Err(err).Msg("search collaborator not configured, consultations will fail soft")
	} else if client, err := gsearchx.NewClient(*searchCfg); err != nil {
		log.Warn().Err(err).Msg("search client rejected config, consultations will fail soft")
	} else {
		searcher = client
	}

	suite, err := toolx.NewSuite(st, searcher)
	if err != nil {
		return nil, err
	}

	dispatcher, err := dispatchx.New(suite)
	if err != nil {
		return nil, err
	}

	chatCfg := configx.MustNew[chatx.Config]("APP")
	return chatx.New(model, dispatcher, st, chatx.NewBufferMemory(), *chatCfg)
}

// buildStore prefers Postgres when a DSN is configured and falls back to the
// seeded in-memory catalog otherwise.
func buildStore() storex.Store {
	bunCfg, err := configx.New[storex.BunConfig]("POSTGRES")
	if err != nil {
		log.Info().Msg("no postgres dsn configured, using seeded in-memory store")
		return storex.NewSeededStore()
	}

	st, err := storex.NewBunStore(*bunCfg)
	if err != nil {
		log.Warn().Err(err).Msg("postgres store unavailable, using seeded in-memory store")
		return storex.NewSeededStore()
	}
	return st
}

func runChatLoop(service *chatx.Service) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	sessionID := "local"

	fmt.Println("Zita is ready. Type a message (Ctrl-D to quit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		result, err := service.HandleTurn(ctx, sessionID, message)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			continue
		}
		fmt.Println(result.Reply)
	}
}
