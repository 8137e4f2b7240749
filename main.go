package main

import (
	"campus/chatbot"
	"campus/chatbot/chunker"
	"campus/chatbot/genai"
	"campus/chatbot/ingest"
	"campus/chatbot/vectorstore"
	"campus/config"
	"campus/database"
	authRoutes "campus/routers/authRoutes"
	chatbotRoutes "campus/routers/chatbotRoutes"
	courseRoutes "campus/routers/courseRoutes"
	"campus/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

const (
	chunkSize    = 1000
	chunkOverlap = 150
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Chatbot components: built once here and passed by reference.
	// Without an API key the content path stays disabled while academic
	// answers keep working.
	var (
		genaiClient *genai.Client
		store       vectorstore.Store
		pipeline    *ingest.Pipeline
	)
	if config.AppConfig.GoogleAPIKey != "" {
		genaiClient = genai.NewClient(genai.Config{
			BaseURL:     config.AppConfig.GenAIBaseURL,
			APIKey:      config.AppConfig.GoogleAPIKey,
			EmbedModel:  config.AppConfig.EmbedModel,
			LLMModel:    config.AppConfig.LLMModel,
			Temperature: 0.1,
			Timeout:     time.Duration(config.AppConfig.GenAITimeout) * time.Second,
		})

		gormStore, err := vectorstore.NewGormStore(database.Database.Db, genaiClient)
		if err != nil {
			log.Fatalf("Failed to initialize vector store: %v", err)
		}
		store = gormStore
		pipeline = ingest.New(store, chunker.New(chunkSize, chunkOverlap))
	}

	chatbotService := chatbot.NewService(database.Database.Db, genaiClient, store, config.AppConfig.RetrievalTopK)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupTeacherRoutes(app, pipeline)
	chatbotRoutes.SetupChatbotRoutes(app, chatbotService)

	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
