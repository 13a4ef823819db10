package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"scouting-agent-be/internal/entity"
	"scouting-agent-be/internal/repository/specification"
	"scouting-agent-be/internal/repository/unitofwork"
	"scouting-agent-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ChatTurnRepository())
	assert.NotNil(t, uow.ReportJobRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Chat turn round trip", func(t *testing.T) {
		sessionId := "it-" + uuid.NewString()
		turn := &entity.ChatTurn{
			Id:        uuid.New(),
			SessionId: sessionId,
			Role:      "user",
			Content:   "integration probe",
		}
		err := uow.ChatTurnRepository().Create(context.Background(), turn)
		assert.NoError(t, err)

		found, err := uow.ChatTurnRepository().FindAll(context.Background(),
			specification.BySessionId{SessionId: sessionId})
		assert.NoError(t, err)
		assert.Len(t, found, 1)

		err = uow.ChatTurnRepository().DeleteBySessionId(context.Background(), sessionId)
		assert.NoError(t, err)
	})
}
